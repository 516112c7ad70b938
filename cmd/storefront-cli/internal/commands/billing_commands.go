package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/drinkbox/storefront/internal/app"
	"github.com/drinkbox/storefront/internal/domain/billing"

	"github.com/spf13/cobra"
)

var paymentGroupHeaders = []string{"Order", "Installment", "Amount", "Due", "Bill created", "Bill sent"}

func paymentGroupRows(ctx context.Context, lookup *orderLookup, groups []*billing.PaymentGroup) ([][]string, error) {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		o, err := lookup.get(ctx, g.OrderID)
		if err != nil {
			return nil, fmt.Errorf("payment group %s: %w", g.ID, err)
		}
		rows = append(rows, []string{
			o.Number,
			strconv.Itoa(g.Sequence),
			g.AmountDue.StringFixed(2) + " " + g.Currency,
			g.DueDate.Format(time.DateOnly),
			yesNo(g.BillCreated),
			yesNo(g.BillSent),
		})
	}
	return rows, nil
}

// runBillingReport prints the payment groups returned by report.
func runBillingReport(cmd *cobra.Command, empty string, report func(context.Context, billing.PaymentGroupService) ([]*billing.PaymentGroup, error)) error {
	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	service, err := app.NewPaymentGroupService(env.repos.PaymentGroups, env.clock, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create payment group service: %w", err)
	}

	ctx := cmd.Context()
	groups, err := report(ctx, service)
	if err != nil {
		return err
	}

	rows, err := paymentGroupRows(ctx, newOrderLookup(env.repos.Orders), groups)
	if err != nil {
		return err
	}
	return renderTable(cmd.OutOrStdout(), empty, paymentGroupHeaders, rows)
}

// BillingDueCmd lists unpaid installments without a bill that fall due within --days.
func BillingDueCmd(cmd *cobra.Command, _ []string) error {
	days, err := cmd.Flags().GetInt("days")
	if err != nil {
		return fmt.Errorf("invalid days flag: %w", err)
	}
	if days < 0 {
		return fmt.Errorf("--days must not be negative")
	}

	return runBillingReport(cmd, fmt.Sprintf("no bills to create in the next %d days", days),
		func(ctx context.Context, service billing.PaymentGroupService) ([]*billing.PaymentGroup, error) {
			return service.DueWithin(ctx, days)
		})
}

// BillingOverdueCmd lists unpaid installments whose due date has passed.
func BillingOverdueCmd(cmd *cobra.Command, _ []string) error {
	return runBillingReport(cmd, "no overdue payments",
		func(ctx context.Context, service billing.PaymentGroupService) ([]*billing.PaymentGroup, error) {
			return service.Overdue(ctx)
		})
}

// InitBillingCommands registers billing-related commands
func InitBillingCommands(rootCmd *cobra.Command) error {
	var billingCmd = &cobra.Command{
		Use:   "billing",
		Short: "Payment group reports",
	}

	var dueCmd = &cobra.Command{
		Use:   "due",
		Short: "List installments that need a bill within the next days",
		Args:  cobra.NoArgs,
		RunE:  BillingDueCmd,
	}
	dueCmd.Flags().IntP("days", "d", 7, "Number of days to look ahead")

	var overdueCmd = &cobra.Command{
		Use:   "overdue",
		Short: "List unpaid installments past their due date",
		Args:  cobra.NoArgs,
		RunE:  BillingOverdueCmd,
	}

	billingCmd.AddCommand(dueCmd, overdueCmd)
	rootCmd.AddCommand(billingCmd)

	return nil
}
