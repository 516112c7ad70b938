package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/drinkbox/storefront/internal/app"
	"github.com/drinkbox/storefront/internal/domain/deliveries"

	"github.com/spf13/cobra"
)

var deliveryHeaders = []string{"Date", "Order", "Delivery", "Address", "Note"}

func deliveryRows(ctx context.Context, lookup *orderLookup, list []*deliveries.Delivery) ([][]string, error) {
	rows := make([][]string, 0, len(list))
	for _, d := range list {
		o, err := lookup.get(ctx, d.OrderID)
		if err != nil {
			return nil, fmt.Errorf("delivery %s: %w", d.ID, err)
		}
		addr := o.ShippingAddress
		rows = append(rows, []string{
			d.ScheduledDate.Format(time.DateOnly),
			o.Number,
			strconv.Itoa(d.Sequence) + "/" + strconv.Itoa(o.DeliveryCount),
			joinNonEmpty(", ", addr.PostalCode+" "+addr.City, addr.Street),
			addr.Note,
		})
	}
	return rows, nil
}

// DeliveriesDueCmd lists the scheduled deliveries of today and the next --days.
func DeliveriesDueCmd(cmd *cobra.Command, _ []string) error {
	days, err := cmd.Flags().GetInt("days")
	if err != nil {
		return fmt.Errorf("invalid days flag: %w", err)
	}
	if days < 0 {
		return fmt.Errorf("--days must not be negative")
	}

	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	settingsService, err := app.NewShopSettingsService(env.repos.Settings, nil, env.clock, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create settings service: %w", err)
	}

	service, err := app.NewDeliveryService(env.repos.Transactor, env.repos.Deliveries, env.repos.Orders, settingsService, env.clock, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create delivery service: %w", err)
	}

	from := deliveries.Day(env.clock.Now())
	to := from.AddDate(0, 0, days+1)

	ctx := cmd.Context()
	due, err := service.ListDue(ctx, &deliveries.DeliveryQuery{
		From:   &from,
		To:     &to,
		Status: deliveries.StatusScheduled,
		Limit:  500,
	})
	if err != nil {
		return err
	}

	rows, err := deliveryRows(ctx, newOrderLookup(env.repos.Orders), due)
	if err != nil {
		return err
	}
	return renderTable(cmd.OutOrStdout(), fmt.Sprintf("no deliveries scheduled in the next %d days", days), deliveryHeaders, rows)
}

// InitDeliveryCommands registers delivery-related commands
func InitDeliveryCommands(rootCmd *cobra.Command) error {
	var deliveriesCmd = &cobra.Command{
		Use:   "deliveries",
		Short: "Delivery schedule reports",
	}

	var dueCmd = &cobra.Command{
		Use:   "due",
		Short: "List scheduled deliveries from today through the next days",
		Args:  cobra.NoArgs,
		RunE:  DeliveriesDueCmd,
	}
	dueCmd.Flags().IntP("days", "d", 7, "Number of days to look ahead")

	deliveriesCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(deliveriesCmd)

	return nil
}
