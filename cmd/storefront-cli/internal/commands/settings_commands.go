package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/drinkbox/storefront/internal/app"
	"github.com/drinkbox/storefront/internal/domain/settings"

	"github.com/spf13/cobra"
)

func writeSettings(w io.Writer, s *settings.ShopSettings) error {
	days := make([]string, 0, len(s.DeliveryWeekdays))
	for _, d := range s.SortedWeekdays() {
		days = append(days, d.String())
	}

	updated := "never (defaults)"
	if !s.DateTimeUpdated.IsZero() {
		updated = s.DateTimeUpdated.Format(time.RFC3339)
	}

	rows := [][]string{
		{"Shop open", yesNo(s.ShopOpen)},
		{"Currency", s.Currency},
		{"Shipping fee", s.ShippingFee.StringFixed(2)},
		{"Free shipping from", s.FreeShippingThreshold.StringFixed(2)},
		{"Subscription discount", s.SubscriptionDiscountPercent.String() + "%"},
		{"Delivery weekdays", strings.Join(days, ", ")},
		{"Minimum lead days", fmt.Sprint(s.MinLeadDays)},
		{"Max subscription deliveries", fmt.Sprint(s.MaxSubscriptionDeliveries)},
		{"Bank transfer due days", fmt.Sprint(s.BankTransferDueDays)},
		{"Last updated", updated},
	}
	return renderTable(w, "", []string{"Setting", "Value"}, rows)
}

// ShowSettingsCmd prints the effective shop settings.
func ShowSettingsCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	service, err := app.NewShopSettingsService(env.repos.Settings, nil, env.clock, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create settings service: %w", err)
	}

	current, err := service.Get(cmd.Context())
	if err != nil {
		return err
	}
	return writeSettings(cmd.OutOrStdout(), current)
}

// InitSettingsCommands registers settings-related commands
func InitSettingsCommands(rootCmd *cobra.Command) error {
	var settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Shop settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective shop settings",
		Args:  cobra.NoArgs,
		RunE:  ShowSettingsCmd,
	}

	settingsCmd.AddCommand(showCmd)
	rootCmd.AddCommand(settingsCmd)

	return nil
}
