// Package main is the entry point for the storefront-cli application.
// It registers the maintenance and back-office job commands (migrate, catalog,
// billing, deliveries, settings) and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/drinkbox/storefront/cmd/storefront-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "storefront-cli",
		Short: "Storefront maintenance and back-office jobs",
		Long: `storefront-cli runs database migrations, imports the product catalog
and prints the periodic billing and delivery reports.

The configuration file is taken from --config, then CONFIG_PATH. Database
settings may be overridden with STOREFRONT_DATABASE_DSN and STOREFRONT_DATABASE_NAME.`,
		SilenceUsage: true,
	}

	if err := commands.InitRootFlags(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize flags: %w", err)
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitMigrateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	if err := commands.InitCatalogCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize catalog commands: %w", err)
	}

	if err := commands.InitBillingCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize billing commands: %w", err)
	}

	if err := commands.InitDeliveryCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize delivery commands: %w", err)
	}

	if err := commands.InitSettingsCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize settings commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
