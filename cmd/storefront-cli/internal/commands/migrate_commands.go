package commands

import (
	"fmt"

	"github.com/drinkbox/storefront/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
)

// MigrateCmd creates or updates the database schema.
func MigrateCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if err := persistence.Migrate(env.db); err != nil {
		return err
	}

	env.logger.Info("Database migrations completed successfully")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
	return err
}

// InitMigrateCommands registers the migrate command
func InitMigrateCommands(rootCmd *cobra.Command) error {
	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	return nil
}
