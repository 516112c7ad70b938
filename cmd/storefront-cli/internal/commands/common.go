package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drinkbox/storefront/internal/infrastructure/persistence"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	configFlag        = "config"
	defaultConfigPath = "../../configs/rest-app.yaml"
)

// InitRootFlags registers the flags shared by every command.
func InitRootFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().String(configFlag, "", "Path to the configuration file (default $CONFIG_PATH or "+defaultConfigPath+")")
	return nil
}

func configPath(cmd *cobra.Command) string {
	if path, err := cmd.Flags().GetString(configFlag); err == nil && path != "" {
		return path
	}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultConfigPath
}

// environment is what a command needs to reach the store.
type environment struct {
	db     *gorm.DB
	repos  *persistence.Repositories
	clock  clockwork.Clock
	logger logger.Logger
}

// openEnvironment loads the configuration and connects to the database.
func openEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.InitializeCliConfig(configPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	loggerInstance = loggerInstance.With("command", cmd.CommandPath())

	db, err := persistence.NewDBConnection(cfg.Database, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	repos, err := persistence.NewRepositories(db, loggerInstance)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}

	return &environment{
		db:     db,
		repos:  repos,
		clock:  clockwork.NewRealClock(),
		logger: loggerInstance,
	}, nil
}

func (e *environment) close() {
	if err := persistence.CloseDB(e.db); err != nil {
		e.logger.Warn("failed to close database: ", err)
	}
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderTable writes rows as a bordered table, or a single line when there are none.
func renderTable(w io.Writer, empty string, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
