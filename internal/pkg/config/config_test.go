//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRestConfig = `
port: "9090"
database:
  type: sqlite
  dsn: ":memory:"
logger:
  log_level: debug
  log_type: console
session:
  secret: "0123456789abcdef0123456789abcdef"
admin:
  api_key: "admin-key-0123456789"
payments:
  barion:
    enabled: true
    environment: test
    pos_key: "pos-key"
    payee: "shop@example.com"
    redirect_url: "https://shop.example.com/payment/return"
    callback_url: "https://shop.example.com/api/v1/shop/payments/barion/callback"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeRestConfig(t *testing.T) {
	cfg, err := InitializeRestConfig(writeConfig(t, testRestConfig))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.True(t, cfg.Payments.Barion.Enabled)
	assert.Equal(t, "hu-HU", cfg.Payments.Barion.Locale)
	assert.Equal(t, "https://api.test.barion.com", cfg.Payments.Barion.ResolvedBaseURL())
	assert.False(t, cfg.Payments.Stripe.Enabled)
	assert.Equal(t, 30, cfg.Session.MaxAgeDays)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestInitializeRestConfig_EnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_ADMIN_API_KEY", "env-admin-key-0123456789")
	t.Setenv("STOREFRONT_PORT", "7070")

	cfg, err := InitializeRestConfig(writeConfig(t, testRestConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-admin-key-0123456789", cfg.Admin.APIKey)
	assert.Equal(t, "7070", cfg.Port)
}

func TestInitializeRestConfig_MissingSecrets(t *testing.T) {
	_, err := InitializeRestConfig(writeConfig(t, "port: \"8080\"\n"))
	require.Error(t, err)
}

func TestInitializeRestConfig_BarionEnabledWithoutKey(t *testing.T) {
	content := `
session:
  secret: "0123456789abcdef0123456789abcdef"
admin:
  api_key: "admin-key-0123456789"
payments:
  barion:
    enabled: true
`
	_, err := InitializeRestConfig(writeConfig(t, content))
	require.Error(t, err)
}

func TestInitializeCliConfig_Defaults(t *testing.T) {
	cfg, err := InitializeCliConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
}

func TestDatabaseSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *DatabaseSettings
		expectedError bool
	}{
		{"valid postgres", &DatabaseSettings{Type: PostgresDbType, DSN: "host=localhost user=postgres", Name: "storefront"}, false},
		{"valid sqlite without dsn", &DatabaseSettings{Type: SqliteDbType}, false},
		{"postgres without dsn", &DatabaseSettings{Type: PostgresDbType, Name: "storefront"}, true},
		{"missing type", &DatabaseSettings{DSN: "host=localhost"}, true},
		{"unsupported type", &DatabaseSettings{Type: "mysql", DSN: "x"}, true},
		{"pool limits", &DatabaseSettings{Type: SqliteDbType, MaxOpenConns: 20, MaxIdleConns: 5, ConnMaxLifetime: time.Hour}, false},
		{"negative pool size", &DatabaseSettings{Type: PostgresDbType, DSN: "host=localhost", MaxOpenConns: -1}, true},
		{"injection in name", &DatabaseSettings{Type: PostgresDbType, DSN: "host=localhost", Name: "shop; DROP TABLE orders"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
