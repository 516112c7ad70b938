// Package testutil holds helpers shared by unit and integration tests.
package testutil

import (
	"testing"

	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

// SetupTestLogger returns the process logger tagged with the running test's
// name. The first call in a test binary initializes it.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	require.NoError(t, logger.InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
		Format:   config.LogFormatText,
		Service:  "storefront-test",
	}))

	log, err := logger.GetLogger()
	require.NoError(t, err)
	return log.With("test", t.Name())
}
