//go:build unit
// +build unit

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "storefront.log")

	log := NewFileLogger(config.LogLevelInfo, logPath, 10, 3, 28)
	require.NotNil(t, log)

	log.Debug("debug message")
	log.Info("order created ", "SO-20261018-ABCDEF")
	log.Warn("coupon rejected")
	log.Error("barion callback failed")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	out := string(content)
	assert.NotContains(t, out, "debug message")
	assert.Contains(t, out, "order created SO-20261018-ABCDEF")
	assert.Contains(t, out, "coupon rejected")
	assert.Contains(t, out, "barion callback failed")
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"level":"ERROR"`)
}
