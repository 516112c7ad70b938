//go:build unit
// +build unit

package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name     string
		settings func(t *testing.T) *config.LoggerSettings
		wantErr  bool
	}{
		{
			name: "console",
			settings: func(*testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole, Service: "storefront-cli"}
			},
		},
		{
			name: "rotated file",
			settings: func(t *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{
					LogLevel:   config.LogLevelInfo,
					LogType:    config.LogTypeFile,
					FilePath:   filepath.Join(t.TempDir(), "storefront.log"),
					MaxSize:    10,
					MaxBackups: 3,
					MaxAge:     28,
				}
			},
		},
		{
			name: "invalid level",
			settings: func(*testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{LogLevel: "loud", LogType: config.LogTypeConsole}
			},
			wantErr: true,
		},
		{
			name: "file without rotation limits",
			settings: func(*testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile, FilePath: "/tmp/storefront.log"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(resetLoggerSingleton)
			settings := tt.settings(t)

			err := InitLogger(settings)
			if tt.wantErr {
				require.Error(t, err)
				log, getErr := GetLogger()
				assert.Error(t, getErr)
				assert.Nil(t, log)
				return
			}

			require.NoError(t, err)
			log, err := GetLogger()
			require.NoError(t, err)
			log.Info("settings loaded")

			if settings.LogType == config.LogTypeFile {
				_, err := os.Stat(settings.FilePath)
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetLogger_BeforeInit(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	log, err := GetLogger()
	assert.Nil(t, log)
	assert.ErrorContains(t, err, "not initialized")
}

func TestInitLogger_FirstCallWins(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole}))
	first, err := GetLogger()
	require.NoError(t, err)

	// A later, even invalid, configuration is ignored
	assert.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: "loud"}))
	second, err := GetLogger()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		config.LogLevelDebug:    slog.LevelDebug,
		config.LogLevelInfo:     slog.LevelInfo,
		config.LogLevelWarning:  slog.LevelWarn,
		config.LogLevelError:    slog.LevelError,
		config.LogLevelCritical: slog.LevelError,
		"unknown":               slog.LevelInfo,
	}

	for level, expected := range tests {
		assert.Equal(t, expected, parseLevel(level), level)
	}
}
