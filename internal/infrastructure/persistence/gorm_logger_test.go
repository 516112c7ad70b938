//go:build unit
// +build unit

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingLogger struct {
	entries *[]string
}

func newRecordingLogger() (logger.Logger, *[]string) {
	entries := &[]string{}
	return recordingLogger{entries: entries}, entries
}

func (r recordingLogger) record(level string, args ...interface{}) {
	msg := level
	for _, a := range args {
		msg += " " + toString(a)
	}
	*r.entries = append(*r.entries, msg)
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return ""
	}
}

func (r recordingLogger) Debug(args ...interface{})                   { r.record("DEBUG", args...) }
func (r recordingLogger) Info(args ...interface{})                    { r.record("INFO", args...) }
func (r recordingLogger) Warn(args ...interface{})                    { r.record("WARN", args...) }
func (r recordingLogger) Error(args ...interface{})                   { r.record("ERROR", args...) }
func (r recordingLogger) Fatal(args ...interface{})                   { r.record("FATAL", args...) }
func (r recordingLogger) Panic(args ...interface{})                   { r.record("PANIC", args...) }
func (r recordingLogger) With(keyValues ...interface{}) logger.Logger { return r }

func trace(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed query", func(t *testing.T) {
		log, entries := newRecordingLogger()
		gl := newGormLogger(log, 0)

		gl.Trace(ctx, time.Now(), trace("SELECT 1"), errors.New("connection reset"))

		assert.Len(t, *entries, 1)
		assert.Contains(t, (*entries)[0], "ERROR")
		assert.Contains(t, (*entries)[0], "connection reset")
	})

	t.Run("record not found is quiet", func(t *testing.T) {
		log, entries := newRecordingLogger()
		gl := newGormLogger(log, 0)

		gl.Trace(ctx, time.Now(), trace("SELECT * FROM products"), gorm.ErrRecordNotFound)

		assert.Empty(t, *entries)
	})

	t.Run("slow query", func(t *testing.T) {
		log, entries := newRecordingLogger()
		gl := newGormLogger(log, time.Millisecond)

		gl.Trace(ctx, time.Now().Add(-time.Second), trace("UPDATE orders SET status = 'paid'"), nil)

		assert.Len(t, *entries, 1)
		assert.Contains(t, (*entries)[0], "WARN slow query:")
	})

	t.Run("fast query below info level", func(t *testing.T) {
		log, entries := newRecordingLogger()
		gl := newGormLogger(log, time.Second)

		gl.Trace(ctx, time.Now(), trace("SELECT 1"), nil)

		assert.Empty(t, *entries)
	})

	t.Run("silent mode", func(t *testing.T) {
		log, entries := newRecordingLogger()
		gl := newGormLogger(log, time.Millisecond).LogMode(gormlogger.Silent)

		gl.Trace(ctx, time.Now().Add(-time.Second), trace("SELECT 1"), errors.New("boom"))

		assert.Empty(t, *entries)
	})
}
