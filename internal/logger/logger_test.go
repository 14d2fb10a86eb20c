package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })
	return logs
}

func TestFromContextCarriesRequestFields(t *testing.T) {
	logs := observe(t)

	ctx := WithRequest(context.Background(), "01HZX", "user-1")
	InfoCtx(ctx, "Handled request")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "01HZX", fields["requestID"])
	assert.Equal(t, "user-1", fields["userID"])
	assert.Equal(t, "01HZX", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestGormLoggerTrace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		elapsed time.Duration
		err     error
		want    string
	}{
		{name: "failed statement", level: gormlogger.Warn, err: errors.New("boom"), want: "Database statement failed"},
		{name: "missing row is quiet", level: gormlogger.Warn, err: gorm.ErrRecordNotFound},
		{name: "slow statement", level: gormlogger.Warn, elapsed: time.Second, want: "Slow database statement"},
		{name: "fast statement is quiet", level: gormlogger.Warn},
		{name: "silent drops failures", level: gormlogger.Silent, err: errors.New("boom")},
		{name: "info traces everything", level: gormlogger.Info, want: "Database statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observe(t)
			l := NewGormLogger(100 * time.Millisecond).LogMode(tt.level)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), query, tt.err)

			if tt.want == "" {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.want, logs.All()[0].Message)
			assert.Equal(t, "SELECT 1", logs.All()[0].ContextMap()["sql"])
		})
	}
}
