package logging_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fivetwenty-io/lago-client/internal/logging"
)

var errBoom = errors.New("boom")

func TestZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLogger(zap.New(core))

	logger.Debug("HTTP Request", map[string]interface{}{"method": "GET", "attempt": 1})
	logger.Info("started", nil)
	logger.Warn("Retrying request", map[string]interface{}{"delay": "100ms", "status": 503})
	logger.Error("failed", map[string]interface{}{"error": errBoom})

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "HTTP Request", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"attempt": int64(1), "method": "GET"}, entries[0].ContextMap())

	assert.Empty(t, entries[1].Context)

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "100ms", entries[2].ContextMap()["delay"])

	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestZapLogger_FieldOrder(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLogger(zap.New(core))

	logger.Info("ordered", map[string]interface{}{"c": 3, "a": 1, "b": 2})

	fields := logs.All()[0].Context
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "c", fields[2].Key)
}

func TestNewZapLogger_Nil(t *testing.T) {
	t.Parallel()

	logger := logging.NewZapLogger(nil)

	assert.NotPanics(t, func() {
		logger.Warn("ignored", map[string]interface{}{"k": "v"})
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr error
		level   zapcore.Level
	}{
		{name: "production default", cfg: logging.Config{}, level: zapcore.InfoLevel},
		{name: "development", cfg: logging.Config{Mode: "development"}, level: zapcore.DebugLevel},
		{name: "explicit level", cfg: logging.Config{Level: "warn", Encoding: "console"}, level: zapcore.WarnLevel},
		{name: "unknown mode", cfg: logging.Config{Mode: "verbose"}, wantErr: logging.ErrUnknownMode},
		{name: "unknown encoding", cfg: logging.Config{Encoding: "xml"}, wantErr: logging.ErrUnknownEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, err := logging.New(tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}
