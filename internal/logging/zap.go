// Package logging adapts go.uber.org/zap to the lago.Logger contract.
package logging

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// Static errors for err113 compliance.
var (
	ErrUnknownMode     = errors.New("unknown logger mode")
	ErrUnknownEncoding = errors.New("unknown logger encoding")
)

// Logger modes.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Config selects the zap preset, level and encoding.
type Config struct {
	// Level is a zap level name: debug, info, warn, error. Empty keeps the
	// preset's default.
	Level string
	// Mode is "production" or "development".
	Mode string
	// Encoding is "json" or "console". Empty keeps the preset's default.
	Encoding string
}

// New builds a zap logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	var zapCfg zap.Config

	switch strings.ToLower(cfg.Mode) {
	case "", ModeProduction:
		zapCfg = zap.NewProductionConfig()
	case ModeDevelopment:
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}

		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	switch cfg.Encoding {
	case "":
	case "json", "console":
		zapCfg.Encoding = cfg.Encoding
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, cfg.Encoding)
	}

	// CLI output goes to stdout; logs stay on stderr.
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return logger, nil
}

// ZapLogger implements lago.Logger on top of a *zap.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger. A nil logger discards everything.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapLogger{logger: logger}
}

// Zap returns the underlying logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

// Debug implements lago.Logger.
func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, toFields(fields)...)
}

// Info implements lago.Logger.
func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, toFields(fields)...)
}

// Warn implements lago.Logger.
func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, toFields(fields)...)
}

// Error implements lago.Logger.
func (l *ZapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, toFields(fields)...)
}

// toFields converts in key order so log lines are stable.
func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		if err, ok := fields[key].(error); ok {
			out = append(out, zap.NamedError(key, err))

			continue
		}

		out = append(out, zap.Any(key, fields[key]))
	}

	return out
}

var _ lago.Logger = (*ZapLogger)(nil)
