// Package logger provides structured logging for the editor using zap.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger with field helpers for the editor domain.
type Logger struct {
	*zap.SugaredLogger
	config *Config
}

// Config holds logger options.
type Config struct {
	// Level is the minimum level to output (debug, info, warn, error).
	Level string

	// Format is "console" (human-readable) or "json".
	Format string

	// OutputPath appends log output to a file in addition to stdout.
	OutputPath string

	// EnableCaller adds caller information to entries.
	EnableCaller bool
}

var defaultLogger *Logger

// New creates a logger from cfg; a nil cfg yields an info-level console
// logger.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{Level: "info", Format: "console"}
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	syncers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.OutputPath != "" {
		file, err := os.OpenFile(cfg.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.OutputPath, err)
		}
		syncers = append(syncers, zapcore.AddSync(file))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), level)

	var opts []zap.Option
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{
		SugaredLogger: zap.New(core, opts...).Sugar(),
		config:        cfg,
	}, nil
}

// Init installs the global logger instance.
func Init(cfg *Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	defaultLogger = l
	return nil
}

// Get returns the global logger, creating a default one if Init was never
// called.
func Get() *Logger {
	if defaultLogger == nil {
		defaultLogger, _ = New(nil)
	}
	return defaultLogger
}

// WithFields returns a logger with key/value pairs attached.
func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.With(fields...), config: l.config}
}

// WithDocument attaches the source path of the document being edited.
func (l *Logger) WithDocument(sourcePath string) *Logger {
	return l.WithFields("document", sourcePath)
}

// WithPage attaches a page uid.
func (l *Logger) WithPage(pageUID string) *Logger {
	return l.WithFields("page_uid", pageUID)
}

// WithElement attaches an element id.
func (l *Logger) WithElement(elementID string) *Logger {
	return l.WithFields("element_id", elementID)
}

// WithOperation attaches an operation name.
func (l *Logger) WithOperation(operation string) *Logger {
	return l.WithFields("operation", operation)
}

// WithError attaches an error field.
func (l *Logger) WithError(err error) *Logger {
	return l.WithFields("error", err)
}

// Sync flushes any buffered entries.
func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", level)
	}
}
