package logger

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// LogBuilder builds a log entry with a fluent interface.
type LogBuilder struct {
	Logger *Logger
	Ctx    context.Context
	Level  LogLevel
	Meta   map[string]string
	Fields logrus.Fields
}

// WithAppName sets the log file base name.
func WithAppName(name string) LoggerOption {
	return func(l *Logger) { l.AppName = name }
}

// WithTimeFormat sets the timestamp format.
func WithTimeFormat(timeformat string) LoggerOption {
	return func(l *Logger) { l.TimeFormat = timeformat }
}

// WithOutputDir sets the output directory of Log File.
func WithOutputDir(dir string) LoggerOption {
	return func(l *Logger) { l.OutputDir = dir }
}

// WithMaxFileSize sets the maximum size in megabytes of a single log file.
func WithMaxFileSize(size int) LoggerOption {
	return func(l *Logger) { l.MaxSizeMB = size }
}

// WithMaxDays sets the maximum age for the log files.
func WithMaxDays(days int) LoggerOption {
	return func(l *Logger) { l.MaxAgeDays = days }
}

// WithLevel sets the minimum level written.
func WithLevel(level LogLevel) LoggerOption {
	return func(l *Logger) { l.Level = level }
}

// WithOutput writes to w only, no file rotation.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) { l.Output = w }
}

// Debug starts a debug-level log entry.
func (l *Logger) Debug(ctx context.Context) *LogBuilder {
	return &LogBuilder{Logger: l, Ctx: ctx, Level: LevelDebug}
}

// Info starts an info-level log entry.
func (l *Logger) Info(ctx context.Context) *LogBuilder {
	return &LogBuilder{Logger: l, Ctx: ctx, Level: LevelInfo}
}

// Warn starts a warn-level log entry.
func (l *Logger) Warn(ctx context.Context) *LogBuilder {
	return &LogBuilder{Logger: l, Ctx: ctx, Level: LevelWarn}
}

// Error starts an error-level log entry.
func (l *Logger) Error(ctx context.Context) *LogBuilder {
	return &LogBuilder{Logger: l, Ctx: ctx, Level: LevelError}
}

// WithMeta adds metadata to the log entry.
func (b *LogBuilder) WithMeta(meta map[string]string) *LogBuilder {
	b.Meta = meta
	return b
}

// WithFields adds key/value pairs. Can be chained.
func (b *LogBuilder) WithFields(kv ...interface{}) *LogBuilder {
	if b.Fields == nil {
		b.Fields = logrus.Fields{}
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		val := kv[i+1]
		if err, ok := val.(error); ok {
			val = err.Error()
		}
		b.Fields[key] = val
	}
	if len(kv)%2 == 1 {
		b.Fields["extra"] = kv[len(kv)-1]
	}
	return b
}

// Logs writes the entry.
func (b *LogBuilder) Logs(msg string) {
	fields := logrus.Fields{}
	for k, v := range b.Fields {
		fields[k] = v
	}
	if len(b.Meta) > 0 {
		fields["meta"] = b.Meta
	}

	if b.Ctx != nil {
		if reqID, ok := b.Ctx.Value(RequestIDKey).(string); ok {
			fields["request_id"] = reqID
		}
		if userID, ok := b.Ctx.Value(UserIDKey).(string); ok {
			fields["user_id"] = userID
		}
	}

	entry := b.Logger.Log.WithFields(fields)
	switch b.Level {
	case LevelDebug:
		entry.Debug(msg)
	case LevelWarn:
		entry.Warn(msg)
	case LevelError:
		entry.Error(msg)
	default:
		entry.Info(msg)
	}
}
