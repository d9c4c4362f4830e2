package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	fiblog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "request_id"
	UserIDKey    ctxKey = "user_id"
)

// Logger manages structured logging with rotation.
type Logger struct {
	AppName    string
	TimeFormat string
	OutputDir  string
	MaxSizeMB  int
	MaxAgeDays int
	Level      LogLevel
	Output     io.Writer
	Log        *logrus.Logger

	file   *lumberjack.Logger
	access io.Writer
}

// LoggerOption defines a function to configure the logger.
type LoggerOption func(*Logger)

// NewLogger builds a JSON logger writing to stdout and a rotating file in
// OutputDir. WithOutput replaces both sinks.
func NewLogger(opts ...LoggerOption) (*Logger, error) {
	l := &Logger{
		AppName:    "routinely",
		TimeFormat: time.RFC3339,
		OutputDir:  "./logs",
		MaxSizeMB:  10,
		MaxAgeDays: 7,
		Level:      LevelInfo,
	}

	for _, opt := range opts {
		opt(l)
	}

	out := l.Output
	l.access = l.Output
	if out == nil {
		if err := os.MkdirAll(l.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		l.file = &lumberjack.Logger{
			Filename: filepath.Join(l.OutputDir, l.AppName+".log"),
			MaxSize:  l.MaxSizeMB,
			MaxAge:   l.MaxAgeDays,
			Compress: true,
		}
		out = io.MultiWriter(os.Stdout, l.file)
		l.access = &lumberjack.Logger{
			Filename: filepath.Join(l.OutputDir, l.AppName+"-access.log"),
			MaxSize:  l.MaxSizeMB,
			MaxAge:   l.MaxAgeDays,
			Compress: true,
		}
	}

	level, err := logrus.ParseLevel(string(l.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	l.Log = logrus.New()
	l.Log.SetOutput(out)
	l.Log.SetLevel(level)
	l.Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: l.TimeFormat})

	return l, nil
}

// Nop returns a logger that discards everything, handy in tests.
func Nop() *Logger {
	l, _ := NewLogger(WithOutput(io.Discard))
	return l
}

// Middleware logs one line per request once the handler chain has finished.
func (l *Logger) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		b := l.Info(c.UserContext())
		if status >= fiber.StatusInternalServerError {
			b = l.Error(c.UserContext())
		}
		b.WithFields(
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
		).Logs("request handled")
		return err
	}
}

// SetupRoutesContext adds request ID and user ID to the context.
func SetupRoutesContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	reqID := c.Get(fiber.HeaderXRequestID)
	if reqID == "" {
		reqID = fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	ctx = context.WithValue(ctx, RequestIDKey, reqID)

	if userID, ok := c.Locals("user_id").(fmt.Stringer); ok {
		ctx = context.WithValue(ctx, UserIDKey, userID.String())
	}

	return ctx
}

// SetupLogger stores the logger in fiber locals and seeds the request context.
func SetupLogger(l *Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("logger", l)
		c.SetUserContext(SetupRoutesContext(c))
		return c.Next()
	}
}

// Printf lets the logger back gorm's SQL logger.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Log.Infof(format, args...)
}

// AccessLog returns fiber's access logger writing one plain line per
// request to the access log file.
func (l *Logger) AccessLog() fiber.Handler {
	return fiblog.New(fiblog.Config{
		Format:     "${time} ${ip} ${status} ${method} ${path} ${latency}\n",
		TimeFormat: l.TimeFormat,
		Output:     l.access,
	})
}

// Close flushes and closes the rotating files, if any.
func (l *Logger) Close() error {
	if c, ok := l.access.(io.Closer); ok && l.file != nil {
		if err := c.Close(); err != nil {
			return err
		}
	}
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
