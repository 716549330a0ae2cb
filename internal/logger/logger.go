// Package logger provides structured, leveled logging using Zap.
//
// Records are JSON objects carrying a timestamp, level, message, a metadata
// object with the call-site fields, and the service/environment defaults.
// File output is split into a combined stream (info and above) and an
// error-only stream, both rotated by lumberjack.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a log severity. Lower values are more severe.
type Level int8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelHTTP
	LevelDebug
)

// zap has no slot between info and debug, so http takes zap's debug and
// debug moves one step below it.
const zapDebugLevel = zapcore.DebugLevel - 1

var levelNames = [...]string{"error", "warn", "info", "http", "debug"}

// String returns the lowercase level name.
func (l Level) String() string {
	if l < LevelError || l > LevelDebug {
		return fmt.Sprintf("level(%d)", int8(l))
	}
	return levelNames[l]
}

// ParseLevel converts a level name into a Level.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelError:
		return zapcore.ErrorLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelHTTP:
		return zapcore.DebugLevel
	default:
		return zapDebugLevel
	}
}

func fromZapLevel(z zapcore.Level) Level {
	switch {
	case z >= zapcore.ErrorLevel:
		return LevelError
	case z == zapcore.WarnLevel:
		return LevelWarn
	case z == zapcore.InfoLevel:
		return LevelInfo
	case z == zapcore.DebugLevel:
		return LevelHTTP
	default:
		return LevelDebug
	}
}

func encodeLevel(z zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fromZapLevel(z).String())
}

// enabledUpTo returns an enabler admitting every level at least as severe as max.
func enabledUpTo(max Level) zap.LevelEnablerFunc {
	threshold := max.zapLevel()
	return func(z zapcore.Level) bool { return z >= threshold }
}

// Options configures a file-backed Logger.
type Options struct {
	Dir         string
	Level       Level
	Service     string
	Environment string
	// Console tees a human-readable stream to stderr.
	Console bool

	MaxSizeMB  int
	MaxAgeDays int
}

// Logger is the application's structured logger. It is safe for concurrent use.
type Logger struct {
	base    *zap.Logger
	closers []io.Closer
}

// New creates a Logger writing to rotating files under opts.Dir.
func New(opts Options) (*Logger, error) {
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = 20
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = 14
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	combined := rotatingFile(filepath.Join(opts.Dir, "combined.log"), opts)
	errorsOnly := rotatingFile(filepath.Join(opts.Dir, "error.log"), opts)

	combinedLevel := opts.Level
	if combinedLevel > LevelInfo {
		combinedLevel = LevelInfo
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(combined), enabledUpTo(combinedLevel)),
		zapcore.NewCore(encoder.Clone(), zapcore.AddSync(errorsOnly), enabledUpTo(LevelError)),
	}
	if opts.Console {
		consoleCfg := encoderConfig()
		consoleCfg.EncodeLevel = func(z zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(fromZapLevel(z).String()))
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			enabledUpTo(opts.Level),
		))
	}

	return NewFromCore(zapcore.NewTee(cores...), opts.Service, opts.Environment, combined, errorsOnly), nil
}

// NewFromCore wraps an existing zap core. The closers are closed by Close.
func NewFromCore(core zapcore.Core, service, environment string, closers ...io.Closer) *Logger {
	base := zap.New(core).With(
		zap.String("service", service),
		zap.String("environment", environment),
	)
	return &Logger{base: base, closers: closers}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zap.NewNop()}
}

func rotatingFile(path string, opts Options) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:  path,
		MaxSize:   opts.MaxSizeMB,
		MaxAge:    opts.MaxAgeDays,
		Compress:  true,
		LocalTime: true,
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

// Log writes msg at level with alternating key/value metadata.
func (l *Logger) Log(level Level, msg string, keysAndValues ...any) {
	if ce := l.base.Check(level.zapLevel(), msg); ce != nil {
		ce.Write(metadata(keysAndValues)...)
	}
}

// LogMap writes msg at level with meta as the metadata object.
func (l *Logger) LogMap(level Level, msg string, meta map[string]any) {
	ce := l.base.Check(level.zapLevel(), msg)
	if ce == nil {
		return
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.Namespace("metadata"))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, meta[k]))
	}
	ce.Write(fields...)
}

func (l *Logger) Error(msg string, keysAndValues ...any) { l.Log(LevelError, msg, keysAndValues...) }
func (l *Logger) Warn(msg string, keysAndValues ...any)  { l.Log(LevelWarn, msg, keysAndValues...) }
func (l *Logger) Info(msg string, keysAndValues ...any)  { l.Log(LevelInfo, msg, keysAndValues...) }
func (l *Logger) HTTP(msg string, keysAndValues ...any)  { l.Log(LevelHTTP, msg, keysAndValues...) }
func (l *Logger) Debug(msg string, keysAndValues ...any) { l.Log(LevelDebug, msg, keysAndValues...) }

// Enabled reports whether records at level would be written anywhere.
func (l *Logger) Enabled(level Level) bool {
	return l.base.Core().Enabled(level.zapLevel())
}

// With returns a child Logger that adds the given top-level fields to every record.
func (l *Logger) With(keysAndValues ...any) *Logger {
	fields := metadata(keysAndValues)[1:]
	return &Logger{base: l.base.With(fields...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// Close flushes and releases the underlying files. Call this before exit.
func (l *Logger) Close() error {
	_ = l.base.Sync()
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func metadata(keysAndValues []any) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2+1)
	fields = append(fields, zap.Namespace("metadata"))
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		if i+1 >= len(keysAndValues) {
			fields = append(fields, zap.Skip())
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
