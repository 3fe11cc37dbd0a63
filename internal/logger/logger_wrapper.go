package logger

import (
	"time"

	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
	config zap.Config
}

// NewZapLogger creates a logger writing console-encoded entries to stderr.
func NewZapLogger() contracts.Logger {
	config := zap.NewDevelopmentConfig()
	config.Development = false
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	z := &ZapLogger{level: config.Level, config: config}
	z.logger = z.build()
	return z
}

// build creates the zap logger; a broken configuration yields a no-op logger.
func (z *ZapLogger) build() *zap.Logger {
	logger, err := z.config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns a new instance of Field
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the logging level
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(toZapLevel(level))
}

// SetDestination sends the output to the console, or to filePath[0] for FileLog.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	switch {
	case dest == contracts.FileLog && len(filePath) > 0:
		z.config.OutputPaths = []string{filePath[0]}
	default:
		z.config.OutputPaths = []string{"stderr"}
	}
	_ = z.logger.Sync()
	z.logger = z.build()
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}

// log is the internal function every level goes through
func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	ce := z.logger.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(toZapFields(fields...)...)
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	}
	return zapcore.InfoLevel
}

// toZapFields unwraps fields created by a ZapLogger; others are ignored.
func toZapFields(fields ...contracts.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok && f.set {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	field zap.Field
	set   bool
}

func newField(f zap.Field) contracts.Field {
	return &zapField{field: f, set: true}
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return newField(zap.Bool(key, val))
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return newField(zap.Int(key, val))
}

func (f *zapField) Float64(key string, val float64) contracts.Field {
	return newField(zap.Float64(key, val))
}

func (f *zapField) String(key string, val string) contracts.Field {
	return newField(zap.String(key, val))
}

func (f *zapField) Time(key string, val time.Time) contracts.Field {
	return newField(zap.Time(key, val))
}

func (f *zapField) Int64(key string, val int64) contracts.Field {
	return newField(zap.Int64(key, val))
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return newField(zap.NamedError(key, val))
}

func (f *zapField) Uint64(key string, val uint64) contracts.Field {
	return newField(zap.Uint64(key, val))
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return newField(zap.Uint8(key, val))
}
