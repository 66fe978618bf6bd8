package logger

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/launchboard/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	logger atomic.Pointer[zap.Logger] // Swapped by SetDestination while other goroutines log.
	level  zap.AtomicLevel

	mu   sync.Mutex // guards file
	file *os.File   // log file opened by SetDestination, closed on the next swap
}

func newZapLogger(l *zap.Logger, level zap.AtomicLevel) *ZapLogger {
	z := &ZapLogger{level: level}
	z.logger.Store(l)
	return z
}

// NewZapLogger creates a production zap logger writing JSON to stderr.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return newZapLogger(newZap(level, zapcore.Lock(os.Stderr)), level)
}

// New wraps an existing zap logger. The level set through SetLevel is applied
// on top of the level of l.
func New(l *zap.Logger) contracts.Logger {
	return newZapLogger(l.WithOptions(zap.AddCaller(), zap.AddCallerSkip(2)), zap.NewAtomicLevelAt(zapcore.InfoLevel))
}

// NewNop returns a logger that discards everything.
func NewNop() contracts.Logger {
	return newZapLogger(zap.NewNop(), zap.NewAtomicLevel())
}

func newZap(level zap.AtomicLevel, sink zapcore.WriteSyncer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
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

// log writes msg when level is enabled. Fatal entries terminate the process once written.
func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if !z.level.Enabled(level) {
		return
	}
	if ce := z.logger.Load().Check(level, msg); ce != nil {
		ce.Write(toZap(fields)...)
	}
}

// Field returns a field factory.
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel sets the minimum level that is written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(zapLevel(level))
}

// SetDestination redirects the output to the console or to a file.
// FileLog requires a file path; the file is opened in append mode.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) error {
	var (
		sink zapcore.WriteSyncer
		file *os.File
	)
	switch dest {
	case contracts.ConsoleLog:
		sink = zapcore.Lock(os.Stderr)
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			return fmt.Errorf("log destination %q requires a file path", dest)
		}
		f, err := os.OpenFile(filePath[0], os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		sink, file = zapcore.Lock(f), f
	default:
		return fmt.Errorf("unsupported log destination %q", dest)
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	prev := z.logger.Swap(newZap(z.level, sink))
	_ = prev.Sync()
	if z.file != nil {
		if err := z.file.Close(); err != nil {
			z.file = file
			return fmt.Errorf("close previous log file: %w", err)
		}
	}
	z.file = file
	return nil
}

func zapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZap(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(zapField); ok && f.field.Key != "" {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	field zap.Field
}

func (zapField) Bool(key string, val bool) contracts.Field {
	return zapField{zap.Bool(key, val)}
}

func (zapField) Int(key string, val int) contracts.Field {
	return zapField{zap.Int(key, val)}
}

func (zapField) Float64(key string, val float64) contracts.Field {
	return zapField{zap.Float64(key, val)}
}

func (zapField) String(key string, val string) contracts.Field {
	return zapField{zap.String(key, val)}
}

func (zapField) Time(key string, val time.Time) contracts.Field {
	return zapField{zap.Time(key, val)}
}

func (zapField) Duration(key string, val time.Duration) contracts.Field {
	return zapField{zap.Duration(key, val)}
}

func (zapField) Int64(key string, val int64) contracts.Field {
	return zapField{zap.Int64(key, val)}
}

func (zapField) Error(key string, val error) contracts.Field {
	return zapField{zap.NamedError(key, val)}
}

func (zapField) Uint64(key string, val uint64) contracts.Field {
	return zapField{zap.Uint64(key, val)}
}

func (zapField) Uint8(key string, val uint8) contracts.Field {
	return zapField{zap.Uint8(key, val)}
}

func (zapField) Stringer(key string, val interface{ String() string }) contracts.Field {
	return zapField{zap.Stringer(key, val)}
}
