package contracts

import "time"

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	// DebugLevel indicates debug messages, such as every dispatched MIDI message.
	DebugLevel LogLevel = iota - 1
	// InfoLevel indicates informational messages that highlight the progress of the board.
	InfoLevel
	// WarnLevel indicates potentially harmful situations that should be monitored.
	WarnLevel
	// ErrorLevel indicates error messages, such as a failing handler or device.
	ErrorLevel
	// FatalLevel indicates very severe error events that will presumably lead the application to abort.
	FatalLevel
)

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	default:
		return "unknown"
	}
}

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog directs log messages to the console output.
	ConsoleLog LogDestination = "console"
	// FileLog directs log messages to a file.
	FileLog LogDestination = "file"
)

// Field is a typed key/value pair attached to a log entry.
// Builder methods return a new Field; the receiver is only used as a factory.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Duration(key string, val time.Duration) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
	Stringer(key string, val interface{ String() string }) Field
}

// Logger provides methods for logging messages at different levels.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string) error
}
