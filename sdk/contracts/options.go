package contracts

// DefaultDevicePath is where Linux exposes the first raw MIDI device of a Launch board.
const DefaultDevicePath = "/dev/midi2"

// BoardOptions defines the configuration options for a board.
type BoardOptions struct {
	Logger     Logger   // Logger for lifecycle events and errors.
	LogLevel   LogLevel // Level of logging to use.
	DevicePath string   // DevicePath is handed to Opener when the board starts.
	Opener     Opener   // Opener opens the device; defaults to the raw device port.
	Lights     []byte   // Lights are switched off, in order, before the reader starts.
	Tracer     Tracer   // Optional tracer receiving every raw frame read or written.
}

// Option is a function that modifies BoardOptions.
type Option func(*BoardOptions)

// WithLogger sets the logger for the board.
func WithLogger(l Logger) Option {
	return func(opts *BoardOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the board.
func WithLogLevel(level LogLevel) Option {
	return func(opts *BoardOptions) {
		opts.LogLevel = level
	}
}

// WithDevicePath sets the device path opened by Run.
func WithDevicePath(path string) Option {
	return func(opts *BoardOptions) {
		opts.DevicePath = path
	}
}

// WithOpener replaces the function used to open the device path.
func WithOpener(open Opener) Option {
	return func(opts *BoardOptions) {
		opts.Opener = open
	}
}

// WithLights declares the light addresses switched off at startup.
func WithLights(ids ...byte) Option {
	return func(opts *BoardOptions) {
		opts.Lights = append([]byte(nil), ids...)
	}
}

// WithTracer attaches a protocol tracer.
func WithTracer(t Tracer) Option {
	return func(opts *BoardOptions) {
		opts.Tracer = t
	}
}
