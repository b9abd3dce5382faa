package checked

import "log/slog"

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger transitions are reported to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithName tags every log record of the machine with a shader name.
func WithName(name string) Option {
	return func(m *Machine) {
		m.name = name
	}
}
