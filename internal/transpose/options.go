package transpose

import "github.com/dshills/transpose/internal/logging"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSurrogatePairs controls whether a surrogate pair is moved as one
// character. Enabled by default.
func WithSurrogatePairs(enabled bool) Option {
	return func(e *Engine) {
		e.surrogatePairs = enabled
	}
}

// WithLineSwap controls the column-0 behaviour of Transpose. When
// enabled (the default) the caret's line is swapped with the previous
// line. When disabled the line break and the first character of the
// line are swapped like any other pair.
func WithLineSwap(enabled bool) Option {
	return func(e *Engine) {
		e.lineSwap = enabled
	}
}

// WithMessages sets the status texts.
func WithMessages(m Messages) Option {
	return func(e *Engine) {
		e.messages = m
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
