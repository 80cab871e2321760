package dispatcher

// Config controls how a Dispatcher runs actions.
type Config struct {
	// EnableMetrics collects per-action statistics; see Metrics.
	EnableMetrics bool

	// RecoverFromPanic turns a handler panic into an ErrPanic result.
	RecoverFromPanic bool

	// MaxRepeatCount caps action counts. Zero leaves them uncapped.
	MaxRepeatCount int

	// ReadOnly makes every editing action fail with execctx.ErrReadOnly.
	ReadOnly bool
}

// DefaultRepeatCap is the count cap of DefaultConfig.
const DefaultRepeatCap = 1000

// DefaultConfig recovers from panics and caps counts at DefaultRepeatCap.
func DefaultConfig() Config {
	return Config{RecoverFromPanic: true, MaxRepeatCount: DefaultRepeatCap}
}

// WithMetrics returns c with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithMaxRepeatCount returns c with the count cap set to n.
func (c Config) WithMaxRepeatCount(n int) Config {
	c.MaxRepeatCount = n
	return c
}

// WithReadOnly returns c with ReadOnly set.
func (c Config) WithReadOnly(readOnly bool) Config {
	c.ReadOnly = readOnly
	return c
}
