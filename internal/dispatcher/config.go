package dispatcher

// Config holds dispatcher options.
type Config struct {
	// EnableMetrics enables per-command counters and timings.
	EnableMetrics bool

	// RecoverFromPanic turns a panicking command into a logged error
	// instead of crashing the host.
	RecoverFromPanic bool

	// InsertText inserts printable runes that no binding claims.
	InsertText bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		InsertText:       true,
	}
}

// WithMetrics returns a copy of c with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of c with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithTextInsertion returns a copy of c with text insertion set.
func (c Config) WithTextInsertion(insert bool) Config {
	c.InsertText = insert
	return c
}
