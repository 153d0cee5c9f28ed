package engine

import (
	"github.com/dshills/mathmark/internal/engine/history"
	"github.com/dshills/mathmark/internal/logging"
)

// DefaultHistoryLimit is the number of undo steps kept.
const DefaultHistoryLimit = history.DefaultMaxEntries

// Option configures a Machine or an Editor.
type Option func(*config)

type config struct {
	historyLimit int
	normalize    bool
	content      string
	logger       *logging.Logger
	listeners    []Listener
}

func newConfig(opts []Option) config {
	cfg := config{
		historyLimit: DefaultHistoryLimit,
		normalize:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithHistoryLimit sets the maximum number of undo steps.
func WithHistoryLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// WithNormalization turns the separation of touching math regions on or
// off. It is on by default.
func WithNormalization(enabled bool) Option {
	return func(c *config) {
		c.normalize = enabled
	}
}

// WithContent sets the initial content of an Editor.
func WithContent(content string) Option {
	return func(c *config) {
		c.content = content
	}
}

// WithLogger sets the Editor's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithListener registers a listener on the Editor.
func WithListener(l Listener) Option {
	return func(c *config) {
		if l != nil {
			c.listeners = append(c.listeners, l)
		}
	}
}
