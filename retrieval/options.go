package retrieval

import (
	"fmt"
	"log/slog"
)

// DefaultSpellThreshold is the minimum token-sort ratio for spell correction.
const DefaultSpellThreshold = 80.0

// DefaultTopK is used when a caller passes a non-positive top-k.
const DefaultTopK = 5

type config struct {
	logger         *slog.Logger
	spellThreshold float64
}

func newConfig(component string, opts []Option) (*config, error) {
	c := &config{
		logger:         slog.Default(),
		spellThreshold: DefaultSpellThreshold,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", component)
	return c, nil
}

// Option configures the oracles in this package.
type Option func(*config) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithSpellThreshold sets the minimum token-sort ratio a spelling
// correction must reach. Default is DefaultSpellThreshold.
func WithSpellThreshold(threshold float64) Option {
	return func(c *config) error {
		if threshold <= 0 || threshold > 100 {
			return fmt.Errorf("%w: spell threshold must be in (0, 100], got %v", ErrInvalidOption, threshold)
		}
		c.spellThreshold = threshold
		return nil
	}
}
