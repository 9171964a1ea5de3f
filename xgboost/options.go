package xgboost

import (
	"github.com/YuminosukeSato/xgbleaf/pkg/log"
)

type loadConfig struct {
	logger log.Logger
	strict bool
}

func newLoadConfig(opts []Option) loadConfig {
	cfg := loadConfig{logger: log.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.logger = log.OrNop(cfg.logger)
	return cfg
}

// Option configures Load, LoadPrefix and LoadFile.
type Option func(*loadConfig)

// WithLogger sets the logger used while decoding and, afterwards, by the
// Model's traversal. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithStrict makes Load reject buffers with bytes left after the last tree.
func WithStrict(strict bool) Option {
	return func(c *loadConfig) {
		c.strict = strict
	}
}
