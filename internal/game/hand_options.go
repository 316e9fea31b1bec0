package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// HandOption configures a Hand during creation or restore.
type HandOption func(*handConfig)

type handConfig struct {
	logger *log.Logger
	clock  quartz.Clock
}

func newHandConfig(opts []HandOption) *handConfig {
	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	return cfg
}

// WithLogger sets the logger used for debug events. Hands are silent by default.
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp the action log.
func WithClock(clock quartz.Clock) HandOption {
	return func(c *handConfig) {
		c.clock = clock
	}
}
