package engine

import (
	"fmt"
	"runtime"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// Config holds the settings of an Engine. It is filled by the Options passed to New.
type Config struct {
	// number of worker goroutines evaluating nodes
	NbWorkers int
	Logger    zerolog.Logger
}

// Option configures an Engine.
type Option func(*Config) error

func defaultConfig() Config {
	return Config{
		// *2 for hyperthreading opportunities
		NbWorkers: 2 * runtime.NumCPU(),
		Logger:    logger.Logger(),
	}
}

// WithNbWorkers sets the size of the worker pool.
func WithNbWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("invalid number of workers %d", n)
		}
		c.NbWorkers = n
		return nil
	}
}

// WithLogger replaces the gnark logger used by default.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}
