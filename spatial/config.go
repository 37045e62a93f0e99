package spatial

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	// DefaultFanout is the number of items a cell holds before it subdivides.
	DefaultFanout = 5

	// DefaultMaxDepth is the depth below which cells never subdivide.
	DefaultMaxDepth = 10

	ErrTypeOutOfBounds   = "spatial_out_of_bounds"
	ErrTypeInvalidConfig = "spatial_invalid_config"
)

// Config holds the quadtree tuning parameters.
type Config struct {
	Fanout   int `json:"fanout"    yaml:"fanout"`
	MaxDepth int `json:"max_depth" yaml:"max_depth"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Fanout:   DefaultFanout,
		MaxDepth: DefaultMaxDepth,
	}
}

func (c Config) Validate() error {
	if c.Fanout < 1 {
		return errors.New("fanout must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("fanout", c.Fanout)
	}
	if c.MaxDepth < 1 {
		return errors.New("max depth must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("max_depth", c.MaxDepth)
	}
	return nil
}

// Option configures a quadtree.
type Option func(*settings)

type settings struct {
	name   string
	config Config
}

// WithConfig sets the fanout and maximum depth. Non-positive values fall back
// to the defaults.
func WithConfig(c Config) Option {
	return func(s *settings) {
		s.config = c
	}
}

// WithName sets the name used in metrics and error tags.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}
