package neighborhood

import (
	"fmt"

	"github.com/kilianp07/vrptw/core/model"
)

const (
	StrategyExhaustive = "exhaustive"
	StrategyRandomPair = "random_pair"
)

// New returns the generator registered under name. The seed is only used by
// sampling strategies.
func New(name string, seed int64) (Generator, error) {
	switch name {
	case "", StrategyExhaustive:
		return Exhaustive{}, nil
	case StrategyRandomPair:
		return NewRandomPair(seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown neighborhood strategy %q", model.ErrInvalidConfiguration, name)
	}
}
