package search

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/kilianp07/vrptw/core/model"
	"github.com/kilianp07/vrptw/core/neighborhood"
)

const (
	// TimeWindowsStrict rejects candidates where a customer is reached after
	// its latest time.
	TimeWindowsStrict = "strict"
	// TimeWindowsRelaxed only checks capacity.
	TimeWindowsRelaxed = "relaxed"
)

// Config defines tabu search settings.
type Config struct {
	MaxIterations int           `json:"max_iterations"`
	TabuCapacity  int           `json:"tabu_capacity"`
	Workers       int           `json:"workers"`
	TimeLimit     time.Duration `json:"time_limit"`
	Neighborhood  string        `json:"neighborhood"`
	Seed          int64         `json:"seed"`
	TimeWindows   string        `json:"time_windows"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.TabuCapacity == 0 {
		c.TabuCapacity = 25
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Neighborhood == "" {
		c.Neighborhood = neighborhood.StrategyExhaustive
	}
	if c.TimeWindows == "" {
		c.TimeWindows = TimeWindowsStrict
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("%w: search.max_iterations must be positive, got %d", model.ErrInvalidConfiguration, c.MaxIterations))
	}
	if c.TabuCapacity <= 0 {
		errs = append(errs, fmt.Errorf("%w: search.tabu_capacity must be positive, got %d", model.ErrInvalidConfiguration, c.TabuCapacity))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: search.workers must not be negative, got %d", model.ErrInvalidConfiguration, c.Workers))
	}
	if c.TimeLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: search.time_limit must not be negative", model.ErrInvalidConfiguration))
	}
	if c.TimeWindows != TimeWindowsStrict && c.TimeWindows != TimeWindowsRelaxed {
		errs = append(errs, fmt.Errorf("%w: search.time_windows must be %q or %q, got %q", model.ErrInvalidConfiguration, TimeWindowsStrict, TimeWindowsRelaxed, c.TimeWindows))
	}
	if _, err := neighborhood.New(c.Neighborhood, c.Seed); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
