package construct

import (
	"fmt"

	"github.com/kilianp07/vrptw/core/model"
)

// Config defines construction settings.
type Config struct {
	// ETA selects the arrival estimator: "latest_window" or "cumulative".
	ETA string `json:"eta"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ETA == "" {
		c.ETA = ETALatestWindow
	}
}

// Validate checks the estimator name.
func (c Config) Validate() error {
	if c.ETA != ETALatestWindow && c.ETA != ETACumulative {
		return fmt.Errorf("%w: construct.eta must be %q or %q, got %q", model.ErrInvalidConfiguration, ETALatestWindow, ETACumulative, c.ETA)
	}
	return nil
}
