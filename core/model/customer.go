package model

import "github.com/kilianp07/vrptw/core/geometry"

// TimeWindow is the closed interval in which service may start.
type TimeWindow struct {
	Earliest int
	Latest   int
}

// Contains reports whether t lies within the window.
func (w TimeWindow) Contains(t int) bool { return t >= w.Earliest && t <= w.Latest }

// Customer is a delivery stop. Customers are created once per instance and
// shared by pointer between solutions; only the constructive solver sets
// Visited.
type Customer struct {
	ID              int
	Demand          int
	Window          TimeWindow
	ServiceDuration int
	Location        geometry.Location
	Visited         bool
}

// Validate checks the customer record.
func (c *Customer) Validate() error {
	if c.Demand < 0 {
		return invalidf("customer %d: negative demand %d", c.ID, c.Demand)
	}
	if c.ServiceDuration < 0 {
		return invalidf("customer %d: negative service duration %d", c.ID, c.ServiceDuration)
	}
	if c.Window.Earliest > c.Window.Latest {
		return invalidf("customer %d: earliest %d after latest %d", c.ID, c.Window.Earliest, c.Window.Latest)
	}
	return nil
}
