package model

import (
	"errors"

	"github.com/kilianp07/vrptw/core/geometry"
)

// FleetSpec describes a homogeneous fleet sharing one depot.
type FleetSpec struct {
	Count    int               `json:"count" yaml:"count"`
	Capacity int               `json:"capacity" yaml:"capacity"`
	Depot    geometry.Location `json:"depot" yaml:"depot"`
}

// Instance is a complete problem: the customers to serve and the fleet.
type Instance struct {
	Name      string
	Customers []*Customer
	Fleet     FleetSpec
}

// Validate rejects instances that cannot be solved. All problems are
// reported at once; each wraps ErrInvalidConfiguration.
func (in *Instance) Validate() error {
	var errs []error
	if in.Fleet.Count <= 0 {
		errs = append(errs, invalidf("fleet must contain at least one vehicle, got %d", in.Fleet.Count))
	}
	if in.Fleet.Capacity <= 0 {
		errs = append(errs, invalidf("vehicle capacity must be positive, got %d", in.Fleet.Capacity))
	}
	seen := make(map[int]struct{}, len(in.Customers))
	for _, c := range in.Customers {
		if c == nil {
			errs = append(errs, invalidf("nil customer"))
			continue
		}
		if _, ok := seen[c.ID]; ok {
			errs = append(errs, invalidf("duplicate customer id %d", c.ID))
		}
		seen[c.ID] = struct{}{}
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewVehicles builds the fleet with empty routes.
func (in *Instance) NewVehicles() []*Vehicle {
	vs := make([]*Vehicle, in.Fleet.Count)
	for i := range vs {
		vs[i] = NewVehicle(i, in.Fleet.Capacity, in.Fleet.Depot)
	}
	return vs
}

// Locations returns the depot followed by every customer location.
func (in *Instance) Locations() []geometry.Location {
	pts := make([]geometry.Location, 0, len(in.Customers)+1)
	pts = append(pts, in.Fleet.Depot)
	for _, c := range in.Customers {
		pts = append(pts, c.Location)
	}
	return pts
}

// Reset clears the visited flags so the instance can be solved again.
func (in *Instance) Reset() {
	for _, c := range in.Customers {
		c.Visited = false
	}
}
