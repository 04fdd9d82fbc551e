package model

import "github.com/kilianp07/vrptw/core/geometry"

// Vehicle serves an ordered route starting and ending at its depot.
// Capacity and Depot never change once the vehicle is created.
type Vehicle struct {
	Index    int
	Capacity int
	Depot    geometry.Location
	Route    []*Customer
}

// NewVehicle returns a vehicle with an empty route.
func NewVehicle(index, capacity int, depot geometry.Location) *Vehicle {
	return &Vehicle{Index: index, Capacity: capacity, Depot: depot}
}

// Load returns the summed demand of the route.
func (v *Vehicle) Load() int {
	total := 0
	for _, c := range v.Route {
		total += c.Demand
	}
	return total
}

// CanAdd returns true if the customer's demand still fits.
func (v *Vehicle) CanAdd(c *Customer) bool {
	return v.Load()+c.Demand <= v.Capacity
}

// WithinCapacity reports whether the route respects the capacity.
func (v *Vehicle) WithinCapacity() bool { return v.Load() <= v.Capacity }

// Append adds the customer at the end of the route.
func (v *Vehicle) Append(c *Customer) { v.Route = append(v.Route, c) }

// Last returns the final customer of the route or nil when it is empty.
func (v *Vehicle) Last() *Customer {
	if len(v.Route) == 0 {
		return nil
	}
	return v.Route[len(v.Route)-1]
}

// Clone copies the route container. Customers are shared.
func (v *Vehicle) Clone() *Vehicle {
	cp := *v
	cp.Route = make([]*Customer, len(v.Route))
	copy(cp.Route, v.Route)
	return &cp
}

// Validate checks that the vehicle configuration is sound.
func (v *Vehicle) Validate() error {
	if v.Capacity <= 0 {
		return invalidf("vehicle %d: capacity must be positive, got %d", v.Index, v.Capacity)
	}
	return nil
}
