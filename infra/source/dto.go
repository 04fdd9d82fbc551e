package source

import (
	"github.com/kilianp07/vrptw/core/geometry"
	"github.com/kilianp07/vrptw/core/model"
)

// CustomerDef is the on-disk customer record.
type CustomerDef struct {
	ID              int `yaml:"id" json:"id"`
	Demand          int `yaml:"demand" json:"demand"`
	Earliest        int `yaml:"earliest" json:"earliest"`
	Latest          int `yaml:"latest" json:"latest"`
	ServiceDuration int `yaml:"service_duration" json:"service_duration"`
	X               int `yaml:"x" json:"x"`
	Y               int `yaml:"y" json:"y"`
}

func (c CustomerDef) ToModel() *model.Customer {
	return &model.Customer{
		ID:              c.ID,
		Demand:          c.Demand,
		Window:          model.TimeWindow{Earliest: c.Earliest, Latest: c.Latest},
		ServiceDuration: c.ServiceDuration,
		Location:        geometry.Location{X: c.X, Y: c.Y},
	}
}

// FleetDef is the on-disk fleet record.
type FleetDef struct {
	Count    int `yaml:"count" json:"count"`
	Capacity int `yaml:"capacity" json:"capacity"`
	DepotX   int `yaml:"depot_x" json:"depot_x"`
	DepotY   int `yaml:"depot_y" json:"depot_y"`
}

func (f FleetDef) ToModel() model.FleetSpec {
	return model.FleetSpec{
		Count:    f.Count,
		Capacity: f.Capacity,
		Depot:    geometry.Location{X: f.DepotX, Y: f.DepotY},
	}
}

// InstanceDef is a complete instance file.
type InstanceDef struct {
	Name      string        `yaml:"name" json:"name"`
	Fleet     FleetDef      `yaml:"fleet" json:"fleet"`
	Customers []CustomerDef `yaml:"customers" json:"customers"`
}

func (d InstanceDef) ToModel() *model.Instance {
	in := &model.Instance{
		Name:      d.Name,
		Fleet:     d.Fleet.ToModel(),
		Customers: make([]*model.Customer, len(d.Customers)),
	}
	for i, c := range d.Customers {
		in.Customers[i] = c.ToModel()
	}
	return in
}
