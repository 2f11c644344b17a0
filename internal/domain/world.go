package domain

import "fmt"

// World is the owned context value every engine call receives: the network
// plus the two registries. There is no ambient global state; callers build
// a world, register entities through it, and hand it to the simulation.
type World struct {
	Network  *Network
	Trains   *TrainRegistry
	Packages *PackageRegistry
}

func NewWorld() *World {
	return &World{
		Network:  NewNetwork(),
		Trains:   NewTrainRegistry(),
		Packages: NewPackageRegistry(),
	}
}

// AddStation registers a station.
func (w *World) AddStation(name string) error {
	return w.Network.AddStation(name)
}

// AddEdge registers an undirected timed connection between two stations.
func (w *World) AddEdge(id, a, b string, travelTime Minutes) error {
	return w.Network.AddEdge(id, a, b, travelTime)
}

// AddTrain registers a train at an existing station. Growing the fleet
// re-evaluates frozen packages: any that now fit a train thaw back to
// awaiting pickup.
func (w *World) AddTrain(id string, capacity Kilograms, location string) error {
	if _, ok := w.Network.Station(location); !ok {
		return fmt.Errorf("add train %q: station %q: %w", id, location, ErrStationNotFound)
	}
	if err := w.Trains.Add(id, capacity, location); err != nil {
		return err
	}

	for _, pkg := range w.Packages.ListUnroutable() {
		if pkg.Weight <= capacity {
			w.Packages.MarkReroutable(pkg.ID)
		}
	}
	return nil
}

// AddPackage registers a package between two existing stations.
func (w *World) AddPackage(id string, weight Kilograms, origin, destination string) error {
	if _, ok := w.Network.Station(origin); !ok {
		return fmt.Errorf("add package %q: station %q: %w", id, origin, ErrStationNotFound)
	}
	if _, ok := w.Network.Station(destination); !ok {
		return fmt.Errorf("add package %q: station %q: %w", id, destination, ErrStationNotFound)
	}
	return w.Packages.Add(id, weight, origin, destination)
}
