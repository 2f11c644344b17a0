package domain

import "fmt"

// PackageState tags a PackageStatus.
type PackageState int

const (
	AwaitingPickup PackageState = iota
	InTransit
	Delivered
	Completed
	Unroutable
)

// PackageStatus is a tagged status value carrying the station or train the
// state refers to. Exactly one state applies at any instant.
type PackageStatus struct {
	State PackageState

	// Station is set while awaiting pickup or unroutable.
	Station string

	// Train is set while in transit and kept on delivery so the report can
	// attribute the drop-off.
	Train string
}

// Package is a delivery unit with a fixed weight and destination. Its
// position is carried entirely by its status.
type Package struct {
	ID          string
	Weight      Kilograms
	Destination string
	Status      PackageStatus
}

// PackageRegistry owns package state and status transitions, in
// registration order.
type PackageRegistry struct {
	packages []*Package
	index    map[string]*Package
}

func NewPackageRegistry() *PackageRegistry {
	return &PackageRegistry{index: make(map[string]*Package)}
}

// Add registers a package awaiting pickup at its origin. A package whose
// origin is already its destination needs no carriage and is completed
// immediately.
func (r *PackageRegistry) Add(id string, weight Kilograms, origin, destination string) error {
	if _, ok := r.index[id]; ok {
		return fmt.Errorf("add package %q: %w", id, ErrDuplicatePackage)
	}

	status := PackageStatus{State: AwaitingPickup, Station: origin}
	if origin == destination {
		status = PackageStatus{State: Completed}
	}

	pkg := &Package{ID: id, Weight: weight, Destination: destination, Status: status}
	r.packages = append(r.packages, pkg)
	r.index[id] = pkg
	return nil
}

// Get returns the package with the given id.
func (r *PackageRegistry) Get(id string) (*Package, bool) {
	pkg, ok := r.index[id]
	return pkg, ok
}

// All returns every package in registration order.
func (r *PackageRegistry) All() []*Package {
	return r.packages
}

// ListAwaitingAt returns packages awaiting pickup at a station.
func (r *PackageRegistry) ListAwaitingAt(station string) []*Package {
	var out []*Package
	for _, pkg := range r.packages {
		if pkg.Status.State == AwaitingPickup && pkg.Status.Station == station {
			out = append(out, pkg)
		}
	}
	return out
}

// ListAwaitingAll returns every package awaiting pickup anywhere.
func (r *PackageRegistry) ListAwaitingAll() []*Package {
	var out []*Package
	for _, pkg := range r.packages {
		if pkg.Status.State == AwaitingPickup {
			out = append(out, pkg)
		}
	}
	return out
}

// ListInTransitOn returns the packages loaded on a train.
func (r *PackageRegistry) ListInTransitOn(trainID string) []*Package {
	var out []*Package
	for _, pkg := range r.packages {
		if pkg.Status.State == InTransit && pkg.Status.Train == trainID {
			out = append(out, pkg)
		}
	}
	return out
}

// ListDeliveredBy returns the packages a train delivered this tick, before
// the completion sweep clears them.
func (r *PackageRegistry) ListDeliveredBy(trainID string) []*Package {
	var out []*Package
	for _, pkg := range r.packages {
		if pkg.Status.State == Delivered && pkg.Status.Train == trainID {
			out = append(out, pkg)
		}
	}
	return out
}

// ListUnroutable returns the currently frozen packages.
func (r *PackageRegistry) ListUnroutable() []*Package {
	var out []*Package
	for _, pkg := range r.packages {
		if pkg.Status.State == Unroutable {
			out = append(out, pkg)
		}
	}
	return out
}

// MarkLoaded transitions an awaiting package onto a train.
func (r *PackageRegistry) MarkLoaded(id, trainID string) {
	pkg, ok := r.index[id]
	if !ok || pkg.Status.State != AwaitingPickup {
		return
	}
	pkg.Status = PackageStatus{State: InTransit, Train: trainID}
}

// MarkArrived records a package coming off a train. At its destination it
// becomes delivered, attributed to the train that carried it; anywhere else
// it is redeposited awaiting pickup.
func (r *PackageRegistry) MarkArrived(id, station string) {
	pkg, ok := r.index[id]
	if !ok || pkg.Status.State != InTransit {
		return
	}
	if station == pkg.Destination {
		pkg.Status = PackageStatus{State: Delivered, Train: pkg.Status.Train}
		return
	}
	pkg.Status = PackageStatus{State: AwaitingPickup, Station: station}
}

// MarkUnroutable freezes an awaiting package in place.
func (r *PackageRegistry) MarkUnroutable(id string) {
	pkg, ok := r.index[id]
	if !ok || pkg.Status.State != AwaitingPickup {
		return
	}
	pkg.Status = PackageStatus{State: Unroutable, Station: pkg.Status.Station}
}

// MarkReroutable thaws a frozen package back to awaiting pickup at the
// station it was frozen at.
func (r *PackageRegistry) MarkReroutable(id string) {
	pkg, ok := r.index[id]
	if !ok || pkg.Status.State != Unroutable {
		return
	}
	pkg.Status = PackageStatus{State: AwaitingPickup, Station: pkg.Status.Station}
}

// SweepCompleted retires delivered packages, once per outer tick, after
// reporting.
func (r *PackageRegistry) SweepCompleted() {
	for _, pkg := range r.packages {
		if pkg.Status.State == Delivered {
			pkg.Status = PackageStatus{State: Completed}
		}
	}
}

// HasOutstanding reports whether any package still needs carriage. Frozen
// packages are excluded; they cannot make progress until the fleet changes.
func (r *PackageRegistry) HasOutstanding() bool {
	for _, pkg := range r.packages {
		switch pkg.Status.State {
		case AwaitingPickup, InTransit:
			return true
		}
	}
	return false
}
