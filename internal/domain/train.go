package domain

import "fmt"

// TrainState tags a TrainStatus.
type TrainState int

const (
	TrainStopped TrainState = iota
	TrainEnRoute
)

// TrainStatus is a tagged status value. Exactly one state applies at any
// instant; the fields that matter depend on the tag.
type TrainStatus struct {
	State TrainState

	// Station is set while stopped.
	Station string

	// Origin, Destination and Remaining are set while en route.
	Origin      string
	Destination string
	Remaining   Minutes
}

// StoppedAt builds a stopped status.
func StoppedAt(station string) TrainStatus {
	return TrainStatus{State: TrainStopped, Station: station}
}

// EnRouteTo builds an en-route status.
func EnRouteTo(origin, destination string, remaining Minutes) TrainStatus {
	return TrainStatus{
		State:       TrainEnRoute,
		Origin:      origin,
		Destination: destination,
		Remaining:   remaining,
	}
}

// Train is a capacity-limited carrier. Load never exceeds Capacity.
type Train struct {
	ID       string
	Capacity Kilograms
	Load     Kilograms
	Status   TrainStatus
}

// SpareCapacity returns the weight the train can still take on.
func (t *Train) SpareCapacity() Kilograms {
	return t.Capacity - t.Load
}

// Arrival is reported by Elapse when an en-route train reaches its
// destination.
type Arrival struct {
	TrainID string
	Station string
}

// TrainRegistry owns train state and status transitions. Trains are kept in
// registration order; heuristics that scan them depend on first-registered
// winning ties.
type TrainRegistry struct {
	trains []*Train
	index  map[string]*Train
}

func NewTrainRegistry() *TrainRegistry {
	return &TrainRegistry{index: make(map[string]*Train)}
}

// Add registers a train stopped at its initial location.
func (r *TrainRegistry) Add(id string, capacity Kilograms, location string) error {
	if _, ok := r.index[id]; ok {
		return fmt.Errorf("add train %q: %w", id, ErrDuplicateTrain)
	}

	tr := &Train{ID: id, Capacity: capacity, Status: StoppedAt(location)}
	r.trains = append(r.trains, tr)
	r.index[id] = tr
	return nil
}

// Get returns the train with the given id.
func (r *TrainRegistry) Get(id string) (*Train, bool) {
	tr, ok := r.index[id]
	return tr, ok
}

// All returns every train in registration order.
func (r *TrainRegistry) All() []*Train {
	return r.trains
}

// ListStoppedAt returns the trains currently stopped at a station.
func (r *TrainRegistry) ListStoppedAt(station string) []*Train {
	var out []*Train
	for _, tr := range r.trains {
		if tr.Status.State == TrainStopped && tr.Status.Station == station {
			out = append(out, tr)
		}
	}
	return out
}

// LargestStoppedAt returns the stopped train at the station with the
// greatest capacity. The current best is replaced only on strictly greater
// capacity, so the first-registered train wins ties.
func (r *TrainRegistry) LargestStoppedAt(station string) (*Train, bool) {
	var best *Train
	for _, tr := range r.ListStoppedAt(station) {
		if best == nil || tr.Capacity > best.Capacity {
			best = tr
		}
	}
	return best, best != nil
}

// MaxCapacity returns the largest capacity in the fleet.
func (r *TrainRegistry) MaxCapacity() (Kilograms, bool) {
	var max Kilograms
	for _, tr := range r.trains {
		if tr.Capacity > max {
			max = tr.Capacity
		}
	}
	return max, len(r.trains) > 0
}

// Load adds weight to a train if it fits and reports whether it did.
// A failed load is a no-op, not an error: callers are expected to re-check
// the outcome and skip the package.
func (r *TrainRegistry) Load(id string, weight Kilograms) bool {
	tr, ok := r.index[id]
	if !ok || weight > tr.SpareCapacity() {
		return false
	}
	tr.Load += weight
	return true
}

// Unload removes weight from a train after its packages are dropped off.
func (r *TrainRegistry) Unload(id string, weight Kilograms) {
	tr, ok := r.index[id]
	if !ok {
		return
	}
	if weight > tr.Load {
		weight = tr.Load
	}
	tr.Load -= weight
}

// Depart transitions a train to en route.
func (r *TrainRegistry) Depart(id, from, to string, travelTime Minutes) {
	tr, ok := r.index[id]
	if !ok {
		return
	}
	tr.Status = EnRouteTo(from, to, travelTime)
}

// Elapse advances every en-route train by the given duration. Trains whose
// remaining time reaches zero stop at their destination and are reported as
// arrivals, in registration order.
func (r *TrainRegistry) Elapse(d Minutes) []Arrival {
	var arrivals []Arrival
	for _, tr := range r.trains {
		if tr.Status.State != TrainEnRoute {
			continue
		}
		if d >= tr.Status.Remaining {
			dest := tr.Status.Destination
			tr.Status = StoppedAt(dest)
			arrivals = append(arrivals, Arrival{TrainID: tr.ID, Station: dest})
			continue
		}
		tr.Status.Remaining -= d
	}
	return arrivals
}

// MinRemaining returns the smallest remaining travel time among en-route
// trains; ok is false when no train is moving.
func (r *TrainRegistry) MinRemaining() (Minutes, bool) {
	var min Minutes
	found := false
	for _, tr := range r.trains {
		if tr.Status.State != TrainEnRoute {
			continue
		}
		if !found || tr.Status.Remaining < min {
			min = tr.Status.Remaining
			found = true
		}
	}
	return min, found
}
