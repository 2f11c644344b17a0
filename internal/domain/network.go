package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Edge is one direction of an undirected connection between two stations.
// The network stores one Edge per direction; both carry the same id and
// travel time.
type Edge struct {
	ID         string
	To         string
	TravelTime Minutes
}

// Station is a node in the delivery network with its adjacency list in
// edge-registration order.
type Station struct {
	Name  string
	Edges []Edge
}

func (s *Station) findEdgeByID(id string) bool {
	for _, e := range s.Edges {
		if e.ID == id {
			return true
		}
	}
	return false
}

// FindEdgeTo returns the edge from this station to the named neighbor.
func (s *Station) FindEdgeTo(neighbor string) (Edge, bool) {
	for _, e := range s.Edges {
		if e.To == neighbor {
			return e, true
		}
	}
	return Edge{}, false
}

// Network holds stations and their undirected timed edges. It is read-only
// from the planner's and advisor's perspective; only registration mutates it.
//
// Stations are kept in registration order because several dispatch
// heuristics depend on first-registered-wins iteration, with a name index
// on the side for lookups.
type Network struct {
	stations []*Station
	index    map[string]*Station
}

func NewNetwork() *Network {
	return &Network{index: make(map[string]*Station)}
}

// AddStation registers a new station name.
func (n *Network) AddStation(name string) error {
	if _, ok := n.index[name]; ok {
		return fmt.Errorf("add station %q: %w", name, ErrDuplicateStation)
	}

	st := &Station{Name: name}
	n.stations = append(n.stations, st)
	n.index[name] = st
	return nil
}

// AddEdge registers an undirected connection between two existing stations,
// stored symmetrically as one entry per direction. Edge ids must be unique
// per station.
func (n *Network) AddEdge(id, a, b string, travelTime Minutes) error {
	sa, ok := n.index[a]
	if !ok {
		return fmt.Errorf("add edge %q: station %q: %w", id, a, ErrStationNotFound)
	}
	sb, ok := n.index[b]
	if !ok {
		return fmt.Errorf("add edge %q: station %q: %w", id, b, ErrStationNotFound)
	}
	if sa == sb {
		return fmt.Errorf("add edge %q: %w", id, ErrSameStation)
	}
	if sa.findEdgeByID(id) || sb.findEdgeByID(id) {
		return fmt.Errorf("add edge %q: %w", id, ErrDuplicateEdge)
	}

	sa.Edges = append(sa.Edges, Edge{ID: id, To: b, TravelTime: travelTime})
	sb.Edges = append(sb.Edges, Edge{ID: id, To: a, TravelTime: travelTime})
	return nil
}

// Station returns the named station.
func (n *Network) Station(name string) (*Station, bool) {
	st, ok := n.index[name]
	return st, ok
}

// Stations returns all stations in registration order.
func (n *Network) Stations() []*Station {
	return n.stations
}

// FindEdge returns the direct edge from one station to another, if any.
func (n *Network) FindEdge(from, to string) (Edge, bool) {
	st, ok := n.index[from]
	if !ok {
		return Edge{}, false
	}
	return st.FindEdgeTo(to)
}

// Fingerprint returns a stable digest of the network topology, used to key
// cached route computations. Any added station or edge changes it.
func (n *Network) Fingerprint() string {
	h := sha256.New()
	for _, st := range n.stations {
		fmt.Fprintf(h, "s:%s;", st.Name)
		for _, e := range st.Edges {
			fmt.Fprintf(h, "e:%s:%s:%d;", e.ID, e.To, e.TravelTime)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
