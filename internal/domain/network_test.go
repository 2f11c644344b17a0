package domain

import (
	"errors"
	"testing"
)

func TestNetworkAddStation(t *testing.T) {
	n := NewNetwork()

	if err := n.AddStation("A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.AddStation("A"); !errors.Is(err, ErrDuplicateStation) {
		t.Fatalf("duplicate station: got %v, want ErrDuplicateStation", err)
	}

	if _, ok := n.Station("A"); !ok {
		t.Fatal("station A should exist")
	}
	if _, ok := n.Station("Z"); ok {
		t.Fatal("station Z should not exist")
	}
}

func TestNetworkAddEdge(t *testing.T) {
	n := NewNetwork()
	for _, name := range []string{"A", "B", "C"} {
		if err := n.AddStation(name); err != nil {
			t.Fatalf("add station %s: %v", name, err)
		}
	}

	if err := n.AddEdge("E1", "A", "Z", 10); !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("missing endpoint: got %v, want ErrStationNotFound", err)
	}
	if err := n.AddEdge("E1", "A", "A", 10); !errors.Is(err, ErrSameStation) {
		t.Fatalf("same endpoints: got %v, want ErrSameStation", err)
	}

	if err := n.AddEdge("E1", "A", "B", 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same id on a shared endpoint is rejected.
	if err := n.AddEdge("E1", "B", "C", 10); !errors.Is(err, ErrDuplicateEdge) {
		t.Fatalf("duplicate edge id: got %v, want ErrDuplicateEdge", err)
	}
	if err := n.AddEdge("E2", "B", "C", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNetworkFindEdgeIsSymmetric(t *testing.T) {
	n := NewNetwork()
	for _, name := range []string{"A", "B"} {
		if err := n.AddStation(name); err != nil {
			t.Fatalf("add station %s: %v", name, err)
		}
	}
	if err := n.AddEdge("E1", "A", "B", 30); err != nil {
		t.Fatalf("add edge: %v", err)
	}

	forward, ok := n.FindEdge("A", "B")
	if !ok {
		t.Fatal("edge A->B not found")
	}
	backward, ok := n.FindEdge("B", "A")
	if !ok {
		t.Fatal("edge B->A not found")
	}
	if forward.TravelTime != backward.TravelTime {
		t.Fatalf("travel times differ: %d vs %d", forward.TravelTime, backward.TravelTime)
	}
	if forward.ID != backward.ID {
		t.Fatalf("edge ids differ: %s vs %s", forward.ID, backward.ID)
	}

	if _, ok := n.FindEdge("A", "Z"); ok {
		t.Fatal("edge to unknown station should not exist")
	}
}

func TestNetworkFingerprintChangesWithTopology(t *testing.T) {
	n := NewNetwork()
	if err := n.AddStation("A"); err != nil {
		t.Fatalf("add station: %v", err)
	}
	before := n.Fingerprint()

	if err := n.AddStation("B"); err != nil {
		t.Fatalf("add station: %v", err)
	}
	if n.Fingerprint() == before {
		t.Fatal("fingerprint should change when a station is added")
	}

	afterStation := n.Fingerprint()
	if err := n.AddEdge("E1", "A", "B", 5); err != nil {
		t.Fatalf("add edge: %v", err)
	}
	if n.Fingerprint() == afterStation {
		t.Fatal("fingerprint should change when an edge is added")
	}
}
