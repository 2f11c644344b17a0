package services

import (
	"testing"

	"train-freight-service/internal/domain"
)

func buildWorld(t *testing.T, stations []string, edges []edgeSpec) *domain.World {
	t.Helper()
	w := domain.NewWorld()
	for _, s := range stations {
		if err := w.AddStation(s); err != nil {
			t.Fatalf("add station %s: %v", s, err)
		}
	}
	for _, e := range edges {
		if err := w.AddEdge(e.id, e.a, e.b, e.minutes); err != nil {
			t.Fatalf("add edge %s: %v", e.id, err)
		}
	}
	return w
}

func newPlanner(w *domain.World) *DispatchPlanner {
	return NewDispatchPlanner(w, NewRouteAdvisor(w.Network))
}

func TestPlanCommitsAnchorRoute(t *testing.T) {
	w := buildWorld(t,
		[]string{"A", "B", "C"},
		[]edgeSpec{
			{"E1", "A", "B", 30},
			{"E2", "B", "C", 10},
		},
	)
	if err := w.AddTrain("Q1", 10, "A"); err != nil {
		t.Fatalf("add train: %v", err)
	}
	// K1 goes two hops, K2 one; the most-hops route anchors the plan and
	// both routes pass through B, so both load.
	if err := w.AddPackage("K1", 5, "A", "C"); err != nil {
		t.Fatalf("add package: %v", err)
	}
	if err := w.AddPackage("K2", 3, "A", "B"); err != nil {
		t.Fatalf("add package: %v", err)
	}

	newPlanner(w).Plan()

	q1, _ := w.Trains.Get("Q1")
	if q1.Status.State != domain.TrainEnRoute || q1.Status.Destination != "B" {
		t.Fatalf("Q1 status = %+v, want en route to B", q1.Status)
	}
	if q1.Status.Remaining != 30 {
		t.Fatalf("remaining = %d, want 30", q1.Status.Remaining)
	}
	if q1.Load != 8 {
		t.Fatalf("load = %d, want 8 (both packages)", q1.Load)
	}
	for _, id := range []string{"K1", "K2"} {
		pkg, _ := w.Packages.Get(id)
		if pkg.Status.State != domain.InTransit || pkg.Status.Train != "Q1" {
			t.Fatalf("%s status = %+v, want in transit on Q1", id, pkg.Status)
		}
	}
}

func TestPlanSkipsPackagesThatDoNotFit(t *testing.T) {
	w := buildWorld(t,
		[]string{"A", "B"},
		[]edgeSpec{{"E1", "A", "B", 30}},
	)
	if err := w.AddTrain("Q1", 6, "A"); err != nil {
		t.Fatalf("add train: %v", err)
	}
	if err := w.AddPackage("K1", 5, "A", "B"); err != nil {
		t.Fatalf("add package: %v", err)
	}
	if err := w.AddPackage("K2", 5, "A", "B"); err != nil {
		t.Fatalf("add package: %v", err)
	}

	newPlanner(w).Plan()

	k1, _ := w.Packages.Get("K1")
	if k1.Status.State != domain.InTransit {
		t.Fatalf("K1 status = %+v, want in transit", k1.Status)
	}
	// K2 did not fit and is skipped, not queued: it waits for another tick.
	k2, _ := w.Packages.Get("K2")
	if k2.Status.State != domain.AwaitingPickup || k2.Status.Station != "A" {
		t.Fatalf("K2 status = %+v, want still awaiting at A", k2.Status)
	}
	q1, _ := w.Trains.Get("Q1")
	if q1.Load > q1.Capacity {
		t.Fatalf("load %d exceeds capacity %d", q1.Load, q1.Capacity)
	}
}

func TestPlanOpportunisticDetour(t *testing.T) {
	// The anchor plan at A is the 40-minute haul toward C, but a light
	// package waits at D, one 5-minute edge away. The train must abort the
	// anchor and head to D empty.
	w := buildWorld(t,
		[]string{"A", "B", "C", "D"},
		[]edgeSpec{
			{"E1", "A", "B", 20},
			{"E2", "B", "C", 20},
			{"E3", "A", "D", 5},
		},
	)
	if err := w.AddTrain("T1", 10, "A"); err != nil {
		t.Fatalf("add train: %v", err)
	}
	if err := w.AddPackage("P1", 5, "A", "C"); err != nil {
		t.Fatalf("add package: %v", err)
	}
	if err := w.AddPackage("P2", 3, "D", "B"); err != nil {
		t.Fatalf("add package: %v", err)
	}

	newPlanner(w).Plan()

	t1, _ := w.Trains.Get("T1")
	if t1.Status.State != domain.TrainEnRoute || t1.Status.Destination != "D" {
		t.Fatalf("T1 status = %+v, want repositioning to D", t1.Status)
	}
	if t1.Load != 0 {
		t.Fatalf("load = %d, want 0 (the detour leg is empty)", t1.Load)
	}
	p1, _ := w.Packages.Get("P1")
	if p1.Status.State != domain.AwaitingPickup {
		t.Fatalf("P1 status = %+v, want still awaiting", p1.Status)
	}
}

func TestPlanRepositionsOnRouteTrain(t *testing.T) {
	// No train at A, but one sits at B on K1's route: it moves one hop
	// backward toward the package.
	w := buildWorld(t,
		[]string{"A", "B", "C"},
		[]edgeSpec{
			{"E1", "A", "B", 30},
			{"E2", "B", "C", 10},
		},
	)
	if err := w.AddTrain("Q1", 6, "B"); err != nil {
		t.Fatalf("add train: %v", err)
	}
	if err := w.AddPackage("K1", 5, "A", "C"); err != nil {
		t.Fatalf("add package: %v", err)
	}

	newPlanner(w).Plan()

	q1, _ := w.Trains.Get("Q1")
	if q1.Status.State != domain.TrainEnRoute || q1.Status.Destination != "A" {
		t.Fatalf("Q1 status = %+v, want en route to A", q1.Status)
	}
	if q1.Status.Remaining != 30 {
		t.Fatalf("remaining = %d, want 30", q1.Status.Remaining)
	}
}

func TestPlanRepositionsFallbackTrain(t *testing.T) {
	// The only fitting train is off K2's route entirely; the fallback walks
	// it one hop along its own route toward the package's destination.
	w := buildWorld(t,
		[]string{"A", "B", "C"},
		[]edgeSpec{
			{"E1", "A", "B", 30},
			{"E2", "B", "C", 10},
		},
	)
	if err := w.AddTrain("Q2", 30, "C"); err != nil {
		t.Fatalf("add train: %v", err)
	}
	if err := w.AddPackage("K2", 25, "B", "A"); err != nil {
		t.Fatalf("add package: %v", err)
	}

	newPlanner(w).Plan()

	q2, _ := w.Trains.Get("Q2")
	if q2.Status.State != domain.TrainEnRoute || q2.Status.Destination != "B" {
		t.Fatalf("Q2 status = %+v, want en route to B", q2.Status)
	}
	if q2.Status.Remaining != 10 {
		t.Fatalf("remaining = %d, want 10", q2.Status.Remaining)
	}
}

func TestFreezeUnroutable(t *testing.T) {
	w := buildWorld(t,
		[]string{"A", "B", "C", "D"},
		[]edgeSpec{
			{"E1", "A", "B", 30},
			{"E2", "B", "C", 10},
		},
	)
	if err := w.AddTrain("Q1", 6, "B"); err != nil {
		t.Fatalf("add train: %v", err)
	}
	// Too heavy for the whole fleet.
	if err := w.AddPackage("K2", 25, "B", "A"); err != nil {
		t.Fatalf("add package: %v", err)
	}
	// Destination D is disconnected.
	if err := w.AddPackage("K3", 2, "A", "D"); err != nil {
		t.Fatalf("add package: %v", err)
	}
	// Carriable and connected.
	if err := w.AddPackage("K1", 5, "A", "C"); err != nil {
		t.Fatalf("add package: %v", err)
	}

	newPlanner(w).FreezeUnroutable()

	for _, tc := range []struct {
		id   string
		want domain.PackageState
	}{
		{"K2", domain.Unroutable},
		{"K3", domain.Unroutable},
		{"K1", domain.AwaitingPickup},
	} {
		pkg, _ := w.Packages.Get(tc.id)
		if pkg.Status.State != tc.want {
			t.Errorf("%s state = %v, want %v", tc.id, pkg.Status.State, tc.want)
		}
	}
}
