package scenario

import (
	"strings"
	"testing"

	"train-freight-service/internal/domain"
)

const referenceScenario = `
stations:
  - name: A
  - name: B
  - name: C
edges:
  - name: E1
    station_a: A
    station_b: B
    minutes: 30
  - name: E2
    station_a: B
    station_b: C
    minutes: 10
trains:
  - name: Q1
    capacity: 6
    location: B
packages:
  - name: K1
    weight: 5
    origin: A
    destination: C
`

func TestParseAndApply(t *testing.T) {
	sc, err := Parse([]byte(referenceScenario))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sc.Stations) != 3 || len(sc.Edges) != 2 {
		t.Fatalf("parsed %d stations and %d edges, want 3 and 2",
			len(sc.Stations), len(sc.Edges))
	}

	w := domain.NewWorld()
	if err := sc.Apply(w); err != nil {
		t.Fatalf("apply: %v", err)
	}

	edge, ok := w.Network.FindEdge("A", "B")
	if !ok || edge.TravelTime != 30 {
		t.Fatalf("edge A-B = %+v (ok=%v), want 30 minutes", edge, ok)
	}
	tr, ok := w.Trains.Get("Q1")
	if !ok || tr.Status.Station != "B" {
		t.Fatalf("train Q1 = %+v (ok=%v), want stopped at B", tr, ok)
	}
	pkg, ok := w.Packages.Get("K1")
	if !ok || pkg.Status.State != domain.AwaitingPickup {
		t.Fatalf("package K1 = %+v (ok=%v), want awaiting pickup", pkg, ok)
	}
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			name: "no stations",
			yaml: "edges: []\n",
		},
		{
			name: "station without name",
			yaml: "stations:\n  - name: \"\"\n",
		},
		{
			name: "zero-minute edge",
			yaml: `
stations:
  - name: A
  - name: B
edges:
  - name: E1
    station_a: A
    station_b: B
    minutes: 0
`,
		},
		{
			name: "zero-capacity train",
			yaml: `
stations:
  - name: A
trains:
  - name: Q1
    capacity: 0
    location: A
`,
		},
		{
			name: "package without destination",
			yaml: `
stations:
  - name: A
packages:
  - name: K1
    weight: 5
    origin: A
`,
		},
		{
			name: "malformed yaml",
			yaml: "stations: [\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestApplyRejectsUnknownReferences(t *testing.T) {
	sc, err := Parse([]byte(`
stations:
  - name: A
trains:
  - name: Q1
    capacity: 6
    location: Z
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	w := domain.NewWorld()
	err = sc.Apply(w)
	if err == nil {
		t.Fatal("expected an error for a train at an unknown station")
	}
	if !strings.Contains(err.Error(), "apply scenario") {
		t.Fatalf("error = %v, want the apply scenario prefix", err)
	}
}
