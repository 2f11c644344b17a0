// Package scenario loads world definitions from YAML files and applies
// them through the world's registration API, so scenario entities go
// through exactly the same duplicate and not-found checks as entities
// registered over HTTP or the console.
package scenario

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"train-freight-service/internal/domain"
)

// Load reads and validates a scenario file. A file that fails validation is
// rejected whole; nothing is partially applied.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("load scenario: parse yaml: %w", err)
	}

	v := validator.New()
	if err := v.Struct(sc); err != nil {
		return nil, fmt.Errorf("load scenario: validate: %w", err)
	}
	for i, st := range sc.Stations {
		if err := v.Struct(st); err != nil {
			return nil, fmt.Errorf("load scenario: station #%d: %w", i+1, err)
		}
	}
	for i, e := range sc.Edges {
		if err := v.Struct(e); err != nil {
			return nil, fmt.Errorf("load scenario: edge #%d: %w", i+1, err)
		}
	}
	for i, tr := range sc.Trains {
		if err := v.Struct(tr); err != nil {
			return nil, fmt.Errorf("load scenario: train #%d: %w", i+1, err)
		}
	}
	for i, p := range sc.Packages {
		if err := v.Struct(p); err != nil {
			return nil, fmt.Errorf("load scenario: package #%d: %w", i+1, err)
		}
	}

	return &sc, nil
}

// Apply registers every scenario entity on the world, in declaration order.
func (s *Scenario) Apply(w *domain.World) error {
	for _, st := range s.Stations {
		if err := w.AddStation(st.Name); err != nil {
			return fmt.Errorf("apply scenario: %w", err)
		}
	}
	for _, e := range s.Edges {
		if err := w.AddEdge(e.Name, e.StationA, e.StationB, domain.Minutes(e.Minutes)); err != nil {
			return fmt.Errorf("apply scenario: %w", err)
		}
	}
	for _, tr := range s.Trains {
		if err := w.AddTrain(tr.Name, domain.Kilograms(tr.Capacity), tr.Location); err != nil {
			return fmt.Errorf("apply scenario: %w", err)
		}
	}
	for _, p := range s.Packages {
		if err := w.AddPackage(p.Name, domain.Kilograms(p.Weight), p.Origin, p.Destination); err != nil {
			return fmt.Errorf("apply scenario: %w", err)
		}
	}
	return nil
}
