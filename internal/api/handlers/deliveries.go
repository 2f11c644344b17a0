package handlers

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"sync"

	"train-freight-service/internal/api/dto"
	"train-freight-service/internal/domain"
	"train-freight-service/internal/ports"
	"train-freight-service/internal/services"
)

// DeliveryHandler runs the simulation over the current world. The world
// lock is held for the whole run: one tick mutates all three registries as
// a single atomic logical step, and dispatch at any station reads global
// train and package state.
type DeliveryHandler struct {
	World *domain.World
	Mu    *sync.Mutex

	// Cache optionally warms the route advisor before a run. Nil disables
	// warming; routes are then enumerated in memory only.
	Cache ports.RouteCache
}

func (h *DeliveryHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var trace bytes.Buffer

	h.Mu.Lock()
	sim := services.NewSimulation(h.World, &trace)
	if h.Cache != nil {
		if err := sim.WarmRoutes(r.Context(), h.Cache); err != nil {
			// Warming is an optimization; a cache outage must not block runs.
			log.Printf("route cache warm failed: %v", err)
		}
	}
	total := sim.Run()
	h.Mu.Unlock()

	res := dto.DeliveryResponse{
		TotalMinutes: uint(total),
		Report:       reportLines(trace.String()),
	}
	writeJSON(w, r, http.StatusOK, res)
}

func reportLines(trace string) []string {
	lines := strings.Split(strings.TrimRight(trace, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []string{}
	}
	return lines
}
