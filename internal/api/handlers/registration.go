package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"train-freight-service/internal/api/dto"
	"train-freight-service/internal/domain"
)

// RegistrationHandler exposes the world construction contract: stations,
// edges, trains, and packages. All entity mutation is serialized by Mu
// because dispatch decisions read global state (see the delivery handler).
type RegistrationHandler struct {
	World *domain.World
	Mu    *sync.Mutex
}

func (h *RegistrationHandler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req dto.StationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	h.Mu.Lock()
	err := h.World.AddStation(req.Name)
	h.Mu.Unlock()
	if err != nil {
		writeRegistrationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreatedResponse{Name: req.Name})
}

func (h *RegistrationHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req dto.EdgeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.StationA == "" || req.StationB == "" {
		writeError(w, r, http.StatusBadRequest, "name, station_a and station_b are required")
		return
	}
	if req.TravelTimeMinutes == 0 {
		writeError(w, r, http.StatusBadRequest, "travel_time_minutes must be positive")
		return
	}

	h.Mu.Lock()
	err := h.World.AddEdge(req.Name, req.StationA, req.StationB, domain.Minutes(req.TravelTimeMinutes))
	h.Mu.Unlock()
	if err != nil {
		writeRegistrationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreatedResponse{Name: req.Name})
}

func (h *RegistrationHandler) CreateTrain(w http.ResponseWriter, r *http.Request) {
	var req dto.TrainRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Location == "" {
		writeError(w, r, http.StatusBadRequest, "name and location are required")
		return
	}
	if req.CapacityKg == 0 {
		writeError(w, r, http.StatusBadRequest, "capacity_kg must be positive")
		return
	}

	h.Mu.Lock()
	err := h.World.AddTrain(req.Name, domain.Kilograms(req.CapacityKg), req.Location)
	h.Mu.Unlock()
	if err != nil {
		writeRegistrationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreatedResponse{Name: req.Name})
}

func (h *RegistrationHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req dto.PackageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Origin == "" || req.Destination == "" {
		writeError(w, r, http.StatusBadRequest, "name, origin and destination are required")
		return
	}
	if req.WeightKg == 0 {
		writeError(w, r, http.StatusBadRequest, "weight_kg must be positive")
		return
	}

	h.Mu.Lock()
	err := h.World.AddPackage(req.Name, domain.Kilograms(req.WeightKg), req.Origin, req.Destination)
	h.Mu.Unlock()
	if err != nil {
		writeRegistrationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreatedResponse{Name: req.Name})
}

// ListPackages returns every package with its current status.
func (h *RegistrationHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.Mu.Lock()
	pkgs := h.World.Packages.All()
	res := dto.ListPackagesResponse{
		Packages: make([]dto.PackageResponse, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		res.Packages = append(res.Packages, dto.PackageResponse{
			Name:        p.ID,
			WeightKg:    uint(p.Weight),
			Destination: p.Destination,
			Status:      statusName(p.Status.State),
			Station:     p.Status.Station,
			Train:       p.Status.Train,
		})
	}
	h.Mu.Unlock()

	writeJSON(w, r, http.StatusOK, res)
}

func statusName(s domain.PackageState) string {
	switch s {
	case domain.AwaitingPickup:
		return "awaiting_pickup"
	case domain.InTransit:
		return "in_transit"
	case domain.Delivered:
		return "delivered"
	case domain.Completed:
		return "completed"
	case domain.Unroutable:
		return "unroutable"
	default:
		return "unknown"
	}
}

// decodeBody enforces POST with a single strict JSON object body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeRegistrationError maps domain registration errors to status codes:
// duplicates conflict, unknown stations are not found, the rest is a bad
// request.
func writeRegistrationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateStation),
		errors.Is(err, domain.ErrDuplicateEdge),
		errors.Is(err, domain.ErrDuplicateTrain),
		errors.Is(err, domain.ErrDuplicatePackage):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrStationNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		writeError(w, r, http.StatusBadRequest, err.Error())
	}
}
