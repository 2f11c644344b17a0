package api

import (
	"net/http"
	"sync"

	"train-freight-service/internal/api/handlers"
	"train-freight-service/internal/domain"
	"train-freight-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers share one world
// and one mutex, since the engine requires serialized access to the full
// registry set.
func NewRouter(world *domain.World, cache ports.RouteCache) http.Handler {
	mux := http.NewServeMux()
	mu := &sync.Mutex{}

	reg := &handlers.RegistrationHandler{World: world, Mu: mu}
	del := &handlers.DeliveryHandler{World: world, Mu: mu, Cache: cache}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stations", reg.CreateStation)
	mux.HandleFunc("/edges", reg.CreateEdge)
	mux.HandleFunc("/trains", reg.CreateTrain)
	mux.HandleFunc("/packages", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			reg.ListPackages(w, r)
			return
		}
		reg.CreatePackage(w, r)
	})
	mux.HandleFunc("/deliveries", del.Run)

	return loggingMiddleware(mux)
}
