package ports

import "context"

// RouteResult is a cached least-time route. Stations are in travel order;
// an empty slice records "no path exists" so the miss is not recomputed.
type RouteResult struct {
	Stations     []string
	TotalMinutes uint
}

// RouteCache is a boundary for persisting computed least-time routes.
// Entries are keyed by a network fingerprint so a topology change never
// serves stale routes.
type RouteCache interface {
	// GetMany fetches cached routes from one origin to many destinations.
	// Missing destinations are simply absent from the result map.
	GetMany(ctx context.Context, networkKey, origin string, destinations []string) (map[string]RouteResult, error)

	// PutMany stores routes from a single origin.
	PutMany(ctx context.Context, networkKey, origin string, results map[string]RouteResult) error
}
