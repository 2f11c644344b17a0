package services

import (
	"train-freight-service/internal/domain"
)

// Route is a simple path through the network with its summed travel time.
// An empty Stations slice means the endpoints are currently unreachable
// from each other; callers treat that as "cannot help right now", never as
// an error.
type Route struct {
	Stations  []string
	TotalTime domain.Minutes
}

// IsEmpty reports whether no path was found.
func (r Route) IsEmpty() bool {
	return len(r.Stations) == 0
}

// Hops returns the number of edges along the route.
func (r Route) Hops() int {
	if r.IsEmpty() {
		return 0
	}
	return len(r.Stations) - 1
}

// Contains reports whether the route passes through a station.
func (r Route) Contains(station string) bool {
	for _, s := range r.Stations {
		if s == station {
			return true
		}
	}
	return false
}

// RouteAdvisor enumerates simple paths between stations and picks the
// least-time one.
//
// Enumeration is exhaustive by design and exponential in graph density:
// tie-break and path-selection semantics depend on seeing every simple path
// in DFS discovery order, so this must not be replaced with a shortest-path
// algorithm. Intended scale is tens of stations.
//
// The advisor memoizes per (origin, destination) pair and assumes the
// network does not change for its lifetime; build a fresh advisor after
// registration changes.
type RouteAdvisor struct {
	network *domain.Network
	memo    map[string]Route
}

func NewRouteAdvisor(network *domain.Network) *RouteAdvisor {
	return &RouteAdvisor{
		network: network,
		memo:    make(map[string]Route),
	}
}

// SimplePaths returns every simple path from origin to destination, in DFS
// discovery order. Edges are iterated in station-registration order. The
// per-path visited set guarantees termination on cyclic graphs.
func (a *RouteAdvisor) SimplePaths(origin, destination string) [][]string {
	if _, ok := a.network.Station(origin); !ok {
		return nil
	}
	if _, ok := a.network.Station(destination); !ok {
		return nil
	}

	var paths [][]string
	visited := make(map[string]bool)
	a.walk(origin, destination, visited, nil, &paths)
	return paths
}

func (a *RouteAdvisor) walk(current, destination string, visited map[string]bool, path []string, paths *[][]string) {
	visited[current] = true
	path = append(path, current)

	if current == destination {
		found := make([]string, len(path))
		copy(found, path)
		*paths = append(*paths, found)
		visited[current] = false
		return
	}

	st, _ := a.network.Station(current)
	for _, edge := range st.Edges {
		if visited[edge.To] {
			continue
		}
		a.walk(edge.To, destination, visited, path, paths)
	}
	visited[current] = false
}

// LeastTimeRoute returns the enumerated path with the minimum summed travel
// time. Ties are broken by discovery order: the first path found wins.
func (a *RouteAdvisor) LeastTimeRoute(origin, destination string) Route {
	key := origin + "|" + destination
	if r, ok := a.memo[key]; ok {
		return r
	}

	var best Route
	found := false
	for _, path := range a.SimplePaths(origin, destination) {
		total := a.travelTime(path)
		if !found || total < best.TotalTime {
			best = Route{Stations: path, TotalTime: total}
			found = true
		}
	}

	a.memo[key] = best
	return best
}

// Seed installs a previously computed route into the memo, bypassing
// enumeration. Used to warm the advisor from a route cache.
func (a *RouteAdvisor) Seed(origin, destination string, r Route) {
	a.memo[origin+"|"+destination] = r
}

func (a *RouteAdvisor) travelTime(path []string) domain.Minutes {
	var total domain.Minutes
	for i := 1; i < len(path); i++ {
		if edge, ok := a.network.FindEdge(path[i-1], path[i]); ok {
			total += edge.TravelTime
		}
	}
	return total
}
