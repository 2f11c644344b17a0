package services

import (
	"context"
	"fmt"
	"io"

	"train-freight-service/internal/domain"
	"train-freight-service/internal/ports"
)

// Simulation is the discrete-time driver. Each tick runs a full dispatch
// pass, advances every en-route train by the minimum in-flight travel time,
// processes arrivals, writes one report line per train, and sweeps
// delivered packages. Multiple trains moving "concurrently" is concurrent
// data, not parallelism: the whole engine is single-threaded and each tick
// mutates the world in one atomic logical step.
type Simulation struct {
	world   *domain.World
	advisor *RouteAdvisor
	planner *DispatchPlanner
	out     io.Writer
}

// NewSimulation builds a simulation over the world's current topology.
// Report lines are written to out. The advisor snapshot is taken here:
// register all stations and edges before constructing the simulation.
func NewSimulation(world *domain.World, out io.Writer) *Simulation {
	advisor := NewRouteAdvisor(world.Network)
	return &Simulation{
		world:   world,
		advisor: advisor,
		planner: NewDispatchPlanner(world, advisor),
		out:     out,
	}
}

// WarmRoutes seeds the advisor's route memo from a cache, computing and
// storing misses. Only registration-time origins are warmed; mid-run
// redeposit stations fall back to in-memory enumeration. All cache I/O
// happens here, before the clock starts: the simulation loop itself never
// blocks.
func (s *Simulation) WarmRoutes(ctx context.Context, cache ports.RouteCache) error {
	key := s.world.Network.Fingerprint()

	byOrigin := make(map[string][]string)
	for _, pkg := range s.world.Packages.ListAwaitingAll() {
		byOrigin[pkg.Status.Station] = append(byOrigin[pkg.Status.Station], pkg.Destination)
	}

	for origin, destinations := range byOrigin {
		cached, err := cache.GetMany(ctx, key, origin, destinations)
		if err != nil {
			return fmt.Errorf("warm routes: get cached routes from %q: %w", origin, err)
		}

		misses := make(map[string]ports.RouteResult)
		for _, dest := range destinations {
			if hit, ok := cached[dest]; ok {
				s.advisor.Seed(origin, dest, Route{
					Stations:  hit.Stations,
					TotalTime: domain.Minutes(hit.TotalMinutes),
				})
				continue
			}
			route := s.advisor.LeastTimeRoute(origin, dest)
			misses[dest] = ports.RouteResult{
				Stations:     route.Stations,
				TotalMinutes: uint(route.TotalTime),
			}
		}

		if err := cache.PutMany(ctx, key, origin, misses); err != nil {
			return fmt.Errorf("warm routes: store routes from %q: %w", origin, err)
		}
	}
	return nil
}

// Run drives the clock until no package is outstanding and returns the
// accumulated total delivery time. Running again with nothing outstanding
// returns 0 and mutates no state.
func (s *Simulation) Run() domain.Minutes {
	s.planner.FreezeUnroutable()

	var total domain.Minutes
	for s.world.Packages.HasOutstanding() {
		s.planner.Plan()

		remaining, moving := s.world.Trains.MinRemaining()
		if !moving {
			// The pass moved nothing: outstanding work is stranded where no
			// train can make progress. Advancing a zero-minute tick would
			// spin forever, so stop here.
			break
		}

		arrivals := s.world.Trains.Elapse(remaining)
		total += remaining
		for _, arrival := range arrivals {
			s.unload(arrival)
		}

		s.report(total)
		s.world.Packages.SweepCompleted()
	}
	return total
}

// unload redeposits or delivers every package on an arrived train.
func (s *Simulation) unload(arrival domain.Arrival) {
	for _, pkg := range s.world.Packages.ListInTransitOn(arrival.TrainID) {
		s.world.Trains.Unload(arrival.TrainID, pkg.Weight)
		s.world.Packages.MarkArrived(pkg.ID, arrival.Station)
	}
}

// report writes one line per train:
//
//	W={total}, T={train}, N1={originOrCurrent}, P1={inTransit}, N2={destinationOrEmpty}, P2={delivered}
//
// This trace is the externally visible contract the tests assert against.
func (s *Simulation) report(total domain.Minutes) {
	for _, tr := range s.world.Trains.All() {
		origin := tr.Status.Station
		destination := ""
		if tr.Status.State == domain.TrainEnRoute {
			origin = tr.Status.Origin
			destination = tr.Status.Destination
		}

		inTransit := packageIDs(s.world.Packages.ListInTransitOn(tr.ID))
		delivered := packageIDs(s.world.Packages.ListDeliveredBy(tr.ID))

		fmt.Fprintf(s.out, "W=%d, T=%s, N1=%s, P1=%v, N2=%s, P2=%v\n",
			total, tr.ID, origin, inTransit, destination, delivered)
	}
}

func packageIDs(pkgs []*domain.Package) []string {
	ids := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		ids = append(ids, pkg.ID)
	}
	return ids
}
