package services

import (
	"train-freight-service/internal/domain"
)

// dispatchOutcome is the result of one dispatch attempt at a station.
type dispatchOutcome int

const (
	// outcomeNoPackages: nothing awaiting pickup here.
	outcomeNoPackages dispatchOutcome = iota
	// outcomeNoTrains: packages wait but no train is stopped here.
	outcomeNoTrains
	// outcomeAllLoaded: the selected train departed and nothing is left waiting.
	outcomeAllLoaded
	// outcomePackagesLeft: the selected train departed but packages remain;
	// another stopped train may still take them this pass.
	outcomePackagesLeft
	// outcomeRepositioned: the selected train left empty on a detour instead
	// of committing to the anchor plan.
	outcomeRepositioned
)

// DispatchPlanner decides, per station, which train carries which packages
// and where it goes next.
//
// The heuristic is greedy and deliberately not optimal: it minimizes
// immediate decisions (largest train, most-hops anchor route, single-edge
// detour comparison) rather than solving the global routing problem. The
// exact comparisons define reference behavior and must be preserved.
type DispatchPlanner struct {
	world   *domain.World
	advisor *RouteAdvisor
}

func NewDispatchPlanner(world *domain.World, advisor *RouteAdvisor) *DispatchPlanner {
	return &DispatchPlanner{world: world, advisor: advisor}
}

// Plan runs one full dispatch pass: every station in registration order,
// repeating per station until no further progress is possible, then a
// repositioning sweep that moves idle trains toward stranded packages.
func (p *DispatchPlanner) Plan() {
	for _, st := range p.world.Network.Stations() {
		for {
			outcome := p.dispatchAt(st)
			if outcome == outcomePackagesLeft || outcome == outcomeRepositioned {
				continue
			}
			break
		}
	}
	p.repositionIdleTrains()
}

// FreezeUnroutable marks every awaiting package that no current train can
// carry, or whose destination is unreachable from where it sits. Frozen
// packages are excluded from dispatch and from HasOutstanding; without this
// a too-heavy or disconnected package would stall the clock forever.
func (p *DispatchPlanner) FreezeUnroutable() {
	maxCapacity, hasTrains := p.world.Trains.MaxCapacity()
	for _, pkg := range p.world.Packages.ListAwaitingAll() {
		if !hasTrains || pkg.Weight > maxCapacity {
			p.world.Packages.MarkUnroutable(pkg.ID)
			continue
		}
		if p.advisor.LeastTimeRoute(pkg.Status.Station, pkg.Destination).IsEmpty() {
			p.world.Packages.MarkUnroutable(pkg.ID)
		}
	}
}

func (p *DispatchPlanner) dispatchAt(st *domain.Station) dispatchOutcome {
	waiting := p.world.Packages.ListAwaitingAt(st.Name)
	if len(waiting) == 0 {
		return outcomeNoPackages
	}

	train, ok := p.world.Trains.LargestStoppedAt(st.Name)
	if !ok {
		return outcomeNoTrains
	}

	// Anchor route: among the waiting packages' least-time routes, the one
	// with the most hops. Its second station is the candidate next hop.
	var anchor Route
	for _, pkg := range waiting {
		route := p.advisor.LeastTimeRoute(st.Name, pkg.Destination)
		if route.IsEmpty() {
			// Destination unreachable from here; freeze rather than stall.
			p.world.Packages.MarkUnroutable(pkg.ID)
			continue
		}
		if route.Hops() > anchor.Hops() {
			anchor = route
		}
	}
	if anchor.Hops() < 1 {
		return outcomeNoPackages
	}
	nextHop := anchor.Stations[1]

	if p.detour(st, train, anchor) {
		return outcomeRepositioned
	}

	// Commit: load every waiting package whose route passes through the
	// anchor's next hop, in listing order. Packages that do not fit are
	// skipped, not retried within this pass.
	for _, pkg := range p.world.Packages.ListAwaitingAt(st.Name) {
		route := p.advisor.LeastTimeRoute(st.Name, pkg.Destination)
		if !route.Contains(nextHop) {
			continue
		}
		if p.world.Trains.Load(train.ID, pkg.Weight) {
			p.world.Packages.MarkLoaded(pkg.ID, train.ID)
		}
	}

	edge, _ := p.world.Network.FindEdge(st.Name, nextHop)
	p.world.Trains.Depart(train.ID, st.Name, nextHop, edge.TravelTime)

	if len(p.world.Packages.ListAwaitingAt(st.Name)) > 0 {
		return outcomePackagesLeft
	}
	return outcomeAllLoaded
}

// detour is the opportunistic reroute check. Before committing the anchor
// plan, scan every awaiting package's route for a station off the anchor
// whose direct edge back here is strictly quicker than the whole anchor
// route and which has a load fitting the train's spare capacity. If one
// exists, send the train there empty instead; the per-station loop restarts.
func (p *DispatchPlanner) detour(st *domain.Station, train *domain.Train, anchor Route) bool {
	spare := train.SpareCapacity()

	for _, pkg := range p.world.Packages.ListAwaitingAll() {
		route := p.advisor.LeastTimeRoute(pkg.Status.Station, pkg.Destination)
		for _, stop := range route.Stations {
			if anchor.Contains(stop) {
				continue
			}
			edge, ok := p.world.Network.FindEdge(stop, st.Name)
			if !ok || edge.TravelTime >= anchor.TotalTime {
				continue
			}
			if !p.anyWaitingFits(stop, spare) {
				continue
			}

			p.world.Trains.Depart(train.ID, st.Name, stop, edge.TravelTime)
			return true
		}
	}
	return false
}

func (p *DispatchPlanner) anyWaitingFits(station string, spare domain.Kilograms) bool {
	for _, pkg := range p.world.Packages.ListAwaitingAt(station) {
		if pkg.Weight <= spare {
			return true
		}
	}
	return false
}

// repositionIdleTrains walks each stranded package's route hop by hop
// looking for a stopped train with room, and moves the first match one hop
// backward toward the package. When no on-route train qualifies, it falls
// back to any stopped train system-wide, stepping it one hop along its own
// least-time route toward the package's destination.
func (p *DispatchPlanner) repositionIdleTrains() {
	for _, pkg := range p.world.Packages.ListAwaitingAll() {
		route := p.advisor.LeastTimeRoute(pkg.Status.Station, pkg.Destination)
		if route.IsEmpty() {
			continue
		}

		if p.repositionAlongRoute(pkg, route) {
			continue
		}
		p.repositionFromAnywhere(pkg)
	}
}

func (p *DispatchPlanner) repositionAlongRoute(pkg *domain.Package, route Route) bool {
	for i := 1; i < len(route.Stations); i++ {
		stop := route.Stations[i]
		for _, tr := range p.world.Trains.ListStoppedAt(stop) {
			if pkg.Weight > tr.SpareCapacity() {
				continue
			}
			back := route.Stations[i-1]
			if edge, ok := p.world.Network.FindEdge(stop, back); ok {
				p.world.Trains.Depart(tr.ID, stop, back, edge.TravelTime)
				return true
			}
		}
	}
	return false
}

func (p *DispatchPlanner) repositionFromAnywhere(pkg *domain.Package) {
	for _, tr := range p.world.Trains.All() {
		if tr.Status.State != domain.TrainStopped {
			continue
		}
		if pkg.Weight > tr.SpareCapacity() {
			continue
		}
		route := p.advisor.LeastTimeRoute(tr.Status.Station, pkg.Destination)
		if route.Hops() < 1 {
			continue
		}
		if edge, ok := p.world.Network.FindEdge(route.Stations[0], route.Stations[1]); ok {
			p.world.Trains.Depart(tr.ID, tr.Status.Station, route.Stations[1], edge.TravelTime)
			return
		}
	}
}
