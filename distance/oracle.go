// Package distance answers shortest-path questions on the static game map.
package distance

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/singleflight"

	"pursuit/game"
)

// Modes is a set of routes a traveller may use.
type Modes uint8

func ModesOf(routes ...game.Route) Modes {
	var m Modes
	for _, r := range routes {
		m |= 1 << uint(r)
	}
	return m
}

var (
	General  = ModesOf(game.Taxi, game.Bus, game.Underground)
	TaxiOnly = ModesOf(game.Taxi)
	TaxiBus  = ModesOf(game.Taxi, game.Bus)
)

func (m Modes) Allows(r game.Route) bool {
	return m&(1<<uint(r)) != 0
}

// Table maps every location to its hop count from one source. Tables are
// shared between callers and never modified after construction.
type Table struct {
	dist map[game.Location]float64
}

// To returns the distance to loc, +Inf when it cannot be reached.
func (t Table) To(loc game.Location) float64 {
	if d, ok := t.dist[loc]; ok {
		return d
	}
	return math.Inf(1)
}

// Nearest returns the smallest distance to any of locs, +Inf if locs is empty
// or none is reachable.
func (t Table) Nearest(locs []game.Location) float64 {
	nearest := math.Inf(1)
	for _, loc := range locs {
		nearest = math.Min(nearest, t.To(loc))
	}
	return nearest
}

type key struct {
	source game.Location
	modes  Modes
}

// Oracle memoizes distance tables per (source, modes) for one map. It is safe
// for concurrent use; concurrent first requests for the same key compute the
// table once.
type Oracle struct {
	graph  *game.Graph
	mu     sync.RWMutex
	tables map[key]Table
	group  singleflight.Group
}

func NewOracle(g *game.Graph) *Oracle {
	return &Oracle{
		graph:  g,
		tables: make(map[key]Table),
	}
}

func (o *Oracle) Graph() *game.Graph {
	return o.graph
}

// Distances returns the hop counts from source using only edges whose route
// is in modes.
func (o *Oracle) Distances(source game.Location, modes Modes) Table {
	k := key{source: source, modes: modes}

	o.mu.RLock()
	table, ok := o.tables[k]
	o.mu.RUnlock()
	if ok {
		return table
	}

	v, _, _ := o.group.Do(fmt.Sprintf("%d/%d", source, modes), func() (any, error) {
		o.mu.RLock()
		table, ok := o.tables[k]
		o.mu.RUnlock()
		if ok {
			return table, nil
		}

		table = o.compute(source, modes)
		o.mu.Lock()
		if _, ok := o.tables[k]; !ok {
			o.tables[k] = table
		}
		table = o.tables[k]
		o.mu.Unlock()
		return table, nil
	})
	return v.(Table)
}

// Distance is a shortcut for Distances(from, modes).To(to).
func (o *Oracle) Distance(from, to game.Location, modes Modes) float64 {
	return o.Distances(from, modes).To(to)
}

// Just BFS: every edge has length 1
func (o *Oracle) compute(source game.Location, modes Modes) Table {
	dist := make(map[game.Location]float64, o.graph.Size())
	if !o.graph.Has(source) {
		return Table{dist: dist}
	}

	dist[source] = 0
	queue := []game.Location{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, edge := range o.graph.Edges(current) {
			if !modes.Allows(edge.Route) {
				continue
			}
			if _, seen := dist[edge.To]; seen {
				continue
			}
			dist[edge.To] = dist[current] + 1
			queue = append(queue, edge.To)
		}
	}
	return Table{dist: dist}
}
