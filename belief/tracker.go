// Package belief tracks where a hidden evader could be, as seen by seekers.
package belief

import (
	"pursuit/game"
)

// Tracker updates belief sets from observed moves on one map.
type Tracker struct {
	graph *game.Graph
}

func NewTracker(g *game.Graph) *Tracker {
	return &Tracker{graph: g}
}

// Initial is the belief before the evader has been seen: any location not
// held by a seeker.
func (t *Tracker) Initial(seekers []game.Location) Set {
	return NewSet(t.graph.Locations()...).Without(seekers...)
}

// Update folds one evader step paid with ticket into set. On a revealing
// round the set collapses to the true location. Otherwise every candidate is
// replaced by the locations it reaches with that ticket; candidates with no
// such neighbour drop out, as do locations held by seekers.
func (t *Tracker) Update(set Set, ticket game.Ticket, revealing bool, trueLoc game.Location, seekers []game.Location) Set {
	if revealing {
		return NewSet(trueLoc)
	}

	reachable := []game.Location{}
	for _, candidate := range set.locations {
		reachable = append(reachable, t.targets(candidate, ticket)...)
	}
	return NewSet(reachable...).Without(seekers...)
}

func (t *Tracker) targets(from game.Location, ticket game.Ticket) []game.Location {
	targets := []game.Location{}
	for _, edge := range t.graph.Edges(from) {
		if ticket.Covers(edge.Route) {
			targets = append(targets, edge.To)
		}
	}
	return targets
}

// ObserveEvader folds every step of an evader move into set. round is the
// round before the move was played; reveal reports which rounds disclose the
// evader. A double move is two sequential updates.
func (t *Tracker) ObserveEvader(set Set, m game.Move, round int, reveal func(int) bool, seekers []game.Location) Set {
	for i, step := range m.Steps() {
		set = t.Update(set, step.Ticket, reveal(round+i+1), step.Target, seekers)
	}
	return set
}

// ObserveSeeker removes a seeker's destination: seekers are visible, so the
// evader cannot be standing where one just arrived without being caught.
func (t *Tracker) ObserveSeeker(set Set, m game.Move) Set {
	if m.IsPass() {
		return set
	}
	return set.Without(m.Destination())
}
