// Package heuristic scores search states for the evader and for the seekers.
package heuristic

import (
	"math"

	"pursuit/belief"
	"pursuit/distance"
	"pursuit/game"
	"pursuit/state"
)

const (
	// Win and Loss score states that are over by the rules.
	Win  = 10000.0
	Loss = -10000.0
	// Trapped is the evader's score when it has nowhere to go but the game
	// is not over yet. It is the lowest non-terminal evader score.
	Trapped = -200.0
	// Bound clamps every non-terminal score so a terminal state always
	// outranks it.
	Bound = 5000.0
)

// Func scores a node from the point of view of the side being maximised.
type Func func(n state.Node) float64

// Weights of the evader formula.
type Weights struct {
	Nearest float64 // distance to the nearest seeker that can still move
	Secret  float64 // secret tickets left
	Escapes float64 // distinct free neighbours
	Boat    float64 // standing on a boat node with a secret ticket
	Corner  float64 // distance to the nearest corner
	LowTaxi float64 // seekers without enough taxi tickets to reach the evader
}

func DefaultWeights() Weights {
	return Weights{
		Nearest: 5,
		Secret:  2.5,
		Escapes: 2,
		Boat:    1.5,
		Corner:  1,
		LowTaxi: 1,
	}
}

type Option func(*Weights)

func WithWeights(w Weights) Option {
	return func(weights *Weights) {
		*weights = w
	}
}

// terminal returns the fixed score of a finished game for side.
func terminal(n state.Node, side func(game.Role) bool) (float64, bool) {
	winners := n.Winners()
	if len(winners) == 0 {
		return 0, false
	}
	if side(winners[0]) {
		return Win, true
	}
	return Loss, true
}

func clamp(score float64) float64 {
	return math.Max(-Bound, math.Min(Bound, score))
}

// capped replaces an unreachable distance with the size of the board.
func capped(d float64, g *game.Graph) float64 {
	if math.IsInf(d, 1) {
		return float64(g.Size())
	}
	return d
}

// Evader scores nodes for the evader.
type Evader struct {
	oracle  *distance.Oracle
	weights Weights
}

func NewEvader(oracle *distance.Oracle, options ...Option) *Evader {
	weights := DefaultWeights()
	for _, option := range options {
		option(&weights)
	}
	return &Evader{oracle: oracle, weights: weights}
}

func (e *Evader) Score(n state.Node) float64 {
	if score, over := terminal(n, game.Role.IsEvader); over {
		return score
	}

	snap := n.Snapshot()
	g := n.Graph()
	loc, ok := n.EvaderLocation()
	if !ok {
		return 0
	}

	escapes := escapeRoutes(g, snap, loc)
	if escapes == 0 {
		return Trapped
	}

	general := e.oracle.Distances(loc, distance.General)
	taxi := e.oracle.Distances(loc, distance.TaxiOnly)

	nearest := math.Inf(1)
	lowTaxi := 0
	for _, r := range snap.Seekers() {
		seekerLoc := snap.Location(r)
		if !isStuck(n.MovesOf(r)) {
			nearest = math.Min(nearest, general.To(seekerLoc))
		}
		if float64(snap.TicketCount(r, game.TaxiTicket)) < taxi.To(seekerLoc) {
			lowTaxi++
		}
	}

	corner := 0.0
	if corners := g.Corners(); len(corners) > 0 {
		corner = capped(general.Nearest(corners), g)
	}

	secret := snap.TicketCount(game.Evader, game.SecretTicket)
	boat := 0.0
	if secret > 0 && g.HasRoute(loc, game.Boat) {
		boat = 1
	}

	w := e.weights
	score := w.Nearest*capped(nearest, g) +
		w.Secret*float64(secret) +
		w.Escapes*float64(escapes) +
		w.Boat*boat +
		w.Corner*corner +
		w.LowTaxi*float64(lowTaxi)
	return clamp(score)
}

// escapeRoutes counts the distinct neighbours of loc the evader holds a
// ticket for and no seeker stands on.
func escapeRoutes(g *game.Graph, snap *game.Snapshot, loc game.Location) int {
	targets := map[game.Location]bool{}
	hasSecret := snap.TicketCount(game.Evader, game.SecretTicket) > 0
	for _, edge := range g.Edges(loc) {
		if snap.IsSeekerAt(edge.To) {
			continue
		}
		if hasSecret || snap.TicketCount(game.Evader, game.TicketFor(edge.Route)) > 0 {
			targets[edge.To] = true
		}
	}
	return len(targets)
}

func isStuck(moves []game.Move) bool {
	return len(moves) == 1 && moves[0].IsPass()
}

// Seeker scores nodes for the seekers: the closer the acting seeker is to
// every location the evader might be at, the better.
type Seeker struct {
	oracle *distance.Oracle
}

func NewSeeker(oracle *distance.Oracle) *Seeker {
	return &Seeker{oracle: oracle}
}

// viewpoint is a node that carries a seeker's knowledge.
type viewpoint interface {
	Acting() game.Role
	Belief() belief.Set
}

func (s *Seeker) Score(n state.Node) float64 {
	isSeeker := func(r game.Role) bool { return !r.IsEvader() }
	if score, over := terminal(n, isSeeker); over {
		return score
	}

	snap := n.Snapshot()
	g := n.Graph()

	// Outside a seeker's view every seeker is measured to the true location
	seekers := snap.Seekers()
	var candidates []game.Location
	if v, ok := n.(viewpoint); ok {
		seekers = []game.Role{v.Acting()}
		candidates = v.Belief().Locations()
	} else if loc, ok := n.EvaderLocation(); ok {
		candidates = []game.Location{loc}
	}

	total := 0.0
	for _, r := range seekers {
		table := s.oracle.Distances(snap.Location(r), distance.General)
		for _, loc := range candidates {
			total += capped(table.To(loc), g)
		}
	}
	return clamp(-total)
}
