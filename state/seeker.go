package state

import (
	"pursuit/belief"
	"pursuit/game"
)

// Seeker is a node seen by one acting seeker. The evader's location is hidden
// and replaced by a belief set; turns alternate between the acting seeker and
// the evader only, the other seekers hold still.
//
// The evader has no moves until a chance layer pins it to one location of the
// belief set. Pinning does not advance the depth.
type Seeker struct {
	base
	acting    game.Role
	belief    belief.Set
	tracker   *belief.Tracker
	lastKnown game.Location
}

// NewSeeker creates a root node for acting. The evader's location in snap is
// never read: it is cleared in the copy the node keeps. lastKnown is the
// location revealed most recently, or game.NoLocation.
func NewSeeker(rules game.Rules, g *game.Graph, snap *game.Snapshot, acting game.Role, set belief.Set, lastKnown game.Location) *Seeker {
	if acting.IsEvader() {
		panic("acting role must be a seeker")
	}
	hidden := snap.Clone()
	hidden.Locations[game.Evader] = game.NoLocation

	return &Seeker{
		base: base{
			rules: rules,
			graph: g,
			snap:  hidden,
		},
		acting:    acting,
		belief:    set,
		tracker:   belief.NewTracker(g),
		lastKnown: lastKnown,
	}
}

func (s *Seeker) Acting() game.Role {
	return s.acting
}

func (s *Seeker) Belief() belief.Set {
	return s.belief
}

// IsPinned reports whether a chance layer has fixed the evader's location.
func (s *Seeker) IsPinned() bool {
	return s.snap.Location(game.Evader) != game.NoLocation
}

func (s *Seeker) Play(m game.Move) (Node, error) {
	snap, err := s.play(m)
	if err != nil {
		return nil, err
	}

	child := &Seeker{
		base: base{
			rules: s.rules,
			graph: s.graph,
			snap:  snap,
			move:  m,
			depth: s.depth + 1,
		},
		acting:    s.acting,
		tracker:   s.tracker,
		lastKnown: s.lastKnown,
	}

	if m.Role.IsEvader() {
		child.belief = s.tracker.ObserveEvader(s.belief, m, s.snap.Round, snap.IsRevealRound, snap.SeekerLocations())
		for i, step := range m.Steps() {
			if snap.IsRevealRound(s.snap.Round + i + 1) {
				child.lastKnown = step.Target
			}
		}
		snap.Current = s.acting
	} else {
		child.belief = s.tracker.ObserveSeeker(s.belief, m)
		snap.Current = game.Evader
	}
	return child, nil
}

// Outcomes pins the evader to every location in the belief set with uniform
// weight. It returns nil once the evader is pinned or the set is empty.
func (s *Seeker) Outcomes() []Outcome {
	if s.IsPinned() || s.belief.IsEmpty() {
		return nil
	}

	locations := s.belief.Locations()
	weight := 1 / float64(len(locations))
	outcomes := make([]Outcome, 0, len(locations))
	for _, loc := range locations {
		snap := s.snap.Clone()
		snap.Locations[game.Evader] = loc
		outcomes = append(outcomes, Outcome{
			Node: &Seeker{
				base: base{
					rules: s.rules,
					graph: s.graph,
					snap:  snap,
					move:  s.move,
					depth: s.depth,
				},
				acting:    s.acting,
				belief:    s.belief,
				tracker:   s.tracker,
				lastKnown: s.lastKnown,
			},
			Weight: weight,
		})
	}
	return outcomes
}

// Winners adds one way for the seekers to win: once every location in the
// belief set has been ruled out, the evader has been caught. A capture takes
// precedence over the rules, which would otherwise hand the last round to the
// evader while the other seekers have not moved.
func (s *Seeker) Winners() []game.Role {
	if s.belief.IsEmpty() {
		return s.snap.Seekers()
	}
	return s.base.Winners()
}

func (s *Seeker) IsGameOver() bool {
	return len(s.Winners()) > 0
}

func (s *Seeker) IsTerminal(maxDepth int) bool {
	return s.IsGameOver() || s.depth >= maxDepth
}

// EvaderLocation is the pinned location inside a chance branch, otherwise the
// last revealed one.
func (s *Seeker) EvaderLocation() (game.Location, bool) {
	if s.IsPinned() {
		return s.snap.Location(game.Evader), true
	}
	return s.lastKnown, s.lastKnown != game.NoLocation
}

func (s *Seeker) Hash() game.StateHash {
	return s.hash(append(s.belief.Locations(), game.Location(s.acting))...)
}
