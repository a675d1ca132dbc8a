package state

import (
	"pursuit/game"
)

// Evader is a node seen by the evader, who always knows where it is. Turns
// follow the rules engine's full rotation.
type Evader struct {
	base
}

// NewEvader creates a root node from a copy of snap.
func NewEvader(rules game.Rules, g *game.Graph, snap *game.Snapshot) *Evader {
	return &Evader{
		base: base{
			rules: rules,
			graph: g,
			snap:  snap.Clone(),
		},
	}
}

func (e *Evader) Play(m game.Move) (Node, error) {
	snap, err := e.play(m)
	if err != nil {
		return nil, err
	}
	return &Evader{
		base: base{
			rules: e.rules,
			graph: e.graph,
			snap:  snap,
			move:  m,
			depth: e.depth + 1,
		},
	}, nil
}

func (e *Evader) EvaderLocation() (game.Location, bool) {
	return e.snap.Location(game.Evader), true
}

func (e *Evader) Hash() game.StateHash {
	return e.hash()
}
