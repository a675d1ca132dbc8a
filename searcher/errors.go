package searcher

import "github.com/pkg/errors"

var (
	// ErrNoDecision means no pass completed before the deadline. Callers fall
	// back to a random legal move.
	ErrNoDecision = errors.New("no search pass completed before the deadline")
	// ErrNoMoves means the root has no legal move, not even a pass. The rules
	// engine should never produce such a state for a running game.
	ErrNoMoves = errors.New("no legal moves at the root")
)
