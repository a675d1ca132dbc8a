// Package state turns a rules engine into searchable game-tree nodes, from the
// evader's or from a seeker's point of view.
package state

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/pkg/errors"

	"pursuit/game"
)

// ErrInconsistentState means the rules engine rejected a move the search
// produced. Moves only come from the engine itself, so this is a bug in
// belief tracking or move filtering and the search must stop.
var ErrInconsistentState = errors.New("inconsistent search state")

// Node is a state in the search tree. Nodes are immutable once built: Play
// returns a fresh child and never touches the receiver.
type Node interface {
	// Player is whose turn it is.
	Player() game.Role
	// Move is the move that produced this node; zero for a root.
	Move() game.Move
	Depth() int
	Snapshot() *game.Snapshot
	Graph() *game.Graph
	// Moves are the legal moves of the current player in canonical order.
	Moves() []game.Move
	MovesOf(r game.Role) []game.Move
	Play(m game.Move) (Node, error)
	Winners() []game.Role
	IsGameOver() bool
	// IsTerminal is true once the game is over or maxDepth is reached.
	IsTerminal(maxDepth int) bool
	Hash() game.StateHash
	// EvaderLocation is the evader's true location, or the best the viewer
	// knows. ok is false when nothing is known.
	EvaderLocation() (loc game.Location, ok bool)
}

// Outcome is one branch of a chance layer.
type Outcome struct {
	Node   Node
	Weight float64
}

// Chance is implemented by nodes whose evader position is uncertain.
type Chance interface {
	Outcomes() []Outcome
}

type base struct {
	rules   game.Rules
	graph   *game.Graph
	snap    *game.Snapshot
	move    game.Move
	depth   int
	winners []game.Role
	judged  bool
}

func (b *base) Player() game.Role {
	return b.snap.Current
}

func (b *base) Move() game.Move {
	return b.move
}

func (b *base) Depth() int {
	return b.depth
}

// Snapshot must be treated as read-only.
func (b *base) Snapshot() *game.Snapshot {
	return b.snap
}

func (b *base) Graph() *game.Graph {
	return b.graph
}

func (b *base) Moves() []game.Move {
	return b.MovesOf(b.snap.Current)
}

func (b *base) MovesOf(r game.Role) []game.Move {
	return game.SortMoves(b.rules.LegalMoves(b.snap, r))
}

func (b *base) Winners() []game.Role {
	if !b.judged {
		b.winners = b.rules.Winners(b.snap)
		b.judged = true
	}
	return b.winners
}

func (b *base) IsGameOver() bool {
	return len(b.Winners()) > 0
}

func (b *base) IsTerminal(maxDepth int) bool {
	return b.IsGameOver() || b.depth >= maxDepth
}

// play applies m to a copy of the snapshot.
func (b *base) play(m game.Move) (*game.Snapshot, error) {
	snap := b.snap.Clone()
	if err := b.rules.Play(snap, m); err != nil {
		// Both sentinels must stay visible to errors.Is, which Wrapf cannot do
		return nil, errors.WithStack(fmt.Errorf("%w: %s at depth %d: %w", ErrInconsistentState, m, b.depth, err))
	}
	return snap, nil
}

func (b *base) hash(extra ...game.Location) game.StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, uint64(b.snap.Hash()))
	binary.Write(hasher, binary.LittleEndian, int64(b.depth))

	// Hash the move that led here
	binary.Write(hasher, binary.LittleEndian, int64(b.move.Kind))
	binary.Write(hasher, binary.LittleEndian, int64(b.move.Role))
	for _, step := range []game.Step{b.move.First, b.move.Second} {
		binary.Write(hasher, binary.LittleEndian, int64(step.Ticket))
		binary.Write(hasher, binary.LittleEndian, int64(step.Target))
	}

	for _, loc := range extra {
		binary.Write(hasher, binary.LittleEndian, int64(loc))
	}

	return game.StateHash(hasher.Sum64())
}
