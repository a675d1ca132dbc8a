package game

import (
	"fmt"
	"sort"
)

// Role identifies a player. The evader is always role 0 and seekers follow.
type Role int

const Evader Role = 0

func (r Role) IsEvader() bool {
	return r == Evader
}

func (r Role) String() string {
	if r == Evader {
		return "MrX"
	}
	return fmt.Sprintf("Detective%d", int(r))
}

type MoveKind int

const (
	SingleMove MoveKind = iota
	DoubleMove
	PassMove
)

// Step is a single ticketed transition.
type Step struct {
	Ticket Ticket
	Target Location
}

// Move is an immutable value; two moves are equal iff all fields are equal.
type Move struct {
	Kind   MoveKind
	Role   Role
	First  Step
	Second Step // only set for double moves
}

func NewTicketMove(role Role, ticket Ticket, target Location) Move {
	return Move{Kind: SingleMove, Role: role, First: Step{Ticket: ticket, Target: target}}
}

func NewDoubleMove(role Role, first, second Step) Move {
	return Move{Kind: DoubleMove, Role: role, First: first, Second: second}
}

func NewPass(role Role) Move {
	return Move{Kind: PassMove, Role: role}
}

func (m Move) IsPass() bool {
	return m.Kind == PassMove
}

func (m Move) IsDouble() bool {
	return m.Kind == DoubleMove
}

// Destination is where the mover ends up. Passes have no destination.
func (m Move) Destination() Location {
	switch m.Kind {
	case SingleMove:
		return m.First.Target
	case DoubleMove:
		return m.Second.Target
	default:
		return NoLocation
	}
}

// Steps returns the ticketed transitions of the move in play order.
func (m Move) Steps() []Step {
	switch m.Kind {
	case SingleMove:
		return []Step{m.First}
	case DoubleMove:
		return []Step{m.First, m.Second}
	default:
		return nil
	}
}

// Uses reports whether any step of the move spends ticket t.
func (m Move) Uses(t Ticket) bool {
	for _, step := range m.Steps() {
		if step.Ticket == t {
			return true
		}
	}
	return m.Kind == DoubleMove && t == DoubleTicket
}

func (m Move) String() string {
	switch m.Kind {
	case SingleMove:
		return fmt.Sprintf("%s %s->%d", m.Role, m.First.Ticket, m.First.Target)
	case DoubleMove:
		return fmt.Sprintf("%s Double[%s->%d, %s->%d]", m.Role,
			m.First.Ticket, m.First.Target, m.Second.Ticket, m.Second.Target)
	default:
		return fmt.Sprintf("%s Pass", m.Role)
	}
}

func (m Move) less(o Move) bool {
	if m.Role != o.Role {
		return m.Role < o.Role
	}
	if m.Kind != o.Kind {
		return m.Kind < o.Kind
	}
	if m.First != o.First {
		return m.First.less(o.First)
	}
	return m.Second.less(o.Second)
}

func (s Step) less(o Step) bool {
	if s.Target != o.Target {
		return s.Target < o.Target
	}
	return s.Ticket < o.Ticket
}

// SortMoves orders moves canonically in place and returns them.
func SortMoves(moves []Move) []Move {
	sort.Slice(moves, func(i, j int) bool {
		return moves[i].less(moves[j])
	})
	return moves
}

// ContainsMove reports whether m is one of moves.
func ContainsMove(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}
