package game

import "github.com/pkg/errors"

var ErrIllegalMove = errors.New("illegal move")

// Rules is the rules engine the search consumes. Implementations are the
// single source of truth for legality and must not keep per-snapshot state:
// everything that changes during a match lives in the Snapshot.
type Rules interface {
	// LegalMoves lists the moves role may make in s. A stuck seeker gets a
	// single pass; a stuck evader gets none.
	LegalMoves(s *Snapshot, r Role) []Move
	// Play validates m against s and applies it in place, advancing tickets,
	// locations, the round counter and the turn.
	Play(s *Snapshot, m Move) error
	// Winners returns the winning roles, or nil while the game is running.
	Winners(s *Snapshot) []Role
}

func IsGameOver(rules Rules, s *Snapshot) bool {
	return len(rules.Winners(s)) > 0
}

// StandardRules implements the classic pursuit rules on a Graph.
type StandardRules struct {
	Graph *Graph
}

func NewStandardRules(g *Graph) *StandardRules {
	return &StandardRules{Graph: g}
}

func (sr *StandardRules) LegalMoves(s *Snapshot, r Role) []Move {
	if r.IsEvader() {
		return sr.evaderMoves(s)
	}
	return sr.seekerMoves(s, r)
}

func (sr *StandardRules) evaderMoves(s *Snapshot) []Move {
	from := s.Locations[Evader]
	if from == NoLocation {
		return nil
	}
	tickets := s.Tickets[Evader]

	moves := []Move{}
	firsts := sr.evaderSteps(s, from, tickets)
	for _, step := range firsts {
		moves = append(moves, NewTicketMove(Evader, step.Ticket, step.Target))
	}

	// A double move needs two rounds left to play both halves
	if tickets[DoubleTicket] == 0 || s.Round+2 > s.MaxRounds() {
		return moves
	}
	for _, first := range firsts {
		remaining := tickets
		remaining[first.Ticket]--
		for _, second := range sr.evaderSteps(s, first.Target, remaining) {
			moves = append(moves, NewDoubleMove(Evader, first, second))
		}
	}
	return moves
}

func (sr *StandardRules) evaderSteps(s *Snapshot, from Location, tickets Tickets) []Step {
	seen := make(map[Step]bool)
	steps := []Step{}
	add := func(step Step) {
		if !seen[step] {
			seen[step] = true
			steps = append(steps, step)
		}
	}

	for _, edge := range sr.Graph.Edges(from) {
		if s.IsSeekerAt(edge.To) {
			continue
		}
		if t := TicketFor(edge.Route); tickets[t] > 0 {
			add(Step{Ticket: t, Target: edge.To})
		}
		if tickets[SecretTicket] > 0 {
			add(Step{Ticket: SecretTicket, Target: edge.To})
		}
	}
	return steps
}

func (sr *StandardRules) seekerMoves(s *Snapshot, r Role) []Move {
	from := s.Locations[r]
	seen := make(map[Move]bool)
	moves := []Move{}

	for _, edge := range sr.Graph.Edges(from) {
		if edge.Route == Boat {
			continue
		}
		t := TicketFor(edge.Route)
		if s.Tickets[r][t] == 0 || sr.occupiedBySeeker(s, r, edge.To) {
			continue
		}
		m := NewTicketMove(r, t, edge.To)
		if !seen[m] {
			seen[m] = true
			moves = append(moves, m)
		}
	}

	if len(moves) == 0 {
		return []Move{NewPass(r)}
	}
	return moves
}

func (sr *StandardRules) occupiedBySeeker(s *Snapshot, except Role, loc Location) bool {
	for r := 1; r < len(s.Locations); r++ {
		if Role(r) != except && s.Locations[r] == loc {
			return true
		}
	}
	return false
}

func (sr *StandardRules) Play(s *Snapshot, m Move) error {
	if m.Role != s.Current {
		return errors.Wrapf(ErrIllegalMove, "%s played on %s's turn", m, s.Current)
	}
	if !ContainsMove(sr.LegalMoves(s, m.Role), m) {
		return errors.Wrapf(ErrIllegalMove, "%s", m)
	}

	if m.IsDouble() {
		s.Tickets[m.Role][DoubleTicket]--
	}
	for _, step := range m.Steps() {
		s.Tickets[m.Role][step.Ticket]--
		s.Locations[m.Role] = step.Target
		if m.Role.IsEvader() {
			s.Round++
		}
	}

	s.Current = s.NextRole(s.Current)
	return nil
}

func (sr *StandardRules) Winners(s *Snapshot) []Role {
	evader := s.Locations[Evader]
	if evader != NoLocation && s.IsSeekerAt(evader) {
		return s.Seekers()
	}
	if s.Current == Evader && evader != NoLocation && len(sr.evaderMoves(s)) == 0 {
		return s.Seekers()
	}

	stuck := true
	for _, r := range s.Seekers() {
		if moves := sr.seekerMoves(s, r); len(moves) != 1 || !moves[0].IsPass() {
			stuck = false
			break
		}
	}
	if stuck {
		return []Role{Evader}
	}

	// The final round ends once every seeker has answered the evader's last move
	if s.Round >= s.MaxRounds() && s.Current == Evader {
		return []Role{Evader}
	}
	return nil
}
