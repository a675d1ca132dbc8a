// Package filter prunes legal moves before the search expands them.
package filter

import (
	"sort"

	"pursuit/distance"
	"pursuit/game"
	"pursuit/state"
)

type Config struct {
	// CloseDistance is the general-mode distance at which a seeker counts as
	// closing in.
	CloseDistance float64
	// MinCloseSeekers is how many close seekers unlock double moves.
	MinCloseSeekers int
	// OpeningRounds is the number of rounds at the start of a match in which
	// the evader keeps its secret tickets.
	OpeningRounds int
	// Keep is how many seeker moves survive.
	Keep int
}

func DefaultConfig() Config {
	return Config{
		CloseDistance:   2,
		MinCloseSeekers: 2,
		OpeningRounds:   2,
		Keep:            2,
	}
}

type Option func(*Config)

func WithCloseDistance(d float64) Option {
	return func(c *Config) {
		c.CloseDistance = d
	}
}

func WithMinCloseSeekers(n int) Option {
	return func(c *Config) {
		c.MinCloseSeekers = n
	}
}

func WithOpeningRounds(n int) Option {
	return func(c *Config) {
		c.OpeningRounds = n
	}
}

func WithKeep(n int) Option {
	return func(c *Config) {
		c.Keep = n
	}
}

func newConfig(options []Option) Config {
	config := DefaultConfig()
	for _, option := range options {
		option(&config)
	}
	if config.Keep < 1 {
		panic("filter must keep at least one move")
	}
	return config
}

// hasPass reports whether moves contains a pass; such a set is never filtered.
func hasPass(moves []game.Move) bool {
	for _, m := range moves {
		if m.IsPass() {
			return true
		}
	}
	return false
}

// Evader prunes evader moves: secret tickets are saved for when they hide
// something and double moves for when seekers close in.
type Evader struct {
	oracle *distance.Oracle
	config Config
}

func NewEvader(oracle *distance.Oracle, options ...Option) *Evader {
	return &Evader{oracle: oracle, config: newConfig(options)}
}

func (e *Evader) Apply(n state.Node, moves []game.Move) []game.Move {
	if len(moves) == 0 || hasPass(moves) {
		return moves
	}
	loc, ok := n.EvaderLocation()
	if !ok {
		return moves
	}
	snap := n.Snapshot()

	singles := []game.Move{}
	doubles := []game.Move{}
	allTaxi := true
	hasSecret := false
	for _, m := range moves {
		switch {
		case m.IsDouble():
			doubles = append(doubles, m)
		case m.Uses(game.SecretTicket):
			hasSecret = true
			singles = append(singles, m)
		default:
			allTaxi = allTaxi && m.Uses(game.TaxiTicket)
			singles = append(singles, m)
		}
	}

	conceal := !allTaxi && !snap.IsRevealRound(snap.Round+1) && snap.Round >= e.config.OpeningRounds
	onBoat := conceal && hasSecret && n.Graph().HasRoute(loc, game.Boat)
	closeIn := e.closeSeekers(n, loc) >= e.config.MinCloseSeekers

	kept := []game.Move{}
	for _, m := range singles {
		secret := m.Uses(game.SecretTicket)
		if (!conceal && secret) || (onBoat && !secret) {
			continue
		}
		kept = append(kept, m)
	}
	if closeIn {
		for _, m := range doubles {
			switch {
			case m.Destination() == loc:
			case !conceal && m.Uses(game.SecretTicket):
			case onBoat && m.First.Ticket != game.SecretTicket:
			default:
				kept = append(kept, m)
			}
		}
	}

	if len(kept) == 0 {
		return moves
	}
	return game.SortMoves(kept)
}

// closeSeekers counts the seekers that can still move and stand within the
// close distance of loc.
func (e *Evader) closeSeekers(n state.Node, loc game.Location) int {
	table := e.oracle.Distances(loc, distance.General)
	snap := n.Snapshot()
	count := 0
	for _, r := range snap.Seekers() {
		moves := n.MovesOf(r)
		if len(moves) == 1 && moves[0].IsPass() {
			continue
		}
		if table.To(snap.Location(r)) <= e.config.CloseDistance {
			count++
		}
	}
	return count
}

// Seeker keeps the moves that end closest to where the evader is, or was
// last seen, as if the seeker knew.
type Seeker struct {
	oracle *distance.Oracle
	config Config
}

func NewSeeker(oracle *distance.Oracle, options ...Option) *Seeker {
	return &Seeker{oracle: oracle, config: newConfig(options)}
}

func (s *Seeker) Apply(n state.Node, moves []game.Move) []game.Move {
	if len(moves) <= s.config.Keep || hasPass(moves) {
		return moves
	}
	loc, ok := n.EvaderLocation()
	if !ok {
		return moves
	}

	table := s.oracle.Distances(loc, distance.General)
	sorted := game.SortMoves(append([]game.Move(nil), moves...))
	sort.SliceStable(sorted, func(i, j int) bool {
		return table.To(sorted[i].Destination()) < table.To(sorted[j].Destination())
	})
	return game.SortMoves(sorted[:s.config.Keep])
}

// ByRole applies the evader or seeker filter depending on whose turn it is.
type ByRole struct {
	Evader *Evader
	Seeker *Seeker
}

func NewByRole(oracle *distance.Oracle, options ...Option) *ByRole {
	return &ByRole{
		Evader: NewEvader(oracle, options...),
		Seeker: NewSeeker(oracle, options...),
	}
}

func (b *ByRole) Apply(n state.Node, moves []game.Move) []game.Move {
	if n.Player().IsEvader() {
		return b.Evader.Apply(n, moves)
	}
	return b.Seeker.Apply(n, moves)
}
