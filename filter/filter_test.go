package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"pursuit/belief"
	"pursuit/distance"
	"pursuit/game"
	"pursuit/state"
)

// harbour builds a small map where 10 is a boat node.
func harbour() *game.Graph {
	g := game.NewGraph()
	g.AddEdge(10, 11, game.Taxi)
	g.AddEdge(10, 12, game.Bus)
	g.AddEdge(10, 13, game.Boat)
	g.AddEdge(11, 14, game.Taxi)
	g.AddEdge(11, 16, game.Taxi)
	g.AddEdge(12, 15, game.Taxi)
	g.AddEdge(20, 21, game.Taxi)
	return g
}

func node(g *game.Graph, round int, seekers ...game.Location) state.Node {
	locations := append([]game.Location{10}, seekers...)
	tickets := []game.Tickets{game.NewTickets(4, 4, 4, 4, 2)}
	for range seekers {
		tickets = append(tickets, game.NewTickets(10, 10, 10, 0, 0))
	}
	snap := game.NewSnapshot(locations, tickets, make([]bool, 10))
	snap.Round = round
	return state.NewEvader(game.NewStandardRules(g), g, snap)
}

var (
	taxi11    = game.NewTicketMove(game.Evader, game.TaxiTicket, 11)
	bus12     = game.NewTicketMove(game.Evader, game.BusTicket, 12)
	secret11  = game.NewTicketMove(game.Evader, game.SecretTicket, 11)
	secret12  = game.NewTicketMove(game.Evader, game.SecretTicket, 12)
	secret13  = game.NewTicketMove(game.Evader, game.SecretTicket, 13)
	away      = game.NewDoubleMove(game.Evader, game.Step{Ticket: game.TaxiTicket, Target: 11}, game.Step{Ticket: game.TaxiTicket, Target: 16})
	back      = game.NewDoubleMove(game.Evader, game.Step{Ticket: game.TaxiTicket, Target: 11}, game.Step{Ticket: game.TaxiTicket, Target: 10})
	hiddenOut = game.NewDoubleMove(game.Evader, game.Step{Ticket: game.SecretTicket, Target: 13}, game.Step{Ticket: game.SecretTicket, Target: 10})
)

func TestEvaderFilter(t *testing.T) {
	g := harbour()
	f := NewEvader(distance.NewOracle(g))
	all := []game.Move{taxi11, bus12, secret11, secret12, secret13}

	t.Run("secret tickets are dropped during the opening rounds", func(t *testing.T) {
		got := f.Apply(node(g, 0, 20), all)

		require.Empty(t, cmp.Diff([]game.Move{taxi11, bus12}, got))
	})

	t.Run("secret tickets are dropped before a reveal", func(t *testing.T) {
		n := node(g, 4, 20)
		n.Snapshot().Reveal[5] = true

		got := f.Apply(n, all)

		require.Empty(t, cmp.Diff([]game.Move{taxi11, bus12}, got))
	})

	t.Run("secret tickets are dropped when every other move is a taxi", func(t *testing.T) {
		got := f.Apply(node(g, 4, 20), []game.Move{taxi11, secret11, secret13})

		require.Empty(t, cmp.Diff([]game.Move{taxi11}, got))
	})

	t.Run("on a boat node only secret moves remain", func(t *testing.T) {
		got := f.Apply(node(g, 4, 20), all)

		require.Empty(t, cmp.Diff([]game.Move{secret11, secret12, secret13}, got))
	})

	t.Run("double moves need two close seekers", func(t *testing.T) {
		moves := []game.Move{taxi11, bus12, away, back}

		require.Empty(t, cmp.Diff([]game.Move{taxi11, bus12}, f.Apply(node(g, 4, 14, 20), moves)))
		require.Empty(t, cmp.Diff([]game.Move{taxi11, bus12, away}, f.Apply(node(g, 4, 14, 15), moves)),
			"A double move back to the start is never kept")
	})

	t.Run("boat node with seekers closing in allows secret doubles", func(t *testing.T) {
		moves := []game.Move{taxi11, bus12, secret13, away, hiddenOut}

		got := f.Apply(node(g, 4, 14, 15), moves)

		require.Empty(t, cmp.Diff([]game.Move{secret13}, got), "A secret double back to the start is dropped too")
	})

	t.Run("never empty", func(t *testing.T) {
		moves := []game.Move{secret11, secret13}

		got := f.Apply(node(g, 0, 20), moves)

		require.Equal(t, moves, got)
	})

	t.Run("input is not modified", func(t *testing.T) {
		moves := []game.Move{secret13, bus12, taxi11}

		f.Apply(node(g, 0, 20), moves)

		require.Equal(t, []game.Move{secret13, bus12, taxi11}, moves)
	})
}

func TestSeekerFilter(t *testing.T) {
	g := game.NewGraph()
	for loc := game.Location(1); loc < 8; loc++ {
		g.AddEdge(loc, loc+1, game.Taxi)
	}
	rules := game.NewStandardRules(g)
	f := NewSeeker(distance.NewOracle(g))
	seeker := game.Role(1)
	moves := []game.Move{
		game.NewTicketMove(seeker, game.TaxiTicket, 3),
		game.NewTicketMove(seeker, game.TaxiTicket, 5),
		game.NewTicketMove(seeker, game.TaxiTicket, 6),
		game.NewTicketMove(seeker, game.TaxiTicket, 1),
	}
	snap := game.NewSnapshot(
		[]game.Location{7, 4},
		[]game.Tickets{game.NewTickets(5, 0, 0, 0, 0), game.NewTickets(5, 0, 0, 0, 0)},
		make([]bool, 10),
	)
	snap.Current = seeker

	t.Run("keeps the two moves closest to the evader", func(t *testing.T) {
		got := f.Apply(state.NewEvader(rules, g, snap), moves)

		require.Empty(t, cmp.Diff([]game.Move{moves[1], moves[2]}, got))
	})

	t.Run("uses the last revealed location when hidden", func(t *testing.T) {
		n := state.NewSeeker(rules, g, snap, seeker, belief.NewSet(6, 7, 8), 2)

		got := f.Apply(n, moves)

		require.Empty(t, cmp.Diff([]game.Move{moves[3], moves[0]}, game.SortMoves(got)))
	})

	t.Run("unfiltered without any evader location", func(t *testing.T) {
		n := state.NewSeeker(rules, g, snap, seeker, belief.NewSet(6, 7, 8), game.NoLocation)

		require.Equal(t, moves, f.Apply(n, moves))
	})

	t.Run("pass is preserved", func(t *testing.T) {
		pass := []game.Move{game.NewPass(seeker)}

		require.Equal(t, pass, f.Apply(state.NewEvader(rules, g, snap), pass))
	})
}

func TestByRole(t *testing.T) {
	g := harbour()
	f := NewByRole(distance.NewOracle(g), WithKeep(1))

	got := f.Apply(node(g, 0, 20), []game.Move{taxi11, secret13})

	require.Equal(t, []game.Move{taxi11}, got)
}
