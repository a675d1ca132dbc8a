package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/state"
)

/*
- minimax: max at the root player's turns, min otherwise
- alpha-beta: same decision as minimax, prunes with ordering
- expectiminimax: chance layers average their outcomes
- safest tie-break, then canonical order
- iterative deepening: deadline, solved trees, max depth, errors
*/

func classic() *mockNode {
	return build(branch(0, 0,
		branch(1, 5, leaf(3), leaf(12)),
		branch(1, 1, leaf(2), leaf(4)),
	))
}

func search(t *testing.T, strategy Strategy, root state.Node, options ...Option) Result {
	t.Helper()
	s := NewSearcher(strategy, mockScore, options...)
	result, err := s.Search(context.Background(), root)
	require.NoError(t, err)
	return result
}

func TestMinimax(t *testing.T) {
	t.Run("maximises at the root player's turn and minimises otherwise", func(t *testing.T) {
		result := search(t, Minimax, classic(), WithMaxDepth(2))

		require.Equal(t, game.NewTicketMove(0, game.TaxiTicket, 1), result.Move)
		require.Equal(t, 3.0, result.Score)
		require.Equal(t, 2, result.Depth)
	})

	t.Run("depth limit evaluates inner nodes", func(t *testing.T) {
		result := search(t, Minimax, classic(), WithStartDepth(1), WithMaxDepth(1))

		require.Equal(t, game.NewTicketMove(0, game.TaxiTicket, 1), result.Move)
		require.Equal(t, 5.0, result.Score)
		require.Equal(t, 1, result.Depth)
	})
}

func TestAlphaBeta(t *testing.T) {
	t.Run("prunes a refuted sibling", func(t *testing.T) {
		collector := metrics.NewCollector()

		result := search(t, AlphaBeta, classic(), WithMaxDepth(2), WithMetrics(collector))

		require.Equal(t, game.NewTicketMove(0, game.TaxiTicket, 1), result.Move)
		require.Equal(t, 3.0, result.Score)
		metric := collector.Complete()
		require.Equal(t, "alphabeta", metric.Strategy)
		require.Equal(t, 1, metric.Cutoffs)
		require.Equal(t, 1, metric.Passes)
		require.Equal(t, 2, metric.Depth)
	})

	t.Run("decides like minimax", func(t *testing.T) {
		for seed := uint64(1); seed <= 20; seed++ {
			r := rand.New(rand.NewSource(seed))
			root := build(randomTree(r, 0, 3))

			want := search(t, Minimax, root, WithStartDepth(3), WithMaxDepth(3))
			got := search(t, AlphaBeta, root, WithStartDepth(3), WithMaxDepth(3))

			require.Equal(t, want.Score, got.Score, "seed %d", seed)
			require.Equal(t, want.Move, got.Move, "seed %d", seed)
		}
	})
}

// randomTree builds a full tree with three children per node and scores
// drawn from a small range so ties are common.
func randomTree(r *rand.Rand, player game.Role, depth int) *mockNode {
	if depth == 0 {
		return &mockNode{player: player, score: float64(r.Intn(10))}
	}
	children := []*mockNode{}
	for i := 0; i < 3; i++ {
		children = append(children, randomTree(r, 1-player, depth-1))
	}
	return branch(player, float64(r.Intn(10)), children...)
}

func TestExpectiminimax(t *testing.T) {
	t.Run("chance layer averages over outcomes", func(t *testing.T) {
		root := build(branch(1, 0,
			chanceOf(0, terminal(10), terminal(20)),
			terminal(12),
		))

		result := search(t, Expectiminimax, root)

		require.Equal(t, game.NewTicketMove(1, game.TaxiTicket, 1), result.Move)
		require.InDelta(t, 15.0, result.Score, 1e-9)
	})

	t.Run("min and max below the chance layer", func(t *testing.T) {
		root := build(branch(1, 0,
			chanceOf(0,
				branch(0, 0, leaf(4), leaf(8)),
				branch(0, 0, leaf(6), leaf(2)),
			),
			leaf(2),
		))

		result := search(t, Expectiminimax, root, WithMaxDepth(2))

		// The evader minimises under each outcome: (4 + 2) / 2
		require.InDelta(t, 3.0, result.Score, 1e-9)
		require.Equal(t, game.NewTicketMove(1, game.TaxiTicket, 1), result.Move)
	})
}

func TestSafestTieBreak(t *testing.T) {
	t.Run("highest immediate score wins a tie", func(t *testing.T) {
		root := build(branch(0, 0,
			branch(1, 1, leaf(3)),
			branch(1, 7, leaf(3)),
			branch(1, 9, leaf(1)),
		))

		for _, strategy := range []Strategy{Minimax, AlphaBeta} {
			result := search(t, strategy, root, WithMaxDepth(2))

			require.Equal(t, game.NewTicketMove(0, game.TaxiTicket, 2), result.Move, strategy.String())
			require.Len(t, result.Children, 3)
			require.True(t, result.Children[0].Tied)
			require.True(t, result.Children[1].Tied)
			require.False(t, result.Children[2].Tied)
			require.Equal(t, 7.0, result.Children[1].Immediate)
		}
	})

	t.Run("canonical order settles the rest", func(t *testing.T) {
		root := build(branch(0, 0,
			branch(1, 4, leaf(3)),
			branch(1, 4, leaf(3)),
		))

		result := search(t, AlphaBeta, root, WithMaxDepth(2))

		require.Equal(t, game.NewTicketMove(0, game.TaxiTicket, 1), result.Move)
	})
}

type keepFirst struct{}

func (keepFirst) Apply(n state.Node, moves []game.Move) []game.Move {
	return moves[:1]
}

func TestSearch(t *testing.T) {
	t.Run("solved tree stops after one pass", func(t *testing.T) {
		collector := metrics.NewCollector()
		root := build(branch(0, 0, terminal(5), terminal(7)))

		result := search(t, AlphaBeta, root, WithMetrics(collector))

		require.Equal(t, game.NewTicketMove(0, game.TaxiTicket, 2), result.Move)
		require.Equal(t, DefaultStartDepth, result.Depth)
		require.Equal(t, 1, collector.Complete().Passes)
	})

	t.Run("deepens until the deadline", func(t *testing.T) {
		collector := metrics.NewCollector()
		s := NewSearcher(AlphaBeta, endlessScore, WithMetrics(collector))
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		result, err := s.Search(ctx, newEndless())

		require.NoError(t, err)
		require.Less(t, time.Since(start), 2*time.Second, "Search should stop soon after the deadline")
		require.GreaterOrEqual(t, result.Depth, DefaultStartDepth)
		require.Equal(t, result.Depth, collector.Complete().Depth, "Result should come from the deepest completed pass")
	})

	t.Run("stops at the max depth", func(t *testing.T) {
		s := NewSearcher(Minimax, endlessScore, WithMaxDepth(4))

		result, err := s.Search(context.Background(), newEndless())

		require.NoError(t, err)
		require.Equal(t, 4, result.Depth)
	})

	t.Run("no decision when no pass completes", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewSearcher(AlphaBeta, endlessScore).Search(ctx, newEndless())

		require.True(t, errors.Is(err, ErrNoDecision))
	})

	t.Run("no moves at the root", func(t *testing.T) {
		_, err := NewSearcher(Minimax, mockScore).Search(context.Background(), build(branch(0, 0)))

		require.True(t, errors.Is(err, ErrNoMoves))
	})

	t.Run("inconsistent state aborts the search", func(t *testing.T) {
		root := classic()
		root.children[0].err = errors.Wrap(state.ErrInconsistentState, "mock")

		_, err := NewSearcher(Expectiminimax, mockScore).Search(context.Background(), root)

		require.True(t, errors.Is(err, state.ErrInconsistentState))
	})

	t.Run("filter prunes before expansion", func(t *testing.T) {
		root := build(branch(0, 0, terminal(3), terminal(5)))

		result := search(t, Minimax, root, WithFilter(keepFirst{}))

		require.Equal(t, game.NewTicketMove(0, game.TaxiTicket, 1), result.Move)
		require.Len(t, result.Children, 1)
	})

	t.Run("bad configuration panics", func(t *testing.T) {
		require.Panics(t, func() { NewSearcher(Minimax, nil) })
		require.Panics(t, func() { NewSearcher(Minimax, mockScore, WithStartDepth(5), WithMaxDepth(3)) })
	})
}

func TestToDot(t *testing.T) {
	result := search(t, Minimax, classic(), WithMaxDepth(2))

	dot := result.ToDot()

	require.Contains(t, dot, "digraph G")
	require.Contains(t, dot, "root")
	require.Contains(t, dot, "fillcolor=lightblue")
	require.Contains(t, dot, result.Move.String())
}
