package searcher

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/heuristic"
	"pursuit/state"
)

const (
	DefaultStartDepth = 2
	DefaultMaxDepth   = 32
)

type Strategy int

const (
	Minimax Strategy = iota
	AlphaBeta
	Expectiminimax
)

func (s Strategy) String() string {
	switch s {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	case Expectiminimax:
		return "expectiminimax"
	default:
		return "unknown"
	}
}

// Filter prunes the moves of a node before they are expanded.
type Filter interface {
	Apply(n state.Node, moves []game.Move) []game.Move
}

type Option func(s *Searcher)

func WithFilter(f Filter) Option {
	return func(s *Searcher) {
		s.filter = f
	}
}

// WithStartDepth sets the depth of the first iterative deepening pass.
func WithStartDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.startDepth = depth
		}
	}
}

// WithMaxDepth caps iterative deepening.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Searcher) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// Searcher runs a depth-limited game tree search with iterative deepening.
// The player to move at the root is the maximising player; evaluate must
// score nodes from that player's side.
type Searcher struct {
	strategy   Strategy
	evaluate   heuristic.Func
	filter     Filter
	startDepth int
	maxDepth   int
	metrics    metrics.Collector
}

func NewSearcher(strategy Strategy, evaluate heuristic.Func, options ...Option) *Searcher {
	s := &Searcher{ // Default values
		strategy:   strategy,
		evaluate:   evaluate,
		startDepth: DefaultStartDepth,
		maxDepth:   DefaultMaxDepth,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.evaluate == nil {
		panic("Must specify an evaluation function")
	}
	if s.startDepth > s.maxDepth {
		panic("Start depth must not exceed max depth")
	}
	return s
}

func (s *Searcher) Strategy() Strategy {
	return s.strategy
}

// Search deepens from the start depth until ctx is done, the tree is solved
// or the max depth is reached. It returns the result of the deepest pass that
// completed. Passes interrupted by ctx are thrown away.
//
// The search runs on its own goroutine and Search blocks until it has
// returned, which happens promptly once ctx is done.
func (s *Searcher) Search(ctx context.Context, root state.Node) (Result, error) {
	if len(root.Moves()) == 0 {
		return Result{}, errors.Wrapf(ErrNoMoves, "%s at depth %d", root.Player(), root.Depth())
	}

	s.metrics.Start(s.strategy.String())

	var result Result
	found := false

	var g errgroup.Group
	g.Go(func() error {
		var previous map[game.StateHash]float64
		for depth := s.startDepth; depth <= s.maxDepth; depth++ {
			p := s.newPass(ctx, root, depth, previous)
			children, err := p.run()
			if err != nil {
				return err
			}
			if p.stopped() {
				log.Debug().Str("strategy", s.strategy.String()).Int("depth", depth).Msg("pass abandoned")
				return nil
			}

			result = p.decide(children)
			found = true
			previous = p.scores
			s.metrics.CompletePass(depth)
			log.Debug().
				Str("strategy", s.strategy.String()).
				Int("depth", depth).
				Stringer("move", result.Move).
				Float64("score", result.Score).
				Msg("pass complete")

			if !p.cutoff {
				return nil // Every line ended before the depth limit
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, errors.WithStack(ErrNoDecision)
	}
	return result, nil
}
