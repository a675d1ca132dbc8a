package agent

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pursuit/belief"
	"pursuit/distance"
	"pursuit/experiments/metrics"
	"pursuit/filter"
	"pursuit/game"
	"pursuit/heuristic"
	"pursuit/searcher"
	"pursuit/state"
)

type Option func(d *Decider)

// WithSeed seeds the random fallback move.
func WithSeed(seed uint64) Option {
	return func(d *Decider) {
		d.seed = seed
	}
}

// WithStrategies overrides the evader's and the seekers' search strategy.
func WithStrategies(evader, seeker searcher.Strategy) Option {
	return func(d *Decider) {
		d.evaderStrategy = evader
		d.seekerStrategy = seeker
	}
}

func WithSearchOptions(options ...searcher.Option) Option {
	return func(d *Decider) {
		d.searchOptions = append(d.searchOptions, options...)
	}
}

func WithFilterOptions(options ...filter.Option) Option {
	return func(d *Decider) {
		d.filterOptions = append(d.filterOptions, options...)
	}
}

// WithoutFilter expands every legal move.
func WithoutFilter() Option {
	return func(d *Decider) {
		d.unfiltered = true
	}
}

func WithMetrics() Option {
	return func(d *Decider) {
		d.metrics = metrics.NewCollector()
	}
}

// Decider picks moves for whichever role is to move. It follows the match as
// a spectator so the seekers' belief about the evader stays current.
type Decider struct {
	graph   *game.Graph
	rules   game.Rules
	oracle  *distance.Oracle
	tracker *belief.Tracker

	belief    belief.Set
	lastKnown game.Location
	started   bool

	seed           uint64
	random         *rand.Rand
	evaderStrategy searcher.Strategy
	seekerStrategy searcher.Strategy
	searchOptions  []searcher.Option
	filterOptions  []filter.Option
	unfiltered     bool
	evader         *searcher.Searcher
	seeker         *searcher.Searcher
	metrics        metrics.Collector
	last           searcher.Result
}

func NewDecider(g *game.Graph, rules game.Rules, options ...Option) *Decider {
	d := &Decider{ // Default values
		graph:          g,
		rules:          rules,
		oracle:         distance.NewOracle(g),
		tracker:        belief.NewTracker(g),
		lastKnown:      game.NoLocation,
		seed:           1,
		evaderStrategy: searcher.AlphaBeta,
		seekerStrategy: searcher.Expectiminimax,
		metrics:        metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(d)
	}
	d.random = rand.New(rand.NewSource(d.seed))

	common := []searcher.Option{searcher.WithMetrics(d.metrics)}
	if !d.unfiltered {
		common = append(common, searcher.WithFilter(filter.NewByRole(d.oracle, d.filterOptions...)))
	}
	common = append(common, d.searchOptions...)

	d.evader = searcher.NewSearcher(d.evaderStrategy, heuristic.NewEvader(d.oracle).Score, common...)
	d.seeker = searcher.NewSearcher(d.seekerStrategy, heuristic.NewSeeker(d.oracle).Score, common...)
	return d
}

// Belief is the seekers' current belief about the evader's location.
func (d *Decider) Belief() belief.Set {
	return d.belief
}

// LastResult is the result of the most recent search that produced one.
func (d *Decider) LastResult() searcher.Result {
	return d.last
}

// Metric returns the metrics of the most recent decision.
func (d *Decider) Metric() metrics.SearchMetric {
	return d.metrics.Complete()
}

func (d *Decider) start(snap *game.Snapshot) {
	if d.started {
		return
	}
	d.started = true
	d.belief = d.tracker.Initial(snap.SeekerLocations())
}

// Observe folds a move that is about to be played on before into the
// belief.
func (d *Decider) Observe(before *game.Snapshot, m game.Move) {
	d.start(before)

	if !m.Role.IsEvader() {
		d.belief = d.tracker.ObserveSeeker(d.belief, m)
		return
	}

	d.belief = d.tracker.ObserveEvader(d.belief, m, before.Round, before.IsRevealRound, before.SeekerLocations())
	for i, step := range m.Steps() {
		if before.IsRevealRound(before.Round + i + 1) {
			d.lastKnown = step.Target
		}
	}
	if d.belief.IsEmpty() {
		log.Warn().Msgf("belief about the evader emptied after %s, starting over", m)
		d.belief = d.tracker.Initial(before.SeekerLocations())
	}
}

// DecideMove searches for the move of the role to play in snap and returns
// once the deadline has passed or the search is done. The evader searches
// with full information; a seeker never sees the evader's location in snap.
//
// When the deadline passes before any pass completes, a random legal move is
// returned. Other errors mean the search or the rules are broken.
func (d *Decider) DecideMove(ctx context.Context, snap *game.Snapshot, deadline time.Duration) (game.Move, error) {
	d.start(snap)

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	var root state.Node
	s := d.evader
	if snap.Current.IsEvader() {
		root = state.NewEvader(d.rules, d.graph, snap)
	} else {
		root = state.NewSeeker(d.rules, d.graph, snap, snap.Current, d.belief, d.lastKnown)
		s = d.seeker
	}

	result, err := s.Search(ctx, root)
	if err == nil {
		d.last = result
		return result.Move, nil
	}
	if !errors.Is(err, searcher.ErrNoDecision) {
		return game.Move{}, err
	}

	moves := game.SortMoves(d.rules.LegalMoves(snap, snap.Current))
	if len(moves) == 0 {
		return game.Move{}, errors.Wrapf(searcher.ErrNoMoves, "fallback for %s", snap.Current)
	}
	d.metrics.SetFallback()
	move := moves[d.random.Intn(len(moves))]
	log.Debug().Stringer("move", move).Msg("no search pass completed, playing a random move")
	return move, nil
}
