package agent

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pursuit/experiments/metrics"
	"pursuit/game"
)

type Agent interface {
	// FindMove returns a move for the role to play in snap and the search
	// metrics (if collected).
	FindMove(snap *game.Snapshot) (game.Move, metrics.SearchMetric)
	// Observe is called with every move before it is played, including the
	// agent's own.
	Observe(before *game.Snapshot, m game.Move)
}

type searchAgent struct {
	decider *Decider
	budget  time.Duration
}

// NewSearchAgent returns an agent that gives the decider budget per move.
func NewSearchAgent(decider *Decider, budget time.Duration) Agent {
	return &searchAgent{decider: decider, budget: budget}
}

func (a *searchAgent) FindMove(snap *game.Snapshot) (game.Move, metrics.SearchMetric) {
	move, err := a.decider.DecideMove(context.Background(), snap, a.budget)
	if err != nil {
		log.Error().Err(err).Msgf("%s could not decide a move", snap.Current)
	}
	return move, a.decider.Metric()
}

func (a *searchAgent) Observe(before *game.Snapshot, m game.Move) {
	a.decider.Observe(before, m)
}

type randomAgent struct {
	rules  game.Rules
	random *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal moves.
func NewRandomAgent(rules game.Rules, seed uint64) Agent {
	return &randomAgent{rules: rules, random: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(snap *game.Snapshot) (game.Move, metrics.SearchMetric) {
	moves := game.SortMoves(a.rules.LegalMoves(snap, snap.Current))
	metric := metrics.SearchMetric{Strategy: "random"}
	if len(moves) == 0 {
		return game.Move{}, metric
	}
	return moves[a.random.Intn(len(moves))], metric
}

func (a *randomAgent) Observe(before *game.Snapshot, m game.Move) {}
