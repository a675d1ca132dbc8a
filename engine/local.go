package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher/agent"
)

type Local struct {
	State    *game.Snapshot
	Rules    game.Rules
	Agents   []agent.Agent // Indexed by role
	MaxMoves int
}

// LocalEngine runs a match in process. agents[0] plays the evader and
// agents[r] plays seeker r.
func LocalEngine(agents []agent.Agent, snap *game.Snapshot, rules game.Rules) *Local {
	if len(agents) != snap.Players() {
		panic("number of agents does not match number of players")
	}
	if len(agents) < 2 {
		panic("need at least two players")
	}

	return &Local{
		State:    snap.Clone(),
		Rules:    rules,
		Agents:   agents,
		MaxMoves: MaxMoves,
	}
}

// Run plays until the rules declare a winner or MaxMoves is reached.
func (e *Local) Run() ([]game.Role, metrics.GameMetric, []metrics.MoveMetric) {
	log.Info().Msgf("%s is starting", e.State.Current)

	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}

	step := 1
	for !game.IsGameOver(e.Rules, e.State) && step <= e.MaxMoves {
		player := e.State.Current
		move, searchMetric := e.Agents[player].FindMove(e.State.Clone())

		legal := e.Rules.LegalMoves(e.State, player)
		if !game.ContainsMove(legal, move) {
			if len(legal) == 0 {
				panic("No legal moves at all!")
			}
			fallback := game.SortMoves(legal)[0]
			log.Warn().Msgf("%s returned illegal move %s, playing %s", player, move, fallback)
			move = fallback
		}

		for _, a := range e.Agents {
			a.Observe(e.State, move)
		}
		if err := e.Rules.Play(e.State, move); err != nil {
			panic(err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		step++
	}

	winners := e.Rules.Winners(e.State)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step - 1
	gameMetric.Rounds = e.State.Round
	gameMetric.Winner = Describe(winners)

	if len(winners) == 0 {
		log.Info().Msgf("stopped after %d moves without a winner", e.MaxMoves)
	} else {
		log.Info().Msgf("%s won after %d moves", gameMetric.Winner, gameMetric.TotalMoves)
	}
	return winners, gameMetric, moveMetrics
}

// Describe names the winning side.
func Describe(winners []game.Role) string {
	switch {
	case len(winners) == 0:
		return "none"
	case winners[0].IsEvader():
		return "evader"
	default:
		return "seekers"
	}
}
