package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pursuit/engine"
	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher"
	"pursuit/searcher/agent"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 50 * time.Millisecond
	MaxDepth   = 6
)

type Settings struct {
	Dir    string // Results are written below Dir
	Games  int    // Per match up
	Budget time.Duration
	Seed   uint64
}

func DefaultSettings() Settings {
	return Settings{Dir: "results", Games: NumGames, Budget: TimeBudget, Seed: 1}
}

// MatchUp pairs the agent playing the evader with the agent playing every
// seeker.
type MatchUp struct {
	Evader  metrics.AgentConfig
	Seekers metrics.AgentConfig
}

func configs(settings Settings) (random, evader, seeker, unfiltered, minimax metrics.AgentConfig) {
	random = metrics.AgentConfig{ID: 0, Kind: "random"}
	evader = metrics.AgentConfig{ID: 1, Kind: "search", Strategy: searcher.AlphaBeta.String(), Budget: settings.Budget, MaxDepth: MaxDepth, Filtered: true}
	seeker = metrics.AgentConfig{ID: 2, Kind: "search", Strategy: searcher.Expectiminimax.String(), Budget: settings.Budget, MaxDepth: MaxDepth, Filtered: true}
	unfiltered = metrics.AgentConfig{ID: 3, Kind: "search", Strategy: searcher.AlphaBeta.String(), Budget: settings.Budget, MaxDepth: MaxDepth}
	minimax = metrics.AgentConfig{ID: 4, Kind: "search", Strategy: searcher.Minimax.String(), Budget: settings.Budget, MaxDepth: MaxDepth, Filtered: true}
	return
}

// RunStrategyExperiment plays the searching sides against random play and
// against each other.
func RunStrategyExperiment(settings Settings) (string, error) {
	random, evader, seeker, _, minimax := configs(settings)
	matchUps := []MatchUp{
		{Evader: random, Seekers: random}, // Baseline
		{Evader: evader, Seekers: random},
		{Evader: random, Seekers: seeker},
		{Evader: evader, Seekers: seeker},
		{Evader: minimax, Seekers: seeker},
	}
	return runExperiment("strategy", settings, []metrics.AgentConfig{random, evader, seeker, minimax}, matchUps)
}

// RunFilterExperiment compares a filtered evader with one expanding every
// legal move under the same budget.
func RunFilterExperiment(settings Settings) (string, error) {
	_, evader, seeker, unfiltered, _ := configs(settings)
	matchUps := []MatchUp{
		{Evader: evader, Seekers: seeker},
		{Evader: unfiltered, Seekers: seeker},
	}
	return runExperiment("filter", settings, []metrics.AgentConfig{evader, seeker, unfiltered}, matchUps)
}

// runExperiment plays settings.Games games per match up and stores the
// records as CSV. It returns the directory holding the results.
func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps []MatchUp) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between evader=%+v and seekers=%+v...", mi+1, len(matchUps), matchUp.Evader, matchUp.Seekers)

		for i := 0; i < settings.Games; i++ {
			count++
			winner, gameMetric, moveMetrics := runGame(matchUp, settings.Seed+uint64(count))
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Evader:     matchUp.Evader.ID,
				Seekers:    matchUp.Seekers.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(settings.Dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %d games and %d moves in %s", len(gameRecords), len(moveRecords), writer.Dir())
	return writer.Dir(), nil
}

// runGame plays one game on the standard board and returns the winning side.
func runGame(matchUp MatchUp, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric) {
	g := game.NewBoard()
	rules := game.NewStandardRules(g)
	snap := game.NewStandardSnapshot()

	agents := []agent.Agent{}
	for i := 0; i < snap.Players(); i++ {
		config := matchUp.Seekers
		if game.Role(i).IsEvader() {
			config = matchUp.Evader
		}
		agents = append(agents, createAgent(config, g, rules, seed*uint64(snap.Players())+uint64(i)))
	}

	e := engine.LocalEngine(agents, snap, rules)
	winners, gameMetric, moveMetrics := e.Run()
	return engine.Describe(winners), gameMetric, moveMetrics
}

func createAgent(config metrics.AgentConfig, g *game.Graph, rules game.Rules, seed uint64) agent.Agent {
	if config.Kind == "random" {
		return agent.NewRandomAgent(rules, seed)
	}

	strategy := searcher.AlphaBeta
	for _, s := range []searcher.Strategy{searcher.Minimax, searcher.AlphaBeta, searcher.Expectiminimax} {
		if s.String() == config.Strategy {
			strategy = s
		}
	}
	options := []agent.Option{
		agent.WithSeed(seed),
		agent.WithMetrics(),
		agent.WithStrategies(strategy, strategy),
		agent.WithSearchOptions(searcher.WithMaxDepth(config.MaxDepth)),
	}
	if !config.Filtered {
		options = append(options, agent.WithoutFilter())
	}
	return agent.NewSearchAgent(agent.NewDecider(g, rules, options...), config.Budget)
}
