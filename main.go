package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pursuit/engine"
	"pursuit/experiments"
	"pursuit/game"
	"pursuit/searcher"
	"pursuit/searcher/agent"
)

func main() {
	experiment := flag.String("experiment", "", "Experiment to run: strategy or filter. Plays a single match when empty")
	games := flag.Int("games", experiments.NumGames, "Games per match up")
	budget := flag.Duration("budget", experiments.TimeBudget, "Search time per move")
	depth := flag.Int("depth", experiments.MaxDepth, "Maximum search depth")
	seed := flag.Uint64("seed", 1, "Seed for fallback and random moves")
	dir := flag.String("dir", "results", "Directory for experiment results")
	dot := flag.String("dot", "", "Write the evader's last search as a DOT graph to this file")
	debug := flag.Bool("debug", false, "Log every search pass")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	out := termenv.NewOutput(os.Stdout)
	settings := experiments.Settings{Dir: *dir, Games: *games, Budget: *budget, Seed: *seed}

	var err error
	var results string
	switch *experiment {
	case "":
		err = playMatch(out, *budget, *depth, *seed, *dot)
	case "strategy":
		results, err = experiments.RunStrategyExperiment(settings)
	case "filter":
		results, err = experiments.RunFilterExperiment(settings)
	default:
		err = fmt.Errorf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
	if results != "" {
		fmt.Fprintln(out, out.String("results stored in", results).Bold())
	}
}

// playMatch plays one searching evader against searching seekers on the
// standard board and prints every move.
func playMatch(out *termenv.Output, budget time.Duration, depth int, seed uint64, dot string) error {
	g := game.NewBoard()
	rules := game.NewStandardRules(g)
	snap := game.NewStandardSnapshot()

	deciders := []*agent.Decider{}
	agents := []agent.Agent{}
	for i := 0; i < snap.Players(); i++ {
		d := agent.NewDecider(g, rules,
			agent.WithSeed(seed+uint64(i)),
			agent.WithMetrics(),
			agent.WithSearchOptions(searcher.WithMaxDepth(depth)),
		)
		deciders = append(deciders, d)
		agents = append(agents, agent.NewSearchAgent(d, budget))
	}

	e := engine.LocalEngine(agents, snap, rules)
	_, gameMetric, moveMetrics := e.Run()

	evaderColor := out.Color("1")
	seekerColor := out.Color("4")
	for _, mm := range moveMetrics {
		color := seekerColor
		if game.Role(mm.Player).IsEvader() {
			color = evaderColor
		}
		line := fmt.Sprintf("%3d %-8s %-14s depth=%d nodes=%d", mm.Step, game.Role(mm.Player), mm.Move, mm.Depth, mm.Nodes)
		if mm.Fallback {
			line += " (fallback)"
		}
		fmt.Fprintln(out, out.String(line).Foreground(color))
	}

	winner := out.String(fmt.Sprintf("%s won after %d rounds (%s)", gameMetric.Winner, gameMetric.Rounds, gameMetric.Duration.Round(time.Millisecond)))
	fmt.Fprintln(out, winner.Bold())

	if dot == "" {
		return nil
	}
	result := deciders[game.Evader].LastResult()
	if len(result.Children) == 0 {
		return fmt.Errorf("no search result to export")
	}
	err := os.WriteFile(dot, []byte(result.ToDot()), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dot, err)
	}
	log.Info().Msgf("wrote the evader's last search to %s", dot)
	return nil
}
