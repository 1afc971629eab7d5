package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/treeclimber/internal/core"
	"github.com/vovakirdan/treeclimber/internal/games/climber"
	"github.com/vovakirdan/treeclimber/internal/registry"
	"github.com/vovakirdan/treeclimber/internal/score"
)

var (
	flagSimTicks int
	flagSimRuns  int
	flagSimSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Let the autopilot play headless",
	Long: `Run the autopilot without a terminal UI and print how each run ended.
Runs use consecutive seeds starting at --seed, so results are reproducible.

Examples:
  treeclimber sim --seed 1 --ticks 36000
  treeclimber sim climber-exp --runs 20 --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Maximum ticks per run")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Commit high scores to the score store")
}

func runSim(_ *cobra.Command, args []string) {
	gameID := climber.IDLinear
	if len(args) == 1 {
		gameID = args[0]
	}
	mustExist(gameID)

	cfg := loadConfig()
	logger := newLogger(os.Stderr)
	deps := registry.Deps{Config: cfg, Logger: logger}
	if flagSimSave {
		st, err := openStores()
		if err != nil {
			fail("opening score store: %v", err)
		}
		defer st.Close()
		deps.Scores = st.scores
	}

	base := seed()
	fmt.Printf("  %-20s  %-8s  %-8s  %-8s  %s\n", "Seed", "Score", "Ticks", "Segments", "Result")
	best := 0.0
	for i := 0; i < flagSimRuns; i++ {
		game, err := registry.Create(gameID, deps)
		if err != nil {
			fail("creating game: %v", err)
		}
		g, ok := game.(*climber.Game)
		if !ok {
			fail("game %q has no autopilot", gameID)
		}

		rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: base + int64(i)}
		g.Reset(rt)
		for g.Tick() < flagSimTicks && !g.State().GameOver {
			g.Step(g.AutoInput())
		}

		result := "alive"
		switch {
		case g.Err() != nil:
			result = g.Err().Error()
		case g.State().GameOver:
			result = "died"
		}
		s := g.State().Score
		best = max(best, s)
		fmt.Printf("  %-20d  %-8s  %-8d  %-8d  %s\n", rt.Seed, score.Format(s), g.Tick(), g.Segments(), result)
	}
	if flagSimRuns > 1 {
		fmt.Printf("\nBest: %s\n", score.Format(best))
	}
}
