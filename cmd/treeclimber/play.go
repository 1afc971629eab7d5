package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/treeclimber/internal/games/climber"
	"github.com/vovakirdan/treeclimber/internal/platform/tui"
	"github.com/vovakirdan/treeclimber/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a run",
	Long: `Start a run of the given variant (default: climber).

Controls:
  Left/Right, A/D  - Circle the trunk
  Space            - Swipe through branches and birds
  P                - Pause
  R                - Restart (after game over)
  Esc              - Leave (when paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower climb, fewer birds, more power-ups
  normal - Config as written
  hard   - Faster climb, more birds, fewer power-ups
  fixed  - No speed increase

Examples:
  treeclimber play
  treeclimber play climber-exp
  treeclimber play --difficulty hard --seed 42
  treeclimber play --config ./my-climber.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := climber.IDLinear
	if len(args) == 1 {
		gameID = args[0]
	}
	mustExist(gameID)

	cfg := loadConfig()
	logger, closeLog := fileLogger()
	defer closeLog()

	st := openStoresOrWarn()
	defer st.Close()

	player, closeAudio := openAudio(cfg, logger)
	defer closeAudio()

	game, err := registry.Create(gameID, registry.Deps{
		Config: cfg,
		Audio:  player,
		Scores: st.scores,
		Logger: logger,
	})
	if err != nil {
		fail("creating game: %v", err)
	}

	if _, err := tui.Run(game, st.recorder(), runtimeConfig(), logger); err != nil {
		fail("running game: %v", err)
	}
}
