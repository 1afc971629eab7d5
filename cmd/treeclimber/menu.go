package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/treeclimber/internal/platform/tui"
	"github.com/vovakirdan/treeclimber/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant and Tab for
the scoreboard. After a run, Esc returns to the menu.

Examples:
  treeclimber menu
  treeclimber menu --fps 30
  treeclimber menu --store gdata`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := fileLogger()
	defer closeLog()

	st := openStoresOrWarn()
	defer st.Close()

	player, closeAudio := openAudio(cfg, logger)
	defer closeAudio()

	rt := runtimeConfig()
	for {
		result, err := tui.RunMenu(st.scores, rt)
		if err != nil {
			fail("%v", err)
		}
		rt = result.Config

		switch {
		case result.Quit:
			return

		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(st.lister(), rt.ScreenW, rt.ScreenH)
			if err != nil {
				fail("%v", err)
			}
			if !back {
				return
			}

		default:
			game, err := registry.Create(result.GameID, registry.Deps{
				Config: cfg,
				Audio:  player,
				Scores: st.scores,
				Logger: logger,
			})
			if err != nil {
				fail("creating game: %v", err)
			}
			run, err := tui.Run(game, st.recorder(), rt, logger)
			if err != nil {
				fail("running game: %v", err)
			}
			if !run.BackToMenu {
				return
			}
		}
	}
}
