// treeclimber is an endless tree climbing game for the terminal.
//
// Usage:
//
//	treeclimber list              - List game variants
//	treeclimber play [variant]    - Play a run
//	treeclimber menu              - Pick a variant interactively
//	treeclimber scores <variant>  - Show high scores for a variant
//	treeclimber gen               - Print generated segments as YAML
//	treeclimber sim               - Run the autopilot headless
//	treeclimber serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.treeclimber/scores.db)
//	--store <kind>        - High score store: sqlite or gdata
//	--config <path>       - Custom climber config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--mute                - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/treeclimber/internal/games/climber"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "treeclimber",
	Short: "Tree Climber - climb an endless tree in your terminal",
	Long: `Tree Climber is an endless scroller: circle the trunk, land on branches,
swipe through birds and keep climbing as the tree speeds up.

Available commands:
  list     - Show the game variants
  play     - Play a run
  menu     - Interactive variant picker and scoreboard
  scores   - View high scores
  gen      - Print generated tree segments
  sim      - Let the autopilot play headless
  serve    - Start SSH server for remote play

Examples:
  treeclimber play
  treeclimber play climber-exp --difficulty hard
  treeclimber gen --segments 20 --check
  treeclimber serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.treeclimber/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storeSQLite, "High score store: sqlite or gdata")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom climber config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}
