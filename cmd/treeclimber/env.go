package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/treeclimber/internal/audio"
	"github.com/vovakirdan/treeclimber/internal/config"
	"github.com/vovakirdan/treeclimber/internal/core"
	"github.com/vovakirdan/treeclimber/internal/platform/tui"
	"github.com/vovakirdan/treeclimber/internal/registry"
	"github.com/vovakirdan/treeclimber/internal/score"
	"github.com/vovakirdan/treeclimber/internal/storage"
)

const (
	storeSQLite = "sqlite"
	storeGData  = "gdata"

	appName = "treeclimber"
	logFile = "treeclimber.log"
)

// fail prints an error and exits, as every command does on a fatal error.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds a logger at --log-level.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("%v", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
		Level:           level,
	})
}

// fileLogger logs to ~/.treeclimber/treeclimber.log, since the alt screen
// owns the terminal while playing. It falls back to discarding output.
func fileLogger() (*log.Logger, func()) {
	dir := config.HomeDir()
	if dir == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadConfig loads the climber config and applies --difficulty.
func loadConfig() config.ClimberConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}
	return cfg
}

// stores are the persistence backends selected by --store.
type stores struct {
	history *storage.Store // nil unless --store sqlite
	scores  score.HighScoreStore
}

func (s stores) recorder() tui.Recorder {
	if s.history == nil {
		return nil
	}
	return s.history
}

func (s stores) lister() tui.ScoreHistory {
	if s.history == nil {
		return nil
	}
	return s.history
}

func (s stores) Close() {
	if s.history != nil {
		s.history.Close()
	}
}

// openStores opens the store named by --store.
func openStores() (stores, error) {
	switch flagStore {
	case storeSQLite:
		st, err := storage.Open(flagDBPath)
		if err != nil {
			return stores{}, err
		}
		return stores{history: st, scores: st}, nil
	case storeGData:
		p, err := storage.OpenPrefs(appName)
		if err != nil {
			return stores{}, err
		}
		return stores{scores: p}, nil
	default:
		return stores{}, fmt.Errorf("unknown store %q (use %s or %s)", flagStore, storeSQLite, storeGData)
	}
}

// openStoresOrWarn keeps the game playable without persistence.
func openStoresOrWarn() stores {
	st, err := openStores()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open score store: %v\n", err)
	}
	return st
}

// openAudio opens the speaker when audio is enabled.
func openAudio(cfg config.ClimberConfig, logger *log.Logger) (audio.Player, func()) {
	if !cfg.Audio.Enabled || flagMute {
		return audio.NopPlayer{}, func() {}
	}
	p, err := audio.NewBeepPlayer(cfg.Audio.Volume, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.NopPlayer{}, func() {}
	}
	return p, p.Close
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// seed returns --seed, or a time based seed.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// mustExist exits when the variant is not registered.
func mustExist(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'treeclimber list' to see available games.")
		os.Exit(1)
	}
}
