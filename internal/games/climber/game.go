// Package climber implements the tree climber: a bird circling a tree
// trunk that scrolls upward, dodging branches and birds for distance.
package climber

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treeclimber/internal/audio"
	"github.com/vovakirdan/treeclimber/internal/config"
	"github.com/vovakirdan/treeclimber/internal/core"
	"github.com/vovakirdan/treeclimber/internal/powerup"
	"github.com/vovakirdan/treeclimber/internal/registry"
	"github.com/vovakirdan/treeclimber/internal/score"
	"github.com/vovakirdan/treeclimber/internal/terrain"
)

// Game IDs of the registered variants.
const (
	IDLinear      = "climber"
	IDExponential = "climber-exp"
)

// hudRows is the number of screen rows reserved above and below the tree.
const hudRows = 2

func init() {
	registry.Register(registry.GameInfo{
		ID:          IDLinear,
		Title:       "Tree Climber",
		Description: "Scroll speed grows steadily",
	}, func(d registry.Deps) registry.Game {
		d.Config.Speed.Mode = config.SpeedLinear
		return New(IDLinear, "Tree Climber", d)
	})
	registry.Register(registry.GameInfo{
		ID:          IDExponential,
		Title:       "Tree Climber: Frenzy",
		Description: "Scroll speed compounds every tick",
	}, func(d registry.Deps) registry.Game {
		if d.Config.Speed.Mode != config.SpeedExponential {
			d.Config.Speed.Mode = config.SpeedExponential
			if d.Config.Speed.Multiplier < 1 {
				d.Config.Speed.Multiplier = config.DefaultClimberConfig().Speed.Multiplier
			}
		}
		return New(IDExponential, "Tree Climber: Frenzy", d)
	})
}

// Game owns one instance of every manager for a run.
type Game struct {
	id, title string
	cfg       config.ClimberConfig
	audio     audio.Player
	logger    *log.Logger
	keeper    *score.Keeper

	rt       core.RuntimeConfig
	view     terrain.View
	stream   *terrain.StreamManager
	speed    *terrain.SpeedController
	powerups *powerup.Machine
	score    *score.Accumulator
	camera   *TrackingCamera

	player    player
	events    []event
	best      float64
	newRecord bool

	tick     int
	gameOver bool
	paused   bool
	err      error
}

// New creates a climber with the given collaborators.
func New(id, title string, deps registry.Deps) *Game {
	deps = deps.WithDefaults()
	g := &Game{
		id:     id,
		title:  title,
		cfg:    deps.Config,
		audio:  deps.Audio,
		logger: deps.Logger,
	}
	if deps.Scores != nil {
		g.keeper = score.NewKeeper(deps.Scores, id)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset builds fresh managers and bootstraps the tree.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.err = nil
	g.events = g.events[:0]
	g.newRecord = false

	playH := rt.ScreenH - hudRows
	if playH < 1 {
		playH = 1
	}
	g.view = terrain.View{Top: float64(playH), Bottom: 0}

	if err := g.build(); err != nil {
		g.fail(err)
		return
	}

	if g.keeper != nil {
		best, err := g.keeper.Best(context.Background())
		if err != nil {
			g.logger.Warn("cannot read high score", "game", g.id, "err", err)
		}
		g.best = best
	}
	g.logger.Info("run started", "game", g.id, "seed", rt.Seed, "speed_mode", g.cfg.Speed.Mode)
}

func (g *Game) build() error {
	g.stream = nil

	var err error
	g.powerups, err = powerup.NewMachine(g.cfg.PowerUps.Exclusions, g.logger)
	if err != nil {
		return err
	}
	g.powerups.Subscribe(powerup.Observer{
		OnEnabled:  g.onPowerUpEnabled,
		OnDisabled: g.onPowerUpDisabled,
	})

	g.speed = terrain.NewSpeedController(g.cfg.Speed)
	g.score = score.NewAccumulator(g.cfg.Score.Multiplier)
	g.camera = NewTrackingCamera(g.ticks(g.cfg.Camera.ShakeDuration))
	g.player = player{
		angle: 0,
		y:     g.home(),
	}

	rng := rand.New(rand.NewSource(g.rt.Seed))
	gen, err := terrain.NewGenerator(rng, g.cfg.Terrain, g.cfg.PowerUps)
	if err != nil {
		return err
	}
	g.stream = terrain.NewStreamManager(gen, g.cfg.Terrain, g.view, g.logger)
	return g.stream.Bootstrap()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	// Input
	g.handleInput(in)

	// Advance
	speed := g.speed.Tick()
	g.camera.UpdateScroll(speed)
	if err := g.stream.Advance(speed); err != nil {
		g.fail(err)
		return core.StepResult{State: g.State()}
	}
	g.moveBirds()
	prev := g.player
	g.movePlayer()
	scrolled := speed
	if g.camera.Locked() && g.player.y > g.home() {
		c := g.player.y - g.home()
		if err := g.stream.Advance(-c); err != nil {
			g.fail(err)
			return core.StepResult{State: g.State()}
		}
		g.player.y = g.home()
		scrolled -= c
	}

	// Collisions are queued, then applied at the tick boundary.
	g.detect(prev, scrolled)
	g.applyEvents()

	// Timers
	g.powerups.Tick()
	g.player.tickTimers()
	g.camera.Tick()

	// Score: displacement relative to the tree.
	g.score.Add((g.player.y - prev.y) - scrolled)

	if !g.gameOver && g.offScreen() {
		g.die("off screen")
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	if g.score != nil {
		s.Score = g.score.Value()
	}
	return s
}

// Err returns the fatal error that ended the run, if any.
func (g *Game) Err() error {
	return g.err
}

// Tick returns the number of simulated ticks in this run.
func (g *Game) Tick() int {
	return g.tick
}

// Segments returns how many segments have been generated in this run.
func (g *Game) Segments() int {
	if g.stream == nil {
		return 0
	}
	return g.stream.Generated()
}

// Best returns the high score known at the start of the run, or the new record.
func (g *Game) Best() float64 {
	return g.best
}

// NewRecord reports whether the finished run beat the stored high score.
func (g *Game) NewRecord() bool {
	return g.newRecord
}

// PowerUps exposes the power-up state machine.
func (g *Game) PowerUps() *powerup.Machine {
	return g.powerups
}

// Stream exposes the segment stream.
func (g *Game) Stream() *terrain.StreamManager {
	return g.stream
}

// Camera exposes the camera state.
func (g *Game) Camera() *TrackingCamera {
	return g.camera
}

// PlayerPosition returns the player's angle and camera-space height.
func (g *Game) PlayerPosition() (angle, y float64) {
	return g.player.angle, g.player.y
}

func (g *Game) home() float64 {
	return g.view.Bottom + g.view.Height()*g.cfg.Player.Home
}

func (g *Game) ticks(seconds float64) int {
	return config.Ticks(seconds, g.rt.TickRate)
}

func (g *Game) offScreen() bool {
	margin := g.cfg.Player.OffScreenOffset * g.view.Height()
	return g.player.y > g.view.Top+margin || g.player.y < g.view.Bottom-margin
}

func (g *Game) die(reason string) {
	g.gameOver = true
	g.audio.Stop(audio.ClipShieldHum)
	g.audio.Play(audio.Once(audio.ClipDeath, 0))
	g.logger.Info("run ended", "game", g.id, "reason", reason, "score", score.Format(g.score.Value()), "ticks", g.tick)

	if g.keeper == nil {
		return
	}
	ok, err := g.keeper.Commit(context.Background(), g.score.Value())
	if err != nil {
		g.logger.Error("cannot save high score", "game", g.id, "err", err)
		return
	}
	if ok {
		g.newRecord = true
		g.best = g.score.Value()
	}
}

// fail ends the run on an unrecoverable error.
func (g *Game) fail(err error) {
	g.err = fmt.Errorf("climber: %w", err)
	g.gameOver = true
	g.logger.Error("run aborted", "game", g.id, "err", err)
}

func (g *Game) onPowerUpEnabled(k powerup.Kind) {
	switch k {
	case powerup.Lock:
		g.camera.Lock()
	case powerup.Shield:
		g.audio.Play(audio.Loop(audio.ClipShieldHum, 0))
	case powerup.GoldenAcorn:
		g.audio.Play(audio.Loop(audio.ClipGoldenAcorn, 3))
	}
}

func (g *Game) onPowerUpDisabled(k powerup.Kind) {
	switch k {
	case powerup.Lock:
		g.camera.Unlock()
	case powerup.Shield:
		g.audio.Stop(audio.ClipShieldHum)
	}
}
