package tui

import (
	"context"
	"errors"
	"maps"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/treeclimber/internal/core"
	"github.com/vovakirdan/treeclimber/internal/storage"
)

// stubGame records the input it is stepped with.
type stubGame struct {
	inputs   []core.InputFrame
	resets   int
	state    core.GameState
	segments int
	err      error
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, core.InputFrame{Actions: maps.Clone(in.Actions)})
	return core.StepResult{State: g.state}
}
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Err() error { return g.err }
func (g *stubGame) Segments() int { return g.segments }

type fakeRecorder struct {
	entries []storage.ScoreEntry
	err     error
}

func (r *fakeRecorder) SaveScore(_ context.Context, e storage.ScoreEntry) (int64, error) {
	r.entries = append(r.entries, e)
	return int64(len(r.entries)), r.err
}

func newTestModel(g *stubGame, rec Recorder) Model {
	return NewModel(g, rec, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 7}, nil)
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelHoldsSteering(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	hold := steerHold(60)
	for i := 0; i < hold+2; i++ {
		m = send(m, TickMsg{})
	}

	for i, in := range g.inputs {
		want := i < hold
		if in.Has(core.ActionLeft) != want {
			t.Errorf("tick %d: Left = %v, expected %v", i, in.Has(core.ActionLeft), want)
		}
	}
}

func TestModelSwipeLastsOneTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(m, TickMsg{})
	send(m, TickMsg{})

	if !g.inputs[0].Has(core.ActionSwipe) || g.inputs[1].Has(core.ActionSwipe) {
		t.Errorf("swipe inputs = %v, %v, expected only the first tick", g.inputs[0].Has(core.ActionSwipe), g.inputs[1].Has(core.ActionSwipe))
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	g := &stubGame{segments: 12}
	rec := &fakeRecorder{}
	m := newTestModel(g, rec)

	g.state = core.GameState{Score: 1500, GameOver: true}
	m = send(m, TickMsg{})
	m = send(m, TickMsg{})

	if len(rec.entries) != 1 {
		t.Fatalf("saved %d entries, expected 1", len(rec.entries))
	}
	e := rec.entries[0]
	if e.GameID != "stub" || e.Score != 1500 || e.Seed != 7 || e.Segments != 12 {
		t.Errorf("entry = %+v", e)
	}

	// Restart clears the saved flag.
	m = send(m, runeKey('r'))
	m = send(m, TickMsg{})
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
	g.state = core.GameState{Score: 10, GameOver: true}
	send(m, TickMsg{})
	if len(rec.entries) != 2 {
		t.Errorf("saved %d entries after restart, expected 2", len(rec.entries))
	}
}

func TestModelSkipsFailedRuns(t *testing.T) {
	g := &stubGame{err: errors.New("broken"), state: core.GameState{Score: 10, GameOver: true}}
	rec := &fakeRecorder{}
	m := newTestModel(g, rec)

	send(m, TickMsg{})
	if len(rec.entries) != 0 {
		t.Errorf("saved %d entries for a failed run, expected 0", len(rec.entries))
	}
}

func TestModelRecorderErrorIsNotFatal(t *testing.T) {
	g := &stubGame{state: core.GameState{Score: 10, GameOver: true}}
	m := newTestModel(g, &fakeRecorder{err: errors.New("disk full")})

	m = send(m, TickMsg{})
	if m.IsQuitting() {
		t.Error("a failed save should not quit")
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	m = send(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}

	g.state.GameOver = true
	m = send(m, TickMsg{})
	m = send(m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("back should work after game over")
	}
}

func TestModelResizeResetsOnlyBeforeStart(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(m, TickMsg{})
	send(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
}

func TestModelQuitAndView(t *testing.T) {
	m := newTestModel(&stubGame{}, nil)

	if !strings.Contains(m.View(), "stub") {
		t.Errorf("View() = %q, expected the game frame", m.View())
	}
	m = send(m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and clear the view")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColor(0, 0, '@', core.ColorPlayer)
	s.DrawText(1, 1, "ab")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "@") || !strings.Contains(lines[1], "ab") {
		t.Errorf("RenderScreen() = %q", out)
	}
}
