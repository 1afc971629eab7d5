package storage

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

const highScoreObject = "highscores"

// PrefsStore keeps high scores in the per-user game data directory.
// It has no history, so it only backs the high score.
type PrefsStore struct {
	mu sync.Mutex
	m  *gdata.Manager
}

// OpenPrefs opens the game data directory for appName.
func OpenPrefs(appName string) (*PrefsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open game data: %w", err)
	}
	return &PrefsStore{m: m}, nil
}

// HighScore returns the saved high score, or 0 if none exists.
func (p *PrefsStore) HighScore(_ context.Context, gameID string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(gameID)
}

func (p *PrefsStore) load(gameID string) (float64, error) {
	if !p.m.ObjectPropExists(highScoreObject, gameID) {
		return 0, nil
	}
	data, err := p.m.LoadObjectProp(highScoreObject, gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load high score: %w", err)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt high score %q: %w", data, err)
	}
	return v, nil
}

// RaiseHighScore saves v if it beats the saved high score and reports whether it did.
func (p *PrefsStore) RaiseHighScore(_ context.Context, gameID string, v float64) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	best, err := p.load(gameID)
	if err != nil {
		return false, err
	}
	if v <= best {
		return false, nil
	}
	data := strconv.FormatFloat(v, 'g', -1, 64)
	if err := p.m.SaveObjectProp(highScoreObject, gameID, []byte(data)); err != nil {
		return false, fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return true, nil
}
