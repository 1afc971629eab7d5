package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/treeclimber/internal/score"
)

var (
	_ score.HighScoreStore = (*Store)(nil)
	_ score.HighScoreStore = (*PrefsStore)(nil)
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runs := []ScoreEntry{
		{GameID: "climber", Score: 100.5, Seed: 1, Segments: 4},
		{GameID: "climber", Score: 50, Seed: 2, Segments: 2},
		{GameID: "climber", Score: 200.25, Seed: 3, Segments: 9},
		{GameID: "climber-exp", Score: 500, Seed: 4, Segments: 12},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(ctx, r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(ctx, "climber", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d entries, expected 3", len(scores))
	}

	expected := []float64{200.25, 100.5, 50}
	for i, e := range scores {
		if e.Score != expected[i] {
			t.Errorf("scores[%d].Score = %v, expected %v", i, e.Score, expected[i])
		}
	}
	if scores[0].Seed != 3 || scores[0].Segments != 9 {
		t.Errorf("scores[0] = %+v, expected seed 3 and 9 segments", scores[0])
	}

	limited, err := store.TopScores(ctx, "climber", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("TopScores(limit 2) returned %d entries", len(limited))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	v, err := store.HighScore(ctx, "climber")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if v != 0 {
		t.Errorf("HighScore() = %v, expected 0 for an empty store", v)
	}

	for _, tc := range []struct {
		score    float64
		expected bool
	}{
		{1234.5, true},
		{99, false},
		{1234.5, false},
		{1300, true},
	} {
		got, err := store.RaiseHighScore(ctx, "climber", tc.score)
		if err != nil {
			t.Fatalf("RaiseHighScore(%v) failed: %v", tc.score, err)
		}
		if got != tc.expected {
			t.Errorf("RaiseHighScore(%v) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
	if v, _ := store.HighScore(ctx, "climber"); v != 1300 {
		t.Errorf("HighScore() = %v, expected 1300", v)
	}
}

func TestStoreHighScoreInterleavedSessions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	store.RaiseHighScore(ctx, "climber", 100)

	first := score.NewKeeper(store, "climber")
	second := score.NewKeeper(store, "climber")

	// Both sessions read the old best before either writes.
	for _, k := range []*score.Keeper{first, second} {
		if best, err := k.Best(ctx); err != nil || best != 100 {
			t.Fatalf("Best() = %v, %v, expected 100", best, err)
		}
	}
	if ok, err := store.RaiseHighScore(ctx, "climber", 500); err != nil || !ok {
		t.Fatalf("RaiseHighScore(500) = %v, %v, expected true", ok, err)
	}
	if ok, err := store.RaiseHighScore(ctx, "climber", 200); err != nil || ok {
		t.Errorf("RaiseHighScore(200) = %v, %v, expected false", ok, err)
	}
	if v, _ := store.HighScore(ctx, "climber"); v != 500 {
		t.Errorf("HighScore() = %v, expected 500", v)
	}
}

func TestStoreHighScoreConcurrentCommits(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			if _, err := score.NewKeeper(store, "climber").Commit(ctx, v); err != nil {
				t.Errorf("Commit(%v) error = %v", v, err)
			}
		}(float64(i * 10))
	}
	wg.Wait()

	if v, _ := store.HighScore(ctx, "climber"); v != 200 {
		t.Errorf("HighScore() = %v, expected 200", v)
	}
}

func TestStoreKeeperCompareAndSwap(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	k := score.NewKeeper(store, "climber")

	for _, tc := range []struct {
		score    float64
		expected bool
	}{
		{10, true},
		{5, false},
		{10, false},
		{11, true},
	} {
		got, err := k.Commit(ctx, tc.score)
		if err != nil {
			t.Fatalf("Commit(%v) error = %v", tc.score, err)
		}
		if got != tc.expected {
			t.Errorf("Commit(%v) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
	if v, _ := store.HighScore(ctx, "climber"); v != 11 {
		t.Errorf("HighScore() = %v, expected 11", v)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore(ctx, ScoreEntry{GameID: "climber", Score: 100})
	store.RaiseHighScore(ctx, "climber", 100)
	store.SaveScore(ctx, ScoreEntry{GameID: "climber-exp", Score: 300})

	if err := store.ClearScores(ctx, "climber"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(ctx, "climber", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if v, _ := store.HighScore(ctx, "climber"); v != 0 {
		t.Errorf("HighScore() after clear = %v, expected 0", v)
	}
	other, _ := store.TopScores(ctx, "climber-exp", 10)
	if len(other) != 1 {
		t.Errorf("Other game should keep its scores, got %d", len(other))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.treeclimber/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".treeclimber", "test.db")); err != nil {
		t.Errorf("Database should be created under home: %v", err)
	}
}

func TestPrefsStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	prefs, err := OpenPrefs("treeclimber_test")
	if err != nil {
		t.Skipf("game data directory unavailable: %v", err)
	}
	ctx := context.Background()

	v, err := prefs.HighScore(ctx, "climber")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if v != 0 {
		t.Errorf("HighScore() = %v, expected 0 before any save", v)
	}

	if ok, err := prefs.RaiseHighScore(ctx, "climber", 4321.75); err != nil || !ok {
		t.Fatalf("RaiseHighScore(4321.75) = %v, %v, expected true", ok, err)
	}
	if ok, _ := prefs.RaiseHighScore(ctx, "climber", 10); ok {
		t.Errorf("RaiseHighScore(10) = true, expected false below the saved score")
	}
	if v, _ := prefs.HighScore(ctx, "climber"); v != 4321.75 {
		t.Errorf("HighScore() = %v, expected 4321.75", v)
	}
}
