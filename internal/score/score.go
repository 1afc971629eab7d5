// Package score turns the player's descent into points, formats large
// values for the HUD and keeps the high score.
package score

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

// Accumulator converts vertical player displacement into a monotonic score.
type Accumulator struct {
	multiplier float64
	value      float64
}

// NewAccumulator creates an accumulator with the given points-per-row multiplier.
func NewAccumulator(multiplier float64) *Accumulator {
	return &Accumulator{multiplier: multiplier}
}

// Add credits one tick of displacement. Only downward movement relative to
// the tree (negative dy) scores.
func (a *Accumulator) Add(dy float64) {
	a.value += math.Max(0, -dy) * a.multiplier
}

// Value returns the current score.
func (a *Accumulator) Value() float64 {
	return a.value
}

// Reset sets the score back to zero.
func (a *Accumulator) Reset() {
	a.value = 0
}

type suffix struct {
	threshold float64
	divisor   float64
	symbol    string
}

// Ordered from the largest threshold down.
var suffixes = []suffix{
	{1e12, 1e12, "T"},
	{1e9, 1e9, "B"},
	{1e6, 1e6, "M"},
	{10_000, 1e3, "K"},
}

// Format renders a score for display: below 10,000 as a whole number,
// above it divided down to K, M, B or T and rounded to a whole number.
func Format(v float64) string {
	for _, s := range suffixes {
		if v >= s.threshold {
			return strconv.FormatFloat(math.Round(v/s.divisor), 'f', 0, 64) + s.symbol
		}
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// HighScoreStore persists the best score per game.
// RaiseHighScore must compare and write atomically: it stores v only when v
// is strictly greater than the stored value, and reports whether it did.
type HighScoreStore interface {
	HighScore(ctx context.Context, gameID string) (float64, error)
	RaiseHighScore(ctx context.Context, gameID string, v float64) (bool, error)
}

// Keeper compares finished runs against the stored high score.
type Keeper struct {
	store  HighScoreStore
	gameID string
}

// NewKeeper creates a keeper for one game.
func NewKeeper(store HighScoreStore, gameID string) *Keeper {
	return &Keeper{store: store, gameID: gameID}
}

// Best returns the stored high score.
func (k *Keeper) Best(ctx context.Context) (float64, error) {
	v, err := k.store.HighScore(ctx, k.gameID)
	if err != nil {
		return 0, fmt.Errorf("score: cannot read high score: %w", err)
	}
	return v, nil
}

// Commit stores v if it beats the current high score and reports whether it did.
func (k *Keeper) Commit(ctx context.Context, v float64) (bool, error) {
	best, err := k.Best(ctx)
	if err != nil {
		return false, err
	}
	if v <= best {
		return false, nil
	}
	raised, err := k.store.RaiseHighScore(ctx, k.gameID, v)
	if err != nil {
		return false, fmt.Errorf("score: cannot save high score: %w", err)
	}
	return raised, nil
}
