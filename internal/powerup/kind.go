// Package powerup tracks timed power-up effects and the rules that keep
// incompatible effects from running together.
package powerup

import (
	"fmt"

	"github.com/vovakirdan/treeclimber/internal/config"
)

// Kind identifies a power-up.
type Kind int

const (
	Shield Kind = iota
	Lock
	GoldenAcorn
	numKinds
)

// Kinds lists every power-up kind in display order.
var Kinds = []Kind{Shield, Lock, GoldenAcorn}

// String returns the YAML name of the kind.
func (k Kind) String() string {
	switch k {
	case Shield:
		return config.PowerUpShield
	case Lock:
		return config.PowerUpLock
	case GoldenAcorn:
		return config.PowerUpGoldenAcorn
	default:
		return "unknown"
	}
}

// Symbol returns the rune used to draw the pickup.
func (k Kind) Symbol() rune {
	switch k {
	case Shield:
		return 'S'
	case Lock:
		return 'L'
	case GoldenAcorn:
		return 'A'
	default:
		return '?'
	}
}

// ParseKind converts a YAML name into a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("powerup: unknown kind %q", name)
}
