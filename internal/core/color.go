package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the climber renderer and HUD.
const (
	ColorDefault Color = iota
	ColorBark          // trunk
	ColorLeaf          // branches
	ColorBird          // hostile birds
	ColorPlayer        // the player's bird
	ColorShield        // shield pickup and indicator
	ColorLock          // lock pickup and indicator
	ColorAcorn         // golden acorn pickup and indicator
	ColorHUD           // score line
	ColorMuted         // help text, inactive indicators
	ColorDanger        // game over banner
)
