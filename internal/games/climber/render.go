package climber

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/treeclimber/internal/core"
	"github.com/vovakirdan/treeclimber/internal/powerup"
	"github.com/vovakirdan/treeclimber/internal/score"
	"github.com/vovakirdan/treeclimber/internal/terrain"
)

// Visual characters for rendering
const (
	PlayerChar  = '@'
	StunChar    = '*'
	BranchChar  = '═'
	BirdCWChar  = '>'
	BirdCCWChar = '<'
	BarkChar    = '│'
)

// Render draws the trunk unrolled around the player: the player sits in the
// middle column and the full circle spans the screen width.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.stream == nil {
		if g.err != nil {
			g.drawCenteredMessage(dst, "ERROR", g.err.Error())
		}
		return
	}

	w := dst.Width()
	shake := g.camera.Offset()

	// Bark texture, scrolled with the player's rotation.
	for a := 0.0; a < 360; a += 30 {
		x := g.column(a, w) + shake
		dst.DrawVLine(x, hudRows/2, dst.Height()-hudRows, BarkChar, core.ColorBark)
	}

	for _, seg := range g.stream.Segments() {
		for _, l := range seg.Layers {
			if b := l.Bird; b != nil && !b.Dead {
				ch := BirdCWChar
				if b.Direction == terrain.Counterclockwise {
					ch = BirdCCWChar
				}
				g.drawSpan(dst, b.Angle, g.cfg.Bird.HalfWidth/2, seg.WorldY(b.Y), ch, core.ColorBird, shake)
			}
			for _, br := range l.Branches {
				if br.Broken {
					continue
				}
				y := seg.WorldY(br.Y)
				g.drawSpan(dst, br.Angle, g.cfg.Terrain.BranchHalfWidth, y, BranchChar, core.ColorLeaf, shake)
				if br.PowerUp != nil && !br.PowerUp.Consumed {
					if row, ok := g.row(y+1, dst); ok {
						dst.SetColor(g.column(br.Angle, w)+shake, row, br.PowerUp.Kind.Symbol(), kindColor(br.PowerUp.Kind))
					}
				}
			}
		}
	}

	// Player
	if row, ok := g.row(g.player.y+1, dst); ok {
		ch, color := PlayerChar, core.ColorPlayer
		if g.player.stun > 0 {
			ch = StunChar
		}
		switch {
		case g.powerups.Active(powerup.GoldenAcorn):
			color = core.ColorAcorn
		case g.powerups.Active(powerup.Shield):
			color = core.ColorShield
		}
		dst.SetColor(w/2, row, ch, color)
	}

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		msg := fmt.Sprintf("Score: %s  |  Press R to restart", score.Format(g.score.Value()))
		if g.newRecord {
			msg = "New record! " + msg
		}
		if g.err != nil {
			msg = g.err.Error()
		}
		g.drawCenteredMessage(dst, "GAME OVER", msg)
	}
}

// column maps an angle to a screen column, centered on the player.
func (g *Game) column(angle float64, width int) int {
	return width/2 + int(math.Round(terrain.SignedDelta(g.player.angle, angle)*float64(width)/360))
}

// row maps a camera-space height to a screen row inside the play area.
func (g *Game) row(y float64, dst *core.Screen) (int, bool) {
	r := hudRows/2 + int(math.Floor(g.view.Top-y))
	if r < hudRows/2 || r >= dst.Height()-hudRows/2 {
		return 0, false
	}
	return r, true
}

func (g *Game) drawSpan(dst *core.Screen, angle, halfWidth, y float64, ch rune, color core.Color, shake int) {
	row, ok := g.row(y, dst)
	if !ok {
		return
	}
	w := dst.Width()
	half := int(math.Round(halfWidth * float64(w) / 360))
	center := g.column(angle, w) + shake
	for x := center - half; x <= center+half; x++ {
		dst.SetColor(x, row, ch, color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	var sb strings.Builder
	fmt.Fprintf(&sb, " Score %s  Best %s ", score.Format(g.score.Value()), score.Format(math.Max(g.best, g.score.Value())))
	dst.DrawTextColor(0, 0, sb.String(), core.ColorHUD)

	x := len([]rune(sb.String())) + 1
	for _, k := range powerup.Kinds {
		label := fmt.Sprintf("[%c]", k.Symbol())
		color := core.ColorMuted
		if g.powerups.Active(k) {
			secs := float64(g.powerups.Remaining(k)) / float64(max(g.rt.TickRate, 1))
			label = fmt.Sprintf("[%c %.0fs]", k.Symbol(), math.Ceil(secs))
			color = kindColor(k)
		}
		dst.DrawTextColor(x, 0, label, color)
		x += len([]rune(label)) + 1
	}

	swipe := "Swipe ready"
	color := core.ColorHUD
	switch {
	case g.player.swiping():
		swipe = "Swipe!"
	case g.player.swipeCooldown > 0:
		swipe = fmt.Sprintf("Swipe %.0fs", math.Ceil(float64(g.player.swipeCooldown)/float64(max(g.rt.TickRate, 1))))
		color = core.ColorMuted
	}
	dst.DrawTextColor(x, 0, swipe, color)

	dst.DrawTextColor(1, dst.Height()-1, "←/→ steer  space swipe  p pause  q quit", core.ColorMuted)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	centerY := dst.Height() / 2
	boxW := max(len([]rune(subtitle)), len(title)) + 6
	if boxW > dst.Width() {
		boxW = dst.Width()
	}
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := centerY - boxH/2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}

func kindColor(k powerup.Kind) core.Color {
	switch k {
	case powerup.Shield:
		return core.ColorShield
	case powerup.Lock:
		return core.ColorLock
	default:
		return core.ColorAcorn
	}
}
