package climber

import (
	"github.com/vovakirdan/treeclimber/internal/core"
	"github.com/vovakirdan/treeclimber/internal/terrain"
)

// autopilotLookahead is how many ticks ahead the autopilot checks for threats.
const autopilotLookahead = 20

// AutoInput picks an input for the current tick: steer toward the
// direction with the fewest branches and birds rising into the player,
// and swipe at birds that cannot be avoided. Used for headless runs.
func (g *Game) AutoInput() core.InputFrame {
	in := core.NewInputFrame()
	if g.gameOver || g.stream == nil {
		return in
	}

	best, bestThreat := 0.0, g.threat(0)
	for _, dir := range []float64{-1, 1} {
		if t := g.threat(dir); t < bestThreat {
			best, bestThreat = dir, t
		}
	}
	// Riding a branch toward the top of the view is fatal; get off it.
	if g.player.support != nil && g.player.y > g.view.Top*0.85 && best == 0 {
		best = 1
	}
	switch best {
	case -1:
		in.Set(core.ActionLeft)
	case 1:
		in.Set(core.ActionRight)
	}

	if g.birdAhead() {
		in.Set(core.ActionSwipe)
	}
	return in
}

// threat counts obstacles that would reach the player within the lookahead
// if it kept steering in dir.
func (g *Game) threat(dir float64) int {
	speed := g.speed.Speed()
	p := g.player
	rise := speed * autopilotLookahead
	reach := g.cfg.Terrain.BranchHalfWidth + g.cfg.Player.HalfWidth
	angle := terrain.Normalize(p.angle + dir*g.cfg.Player.SteerSpeed*autopilotLookahead/2)

	n := 0
	for _, seg := range g.stream.Segments() {
		for _, l := range seg.Layers {
			if b := l.Bird; b != nil && !b.Dead {
				y := seg.WorldY(b.Y)
				if y <= p.y+1 && y >= p.y-rise && terrain.Distance(angle, b.Angle) < g.cfg.Bird.HalfWidth+g.cfg.Player.HalfWidth+g.cfg.Bird.Speed*autopilotLookahead {
					n += 3
				}
			}
			for _, br := range l.Branches {
				if br.Broken {
					continue
				}
				y := seg.WorldY(br.Y)
				if y <= p.y && y >= p.y-rise && terrain.Distance(angle, br.Angle) < reach {
					n++
				}
			}
		}
	}
	return n
}

func (g *Game) birdAhead() bool {
	p := g.player
	if p.swipeCooldown > 0 || p.swipe > 0 {
		return false
	}
	reach := g.cfg.Bird.HalfWidth + g.cfg.Player.HalfWidth
	for _, seg := range g.stream.Segments() {
		for _, l := range seg.Layers {
			if b := l.Bird; b != nil && !b.Dead {
				y := seg.WorldY(b.Y)
				if y <= p.y+1 && y >= p.y-2 && terrain.Distance(p.angle, b.Angle) < reach*1.5 {
					return true
				}
			}
		}
	}
	return false
}
