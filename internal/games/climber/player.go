package climber

import (
	"github.com/vovakirdan/treeclimber/internal/core"
	"github.com/vovakirdan/treeclimber/internal/terrain"
)

// player is the bird. y is the camera-space height it stands at.
type player struct {
	angle float64
	y     float64

	support    *terrain.Occupant // branch being ridden, nil while falling
	supportSeg *terrain.Segment

	stun      int     // ticks left without control
	bounceDir float64 // -1 or 1 while stunned

	swipe         int // ticks left in the swipe window
	swipeCooldown int // ticks until swipe can be used again
}

func (p *player) tickTimers() {
	if p.stun > 0 {
		p.stun--
	}
	if p.swipe > 0 {
		p.swipe--
	}
	if p.swipeCooldown > 0 {
		p.swipeCooldown--
	}
}

func (p *player) swiping() bool {
	return p.swipe > 0
}

func (g *Game) handleInput(in core.InputFrame) {
	p := &g.player
	if p.stun > 0 {
		p.angle = terrain.Normalize(p.angle + p.bounceDir*g.cfg.Player.SteerSpeed*g.cfg.Player.BounceFactor)
		return
	}
	p.angle = terrain.Normalize(p.angle + in.Steering()*g.cfg.Player.SteerSpeed)

	if in.Has(core.ActionSwipe) && p.swipe == 0 && p.swipeCooldown == 0 {
		p.swipe = g.ticks(g.cfg.Player.SwipeWindow)
	}
}

// movePlayer rides the supporting branch or falls toward the resting height.
func (g *Game) movePlayer() {
	p := &g.player
	if p.support != nil {
		reach := g.cfg.Terrain.BranchHalfWidth + g.cfg.Player.HalfWidth
		if p.support.Broken || p.supportSeg.Phase >= terrain.PassedDestroyThreshold ||
			terrain.Distance(p.angle, p.support.Angle) >= reach {
			p.support, p.supportSeg = nil, nil
		} else {
			p.y = p.supportSeg.WorldY(p.support.Y)
			return
		}
	}

	if home := g.home(); p.y > home {
		p.y -= g.cfg.Player.FallSpeed
		if p.y < home {
			p.y = home
		}
	}
}

func (g *Game) moveBirds() {
	for _, seg := range g.stream.Segments() {
		for i := range seg.Layers {
			b := seg.Layers[i].Bird
			if b == nil || b.Dead {
				continue
			}
			b.Angle = terrain.Normalize(b.Angle + float64(b.Direction)*g.cfg.Bird.Speed)
		}
	}
}
