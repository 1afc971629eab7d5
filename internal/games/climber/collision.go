package climber

import (
	"math"

	"github.com/vovakirdan/treeclimber/internal/audio"
	"github.com/vovakirdan/treeclimber/internal/config"
	"github.com/vovakirdan/treeclimber/internal/powerup"
	"github.com/vovakirdan/treeclimber/internal/terrain"
)

type eventKind int

const (
	evPickup eventKind = iota
	evLand
	evSide
	evBird
)

// event is a collision found during the advance phase.
type event struct {
	kind   eventKind
	seg    *terrain.Segment
	branch *terrain.Occupant
	bird   *terrain.BirdOccupant
	dir    float64 // push direction for side hits
}

// BranchHit describes a player and branch contact.
type BranchHit struct {
	Segment *terrain.Segment
	Branch  *terrain.Occupant
	Side    bool    // hit from the side instead of landing on top
	Dir     float64 // direction pushing the player away from the branch
}

// detect queues contacts between the player's move from prev and the
// current positions. scrolled is how far the tree moved up this tick.
func (g *Game) detect(prev player, scrolled float64) {
	p := g.player
	branchReach := g.cfg.Terrain.BranchHalfWidth + g.cfg.Player.HalfWidth
	birdReach := g.cfg.Bird.HalfWidth + g.cfg.Player.HalfWidth

	for _, seg := range g.stream.Segments() {
		for li := range seg.Layers {
			layer := &seg.Layers[li]

			if b := layer.Bird; b != nil && !b.Dead {
				by := seg.WorldY(b.Y)
				if sweptContact(prev.y-(by-scrolled), p.y-by, 1) && terrain.Distance(p.angle, b.Angle) < birdReach {
					g.events = append(g.events, event{kind: evBird, seg: seg, bird: b})
				}
			}

			for bi := range layer.Branches {
				br := &layer.Branches[bi]
				if br.Broken || terrain.Distance(p.angle, br.Angle) >= branchReach {
					continue
				}
				by := seg.WorldY(br.Y)
				touching := br == p.support

				switch {
				case touching:
				case p.support == nil && prev.y >= by-scrolled && p.y <= by:
					g.events = append(g.events, event{kind: evLand, seg: seg, branch: br})
					touching = true
				case math.Abs(p.y-by) < 0.5 && terrain.Distance(prev.angle, br.Angle) >= branchReach:
					dir := 1.0
					if terrain.SignedDelta(br.Angle, p.angle) < 0 {
						dir = -1
					}
					g.events = append(g.events, event{kind: evSide, seg: seg, branch: br, dir: dir})
					touching = true
				}

				if touching && br.PowerUp != nil && !br.PowerUp.Consumed {
					g.events = append(g.events, event{kind: evPickup, seg: seg, branch: br})
				}
			}
		}
	}
}

// sweptContact reports whether a vertical offset that moved from before to
// after this tick touched zero within reach. A pass from one side to the
// other counts, however far it jumped.
func sweptContact(before, after, reach float64) bool {
	if math.Abs(after) < reach {
		return true
	}
	return math.Abs(before) >= reach && (before > 0) != (after > 0)
}

// applyEvents drains the queue in order.
func (g *Game) applyEvents() {
	events := g.events
	g.events = g.events[:0]

	// Pickups resolve before hits.
	for _, ev := range events {
		if ev.kind == evPickup {
			g.OnPickup(ev.branch)
		}
	}
	for _, ev := range events {
		if g.gameOver {
			return
		}
		switch ev.kind {
		case evLand, evSide:
			if ev.branch.Broken {
				continue
			}
			g.OnPlayerHitBranch(BranchHit{Segment: ev.seg, Branch: ev.branch, Side: ev.kind == evSide, Dir: ev.dir},
				g.player.swiping(), g.powerups.Active(powerup.GoldenAcorn))
		case evBird:
			if ev.bird.Dead {
				continue
			}
			g.OnPlayerHitBird(ev.bird, g.player.swiping(), g.powerups.Active(powerup.GoldenAcorn))
		}
	}
}

// OnPlayerHitBranch resolves a branch contact. With a swipe or the golden
// acorn the branch breaks; otherwise the player bounces off or lands.
func (g *Game) OnPlayerHitBranch(hit BranchHit, hasSwipe, hasGoldenAcorn bool) {
	p := &g.player
	pan := g.pan(hit.Branch.Angle)

	if hasSwipe || hasGoldenAcorn {
		hit.Branch.Broken = true
		if p.support == hit.Branch {
			p.support, p.supportSeg = nil, nil
		}
		g.audio.Play(audio.Once(audio.ClipDestroyBranch, pan))
		g.camera.Shake(g.cfg.Camera.ShakeMagnitude)
		if hasSwipe && !hasGoldenAcorn {
			p.swipe = 0
			p.swipeCooldown = g.ticks(g.cfg.Player.SwipeCooldown)
		}
		return
	}

	if hit.Side {
		p.stun = g.ticks(g.cfg.Player.Stun)
		p.bounceDir = hit.Dir
		p.angle = terrain.Normalize(p.angle + hit.Dir*g.cfg.Player.SteerSpeed*g.cfg.Player.BounceFactor)
		g.audio.Play(audio.Once(audio.ClipBounce, pan))
		return
	}

	p.support, p.supportSeg = hit.Branch, hit.Segment
	p.y = hit.Segment.WorldY(hit.Branch.Y)
	g.audio.Play(audio.Once(audio.ClipLand, pan))
	g.camera.Shake(g.cfg.Camera.ShakeMagnitude / 2)
}

// OnPlayerHitBird resolves a bird contact. A swipe, the golden acorn or a
// shield kills the bird, and any kill uses up the shield.
func (g *Game) OnPlayerHitBird(b *terrain.BirdOccupant, hasSwipe, hasGoldenAcorn bool) {
	shield := g.powerups.Active(powerup.Shield)
	if hasSwipe || hasGoldenAcorn || shield {
		b.Dead = true
		g.audio.Play(audio.Once(audio.ClipKillBird, g.pan(b.Angle)))
		g.camera.Shake(g.cfg.Camera.ShakeMagnitude)
		if shield {
			g.powerups.Deactivate(powerup.Shield)
		}
		return
	}

	if g.cfg.Bird.OnTouch == config.BirdBounce {
		dir := 1.0
		if terrain.SignedDelta(b.Angle, g.player.angle) < 0 {
			dir = -1
		}
		g.player.stun = g.ticks(g.cfg.Player.Stun)
		g.player.bounceDir = dir
		g.audio.Play(audio.Once(audio.ClipBounce, g.pan(b.Angle)))
		return
	}
	g.die("hit by bird")
}

// OnPickup consumes a power-up and activates it.
func (g *Game) OnPickup(br *terrain.Occupant) {
	pu := br.PowerUp
	if pu == nil || pu.Consumed {
		return
	}
	pu.Consumed = true
	d := g.ticks(g.cfg.PowerUps.Durations[pu.Kind.String()])
	if g.powerups.Activate(pu.Kind, d) {
		g.audio.Play(audio.Once(audio.ClipPickup, g.pan(br.Angle)))
	}
}

// pan places a sound left or right of the player.
func (g *Game) pan(angle float64) float64 {
	return terrain.SignedDelta(g.player.angle, angle) / 180
}
