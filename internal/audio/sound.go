// Package audio plays the climber's sound cues. The game only describes
// what to play; a backend turns the description into samples.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Clip names a sound cue.
type Clip int

const (
	ClipKillBird Clip = iota
	ClipDestroyBranch
	ClipPickup
	ClipBounce
	ClipLand
	ClipDeath
	ClipShieldHum
	ClipGoldenAcorn
)

func (c Clip) String() string {
	switch c {
	case ClipKillBird:
		return "kill-bird"
	case ClipDestroyBranch:
		return "destroy-branch"
	case ClipPickup:
		return "pickup"
	case ClipBounce:
		return "bounce"
	case ClipLand:
		return "land"
	case ClipDeath:
		return "death"
	case ClipShieldHum:
		return "shield-hum"
	case ClipGoldenAcorn:
		return "golden-acorn"
	default:
		return "unknown"
	}
}

// Kind distinguishes one-shot cues from looping ones.
type Kind int

const (
	OneShot Kind = iota
	Looping
)

// Sound is a request to play a clip.
// Looping sounds repeat Loops times; 0 repeats until stopped.
type Sound struct {
	Kind  Kind
	Loops int
	Clip  Clip
	Pan   float64 // -1 left .. 1 right
}

// Once returns a one-shot sound for clip.
func Once(c Clip, pan float64) Sound {
	return Sound{Kind: OneShot, Clip: c, Pan: pan}
}

// Loop returns a sound repeating clip n times, or forever if n is 0.
func Loop(c Clip, n int) Sound {
	return Sound{Kind: Looping, Loops: n, Clip: c}
}

// Player is the audio collaborator. Calls never block the simulation.
type Player interface {
	Play(Sound)
	Stop(Clip)
}

// NopPlayer discards every sound.
type NopPlayer struct{}

func (NopPlayer) Play(Sound) {}
func (NopPlayer) Stop(Clip) {}

// Stream converts a sound into a finite or endless streamer.
// It is the only place that interprets Kind.
func Stream(sr beep.SampleRate, s Sound) beep.Streamer {
	switch s.Kind {
	case Looping:
		played := 0
		return beep.Iterate(func() beep.Streamer {
			if s.Loops > 0 && played >= s.Loops {
				return nil
			}
			played++
			return synth(sr, s.Clip)
		})
	default:
		return synth(sr, s.Clip)
	}
}

type wave int

const (
	sine wave = iota
	square
	noise
)

type note struct {
	freq float64
	dur  time.Duration
}

type clipSpec struct {
	wave  wave
	notes []note
}

var clips = map[Clip]clipSpec{
	ClipKillBird:      {square, []note{{660, 60 * time.Millisecond}, {330, 90 * time.Millisecond}}},
	ClipDestroyBranch: {noise, []note{{0, 120 * time.Millisecond}}},
	ClipPickup:        {sine, []note{{523, 50 * time.Millisecond}, {659, 50 * time.Millisecond}, {784, 80 * time.Millisecond}}},
	ClipBounce:        {square, []note{{110, 60 * time.Millisecond}}},
	ClipLand:          {sine, []note{{196, 40 * time.Millisecond}}},
	ClipDeath:         {square, []note{{392, 120 * time.Millisecond}, {262, 120 * time.Millisecond}, {131, 240 * time.Millisecond}}},
	ClipShieldHum:     {sine, []note{{220, 400 * time.Millisecond}}},
	ClipGoldenAcorn:   {sine, []note{{880, 70 * time.Millisecond}, {1320, 70 * time.Millisecond}}},
}

// ClipSamples returns the length of one pass of clip in samples.
func ClipSamples(sr beep.SampleRate, c Clip) int {
	n := 0
	for _, nt := range clips[c].notes {
		n += sr.N(nt.dur)
	}
	return n
}

func synth(sr beep.SampleRate, c Clip) beep.Streamer {
	def := clips[c]
	parts := make([]beep.Streamer, 0, len(def.notes))
	for _, nt := range def.notes {
		parts = append(parts, &tone{
			wave:  def.wave,
			freq:  nt.freq,
			total: sr.N(nt.dur),
			rate:  sr,
		})
	}
	return beep.Seq(parts...)
}

// tone is an oscillator with a short linear fade at both ends to avoid clicks.
type tone struct {
	wave  wave
	freq  float64
	phase float64
	pos   int
	total int
	rate  beep.SampleRate
}

const fadeSamples = 240

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case sine:
			v = math.Sin(2 * math.Pi * t.phase)
		case square:
			if t.phase < 0.5 {
				v = 0.5
			} else {
				v = -0.5
			}
		case noise:
			v = rand.Float64()*2 - 1
		}

		gain := 1.0
		if t.pos < fadeSamples {
			gain = float64(t.pos) / fadeSamples
		} else if rem := t.total - t.pos; rem < fadeSamples {
			gain = float64(rem) / fadeSamples
		}
		v *= gain * 0.4

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
