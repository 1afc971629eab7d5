package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// BeepPlayer synthesizes clips and plays them through the system speaker.
type BeepPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	loops  map[Clip]*beep.Ctrl
	volume float64
	closed bool
	logger *log.Logger
}

// NewBeepPlayer opens the speaker. Volume is a base-2 exponent, 0 leaves
// clips unchanged and negative values attenuate.
func NewBeepPlayer(volume float64, logger *log.Logger) (*BeepPlayer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	p := &BeepPlayer{
		mixer:  &beep.Mixer{},
		loops:  make(map[Clip]*beep.Ctrl),
		volume: volume,
		logger: logger,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play queues a sound on the mixer. An endless loop of a clip that is
// already looping is ignored.
func (p *BeepPlayer) Play(s Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	var st beep.Streamer = &effects.Volume{
		Streamer: Stream(sampleRate, s),
		Base:     2,
		Volume:   p.volume,
	}
	if s.Pan != 0 {
		st = &effects.Pan{Streamer: st, Pan: s.Pan}
	}

	speaker.Lock()
	defer speaker.Unlock()
	if s.Kind == Looping && s.Loops <= 0 {
		if _, ok := p.loops[s.Clip]; ok {
			return
		}
		ctrl := &beep.Ctrl{Streamer: st}
		p.loops[s.Clip] = ctrl
		st = ctrl
	}
	p.mixer.Add(st)
	p.logger.Debug("sound", "clip", s.Clip, "kind", s.Kind, "loops", s.Loops)
}

// Stop silences an endless loop of clip.
func (p *BeepPlayer) Stop(c Clip) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctrl, ok := p.loops[c]
	if !ok {
		return
	}
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
	delete(p.loops, c)
}

// Close stops all sounds and releases the speaker.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
