package terrain

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treeclimber/internal/config"
)

// View is the camera-space band that is visible. Y grows upward.
type View struct {
	Top    float64
	Bottom float64
}

// Height returns the view height.
func (v View) Height() float64 {
	return v.Top - v.Bottom
}

// StreamManager keeps the live segments in traversal order (top first),
// generating new segments below and dropping old ones above the view.
type StreamManager struct {
	gen      *Generator
	cfg      config.TerrainConfig
	view     View
	segments []*Segment
	nextID   int
	logger   *log.Logger
}

// NewStreamManager creates a stream manager. A nil logger discards output.
func NewStreamManager(gen *Generator, cfg config.TerrainConfig, view View, logger *log.Logger) *StreamManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &StreamManager{
		gen:    gen,
		cfg:    cfg,
		view:   view,
		logger: logger,
	}
}

// SpawnY is the height the newest segment's bottom edge must rise above
// before the next segment is generated.
func (m *StreamManager) SpawnY() float64 {
	return m.view.Bottom - m.cfg.SpawnMargin
}

// DestroyY is the height a segment's bottom edge must rise above before it is removed.
func (m *StreamManager) DestroyY() float64 {
	return m.view.Top + m.cfg.DestroyMargin
}

// View returns the camera view.
func (m *StreamManager) View() View {
	return m.view
}

// Bootstrap discards all segments, creates the genesis segment with its top
// at the top of the view and generates below it until the view is covered.
func (m *StreamManager) Bootstrap() error {
	m.segments = m.segments[:0]
	m.nextID = 0

	layout, err := m.gen.Generate(Genesis(m.cfg), m.cfg.SegmentHeight)
	if err != nil {
		return fmt.Errorf("terrain: genesis segment: %w", err)
	}
	m.push(m.view.Top, layout)

	for {
		newest := m.Newest()
		if newest.Bottom() <= m.SpawnY() {
			return nil
		}
		if err := m.OnSpawnThresholdCrossed(newest); err != nil {
			return err
		}
	}
}

// Advance removes the segments that passed the destroy line on the previous
// call, moves the rest up by deltaY and fires the spawn and destroy
// thresholds in traversal order.
func (m *StreamManager) Advance(deltaY float64) error {
	m.reap()
	for _, s := range m.segments {
		s.Position += deltaY
	}

	spawnY := m.SpawnY()
	// Segments appended during the loop are checked too, so a large step
	// keeps generating until the view is covered.
	for i := 0; i < len(m.segments); i++ {
		s := m.segments[i]
		if s.Bottom() > spawnY && !s.spawnedNext {
			if err := m.OnSpawnThresholdCrossed(s); err != nil {
				return err
			}
		}
	}

	destroyY := m.DestroyY()
	for _, s := range m.segments {
		if s.Phase != PassedDestroyThreshold && s.Bottom() > destroyY {
			m.OnDestroyThresholdCrossed(s)
		}
	}
	return nil
}

// OnSpawnThresholdCrossed generates the segment below seg from its last
// layer state. It runs at most once per segment; later calls are no-ops.
func (m *StreamManager) OnSpawnThresholdCrossed(seg *Segment) error {
	if seg.spawnedNext {
		return nil
	}
	layout, err := m.gen.Generate(seg.Last, m.cfg.SegmentHeight)
	if err != nil {
		return fmt.Errorf("terrain: segment after %d: %w", seg.ID, err)
	}
	seg.spawnedNext = true
	if seg.Phase == Active {
		seg.Phase = PassedSpawnThreshold
	}

	next := m.push(seg.Bottom()+m.cfg.Overlap, layout)
	m.logger.Debug("segment spawned", "id", next.ID, "after", seg.ID, "top", next.Top(), "layers", len(next.Layers))
	return nil
}

// OnDestroyThresholdCrossed marks seg as passed. It stays in the active list
// until the next Advance removes it.
func (m *StreamManager) OnDestroyThresholdCrossed(seg *Segment) {
	seg.Phase = PassedDestroyThreshold
	m.logger.Debug("segment passed destroy line", "id", seg.ID)
}

func (m *StreamManager) reap() {
	m.segments = slices.DeleteFunc(m.segments, func(s *Segment) bool {
		if s.Phase != PassedDestroyThreshold {
			return false
		}
		s.Phase = Removed
		m.logger.Debug("segment destroyed", "id", s.ID)
		return true
	})
}

// Segments returns the live segments, top first. The slice must not be modified.
func (m *StreamManager) Segments() []*Segment {
	return m.segments
}

// Newest returns the most recently generated segment, or nil before Bootstrap.
func (m *StreamManager) Newest() *Segment {
	if len(m.segments) == 0 {
		return nil
	}
	return m.segments[len(m.segments)-1]
}

// Generated returns how many segments have been created since Bootstrap.
func (m *StreamManager) Generated() int {
	return m.nextID
}

func (m *StreamManager) push(top float64, layout Layout) *Segment {
	s := &Segment{
		ID:       m.nextID,
		Position: top,
		Height:   m.cfg.SegmentHeight,
		Layers:   layout.Layers,
		Last:     layout.Last,
	}
	m.nextID++
	m.segments = append(m.segments, s)
	return s
}
