package terrain

import (
	"testing"
)

func newStream(t *testing.T, seed int64) *StreamManager {
	t.Helper()
	cfg := testConfig()
	g := newGenerator(t, seed, cfg)
	m := NewStreamManager(g, cfg.Terrain, View{Top: 30, Bottom: 0}, nil)
	if err := m.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	return m
}

func TestBootstrapCoversView(t *testing.T) {
	m := newStream(t, 1)
	segs := m.Segments()

	if len(segs) < 2 {
		t.Fatalf("len(Segments()) = %d, expected the view to need several segments", len(segs))
	}
	if segs[0].Top() != m.View().Top {
		t.Errorf("genesis top = %v, expected %v", segs[0].Top(), m.View().Top)
	}
	if m.Newest().Bottom() > m.SpawnY() {
		t.Errorf("newest bottom = %v, expected at or below spawn line %v", m.Newest().Bottom(), m.SpawnY())
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].Top() != segs[i-1].Bottom() {
			t.Errorf("segment %d top = %v, expected previous bottom %v", i, segs[i].Top(), segs[i-1].Bottom())
		}
	}
	if m.Newest().SpawnedNext() {
		t.Error("newest segment should still hold unconsumed continuity state")
	}
}

func TestSpawnTriggerIsIdempotent(t *testing.T) {
	m := newStream(t, 2)
	newest := m.Newest()
	before := len(m.Segments())

	if err := m.OnSpawnThresholdCrossed(newest); err != nil {
		t.Fatalf("OnSpawnThresholdCrossed() error = %v", err)
	}
	if err := m.OnSpawnThresholdCrossed(newest); err != nil {
		t.Fatalf("second OnSpawnThresholdCrossed() error = %v", err)
	}
	if got := len(m.Segments()); got != before+1 {
		t.Errorf("len(Segments()) = %d, expected %d", got, before+1)
	}
	if newest.Phase != PassedSpawnThreshold {
		t.Errorf("Phase = %v, expected %v", newest.Phase, PassedSpawnThreshold)
	}
}

func TestAdvanceStreamsSegments(t *testing.T) {
	m := newStream(t, 3)
	first := m.Segments()[0]
	height := first.Height

	for i := 0; i < 2000; i++ {
		if err := m.Advance(0.5); err != nil {
			t.Fatalf("Advance() error = %v", err)
		}

		segs := m.Segments()
		if m.Newest().SpawnedNext() {
			t.Fatalf("tick %d: newest segment already spawned", i)
		}
		if m.Newest().Bottom() > m.SpawnY() {
			t.Fatalf("tick %d: view not covered, newest bottom %v", i, m.Newest().Bottom())
		}
		for _, s := range segs {
			if s.Bottom() > m.DestroyY() && s.Phase != PassedDestroyThreshold {
				t.Fatalf("tick %d: segment %d above destroy line in phase %v", i, s.ID, s.Phase)
			}
		}
		if len(segs) > int((m.DestroyY()-m.SpawnY())/height)+4 {
			t.Fatalf("tick %d: %d live segments, expected a bounded window", i, len(segs))
		}
	}

	if first.Phase != Removed {
		t.Errorf("genesis Phase = %v, expected %v", first.Phase, Removed)
	}
	if m.Generated() < 1000/int(height) {
		t.Errorf("Generated() = %d, expected streaming to continue", m.Generated())
	}
}

func TestDestroyPhaseLastsOneAdvance(t *testing.T) {
	m := newStream(t, 6)
	first := m.Segments()[0]

	for i := 0; first.Phase != PassedDestroyThreshold; i++ {
		if i > 1000 {
			t.Fatalf("genesis never passed the destroy line, Phase = %v", first.Phase)
		}
		if err := m.Advance(0.5); err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
	}
	if m.Segments()[0] != first {
		t.Error("passed segment should stay listed until the next Advance")
	}

	if err := m.Advance(0); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if first.Phase != Removed {
		t.Errorf("Phase = %v, expected %v", first.Phase, Removed)
	}
	for _, s := range m.Segments() {
		if s == first {
			t.Error("removed segment is still listed")
		}
	}
}

func TestAdvanceLargeStepFillsView(t *testing.T) {
	m := newStream(t, 4)
	if err := m.Advance(100); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if m.Newest().Bottom() > m.SpawnY() {
		t.Errorf("newest bottom = %v, expected at or below %v", m.Newest().Bottom(), m.SpawnY())
	}
}

func TestAdvanceDownwardDoesNotSpawn(t *testing.T) {
	m := newStream(t, 5)
	before := m.Generated()
	if err := m.Advance(-3); err != nil {
		t.Fatal(err)
	}
	if m.Generated() != before {
		t.Errorf("Generated() = %d, expected %d", m.Generated(), before)
	}
}
