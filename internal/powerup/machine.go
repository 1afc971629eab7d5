package powerup

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treeclimber/internal/config"
)

// Action is what happens when a kind is activated while another is on.
type Action int

const (
	Allow  Action = iota
	Cancel        // deactivate the active kind, then activate
	Reject        // leave the active kind alone and refuse activation
)

// Observer receives enable and disable notifications. Either func may be nil.
type Observer struct {
	OnEnabled  func(Kind)
	OnDisabled func(Kind)
}

type state struct {
	active    bool
	remaining int // ticks
}

// Machine holds the three power-up flags and their countdowns.
// It is driven by one writer per tick and is not safe for concurrent use.
type Machine struct {
	states    [numKinds]state
	matrix    [numKinds][numKinds]Action // [active][incoming]
	observers []Observer
	logger    *log.Logger
}

// NewMachine creates a state machine using the given exclusion rules.
func NewMachine(rules []config.ExclusionRule, logger *log.Logger) (*Machine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Machine{logger: logger}
	for _, r := range rules {
		active, err := ParseKind(r.Active)
		if err != nil {
			return nil, err
		}
		incoming, err := ParseKind(r.Incoming)
		if err != nil {
			return nil, err
		}
		switch r.Action {
		case config.ExclusionCancel:
			m.matrix[active][incoming] = Cancel
		case config.ExclusionReject:
			m.matrix[active][incoming] = Reject
		default:
			return nil, fmt.Errorf("powerup: unknown exclusion action %q", r.Action)
		}
	}
	return m, nil
}

// Subscribe registers an observer.
func (m *Machine) Subscribe(o Observer) {
	m.observers = append(m.observers, o)
}

// Rule returns the configured action for activating incoming while active is on.
func (m *Machine) Rule(active, incoming Kind) Action {
	return m.matrix[active][incoming]
}

// Activate turns on kind for the given number of ticks.
// It returns false if an active kind rejects it. Re-activating an active
// kind restarts its countdown.
func (m *Machine) Activate(kind Kind, ticks int) bool {
	for _, other := range Kinds {
		if other == kind || !m.states[other].active {
			continue
		}
		if m.matrix[other][kind] == Reject {
			m.logger.Debug("power-up rejected", "kind", kind, "by", other)
			return false
		}
	}
	for _, other := range Kinds {
		if other == kind || !m.states[other].active {
			continue
		}
		if m.matrix[other][kind] == Cancel {
			m.logger.Debug("power-up cancelled", "kind", other, "by", kind)
			m.Deactivate(other)
		}
	}

	m.states[kind] = state{active: true, remaining: ticks}
	m.logger.Debug("power-up enabled", "kind", kind, "ticks", ticks)
	for _, o := range m.observers {
		if o.OnEnabled != nil {
			o.OnEnabled(kind)
		}
	}
	return true
}

// Deactivate turns kind off and notifies observers, even if it was already off.
func (m *Machine) Deactivate(kind Kind) {
	m.states[kind] = state{}
	for _, o := range m.observers {
		if o.OnDisabled != nil {
			o.OnDisabled(kind)
		}
	}
}

// Tick advances every countdown by one tick and expires finished kinds.
func (m *Machine) Tick() {
	for _, k := range Kinds {
		st := &m.states[k]
		if st.remaining > 0 {
			st.remaining--
		}
		if st.remaining == 0 && st.active {
			m.logger.Debug("power-up expired", "kind", k)
			m.Deactivate(k)
		}
	}
}

// Active reports whether kind is on.
func (m *Machine) Active(kind Kind) bool {
	return m.states[kind].active
}

// Remaining returns the ticks left for kind, or 0 if it is off.
func (m *Machine) Remaining(kind Kind) int {
	if !m.states[kind].active {
		return 0
	}
	return m.states[kind].remaining
}

// Reset turns everything off without notifying observers.
func (m *Machine) Reset() {
	m.states = [numKinds]state{}
}
