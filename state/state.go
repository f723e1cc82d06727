package state

import (
	"errors"
	"sync"
)

// Phase is the lifecycle stage of one game session.
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// ErrTransitionNotAllowed is returned when a phase transition is not allowed.
var ErrTransitionNotAllowed = errors.New("phase transition not allowed")

// Machine guards the legal phase transitions of a session. The turn
// variant walks lobby -> in_progress -> finished; the team variant never
// reaches finished and simply dies with its room.
type Machine struct {
	current     Phase
	transitions map[Phase]map[Phase]bool
	mutex       sync.RWMutex
}

func NewMachine(initial Phase) *Machine {
	return &Machine{
		current: initial,
		transitions: map[Phase]map[Phase]bool{
			PhaseLobby: {PhaseInProgress: true},
			PhaseInProgress: {
				PhaseFinished: true,
			},
		},
	}
}

func (m *Machine) Current() Phase {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

// Transition moves to next if the transition table allows it.
func (m *Machine) Transition(next Phase) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if allowed, exists := m.transitions[m.current]; !exists || !allowed[next] {
		return ErrTransitionNotAllowed
	}
	m.current = next
	return nil
}
