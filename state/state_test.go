package state

import "testing"

func TestMachine_InitialPhase(t *testing.T) {
	m := NewMachine(PhaseLobby)
	if m.Current() != PhaseLobby {
		t.Fatalf("expected initial phase %q, got %q", PhaseLobby, m.Current())
	}
}

func TestMachine_LegalTransitions(t *testing.T) {
	m := NewMachine(PhaseLobby)

	if err := m.Transition(PhaseInProgress); err != nil {
		t.Fatalf("lobby -> in_progress should be allowed, got: %v", err)
	}
	if m.Current() != PhaseInProgress {
		t.Fatalf("expected phase %q, got %q", PhaseInProgress, m.Current())
	}

	if err := m.Transition(PhaseFinished); err != nil {
		t.Fatalf("in_progress -> finished should be allowed, got: %v", err)
	}
	if m.Current() != PhaseFinished {
		t.Fatalf("expected phase %q, got %q", PhaseFinished, m.Current())
	}
}

func TestMachine_BlockedTransitions(t *testing.T) {
	m := NewMachine(PhaseLobby)

	// Cannot finish a game that never started.
	if err := m.Transition(PhaseFinished); err != ErrTransitionNotAllowed {
		t.Fatalf("expected ErrTransitionNotAllowed, got: %v", err)
	}
	if m.Current() != PhaseLobby {
		t.Fatalf("phase should be unchanged after a blocked transition, got %q", m.Current())
	}

	// Finished is terminal.
	m = NewMachine(PhaseFinished)
	if err := m.Transition(PhaseInProgress); err != ErrTransitionNotAllowed {
		t.Fatalf("expected ErrTransitionNotAllowed from finished, got: %v", err)
	}
}
