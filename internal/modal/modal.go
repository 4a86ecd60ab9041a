// Package modal is the state machine behind the entry and story dialogs.
//
//	idle ──Create──▶ creating ──Saved──▶ idle
//	idle ──View────▶ viewing ──Edit──▶ editing ──Saved──▶ viewing
//	viewing ──RequestDelete──▶ confirmingDelete ──Deleted──▶ idle
//
// Submitting sets Busy. While busy, Cancel is refused in confirmingDelete and
// ignored elsewhere; a failed request clears Busy and keeps the current state.
package modal

import (
	"fmt"
)

type State int

const (
	Idle State = iota
	Creating
	Viewing
	Editing
	ConfirmingDelete
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case ConfirmingDelete:
		return "confirmingDelete"
	default:
		return "idle"
	}
}

// ErrInvalidTransition is returned when an event does not apply to the current state.
type ErrInvalidTransition struct {
	From  State
	Event string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Event, e.From)
}

// Machine tracks one dialog. Subject is the date or id the dialog is about.
type Machine struct {
	state    State
	busy     bool
	subject  string
	previous State
	lastErr  error
}

func (m *Machine) State() State    { return m.state }
func (m *Machine) Busy() bool      { return m.busy }
func (m *Machine) Subject() string { return m.subject }
func (m *Machine) Open() bool      { return m.state != Idle }

// Err is the error of the last failed submission, cleared by the next transition.
func (m *Machine) Err() error { return m.lastErr }

func (m *Machine) invalid(event string) error {
	return &ErrInvalidTransition{From: m.state, Event: event}
}

// Create opens the creation form for subject.
func (m *Machine) Create(subject string) error {
	if m.state != Idle {
		return m.invalid("create")
	}
	m.state, m.subject, m.lastErr = Creating, subject, nil
	return nil
}

// View opens the read-only detail for subject.
func (m *Machine) View(subject string) error {
	if m.state != Idle {
		return m.invalid("view")
	}
	m.state, m.subject, m.lastErr = Viewing, subject, nil
	return nil
}

// Edit switches the detail view to the mutable form.
func (m *Machine) Edit() error {
	if m.state != Viewing || m.busy {
		return m.invalid("edit")
	}
	m.state, m.lastErr = Editing, nil
	return nil
}

// RequestDelete asks for confirmation. Allowed from viewing or editing.
func (m *Machine) RequestDelete() error {
	if (m.state != Viewing && m.state != Editing) || m.busy {
		return m.invalid("delete")
	}
	m.previous = m.state
	m.state, m.lastErr = ConfirmingDelete, nil
	return nil
}

// Submit marks a save or delete request in flight.
func (m *Machine) Submit() error {
	switch {
	case m.busy:
		return m.invalid("submit twice")
	case m.state == Creating, m.state == Editing, m.state == ConfirmingDelete:
		m.busy, m.lastErr = true, nil
		return nil
	}
	return m.invalid("submit")
}

// Saved completes a create or edit. A created entry closes the dialog; an
// edited one returns to its detail view.
func (m *Machine) Saved() error {
	if !m.busy || (m.state != Creating && m.state != Editing) {
		return m.invalid("finish saving")
	}
	m.busy = false
	if m.state == Creating {
		m.reset()
	} else {
		m.state = Viewing
	}
	return nil
}

// Deleted completes a confirmed delete and closes the dialog.
func (m *Machine) Deleted() error {
	if !m.busy || m.state != ConfirmingDelete {
		return m.invalid("finish deleting")
	}
	m.reset()
	return nil
}

// Failed records a failed save or delete. The form, or the confirmation,
// stays open with its data.
func (m *Machine) Failed(err error) {
	m.busy = false
	m.lastErr = err
}

// Cancel backs out one level: confirmation returns to where it came from,
// editing returns to viewing, anything else closes. Refused while a delete is
// in flight and ignored while a save is.
func (m *Machine) Cancel() error {
	if m.busy {
		if m.state == ConfirmingDelete {
			return m.invalid("cancel")
		}
		return nil
	}
	switch m.state {
	case ConfirmingDelete:
		m.state = m.previous
	case Editing:
		m.state = Viewing
	default:
		m.reset()
	}
	m.lastErr = nil
	return nil
}

// Close returns to idle unless a request is in flight.
func (m *Machine) Close() error {
	if m.busy {
		return m.invalid("close")
	}
	m.reset()
	return nil
}

func (m *Machine) reset() {
	*m = Machine{}
}
