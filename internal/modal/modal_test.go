package modal

import (
	"errors"
	"testing"
)

func TestCreateFlow(t *testing.T) {
	var m Machine
	if err := m.Create("2024-05-25"); err != nil {
		t.Fatal(err)
	}
	if m.State() != Creating || m.Subject() != "2024-05-25" {
		t.Fatalf("state = %v subject = %q", m.State(), m.Subject())
	}
	if err := m.Submit(); err != nil {
		t.Fatal(err)
	}
	if !m.Busy() {
		t.Error("Submit() should set busy")
	}
	if err := m.Submit(); err == nil {
		t.Error("double submit should be refused")
	}
	if err := m.Saved(); err != nil {
		t.Fatal(err)
	}
	if m.State() != Idle || m.Busy() || m.Open() {
		t.Errorf("after Saved(): state=%v busy=%v", m.State(), m.Busy())
	}
}

func TestFailedSaveKeepsFormOpen(t *testing.T) {
	var m Machine
	_ = m.Create("2024-05-25")
	_ = m.Submit()

	boom := errors.New("Entry already exists")
	m.Failed(boom)

	if m.State() != Creating {
		t.Errorf("state = %v, want creating", m.State())
	}
	if m.Busy() {
		t.Error("busy should clear after failure")
	}
	if !errors.Is(m.Err(), boom) {
		t.Errorf("Err() = %v", m.Err())
	}
	// user can retry
	if err := m.Submit(); err != nil {
		t.Errorf("retry Submit() = %v", err)
	}
	if m.Err() != nil {
		t.Error("Submit() should clear the previous error")
	}
}

func TestViewEditFlow(t *testing.T) {
	var m Machine
	_ = m.View("2024-05-20")
	if err := m.Submit(); err == nil {
		t.Error("cannot submit a read-only view")
	}
	if err := m.Edit(); err != nil {
		t.Fatal(err)
	}
	if m.State() != Editing {
		t.Fatalf("state = %v", m.State())
	}
	_ = m.Submit()
	if err := m.Saved(); err != nil {
		t.Fatal(err)
	}
	if m.State() != Viewing {
		t.Errorf("after edit save state = %v, want viewing", m.State())
	}
}

func TestCancelBacksOutOneLevel(t *testing.T) {
	var m Machine
	_ = m.View("d")
	_ = m.Edit()
	_ = m.Cancel()
	if m.State() != Viewing {
		t.Errorf("cancel from editing -> %v, want viewing", m.State())
	}
	_ = m.RequestDelete()
	_ = m.Cancel()
	if m.State() != Viewing {
		t.Errorf("cancel from confirmation -> %v, want viewing", m.State())
	}
	_ = m.Cancel()
	if m.State() != Idle {
		t.Errorf("cancel from viewing -> %v, want idle", m.State())
	}
}

func TestDeleteFromEditingReturnsToEditingOnCancel(t *testing.T) {
	var m Machine
	_ = m.View("d")
	_ = m.Edit()
	if err := m.RequestDelete(); err != nil {
		t.Fatal(err)
	}
	_ = m.Cancel()
	if m.State() != Editing {
		t.Errorf("state = %v, want editing", m.State())
	}
}

func TestDeleteInFlightCannotBeCancelled(t *testing.T) {
	var m Machine
	_ = m.View("d")
	_ = m.RequestDelete()
	_ = m.Submit()

	if err := m.Cancel(); err == nil {
		t.Error("Cancel() during delete should be refused")
	}
	if err := m.Close(); err == nil {
		t.Error("Close() during delete should be refused")
	}
	if m.State() != ConfirmingDelete {
		t.Fatalf("state = %v", m.State())
	}

	// failure keeps the confirmation up
	m.Failed(errors.New("network"))
	if m.State() != ConfirmingDelete || m.Busy() {
		t.Errorf("after failure state=%v busy=%v", m.State(), m.Busy())
	}

	_ = m.Submit()
	if err := m.Deleted(); err != nil {
		t.Fatal(err)
	}
	if m.State() != Idle {
		t.Errorf("after Deleted() state = %v", m.State())
	}
}

func TestInvalidTransitions(t *testing.T) {
	var m Machine
	var terr *ErrInvalidTransition

	if err := m.Edit(); !errors.As(err, &terr) {
		t.Errorf("Edit() from idle = %v", err)
	}
	if err := m.Saved(); err == nil {
		t.Error("Saved() without submit should fail")
	}
	_ = m.Create("d")
	if err := m.View("other"); err == nil {
		t.Error("View() while creating should fail")
	}
	if err := m.RequestDelete(); err == nil {
		t.Error("cannot delete something not yet created")
	}
	if err := m.Deleted(); err == nil {
		t.Error("Deleted() outside confirmation should fail")
	}
}
