package errors

import (
	"fmt"
	"testing"
)

func TestValidationError_Format(t *testing.T) {
	err := NewValidationError("total must be a positive number").
		WithField("totalMembers").
		WithValue("abc")

	want := "validation error [field=totalMembers, value=abc]: total must be a positive number"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !IsUserFacing(err) {
		t.Error("validation errors should be user-facing")
	}
	if IsRetryable(err) {
		t.Error("validation errors should not be retryable")
	}
	if GetSeverity(err) != SeverityWarning {
		t.Errorf("severity = %v, want warning", GetSeverity(err))
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := NewValidationError("empty name")
	if !Is(err, ErrInvalidInput) {
		t.Error("validation errors should match ErrInvalidInput")
	}
}

func TestValidationError_WrappedCause(t *testing.T) {
	err := NewValidationError("roster is full").WithCause(ErrRosterFull)
	if !Is(err, ErrRosterFull) {
		t.Error("expected wrapped cause to match ErrRosterFull")
	}
}

func TestReentrancyError(t *testing.T) {
	err := NewReentrancyError("roster/add")

	if !Is(err, ErrReentrantDispatch) {
		t.Error("reentrancy errors should match ErrReentrantDispatch")
	}
	if IsUserFacing(err) {
		t.Error("reentrancy errors are programming errors, not user-facing")
	}

	want := "reentrancy error [action=roster/add]: dispatch called during an in-flight dispatch"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRenderError(t *testing.T) {
	err := NewRenderError("roster-list", "index out of range")

	if !IsRetryable(err) {
		t.Error("render errors should be retryable (next frame may succeed)")
	}

	var rErr *RenderError
	if !As(err, &rErr) {
		t.Fatal("As should unwrap to *RenderError")
	}
	if rErr.Component != "roster-list" {
		t.Errorf("Component = %q, want roster-list", rErr.Component)
	}
}

func TestPersistenceError(t *testing.T) {
	cause := New("connection refused")
	err := NewPersistenceError("could not save teams", cause).
		WithEndpoint("https://example.test/teams").
		WithStatusCode(503)

	if !Is(err, ErrSaveFailed) {
		t.Error("persistence errors should match ErrSaveFailed")
	}
	if !IsUserFacing(err) {
		t.Error("persistence errors should be user-facing")
	}
	if !IsRetryable(err) {
		t.Error("persistence errors should be retryable (manual retry)")
	}

	want := "persistence error [endpoint=https://example.test/teams, status=503]: could not save teams: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	base := New("boom")
	wrapped := Wrap(base, "saving split")
	if !Is(wrapped, base) {
		t.Error("wrapped error should match the base error")
	}
	if Wrap(nil, "noop") != nil {
		t.Error("wrapping nil should return nil")
	}

	formatted := Wrapf(base, "saving split %d", 3)
	if formatted.Error() != fmt.Sprintf("saving split 3: %v", base) {
		t.Errorf("unexpected Wrapf output: %v", formatted)
	}
}

func TestGetSeverity_PlainError(t *testing.T) {
	if GetSeverity(New("plain")) != SeverityError {
		t.Error("plain errors should default to SeverityError")
	}
	if GetSeverity(nil) != SeverityDebug {
		t.Error("nil should report SeverityDebug")
	}
}
