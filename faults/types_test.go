package faults

import (
	"errors"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(ValidationError, "invalid identifier", nil)
	if !IsCategory(err, ValidationError) {
		t.Fatalf("expected validation category match")
	}
	if IsCategory(err, NotFoundError) {
		t.Fatalf("expected not-found category mismatch")
	}

	wrapped := errors.New("wrap: " + err.Error())
	if IsCategory(wrapped, ValidationError) {
		t.Fatalf("plain wrapped string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, ValidationError) {
		t.Fatalf("expected category match through errors.Join")
	}
}

func TestTypedErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset by peer")
	err := NewTypedError(TransportError, "remote request failed", cause)
	if got, want := err.Error(), "remote request failed: connection reset by peer"; got != want {
		t.Fatalf("unexpected error text: got %q want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}

	bare := NewTypedError(TimeoutError, "", nil)
	if got := bare.Error(); got != string(TimeoutError) {
		t.Fatalf("expected category fallback, got %q", got)
	}
}
