package services_test

import (
	"errors"
	"testing"

	"stockboard/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("boom")
	err := services.Wrap(services.ErrValidation, "board", "move", "bad target", inner)

	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected inner error preserved, got %v", err)
	}
	want := "validation error: board: move: bad target: boom"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "storage", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsUserError(t *testing.T) {
	if !services.IsUserError(services.Wrap(services.ErrNotFound, "board", "delete", "", nil)) {
		t.Fatal("not-found should classify as user error")
	}
	if services.IsUserError(services.Wrap(services.ErrTransient, "storage", "save", "", nil)) {
		t.Fatal("transient should not classify as user error")
	}
}
