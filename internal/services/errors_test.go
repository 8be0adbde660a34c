package services_test

import (
	"errors"
	"strings"
	"testing"

	"reelsmith/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("exit status 1")
	err := services.Wrap(services.ErrConcat, "concat", "stream copy", "clips.txt", cause)
	if !errors.Is(err, services.ErrConcat) {
		t.Fatalf("expected ErrConcat classification, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "concat: stream copy: clips.txt") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapNilMarkerFallsBackToInternal(t *testing.T) {
	err := services.Wrap(nil, "orchestrator", "", "", errors.New("boom"))
	if !errors.Is(err, services.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestExcerptBoundsText(t *testing.T) {
	long := strings.Repeat("x", 1000)
	got := services.Excerpt(long, 240)
	if len(got) != 240 {
		t.Fatalf("expected 240 chars, got %d", len(got))
	}
	if services.Excerpt("short", 240) != "short" {
		t.Fatal("short text should be unchanged")
	}
	if len(services.Excerpt(long, 0)) != 240 {
		t.Fatal("zero limit should fall back to default bound")
	}
}
