package compose_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reelsmith/internal/compose"
	"reelsmith/internal/logging"
	"reelsmith/internal/services"
	"reelsmith/internal/testsupport"
)

func TestCompositePassesSpecThrough(t *testing.T) {
	fake := &testsupport.FakeTranscoder{}
	compositor := compose.NewCompositor(fake, logging.NewNop())

	dir := t.TempDir()
	out := filepath.Join(dir, "final.mp4")
	err := compositor.Composite(context.Background(), filepath.Join(dir, "merged.mp4"), filepath.Join(dir, "audio.mp3"), "  It's 5:00  ", out)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	if len(fake.CompositeSpecs) != 1 {
		t.Fatalf("expected one composite call, got %d", len(fake.CompositeSpecs))
	}
	spec := fake.CompositeSpecs[0]
	if spec.Caption != "It's 5:00" {
		t.Fatalf("caption not trimmed: %q", spec.Caption)
	}
	if spec.AudioPath == "" {
		t.Fatal("audio path not forwarded")
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("final artifact missing: %v", err)
	}
}

func TestCompositeWithoutAudioOrCaption(t *testing.T) {
	fake := &testsupport.FakeTranscoder{}
	compositor := compose.NewCompositor(fake, logging.NewNop())

	dir := t.TempDir()
	if err := compositor.Composite(context.Background(), filepath.Join(dir, "merged.mp4"), "", "", filepath.Join(dir, "final.mp4")); err != nil {
		t.Fatalf("Composite: %v", err)
	}
	spec := fake.CompositeSpecs[0]
	if spec.AudioPath != "" || spec.Caption != "" {
		t.Fatalf("unexpected optional fields: %#v", spec)
	}
}

func TestCompositePropagatesFailure(t *testing.T) {
	muxErr := services.Wrap(services.ErrComposite, "ffmpeg", "mux", "exit status 1", nil)
	fake := &testsupport.FakeTranscoder{MuxErr: muxErr}
	compositor := compose.NewCompositor(fake, logging.NewNop())

	err := compositor.Composite(context.Background(), "v.mp4", "", "", "f.mp4")
	if !errors.Is(err, services.ErrComposite) {
		t.Fatalf("expected composite classification, got %v", err)
	}
}
