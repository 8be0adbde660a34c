package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reelsmith/internal/logging"
	"reelsmith/internal/render"
	"reelsmith/internal/scene"
	"reelsmith/internal/services"
	"reelsmith/internal/testsupport"
)

func TestRenderClipProducesArtifact(t *testing.T) {
	fake := &testsupport.FakeTranscoder{}
	renderer := render.NewRenderer(fake, logging.NewNop())

	dir := t.TempDir()
	clipPath := filepath.Join(dir, "clip_0.mp4")
	sc := scene.Scene{Index: 0, Duration: 4.2, Pan: scene.PanLeft, Zoom: 1}

	if err := renderer.RenderClip(context.Background(), sc, filepath.Join(dir, "img_0.jpg"), clipPath); err != nil {
		t.Fatalf("RenderClip: %v", err)
	}
	if _, err := os.Stat(clipPath); err != nil {
		t.Fatalf("clip not written: %v", err)
	}
	calls := fake.CallNames()
	if len(calls) != 1 || calls[0] != "render" {
		t.Fatalf("unexpected calls: %v", calls)
	}
}

func TestRenderClipPropagatesFailure(t *testing.T) {
	renderErr := services.Wrap(services.ErrRender, "ffmpeg", "clip", "exit status 1", nil)
	fake := &testsupport.FakeTranscoder{RenderErr: renderErr}
	renderer := render.NewRenderer(fake, logging.NewNop())

	err := renderer.RenderClip(context.Background(), scene.Scene{Duration: 2}, "img.jpg", "clip.mp4")
	if !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected render classification, got %v", err)
	}
}
