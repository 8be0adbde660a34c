package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelsmith/internal/logging"
	"reelsmith/internal/render"
	"reelsmith/internal/services"
	"reelsmith/internal/testsupport"
)

func TestConcatenateZeroClipsFails(t *testing.T) {
	fake := &testsupport.FakeTranscoder{}
	concat := render.NewConcatenator(fake, logging.NewNop())

	dir := t.TempDir()
	err := concat.Concatenate(context.Background(), nil, filepath.Join(dir, "clips.txt"), filepath.Join(dir, "out.mp4"))
	if !errors.Is(err, services.ErrConcat) {
		t.Fatalf("expected concat error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no images") {
		t.Fatalf("expected 'no images' detail, got %v", err)
	}
	if len(fake.CallNames()) != 0 {
		t.Fatal("transcoder should not be invoked for zero clips")
	}
}

func TestConcatenateSingleClipCopiesBytes(t *testing.T) {
	fake := &testsupport.FakeTranscoder{}
	concat := render.NewConcatenator(fake, logging.NewNop())

	dir := t.TempDir()
	clip := filepath.Join(dir, "clip_0.mp4")
	if err := os.WriteFile(clip, []byte("only clip bytes"), 0o644); err != nil {
		t.Fatalf("write clip: %v", err)
	}
	out := filepath.Join(dir, "final_noaudio.mp4")

	if err := concat.Concatenate(context.Background(), []string{clip}, filepath.Join(dir, "clips.txt"), out); err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "only clip bytes" {
		t.Fatalf("single-clip output must be a byte-identical copy, got %q", data)
	}
	if len(fake.CallNames()) != 0 {
		t.Fatal("transcoder should not be invoked for a single clip")
	}
}

func TestConcatenateWritesOrderedManifest(t *testing.T) {
	fake := &testsupport.FakeTranscoder{}
	concat := render.NewConcatenator(fake, logging.NewNop())

	dir := t.TempDir()
	clips := []string{filepath.Join(dir, "clip_0.mp4"), filepath.Join(dir, "clip_1.mp4")}
	listPath := filepath.Join(dir, "clips.txt")

	if err := concat.Concatenate(context.Background(), clips, listPath, filepath.Join(dir, "out.mp4")); err != nil {
		t.Fatalf("Concatenate: %v", err)
	}

	manifest, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(manifest)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 manifest lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "clip_0.mp4") || !strings.Contains(lines[1], "clip_1.mp4") {
		t.Fatalf("manifest order wrong: %v", lines)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "file '") {
			t.Fatalf("manifest line not in concat demuxer format: %q", line)
		}
	}
}

func TestConcatenateFallsBackToReencode(t *testing.T) {
	fake := &testsupport.FakeTranscoder{
		CopyErr: services.Wrap(services.ErrConcat, "ffmpeg", "stream copy", "gop mismatch", nil),
	}
	concat := render.NewConcatenator(fake, logging.NewNop())

	dir := t.TempDir()
	clips := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp4")}
	out := filepath.Join(dir, "out.mp4")

	if err := concat.Concatenate(context.Background(), clips, filepath.Join(dir, "clips.txt"), out); err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	calls := fake.CallNames()
	if len(calls) != 2 || calls[0] != "concat_copy" || calls[1] != "concat_reencode" {
		t.Fatalf("unexpected call sequence: %v", calls)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "merged:reencode" {
		t.Fatalf("output not produced by fallback: %q", data)
	}
}

func TestConcatenateSurfacesFallbackError(t *testing.T) {
	fallbackErr := services.Wrap(services.ErrConcat, "ffmpeg", "reencode", "decode failure", nil)
	fake := &testsupport.FakeTranscoder{
		CopyErr:     errors.New("copy failed"),
		ReencodeErr: fallbackErr,
	}
	concat := render.NewConcatenator(fake, logging.NewNop())

	dir := t.TempDir()
	clips := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp4")}
	err := concat.Concatenate(context.Background(), clips, filepath.Join(dir, "clips.txt"), filepath.Join(dir, "out.mp4"))
	if !errors.Is(err, fallbackErr) {
		t.Fatalf("expected the fallback's error detail, got %v", err)
	}
}
