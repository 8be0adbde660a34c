package testsupport

import (
	"context"
	"os"
	"sync"

	"reelsmith/internal/services/ffmpeg"
)

// FakeTranscoder implements ffmpeg.Transcoder without invoking a binary.
// Each operation writes a small marker file at its output path so downstream
// copies and probes have something to work with, and records the call for
// assertions. Error fields make individual operations fail on demand.
type FakeTranscoder struct {
	mu    sync.Mutex
	Calls []string

	RenderErr   error
	CopyErr     error
	ReencodeErr error
	MuxErr      error

	CompositeSpecs []ffmpeg.CompositeSpec
}

var _ ffmpeg.Transcoder = (*FakeTranscoder)(nil)

func (f *FakeTranscoder) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallNames returns the recorded operation names in invocation order.
func (f *FakeTranscoder) CallNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *FakeTranscoder) RenderImageToClip(ctx context.Context, imagePath string, durationSeconds float64, clipPath string) error {
	f.record("render")
	if f.RenderErr != nil {
		return f.RenderErr
	}
	return os.WriteFile(clipPath, []byte("clip:"+imagePath), 0o644)
}

func (f *FakeTranscoder) ConcatenateCopy(ctx context.Context, listPath, outputPath string) error {
	f.record("concat_copy")
	if f.CopyErr != nil {
		return f.CopyErr
	}
	return os.WriteFile(outputPath, []byte("merged:copy"), 0o644)
}

func (f *FakeTranscoder) ConcatenateReencode(ctx context.Context, listPath, outputPath string) error {
	f.record("concat_reencode")
	if f.ReencodeErr != nil {
		return f.ReencodeErr
	}
	return os.WriteFile(outputPath, []byte("merged:reencode"), 0o644)
}

func (f *FakeTranscoder) Composite(ctx context.Context, spec ffmpeg.CompositeSpec) error {
	f.record("composite")
	f.mu.Lock()
	f.CompositeSpecs = append(f.CompositeSpecs, spec)
	f.mu.Unlock()
	if f.MuxErr != nil {
		return f.MuxErr
	}
	return os.WriteFile(spec.OutputPath, []byte("final"), 0o644)
}
