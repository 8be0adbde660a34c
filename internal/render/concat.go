package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reelsmith/internal/fileutil"
	"reelsmith/internal/logging"
	"reelsmith/internal/services"
	"reelsmith/internal/services/ffmpeg"
)

// Concatenator merges rendered clips, in scene order, into one continuous
// video. Stream copy is attempted first; when clip parameters diverge it
// falls back to a re-encode with the clip settings.
type Concatenator struct {
	transcoder ffmpeg.Transcoder
	logger     *slog.Logger
}

// NewConcatenator builds a Concatenator on top of the given transcoder.
func NewConcatenator(transcoder ffmpeg.Transcoder, logger *slog.Logger) *Concatenator {
	return &Concatenator{
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "concatenator"),
	}
}

// Concatenate merges orderedClipPaths into outputPath using listPath as the
// concat manifest location. Zero clips fail the job; a single clip is copied
// directly with no concatenation work.
func (c *Concatenator) Concatenate(ctx context.Context, orderedClipPaths []string, listPath, outputPath string) error {
	switch len(orderedClipPaths) {
	case 0:
		return services.Wrap(services.ErrConcat, "concat", "", "no images", nil)
	case 1:
		if err := fileutil.CopyFile(orderedClipPaths[0], outputPath); err != nil {
			return services.Wrap(services.ErrConcat, "concat", "copy single clip", orderedClipPaths[0], err)
		}
		c.logger.Debug("single clip, concatenation skipped")
		return nil
	}

	if err := writeManifest(orderedClipPaths, listPath); err != nil {
		return err
	}

	if err := c.transcoder.ConcatenateCopy(ctx, listPath, outputPath); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		attrs := append(services.ContextAttrs(ctx),
			logging.Int("clips", len(orderedClipPaths)),
			logging.Error(err),
		)
		c.logger.Warn("stream-copy concat failed, falling back to re-encode", attrs...)
		if fallbackErr := c.transcoder.ConcatenateReencode(ctx, listPath, outputPath); fallbackErr != nil {
			return fallbackErr
		}
		c.logger.Info("re-encode concat fallback succeeded", logging.Int("clips", len(orderedClipPaths)))
	}
	return nil
}

// writeManifest emits the concat demuxer list. Clips are referenced by
// absolute path so the manifest works regardless of ffmpeg's working
// directory.
func writeManifest(clipPaths []string, listPath string) error {
	var sb strings.Builder
	for _, clip := range clipPaths {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return services.Wrap(services.ErrConcat, "concat", "resolve clip path", clip, err)
		}
		fmt.Fprintf(&sb, "file '%s'\n", abs)
	}
	if err := os.WriteFile(listPath, []byte(sb.String()), 0o644); err != nil {
		return services.Wrap(services.ErrConcat, "concat", "write manifest", listPath, err)
	}
	return nil
}
