// Package compose handles the final mix stage: audio muxing and caption
// overlay on top of the concatenated video.
package compose

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"reelsmith/internal/logging"
	"reelsmith/internal/services"
	"reelsmith/internal/services/ffmpeg"
)

// Compositor produces the final artifact by muxing the concatenated video
// with the optional audio track and rendering the optional caption overlay.
type Compositor struct {
	transcoder ffmpeg.Transcoder
	logger     *slog.Logger
}

// NewCompositor builds a Compositor on top of the given transcoder.
func NewCompositor(transcoder ffmpeg.Transcoder, logger *slog.Logger) *Compositor {
	return &Compositor{
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "compositor"),
	}
}

// Composite writes the final video to outputPath. audioPath and caption may
// be empty; with audio present the output truncates to the shorter stream.
// Any transcoder failure here is fatal to the job.
func (c *Compositor) Composite(ctx context.Context, videoPath, audioPath, caption, outputPath string) error {
	start := time.Now()
	spec := ffmpeg.CompositeSpec{
		VideoPath:  videoPath,
		AudioPath:  audioPath,
		Caption:    strings.TrimSpace(caption),
		OutputPath: outputPath,
	}
	if err := c.transcoder.Composite(ctx, spec); err != nil {
		return err
	}
	attrs := append(services.ContextAttrs(ctx),
		logging.Bool("has_audio", audioPath != ""),
		logging.Bool("has_caption", spec.Caption != ""),
		logging.Duration("elapsed", time.Since(start)),
	)
	c.logger.Debug("composite completed", attrs...)
	return nil
}
