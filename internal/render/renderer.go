package render

import (
	"context"
	"log/slog"
	"time"

	"reelsmith/internal/logging"
	"reelsmith/internal/scene"
	"reelsmith/internal/services"
	"reelsmith/internal/services/ffmpeg"
)

// Renderer converts one downloaded scene image into a fixed-duration clip at
// the pipeline's target geometry. Zoom and pan parameters travel with the
// scene but are not animated here; the transcoder invocation renders a static
// framing.
type Renderer struct {
	transcoder ffmpeg.Transcoder
	logger     *slog.Logger
}

// NewRenderer builds a Renderer on top of the given transcoder.
func NewRenderer(transcoder ffmpeg.Transcoder, logger *slog.Logger) *Renderer {
	return &Renderer{
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "renderer"),
	}
}

// RenderClip produces the clip for one scene. Any transcoder failure is fatal
// to the job; there is no partial-clip retry.
func (r *Renderer) RenderClip(ctx context.Context, sc scene.Scene, imagePath, clipPath string) error {
	start := time.Now()
	if err := r.transcoder.RenderImageToClip(ctx, imagePath, sc.Duration, clipPath); err != nil {
		return err
	}
	attrs := append(services.ContextAttrs(ctx),
		logging.Int("scene_index", sc.Index),
		logging.Float64("duration_seconds", sc.Duration),
		logging.Duration("elapsed", time.Since(start)),
	)
	r.logger.Debug("clip rendered", attrs...)
	return nil
}
