package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"reelsmith/internal/config"
	"reelsmith/internal/services"
)

var commandContext = exec.CommandContext

// Transcoder is the typed capability the pipeline invokes for every encoding
// operation. Centralizing command and filter assembly here keeps escaping
// testable and lets tests inject a fake without a real binary.
type Transcoder interface {
	RenderImageToClip(ctx context.Context, imagePath string, durationSeconds float64, clipPath string) error
	ConcatenateCopy(ctx context.Context, listPath, outputPath string) error
	ConcatenateReencode(ctx context.Context, listPath, outputPath string) error
	Composite(ctx context.Context, spec CompositeSpec) error
}

// CompositeSpec describes the final mux: the concatenated video, an optional
// audio track, and an optional caption drawn over the full duration.
type CompositeSpec struct {
	VideoPath  string
	AudioPath  string
	Caption    string
	OutputPath string
}

// Option configures the CLI transcoder.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary    string
	width     int
	height    int
	frameRate int
	preset    string
	crf       int
	fontFile  string
	fontSize  int
}

// NewCLI constructs a CLI transcoder from configuration.
func NewCLI(cfg *config.Config, opts ...Option) *CLI {
	cli := &CLI{
		binary:    "ffmpeg",
		width:     1080,
		height:    1920,
		frameRate: 25,
		preset:    "veryfast",
		crf:       23,
		fontFile:  "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		fontSize:  48,
	}
	if cfg != nil {
		tc := cfg.Transcoder
		if tc.FFmpegBinary != "" {
			cli.binary = tc.FFmpegBinary
		}
		if tc.Width > 0 {
			cli.width = tc.Width
		}
		if tc.Height > 0 {
			cli.height = tc.Height
		}
		if tc.FrameRate > 0 {
			cli.frameRate = tc.FrameRate
		}
		if tc.Preset != "" {
			cli.preset = tc.Preset
		}
		if tc.CRF > 0 {
			cli.crf = tc.CRF
		}
		if tc.FontFile != "" {
			cli.fontFile = tc.FontFile
		}
		if tc.FontSize > 0 {
			cli.fontSize = tc.FontSize
		}
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// RenderImageToClip loops a still image for exactly durationSeconds, scaled
// to the target geometry at the fixed frame rate.
func (c *CLI) RenderImageToClip(ctx context.Context, imagePath string, durationSeconds float64, clipPath string) error {
	if imagePath == "" || clipPath == "" {
		return services.Wrap(services.ErrRender, "render", "clip", "image and clip paths required", nil)
	}
	if durationSeconds <= 0 {
		return services.Wrap(services.ErrRender, "render", "clip",
			fmt.Sprintf("duration %v must be positive", durationSeconds), nil)
	}

	args := []string{
		"-y",
		"-loop", "1",
		"-i", imagePath,
		"-t", formatSeconds(durationSeconds),
		"-vf", fmt.Sprintf("scale=%d:%d,format=yuv420p", c.width, c.height),
		"-c:v", "libx264",
		"-preset", c.preset,
		"-crf", strconv.Itoa(c.crf),
		"-r", strconv.Itoa(c.frameRate),
		clipPath,
	}
	return c.run(ctx, services.ErrRender, "clip", args)
}

// ConcatenateCopy merges the clips referenced by the concat manifest without
// re-encoding. Fast, but fails when clip encoding parameters diverge.
func (c *CLI) ConcatenateCopy(ctx context.Context, listPath, outputPath string) error {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outputPath,
	}
	return c.run(ctx, services.ErrConcat, "stream copy", args)
}

// ConcatenateReencode merges the manifest clips by re-encoding with the same
// codec settings as clip rendering. Slower fallback that tolerates parameter
// drift between clips.
func (c *CLI) ConcatenateReencode(ctx context.Context, listPath, outputPath string) error {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:v", "libx264",
		"-preset", c.preset,
		"-crf", strconv.Itoa(c.crf),
		outputPath,
	}
	return c.run(ctx, services.ErrConcat, "reencode", args)
}

// Composite muxes the video with optional audio and renders the optional
// caption overlay. With audio present the output truncates to the shorter
// stream so neither video nor audio dangles past the other.
func (c *CLI) Composite(ctx context.Context, spec CompositeSpec) error {
	if spec.VideoPath == "" || spec.OutputPath == "" {
		return services.Wrap(services.ErrComposite, "composite", "", "video and output paths required", nil)
	}

	var filter string
	if strings.TrimSpace(spec.Caption) != "" {
		filter = BuildDrawtext(c.fontFile, c.fontSize, spec.Caption)
	}

	args := []string{"-y", "-i", spec.VideoPath}
	if spec.AudioPath != "" {
		args = append(args, "-i", spec.AudioPath)
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", c.preset,
		"-crf", strconv.Itoa(c.crf),
	)
	if spec.AudioPath != "" {
		args = append(args, "-map", "0:v:0", "-map", "1:a:0", "-shortest")
	}
	if filter != "" {
		args = append(args, "-vf", filter)
	}
	args = append(args, spec.OutputPath)

	return c.run(ctx, services.ErrComposite, "mux", args)
}

func (c *CLI) run(ctx context.Context, marker error, operation string, args []string) error {
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return services.Wrap(marker, "ffmpeg", operation, detail, err)
	}
	return nil
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

var _ Transcoder = (*CLI)(nil)
