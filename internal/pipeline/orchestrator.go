package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"reelsmith/internal/api"
	"reelsmith/internal/compose"
	"reelsmith/internal/config"
	"reelsmith/internal/fetch"
	"reelsmith/internal/fileutil"
	"reelsmith/internal/logging"
	"reelsmith/internal/queue"
	"reelsmith/internal/render"
	"reelsmith/internal/scene"
	"reelsmith/internal/services"
	"reelsmith/internal/services/ffmpeg"
	"reelsmith/internal/services/ffprobe"
	"reelsmith/internal/workspace"
)

// Stage progress allocation: downloads complete at 5%, clip rendering is
// apportioned evenly across scenes between 10% and 50%, mixing starts at 70%,
// completion is 100%.
const (
	progressDownloadsDone = 5
	progressRenderBase    = 10
	progressRenderSpan    = 40
	progressMixing        = 70
	progressDone          = 100
)

// Orchestrator owns the end-to-end sequencing of one render job: parse scene
// graph, fetch media, render clips, concatenate, composite, publish. Stages
// within one job are strictly sequential; the per-job workspace and job row
// are never shared with another run.
type Orchestrator struct {
	cfg        *config.Config
	store      *queue.Store
	fetcher    *fetch.Fetcher
	renderer   *render.Renderer
	concat     *render.Concatenator
	compositor *compose.Compositor
	logger     *slog.Logger
}

// NewOrchestrator wires the pipeline stages on top of a shared transcoder.
func NewOrchestrator(cfg *config.Config, store *queue.Store, transcoder ffmpeg.Transcoder, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:        cfg,
		store:      store,
		fetcher:    fetch.New(cfg),
		renderer:   render.NewRenderer(transcoder, logger),
		concat:     render.NewConcatenator(transcoder, logger),
		compositor: compose.NewCompositor(transcoder, logger),
		logger:     logging.NewComponentLogger(logger, "orchestrator"),
	}
}

// Run drives a queued job to a terminal state. Any error or panic escaping a
// stage is converted into a failed status, so the job never hangs in a
// non-terminal state.
func (o *Orchestrator) Run(ctx context.Context, jobID string) (err error) {
	ctx = services.WithJobID(ctx, jobID)
	logger := o.logger.With(logging.String(logging.FieldJobID, jobID))
	start := time.Now()

	job, err := o.store.GetByID(ctx, jobID)
	if err != nil {
		logger.Error("job lookup failed", logging.Error(err))
		return err
	}

	ws, err := workspace.New(o.cfg.Paths.WorkspaceDir, jobID)
	if err != nil {
		return o.fail(ctx, logger, job, ws, services.Wrap(services.ErrInternal, "orchestrator", "workspace", "", err))
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = o.fail(ctx, logger, job, ws,
				services.Wrap(services.ErrInternal, "orchestrator", "panic", fmt.Sprint(recovered), nil))
		}
	}()

	sub, audioPath, parseErr := o.download(ctx, logger, job, ws)
	if parseErr != nil {
		return o.fail(ctx, logger, job, ws, parseErr)
	}

	if err := o.renderScenes(ctx, job, ws, sub); err != nil {
		return o.fail(ctx, logger, job, ws, err)
	}

	if err := o.mix(ctx, job, ws, sub, audioPath); err != nil {
		return o.fail(ctx, logger, job, ws, err)
	}

	if err := o.publish(ctx, logger, job, ws); err != nil {
		return o.fail(ctx, logger, job, ws, err)
	}

	job.Status = queue.StatusDone
	job.SetProgress(progressDone)
	if err := o.persist(ctx, job, ws); err != nil {
		logger.Error("failed to persist terminal status", logging.Error(err))
		return err
	}
	logger.Info("job completed",
		logging.Int("scenes", len(sub.Scenes)),
		logging.Float64("duration_seconds", job.DurationSeconds),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// download resolves scene image sources and the optional audio source. Image
// fetch failures are fatal; an audio fetch failure records a soft failure and
// the job proceeds with audio = none.
func (o *Orchestrator) download(ctx context.Context, logger *slog.Logger, job *queue.Job, ws workspace.Workspace) (*scene.Submission, string, error) {
	ctx = services.WithStage(ctx, "downloading")
	job.Status = queue.StatusDownloading
	if err := o.persist(ctx, job, ws); err != nil {
		return nil, "", err
	}

	sub, err := scene.ParseSubmission([]byte(job.PayloadJSON))
	if err != nil {
		return nil, "", services.Wrap(services.ErrInternal, "downloading", "parse submission", "", err)
	}

	for _, sc := range sub.Scenes {
		if _, err := o.fetcher.Fetch(ctx, sc.ImageURL, ws.ImagePath(sc.Index)); err != nil {
			return nil, "", err
		}
	}

	audioPath := ""
	if sub.AudioURL != "" {
		if _, err := o.fetcher.Fetch(ctx, sub.AudioURL, ws.AudioPath()); err != nil {
			logger.Warn("audio fetch failed, continuing without audio",
				logging.String("audio_url", sub.AudioURL),
				logging.Error(err),
			)
		} else {
			audioPath = ws.AudioPath()
		}
	}

	logger.Info("media downloaded",
		logging.Int("scenes", len(sub.Scenes)),
		logging.Float64("planned_duration_seconds", sub.TotalDuration()),
		logging.Bool("has_audio", audioPath != ""),
	)
	return sub, audioPath, nil
}

// renderScenes produces one clip per scene, in scene order, then merges them
// into the pre-audio video. Progress for this stage is apportioned evenly
// across the scene count.
func (o *Orchestrator) renderScenes(ctx context.Context, job *queue.Job, ws workspace.Workspace, sub *scene.Submission) error {
	ctx = services.WithStage(ctx, "rendering")
	job.Status = queue.StatusRendering
	job.SetProgress(progressDownloadsDone)
	if err := o.persist(ctx, job, ws); err != nil {
		return err
	}

	clipPaths := make([]string, 0, len(sub.Scenes))
	for i, sc := range sub.Scenes {
		clipPath := ws.ClipPath(sc.Index)
		if err := o.renderer.RenderClip(ctx, sc, ws.ImagePath(sc.Index), clipPath); err != nil {
			return err
		}
		clipPaths = append(clipPaths, clipPath)

		job.SetProgress(progressRenderBase + (i+1)*progressRenderSpan/len(sub.Scenes))
		if err := o.persist(ctx, job, ws); err != nil {
			return err
		}
	}

	return o.concat.Concatenate(ctx, clipPaths, ws.ConcatListPath(), ws.MergedPath())
}

// mix composites the merged video with optional audio and caption.
func (o *Orchestrator) mix(ctx context.Context, job *queue.Job, ws workspace.Workspace, sub *scene.Submission, audioPath string) error {
	ctx = services.WithStage(ctx, "mixing")
	job.Status = queue.StatusMixing
	job.SetProgress(progressMixing)
	if err := o.persist(ctx, job, ws); err != nil {
		return err
	}

	return o.compositor.Composite(ctx, ws.MergedPath(), audioPath, sub.Caption, ws.FinalPath())
}

// publish copies the final artifact to the externally servable results
// directory and records its probed duration and size. Probe failures are
// non-fatal; the artifact is already complete.
func (o *Orchestrator) publish(ctx context.Context, logger *slog.Logger, job *queue.Job, ws workspace.Workspace) error {
	resultPath := filepath.Join(o.cfg.Paths.ResultsDir, ws.ResultFileName())
	if err := fileutil.CopyFile(ws.FinalPath(), resultPath); err != nil {
		return services.Wrap(services.ErrInternal, "mixing", "publish artifact", resultPath, err)
	}

	probed, err := ffprobe.Inspect(ctx, o.cfg.Transcoder.FFprobeBinary, ws.FinalPath())
	if err != nil {
		logger.Warn("final artifact probe failed", logging.Error(err))
		return nil
	}
	job.DurationSeconds = probed.DurationSeconds()
	job.SizeBytes = probed.SizeBytes()
	logger.Debug("final artifact probed",
		logging.Float64("duration_seconds", job.DurationSeconds),
		logging.Int64("size_bytes", job.SizeBytes),
		logging.Bool("has_audio", probed.AudioStreamCount() > 0),
	)
	return nil
}

// fail records a terminal failed status with a bounded error excerpt.
func (o *Orchestrator) fail(ctx context.Context, logger *slog.Logger, job *queue.Job, ws workspace.Workspace, cause error) error {
	job.SetFailed(services.Excerpt(cause.Error(), o.cfg.Pipeline.ErrorExcerptLimit))
	if err := o.persist(context.WithoutCancel(ctx), job, ws); err != nil {
		logger.Error("failed to persist failure status", logging.Error(err))
	}
	logger.Error("job failed", logging.Error(cause))
	return cause
}

// persist overwrites the job row and checkpoints the workspace snapshot.
func (o *Orchestrator) persist(ctx context.Context, job *queue.Job, ws workspace.Workspace) error {
	if err := o.store.Update(ctx, job); err != nil {
		return fmt.Errorf("persist job %s: %w", job.ID, err)
	}
	if ws.Dir() != "" {
		if err := ws.WriteSnapshot(api.SnapshotFromJob(job)); err != nil {
			// The store row is authoritative; the workspace checkpoint is
			// best-effort debugging state.
			o.logger.Warn("snapshot checkpoint failed",
				logging.String(logging.FieldJobID, job.ID),
				logging.Error(err),
			)
		}
	}
	return nil
}
