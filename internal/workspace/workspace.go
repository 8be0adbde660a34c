package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reelsmith/internal/fileutil"
)

// Workspace is the exclusive per-job storage area holding every intermediate
// and final artifact. All paths are derived from the job id through semantic
// accessors, so callers never join path fragments by hand.
type Workspace struct {
	dir   string
	jobID string
}

// New binds a workspace to a job id under the given base directory. The id is
// rejected when it could escape the base directory.
func New(baseDir, jobID string) (Workspace, error) {
	if strings.TrimSpace(baseDir) == "" {
		return Workspace{}, errors.New("workspace base directory required")
	}
	if err := validateJobID(jobID); err != nil {
		return Workspace{}, err
	}
	return Workspace{dir: filepath.Join(baseDir, jobID), jobID: jobID}, nil
}

func validateJobID(jobID string) error {
	if strings.TrimSpace(jobID) == "" {
		return errors.New("job id required")
	}
	if jobID != filepath.Base(jobID) || jobID == "." || jobID == ".." {
		return fmt.Errorf("job id %q is not a valid directory name", jobID)
	}
	return nil
}

// Create makes the workspace directory.
func (w Workspace) Create() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create workspace %s: %w", w.dir, err)
	}
	return nil
}

// Remove deletes the workspace directory and everything beneath it.
func (w Workspace) Remove() error {
	return os.RemoveAll(w.dir)
}

// JobID returns the owning job id.
func (w Workspace) JobID() string { return w.jobID }

// Dir returns the workspace directory.
func (w Workspace) Dir() string { return w.dir }

// PayloadPath locates the raw submission payload.
func (w Workspace) PayloadPath() string { return filepath.Join(w.dir, "payload.json") }

// SnapshotPath locates the durable status checkpoint.
func (w Workspace) SnapshotPath() string { return filepath.Join(w.dir, "status.json") }

// ImagePath locates the downloaded source image for a scene index.
func (w Workspace) ImagePath(index int) string {
	return filepath.Join(w.dir, fmt.Sprintf("img_%d.jpg", index))
}

// AudioPath locates the optional downloaded audio track.
func (w Workspace) AudioPath() string { return filepath.Join(w.dir, "audio.mp3") }

// ClipPath locates the rendered clip for a scene index.
func (w Workspace) ClipPath(index int) string {
	return filepath.Join(w.dir, fmt.Sprintf("clip_%d.mp4", index))
}

// ConcatListPath locates the concat demuxer manifest.
func (w Workspace) ConcatListPath() string { return filepath.Join(w.dir, "clips.txt") }

// MergedPath locates the concatenated video before audio and caption work.
func (w Workspace) MergedPath() string { return filepath.Join(w.dir, "final_noaudio.mp4") }

// FinalPath locates the fully composited artifact inside the workspace.
func (w Workspace) FinalPath() string {
	return filepath.Join(w.dir, w.jobID+".mp4")
}

// ResultFileName is the artifact name under the externally servable results
// directory.
func (w Workspace) ResultFileName() string { return w.jobID + ".mp4" }

// WritePayload persists the raw submission for post-hoc debugging.
func (w Workspace) WritePayload(raw []byte) error {
	if err := os.WriteFile(w.PayloadPath(), raw, 0o644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// WriteSnapshot checkpoints a status snapshot atomically so a concurrent
// reader never observes a half-written file.
func (w Workspace) WriteSnapshot(snapshot any) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := fileutil.WriteFileAtomic(w.SnapshotPath(), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
