package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"reelsmith/internal/config"
	"reelsmith/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config: directory
// access for the workspace and results trees, the caption font, and free
// space on the workspace filesystem.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Workspace directory", cfg.Paths.WorkspaceDir),
		CheckDirectoryAccess("Results directory", cfg.Paths.ResultsDir),
		CheckFontFile(cfg.Transcoder.FontFile),
		CheckFreeSpace(cfg.Paths.WorkspaceDir, cfg.Pipeline.MinFreeBytes),
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable and
// writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFontFile verifies the caption font is a readable regular file. Jobs
// without captions never touch the font, so a failure here is reported but
// does not block the daemon.
func CheckFontFile(path string) Result {
	const name = "Caption font"
	if path == "" {
		return Result{Name: name, Detail: "font file not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckFreeSpace verifies the filesystem backing the workspace has at least
// minFreeBytes available for intermediate clips.
func CheckFreeSpace(path string, minFreeBytes int64) Result {
	const name = "Free space"
	if minFreeBytes <= 0 {
		return Result{Name: name, Passed: true, Detail: "minimum not configured"}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := int64(stat.Bavail) * stat.Bsize
	if free < minFreeBytes {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("%s (%d MiB free, need %d MiB)", path, free>>20, minFreeBytes>>20),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", path, free>>20)}
}

// CheckSystemDeps evaluates the external tools the pipeline shells out to.
// Both the daemon startup path and the CLI status command use this list.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Transcoder.FFmpegBinary,
			Description: "Required for clip rendering and compositing",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Transcoder.FFprobeBinary,
			Description: "Used to record duration and size of finished videos",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}
