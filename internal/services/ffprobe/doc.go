// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The orchestrator inspects the final artifact with it to record the rendered
// duration and size on the job. It has no reelsmith-specific dependencies.
package ffprobe
