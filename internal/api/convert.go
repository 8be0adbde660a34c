package api

import (
	"time"

	"reelsmith/internal/queue"
)

// SnapshotFromJob projects a job row onto the polling surface. The video URL
// is only exposed once the job is done; progress is omitted while still zero.
func SnapshotFromJob(job *queue.Job) StatusSnapshot {
	snapshot := StatusSnapshot{
		JobID:    job.ID,
		Status:   string(job.Status),
		Progress: job.Progress,
		Error:    job.ErrorMessage,
	}
	if job.Status == queue.StatusDone {
		snapshot.VideoURL = job.VideoURL
	}
	return snapshot
}

// SummaryFromJob projects a job row onto the operator listing surface.
func SummaryFromJob(job *queue.Job) JobSummary {
	return JobSummary{
		JobID:           job.ID,
		Status:          string(job.Status),
		Progress:        job.Progress,
		Error:           job.ErrorMessage,
		DurationSeconds: job.DurationSeconds,
		SizeBytes:       job.SizeBytes,
		CreatedAt:       formatTime(job.CreatedAt),
		UpdatedAt:       formatTime(job.UpdatedAt),
	}
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
