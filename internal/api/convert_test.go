package api_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"reelsmith/internal/api"
	"reelsmith/internal/queue"
)

func TestSnapshotFromJobHidesVideoURLUntilDone(t *testing.T) {
	job := &queue.Job{ID: "j1", Status: queue.StatusRendering, Progress: 30, VideoURL: "/result/j1.mp4"}
	snapshot := api.SnapshotFromJob(job)
	if snapshot.VideoURL != "" {
		t.Fatalf("video url leaked before done: %q", snapshot.VideoURL)
	}

	job.Status = queue.StatusDone
	job.Progress = 100
	snapshot = api.SnapshotFromJob(job)
	if snapshot.VideoURL != "/result/j1.mp4" {
		t.Fatalf("video url missing when done: %#v", snapshot)
	}
}

func TestSnapshotOmitsEmptyFields(t *testing.T) {
	job := &queue.Job{ID: "j2", Status: queue.StatusQueued}
	data, err := json.Marshal(api.SnapshotFromJob(job))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, forbidden := range []string{"progress", "error", "video_url"} {
		if strings.Contains(body, forbidden) {
			t.Errorf("queued snapshot should omit %s: %s", forbidden, body)
		}
	}
}

func TestSummaryFromJob(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	job := &queue.Job{
		ID:              "j3",
		Status:          queue.StatusDone,
		Progress:        100,
		DurationSeconds: 12.5,
		SizeBytes:       4096,
		CreatedAt:       created,
		UpdatedAt:       created.Add(time.Minute),
	}
	summary := api.SummaryFromJob(job)
	if summary.CreatedAt != "2026-05-01T10:00:00Z" {
		t.Fatalf("unexpected created_at: %s", summary.CreatedAt)
	}
	if summary.DurationSeconds != 12.5 || summary.SizeBytes != 4096 {
		t.Fatalf("probe fields not carried: %#v", summary)
	}
}
