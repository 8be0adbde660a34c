package api

// StatusSnapshot is the externally visible projection of a job, returned by
// the status endpoint and checkpointed into the job workspace. It is a single
// overwritten record; only the latest write is observable.
type StatusSnapshot struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	Progress int    `json:"progress,omitempty"`
	Error    string `json:"error,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// SubmitResponse acknowledges a render submission before the pipeline runs.
type SubmitResponse struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	VideoURL string `json:"video_url"`
}

// JobSummary is the list projection of a job for operators.
type JobSummary struct {
	JobID           string  `json:"job_id"`
	Status          string  `json:"status"`
	Progress        int     `json:"progress"`
	Error           string  `json:"error,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	SizeBytes       int64   `json:"size_bytes,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// JobListResponse contains recent jobs, newest first.
type JobListResponse struct {
	Jobs []JobSummary `json:"jobs"`
}

// HealthResponse reports daemon health and per-status job counts.
type HealthResponse struct {
	Status    string         `json:"status"`
	Active    int            `json:"active_jobs"`
	JobCounts map[string]int `json:"job_counts"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
