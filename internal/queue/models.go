package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a render job.
type Status string

const (
	StatusQueued      Status = "queued"
	StatusDownloading Status = "downloading"
	StatusRendering   Status = "rendering"
	StatusMixing      Status = "mixing"
	StatusDone        Status = "done"
	StatusFailed      Status = "failed"
)

var allStatuses = []Status{
	StatusQueued,
	StatusDownloading,
	StatusRendering,
	StatusMixing,
	StatusDone,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// statusRank orders the lifecycle so transitions can be checked for
// monotonicity. Terminal states share the highest rank.
var statusRank = map[Status]int{
	StatusQueued:      0,
	StatusDownloading: 1,
	StatusRendering:   2,
	StatusMixing:      3,
	StatusDone:        4,
	StatusFailed:      4,
}

// Job represents a render job persisted in SQLite. The row doubles as the
// externally visible StatusSnapshot: it is overwritten on every transition
// and only the latest write is observable.
type Job struct {
	ID              string
	Status          Status
	Progress        int
	ErrorMessage    string
	VideoURL        string
	PayloadJSON     string
	DurationSeconds float64
	SizeBytes       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// CanTransition reports whether moving from s to next preserves the
// queued → downloading → rendering → mixing → {done|failed} ordering.
// failed is reachable from any non-terminal state.
func (s Status) CanTransition(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusFailed {
		return true
	}
	fromRank, ok := statusRank[s]
	if !ok {
		return false
	}
	toRank, ok := statusRank[next]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// SetProgress raises the advisory progress percentage. Values below the
// current progress are ignored so polling clients always observe a
// non-decreasing sequence.
func (j *Job) SetProgress(percent int) {
	if percent > 100 {
		percent = 100
	}
	if percent > j.Progress {
		j.Progress = percent
	}
}

// SetFailed marks the job as failed with the given error message.
func (j *Job) SetFailed(message string) {
	j.Status = StatusFailed
	j.ErrorMessage = message
}
