package services

import (
	"context"

	"reelsmith/internal/logging"
)

type contextKey string

const (
	jobIDKey contextKey = "job_id"
	stageKey contextKey = "stage"
)

// WithJobID annotates context with the job identifier.
func WithJobID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts the job identifier if present.
func JobIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(jobIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// ContextAttrs returns logging attributes for the job id and stage carried by
// ctx. Component loggers that are not job-scoped use this to keep their
// output correlatable.
func ContextAttrs(ctx context.Context) []any {
	attrs := make([]any, 0, 2)
	if jobID, ok := JobIDFromContext(ctx); ok {
		attrs = append(attrs, logging.String(logging.FieldJobID, jobID))
	}
	if stage, ok := StageFromContext(ctx); ok {
		attrs = append(attrs, logging.String(logging.FieldStage, stage))
	}
	return attrs
}
