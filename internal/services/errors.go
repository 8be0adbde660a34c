package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers classifying pipeline failures. Stage code wraps errors with
// one of these so the orchestrator and API can report a stable failure class.
var (
	ErrFetch     = errors.New("fetch error")
	ErrRender    = errors.New("render error")
	ErrConcat    = errors.New("concat error")
	ErrComposite = errors.New("composite error")
	ErrInternal  = errors.New("internal error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Excerpt bounds an error or tool-output string so failed job records never
// carry unbounded transcoder stderr. A limit <= 0 falls back to 240.
func Excerpt(text string, limit int) string {
	if limit <= 0 {
		limit = 240
	}
	cleaned := strings.TrimSpace(text)
	if len(cleaned) <= limit {
		return cleaned
	}
	return cleaned[:limit]
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
