// Package services holds shared plumbing for components that call external
// capabilities: the failure classification sentinels, error wrapping helpers,
// bounded error excerpts, and context annotations for job and stage tagging.
package services
