// Package api defines the JSON payload shapes shared by the HTTP server, the
// CLI, and the workspace status checkpoints, plus conversions from queue rows.
// Keeping the DTOs here prevents the transport layer from leaking into queue
// semantics.
package api
