// Package daemon coordinates the long-running reelsmith process.
//
// It wires configuration, the job store, and the pipeline manager into a
// single lifecycle with flock-based locking to prevent multiple instances,
// and owns the HTTP API through which jobs are submitted and polled.
//
// Keep orchestration logic here: individual pipeline stages live in their
// respective packages while the daemon focuses on startup, shutdown, and
// request handling.
package daemon
