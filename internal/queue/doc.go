// Package queue persists render jobs in SQLite and defines their lifecycle.
//
// The Store manages database connections, schema initialization, and the
// single-row-per-job snapshot the HTTP status endpoint projects to pollers.
// Each job row is overwritten on every transition; only the latest write is
// observable, and the orchestrator task that owns a job is its only writer.
//
// The database is transient storage for in-flight and recent jobs rather than
// a long-term archive. Schema changes bump the version in schema.go; users
// delete the database to adopt the new schema.
package queue
