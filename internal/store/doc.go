// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, allowing the orchestrator and handlers to remain
// independent of the backing implementation (in-memory today, a database
// later) without modification.
package store
