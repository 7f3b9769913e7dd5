// Package memstore provides in-memory implementations of the store
// interfaces, backed by maps with monotonically incrementing integer IDs.
// It is the default backend and the one used in tests; a persistent backend
// can be swapped in without touching the orchestrator.
package memstore
