// Package task executes a batch of independent asynchronous operations under
// a fixed concurrency ceiling, used by the generation pipeline to fan out
// per-page illustration and narration work without exceeding upstream rate
// limits. It is a one-shot bounded runner per pipeline invocation, not a
// resident job queue.
package task
