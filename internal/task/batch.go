package task

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the fallback ceiling when a caller passes an invalid
// limit.
const DefaultConcurrency = 1

// Func is one unit of batch work. It receives the caller's context and
// returns its result or an error.
type Func[T any] func(ctx context.Context) (T, error)

// Run executes tasks with at most limit in flight simultaneously and returns
// their results indexed by task position, regardless of completion order.
//
// The first task failure aborts the batch: unstarted tasks are skipped and
// the failure is returned. Tasks already in flight are not cancelled — they
// run against the caller's context and their results are discarded, matching
// the upstream providers' behavior of completing already-issued calls.
func Run[T any](ctx context.Context, logger *slog.Logger, limit int, tasks []Func[T]) ([]T, error) {
	if limit <= 0 {
		logger.Warn("invalid concurrency limit, using default",
			"specified_limit", limit,
			"default_limit", DefaultConcurrency)
		limit = DefaultConcurrency
	}

	results := make([]T, len(tasks))

	// The group context only gates task *starts*; running tasks get the
	// caller's context so a batch failure does not cancel in-flight calls.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i, fn := range tasks {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			result, err := fn(ctx)
			if err != nil {
				return fmt.Errorf("task %d: %w", i, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
