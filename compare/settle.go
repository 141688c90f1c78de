package compare

import (
	"context"

	"github.com/fwojciec/parsecompare"
	"golang.org/x/sync/errgroup"
)

// Task is one independent unit of work run by Settle.
type Task[T any] func(ctx context.Context) (T, error)

// Result holds the settled outcome of a Task. Exactly one of Value and Err is
// meaningful: Err is nil when the task succeeded.
type Result[T any] struct {
	Value T
	Err   error
}

// Settle runs all tasks concurrently and waits for every one of them to
// finish, returning their results in task order. A failing or panicking task
// never cancels or affects its siblings.
func Settle[T any](ctx context.Context, tasks ...Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	// The group is not derived from ctx: tasks report into their own slot and
	// always return nil, so one failure cannot cancel the others.
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = run(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func run[T any](ctx context.Context, task Task[T]) (result Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = Result[T]{Err: parsecompare.Errorf(parsecompare.EINTERNAL, "panic: %v", r)}
		}
	}()
	v, err := task(ctx)
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{Value: v}
}

