// Package workers provides a bounded pool for CPU-bound jobs that run on
// behalf of HTTP requests, such as avatar normalization.
//
// The pool caps how many jobs execute at the same time so that a burst of
// uploads cannot starve unrelated request handling.
package workers

import "context"

// Job is a unit of work executed by a [Pool]. The context passed to a job
// is the caller's context.
type Job func(ctx context.Context) error

// Runner is the interface implemented by [Pool].
//
// Example usage:
//
//	err := pool.Do(ctx, func(ctx context.Context) error {
//	    out, err = normalizer.Normalize(data)
//	    return err
//	})
type Runner interface {
	Do(ctx context.Context, job Job) error
}
