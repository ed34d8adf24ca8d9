package workers

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

var ErrNilJob = errors.New("nil job")

// Pool bounds concurrent job execution with a weighted semaphore.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

// NewPool returns a pool that runs at most size jobs at once. A non-positive
// size defaults to GOMAXPROCS.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}

	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Size reports the maximum number of concurrently running jobs.
func (p *Pool) Size() int {
	return int(p.size)
}

// Do waits for a free slot and runs job on the calling goroutine. Waiting
// stops when ctx is done, in which case the job never starts.
func (p *Pool) Do(ctx context.Context, job Job) error {
	if job == nil {
		return ErrNilJob
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for a worker slot: %w", err)
	}
	defer p.sem.Release(1)

	return job(ctx)
}
