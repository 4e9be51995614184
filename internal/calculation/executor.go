package calculation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// numCPUFunc probes how many workers the host can run (override in tests).
var numCPUFunc = runtime.NumCPU

// SetNumCPUFunc overrides the capability probe (use only in tests).
func SetNumCPUFunc(f func() int) { numCPUFunc = f }

// Executor runs n independent scenario tasks. A task writes only to slots
// owned by its index, so no executor needs locking.
type Executor interface {
	Name() string
	Execute(ctx context.Context, n int, task func(i int)) error
}

// SequentialExecutor runs every scenario on the calling goroutine.
type SequentialExecutor struct{}

func (SequentialExecutor) Name() string { return "sequential" }

func (SequentialExecutor) Execute(ctx context.Context, n int, task func(i int)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		task(i)
	}
	return nil
}

// ParallelExecutor fans scenarios out over a bounded set of goroutines.
type ParallelExecutor struct {
	Workers int
}

func (ParallelExecutor) Name() string { return "parallel" }

func (e ParallelExecutor) Execute(ctx context.Context, n int, task func(i int)) error {
	workers := max(e.Workers, 1)
	// at most four chunks per worker
	chunks := min(n, workers*4)
	if chunks == 0 {
		return ctx.Err()
	}
	size := (n + chunks - 1) / chunks

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += size {
		if gctx.Err() != nil {
			break
		}
		end := min(start+size, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				task(i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// selectExecutor picks the parallel strategy when the host has more than one
// usable worker and the run is large enough; otherwise sequential.
func (e *Engine) selectExecutor(numPaths int) Executor {
	workers := e.options.Workers
	probed := numCPUFunc()
	if workers > probed {
		e.logger.Warnf("requested %d workers but only %d CPUs are usable, capping", workers, probed)
	}
	if workers <= 0 || workers > probed {
		workers = probed
	}
	if workers <= 1 {
		e.logger.Debugf("parallel execution unavailable (%d usable workers), running sequentially", workers)
		return SequentialExecutor{}
	}
	if numPaths < e.options.ParallelThreshold {
		e.logger.Debugf("%d paths below parallel threshold %d, running sequentially", numPaths, e.options.ParallelThreshold)
		return SequentialExecutor{}
	}
	return ParallelExecutor{Workers: workers}
}
