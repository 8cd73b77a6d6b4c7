package solver

import "context"

// TrainingRun is a handle on a background training session. Advice
// reads against the shared regret table stay responsive while it runs;
// they may observe a partially-applied iteration, which averaging
// tolerates.
type TrainingRun struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// TrainAsync starts Run on its own goroutine and returns immediately.
func (t *Trainer) TrainAsync(ctx context.Context, n int, progress func(Progress)) *TrainingRun {
	ctx, cancel := context.WithCancel(ctx)
	run := &TrainingRun{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(run.done)
		defer cancel()
		run.err = t.Run(ctx, n, progress)
	}()
	return run
}

// Stop requests a graceful stop after the iteration in flight.
func (r *TrainingRun) Stop() {
	r.cancel()
}

// Wait blocks until the run finishes and returns its error. A run
// stopped via Stop returns context.Canceled.
func (r *TrainingRun) Wait() error {
	<-r.done
	return r.err
}

// Done exposes completion for select loops.
func (r *TrainingRun) Done() <-chan struct{} {
	return r.done
}
