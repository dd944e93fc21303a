// Package worker runs CPU heavy jobs, such as batches of teleport resolutions, on a
// fixed number of goroutines.
package worker

import (
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/lvrc/oerror"
)

// Pool is a fixed set of worker goroutines. Jobs that panic are reported to sentry
// and do not take their worker down with them.
type Pool struct {
	queue chan func()
	jobs  sync.WaitGroup
	once  sync.Once
}

// New starts a Pool with n workers. A non-positive n starts one worker per CPU.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), n)}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for f := range p.queue {
		p.run(f)
	}
}

func (p *Pool) run(f func()) {
	defer p.jobs.Done()
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("component", "worker")
			})
			hub.Recover(panicError(err))
			hub.Flush(time.Second * 5)
		}
	}()
	f()
}

// panicError wraps a recovered panic value so that sentry receives an error.
func panicError(v any) *oerror.Error {
	return oerror.New("worker: job panicked: %v", v)
}

// Submit queues f to be run by one of the workers. It blocks while every worker is busy and the queue is full.
func (p *Pool) Submit(f func()) {
	p.jobs.Add(1)
	p.queue <- f
}

// Wait blocks until every job submitted so far has finished.
func (p *Pool) Wait() {
	p.jobs.Wait()
}

// Close waits for outstanding jobs and stops the workers. The Pool may not be used afterwards.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.jobs.Wait()
		close(p.queue)
	})
}
