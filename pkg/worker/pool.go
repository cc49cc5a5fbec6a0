package worker

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/job"
	"github.com/cuemby/opcua-core/pkg/log"
)

// Pool runs a fixed number of goroutines, each pulling jobs off a shared
// queue and handing them to dispatch. It has no notion of job Kind; the
// caller supplies the function that knows how to run one.
type Pool struct {
	queue    chan job.Job
	dispatch func(job.Job)
	logger   zerolog.Logger

	wg      sync.WaitGroup
	stopped chan struct{}
}

// New returns a Pool with nThreads workers and a queue capacity of
// queueSize, calling dispatch for each job a worker picks up.
func New(nThreads, queueSize int, dispatch func(job.Job)) *Pool {
	if nThreads < 1 {
		nThreads = 1
	}
	p := &Pool{
		queue:    make(chan job.Job, queueSize),
		dispatch: dispatch,
		logger:   log.WithComponent("worker"),
		stopped:  make(chan struct{}),
	}
	p.wg.Add(nThreads)
	for i := 0; i < nThreads; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case j, ok := <-p.queue:
			if !ok {
				return
			}
			p.runOne(j)
		case <-p.stopped:
			return
		}
	}
}

// runOne dispatches a single job, recovering a panic so one bad handler
// doesn't take the whole worker goroutine down.
func (p *Pool) runOne(j job.Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Uint32("channel_id", j.ChannelId).
				Str("kind", j.Kind.String()).
				Interface("panic", r).
				Msg("worker job panicked")
		}
	}()
	p.dispatch(j)
}

// Submit enqueues j without blocking, returning false if the queue is full
// so the caller can fall back to running the job inline rather than
// stalling the main loop.
func (p *Pool) Submit(j job.Job) bool {
	select {
	case p.queue <- j:
		return true
	default:
		return false
	}
}

// QueueDepth reports how many jobs are currently waiting to be picked up,
// for the gauge pkg/metrics exposes.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

// Stop signals every worker to exit and waits for them to drain their
// current job. Jobs still sitting in the queue are abandoned; the caller
// (pkg/server) is expected to have already stopped submitting and drained
// anything it cares about before calling Stop.
func (p *Pool) Stop() {
	close(p.stopped)
	p.wg.Wait()
}
