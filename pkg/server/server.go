package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/job"
	"github.com/cuemby/opcua-core/pkg/log"
	"github.com/cuemby/opcua-core/pkg/network"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
	"github.com/cuemby/opcua-core/pkg/worker"
)

// loopTimeoutCeiling bounds how long a single GetJobs call on the first
// network layer may block per iteration, so a repeated job scheduled far in
// the future never stalls the loop's responsiveness to newly registered
// work. The computed timeout is always clamped to this safety ceiling.
const loopTimeoutCeiling = 50 * time.Millisecond

// Config carries the application identity the server advertises and the
// worker pool sizing. Login/credential configuration lives in
// pkg/security.Config, not here; authentication is a service-layer
// concern, not a runtime-loop one.
type Config struct {
	ApplicationURI  string
	ApplicationName string

	// NThreads is the number of worker pool goroutines. Zero (the
	// default) runs every dispatchable job inline on the loop thread.
	NThreads int

	// WorkerQueueSize bounds how many jobs may sit in the worker pool's
	// queue before Submit starts returning false, making the loop fall
	// back to running the job inline. Ignored when NThreads is zero.
	WorkerQueueSize int
}

// Server is the runtime: a single loop thread merging
// repeated jobs from a job.RepeatedJobScheduler with jobs collected from
// every registered network.NetworkLayer, dispatching each either inline or
// to an optional worker.Pool.
type Server struct {
	cfg Config
	log zerolog.Logger

	Store     *store.Store
	Scheduler *job.RepeatedJobScheduler

	layers []network.NetworkLayer
	pool   *worker.Pool

	running atomic.Bool
	fatal   atomic.Bool
	wg      sync.WaitGroup

	// Dispatch is called for every job the loop decides to run, whether
	// inline or via the worker pool. cmd/opcuaserver wires its dispatcher
	// (built on pkg/service) in here; a nil Dispatch just drops jobs, which is only useful for
	// tests that exercise the loop's merge/timeout logic in isolation.
	Dispatch func(job.Job)

	// OnFatal, if set, is called once from the loop goroutine right before
	// it unwinds following a ReportFatal: a broken internal invariant is
	// fatal and unwinds the loop after logging. It runs before shutdown(),
	// so it can still inspect layers/pool state if needed.
	OnFatal func(error)
}

// New builds a Server around st and scheduler. RegisterLayer must be called
// for each network.NetworkLayer before Start.
func New(cfg Config, st *store.Store, scheduler *job.RepeatedJobScheduler) *Server {
	return &Server{
		cfg:       cfg,
		log:       log.WithComponent("server"),
		Store:     st,
		Scheduler: scheduler,
	}
}

// ApplicationDescription is the read-only identity the server exposes to
// clients, built from Config.
type ApplicationDescription struct {
	ApplicationURI  string
	ApplicationName string
}

// ApplicationDescription returns the server's advertised identity.
func (s *Server) ApplicationDescription() ApplicationDescription {
	return ApplicationDescription{
		ApplicationURI:  s.cfg.ApplicationURI,
		ApplicationName: s.cfg.ApplicationName,
	}
}

// QueueDepth reports how many jobs are waiting in the worker pool's queue,
// or 0 if no pool was configured (NThreads == 0) or Start hasn't run yet.
// Exposed so a *Server satisfies pkg/metrics.QueueDepther directly.
func (s *Server) QueueDepth() int {
	if s.pool == nil {
		return 0
	}
	return s.pool.QueueDepth()
}

// RegisterLayer attaches a network layer the loop will poll. Must be called
// before Start; the loop polls layers in registration order, and only the
// first one gets a nonzero timeout per iteration.
func (s *Server) RegisterLayer(l network.NetworkLayer) {
	s.layers = append(s.layers, l)
}

// Start runs startup and begins the main loop in its own
// goroutine, returning once every network layer has started. Call Stop to
// shut the loop back down.
func (s *Server) Start() error {
	for _, l := range s.layers {
		if err := l.Start(s.log); err != nil {
			return err
		}
	}

	if s.cfg.NThreads > 0 {
		s.pool = worker.New(s.cfg.NThreads, s.cfg.WorkerQueueSize, s.dispatchJob)
	}

	s.running.Store(true)
	s.wg.Add(1)
	go s.loop()
	return nil
}

// Stop clears the running flag and blocks until the loop has drained and
// torn every layer down.
func (s *Server) Stop() {
	s.running.Store(false)
	s.wg.Wait()
}

// ReportFatal marks the loop for an unscheduled shutdown following an
// InternalInvariantBroken error: an impossible node-store state was
// discovered, most often by pkg/health's invariant checker. The loop
// notices on its next iteration, logs, calls OnFatal if set, and unwinds
// through the same shutdown path Stop uses. Safe to call from any
// goroutine, including a repeated job running on the loop itself.
func (s *Server) ReportFatal(err error) {
	s.fatal.Store(true)
	s.log.Error().Err(err).Msg("fatal internal invariant broken, unwinding main loop")
}

func (s *Server) loop() {
	defer s.wg.Done()

	jobBuf := make([]job.Job, 64)

	for s.running.Load() && !s.fatal.Load() {
		now := time.Now()

		// Step 1: repeated jobs due as of now run inline, regardless of
		// worker pool configuration.
		for _, rj := range s.Scheduler.PopDue(now) {
			s.runInline(rj)
		}

		// Step 2: timeout for the first layer's GetJobs call, clamped to
		// the safety ceiling.
		timeout := loopTimeoutCeiling
		if deadline, ok := s.Scheduler.NextDeadline(); ok {
			if d := deadline.Sub(now); d < timeout {
				if d < 0 {
					d = 0
				}
				timeout = d
			}
		}

		// Step 3: poll each layer once, real timeout on the first, zero
		// timeout on the rest of this iteration.
		for i, l := range s.layers {
			layerTimeout := int64(0)
			if i == 0 {
				layerTimeout = timeout.Microseconds()
			}
			n, err := l.GetJobs(jobBuf, layerTimeout)
			if err != nil {
				s.log.Error().Err(err).Str("discovery_url", l.DiscoveryUrl()).Msg("network layer GetJobs failed")
				continue
			}
			// Step 5: dispatch each collected job.
			for _, j := range jobBuf[:n] {
				s.dispatchCollected(j)
			}
		}
	}

	s.running.Store(false)
	if s.fatal.Load() && s.OnFatal != nil {
		s.OnFatal(types.NewError(types.KindInternalInvariant, "server.loop"))
	}
	s.shutdown()
}

// dispatchCollected routes one job collected from a network layer: inline
// for detach-connection jobs, to the worker pool otherwise if one exists
// and the job allows it, inline as a fallback.
func (s *Server) dispatchCollected(j job.Job) {
	if j.Kind == job.KindDetachConnection || !j.Dispatchable || s.pool == nil {
		s.runInline(j)
		return
	}
	if !s.pool.Submit(j) {
		s.runInline(j)
	}
}

func (s *Server) runInline(j job.Job) {
	s.dispatchJob(j)
}

func (s *Server) dispatchJob(j job.Job) {
	if j.Run != nil {
		j.Run()
		return
	}
	if s.Dispatch != nil {
		s.Dispatch(j)
	}
}

// shutdown drains every layer's Stop jobs inline, joins the worker pool and
// releases each layer's resources.
func (s *Server) shutdown() {
	stopBuf := make([]job.Job, 64)
	for _, l := range s.layers {
		n, err := l.Stop(stopBuf)
		if err != nil {
			s.log.Error().Err(err).Str("discovery_url", l.DiscoveryUrl()).Msg("network layer Stop failed")
		}
		for _, j := range stopBuf[:n] {
			s.runInline(j)
		}
	}

	if s.pool != nil {
		s.pool.Stop()
	}

	for _, l := range s.layers {
		l.DeleteMembers()
	}
}
