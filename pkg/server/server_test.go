package server_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/job"
	"github.com/cuemby/opcua-core/pkg/server"
	"github.com/cuemby/opcua-core/pkg/store"
)

// fakeLayer hands out a fixed set of jobs exactly once, then reports empty
// on every later poll, so tests can assert the loop drained them without
// re-delivering duplicates.
type fakeLayer struct {
	mu      sync.Mutex
	pending []job.Job
	started bool
	stopped bool
	deleted bool
}

func (f *fakeLayer) DiscoveryUrl() string { return "opc.tcp://fake" }

func (f *fakeLayer) Start(logger zerolog.Logger) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return nil
}

func (f *fakeLayer) GetJobs(out []job.Job, timeoutMicros int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := copy(out, f.pending)
	f.pending = nil
	return n, nil
}

func (f *fakeLayer) Stop(out []job.Job) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return 0, nil
}

func (f *fakeLayer) DeleteMembers() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = true
}

func (f *fakeLayer) push(j job.Job) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, j)
}

func TestServerDispatchesCollectedJobsInline(t *testing.T) {
	st := store.NewBootstrapped()
	sched := job.NewRepeatedJobScheduler()
	srv := server.New(server.Config{}, st, sched)

	var seen atomic.Int32
	srv.Dispatch = func(j job.Job) { seen.Add(1) }

	layer := &fakeLayer{}
	layer.push(job.Job{Kind: job.KindDecodedRequest, ChannelId: 1})
	srv.RegisterLayer(layer)

	require.NoError(t, srv.Start())
	require.Eventually(t, func() bool { return seen.Load() == 1 }, time.Second, 5*time.Millisecond)

	srv.Stop()
	assert.True(t, layer.started)
	assert.True(t, layer.stopped)
	assert.True(t, layer.deleted)
}

func TestServerRunsRepeatedJobsInline(t *testing.T) {
	st := store.NewBootstrapped()
	sched := job.NewRepeatedJobScheduler()
	srv := server.New(server.Config{}, st, sched)
	srv.RegisterLayer(&fakeLayer{})

	var fired atomic.Int32
	_, err := sched.AddRepeatedJob(job.Job{Run: func() { fired.Add(1) }}, 10*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, srv.Start())
	require.Eventually(t, func() bool { return fired.Load() >= 2 }, time.Second, 5*time.Millisecond)
	srv.Stop()
}

func TestServerStopIsIdempotentToCall(t *testing.T) {
	st := store.NewBootstrapped()
	sched := job.NewRepeatedJobScheduler()
	srv := server.New(server.Config{}, st, sched)
	srv.RegisterLayer(&fakeLayer{})

	require.NoError(t, srv.Start())
	time.Sleep(20 * time.Millisecond)
	srv.Stop()
	srv.Stop()
}

func TestServerReportFatalUnwindsLoop(t *testing.T) {
	st := store.NewBootstrapped()
	sched := job.NewRepeatedJobScheduler()
	srv := server.New(server.Config{}, st, sched)
	srv.RegisterLayer(&fakeLayer{})

	var fatalErr atomic.Pointer[error]
	srv.OnFatal = func(err error) { fatalErr.Store(&err) }

	require.NoError(t, srv.Start())
	srv.ReportFatal(assert.AnError)

	require.Eventually(t, func() bool { return fatalErr.Load() != nil }, time.Second, 5*time.Millisecond)
	srv.Stop()
}

func TestServerApplicationDescription(t *testing.T) {
	st := store.NewBootstrapped()
	sched := job.NewRepeatedJobScheduler()
	srv := server.New(server.Config{ApplicationURI: "urn:example:server", ApplicationName: "Example Server"}, st, sched)

	desc := srv.ApplicationDescription()
	assert.Equal(t, "urn:example:server", desc.ApplicationURI)
	assert.Equal(t, "Example Server", desc.ApplicationName)
}
