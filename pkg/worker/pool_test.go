package worker_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/job"
	"github.com/cuemby/opcua-core/pkg/worker"
)

func TestPoolDispatchesSubmittedJobs(t *testing.T) {
	var mu sync.Mutex
	var seen []uint32

	p := worker.New(2, 8, func(j job.Job) {
		mu.Lock()
		seen = append(seen, j.ChannelId)
		mu.Unlock()
	})
	defer p.Stop()

	for i := uint32(1); i <= 5; i++ {
		require.True(t, p.Submit(job.Job{Kind: job.KindDecodedRequest, ChannelId: i}))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 5
	}, time.Second, 10*time.Millisecond)
}

func TestPoolSurvivesPanickingJob(t *testing.T) {
	done := make(chan struct{}, 1)
	p := worker.New(1, 4, func(j job.Job) {
		if j.ChannelId == 1 {
			panic("boom")
		}
		done <- struct{}{}
	})
	defer p.Stop()

	require.True(t, p.Submit(job.Job{ChannelId: 1}))
	require.True(t, p.Submit(job.Job{ChannelId: 2}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not recover from panic and process the next job")
	}
}

func TestPoolSubmitFailsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	p := worker.New(1, 1, func(j job.Job) {
		<-block
	})
	defer func() {
		close(block)
		p.Stop()
	}()

	require.True(t, p.Submit(job.Job{ChannelId: 1})) // picked up immediately, worker blocks
	require.Eventually(t, func() bool { return p.QueueDepth() == 0 }, time.Second, time.Millisecond)
	require.True(t, p.Submit(job.Job{ChannelId: 2})) // fills the queue
	assert.False(t, p.Submit(job.Job{ChannelId: 3})) // queue full
}
