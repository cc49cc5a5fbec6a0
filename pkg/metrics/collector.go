package metrics

import (
	"strconv"
	"time"

	"github.com/cuemby/opcua-core/pkg/store"
)

// QueueDepther is satisfied by worker.Pool; kept as a narrow interface here
// so pkg/metrics doesn't need to import pkg/worker just to sample a gauge.
type QueueDepther interface {
	QueueDepth() int
}

// Collector periodically samples a Store (and, if set, a worker pool) and
// updates the corresponding gauges. It owns no other state.
type Collector struct {
	st     *store.Store
	pool   QueueDepther
	stopCh chan struct{}
}

// NewCollector returns a Collector sampling st. Call SetPool before Start if
// worker queue depth should be sampled too.
func NewCollector(st *store.Store) *Collector {
	return &Collector{
		st:     st,
		stopCh: make(chan struct{}),
	}
}

// SetPool attaches the worker pool whose queue depth this collector samples.
func (c *Collector) SetPool(pool QueueDepther) {
	c.pool = pool
}

// Start begins sampling every interval until Stop is called.
func (c *Collector) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop halts the sampling goroutine.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	counts := c.st.NodeCounts()
	NodesTotal.Reset()
	for ns, n := range counts {
		NodesTotal.WithLabelValues(strconv.Itoa(int(ns))).Set(float64(n))
	}
	ReferencesTotal.Set(float64(c.st.ReferenceCount()))

	if c.pool != nil {
		WorkerQueueDepth.Set(float64(c.pool.QueueDepth()))
	}
}
