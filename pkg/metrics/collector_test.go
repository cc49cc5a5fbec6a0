package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/metrics"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

type fakePool struct{ depth int }

func (f fakePool) QueueDepth() int { return f.depth }

// sampledNodes returns the opcua_nodes_total gauge for namespace ns as
// gathered from the default registry, or -1 when it is not there.
func sampledNodes(ns string) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() != "opcua_nodes_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "namespace" && lp.GetValue() == ns {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	return -1
}

func TestCollectorSamplesNodeCounts(t *testing.T) {
	st := store.NewBootstrapped()
	before := st.NodeCounts()

	id, err := st.AddNode(&types.ObjectNode{
		NodeHeader: types.NodeHeader{BrowseName: types.QualifiedName{Name: "Widget"}},
	}, store.NodeIdObjectsFolder, store.RefTypeOrganizes, types.NullNodeId)
	require.NoError(t, err)
	assert.False(t, id.IsNull())

	c := metrics.NewCollector(st)
	c.SetPool(fakePool{depth: 3})
	c.Start(5 * time.Millisecond)
	defer c.Stop()

	require.Eventually(t, func() bool {
		return sampledNodes("0") == float64(before[0]+1)
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 3, fakePool{depth: 3}.QueueDepth())
}

func TestCollectorStopIsSafeAfterStart(t *testing.T) {
	st := store.NewBootstrapped()
	c := metrics.NewCollector(st)
	c.Start(5 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	c.Stop()
}
