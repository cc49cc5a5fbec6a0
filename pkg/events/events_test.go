package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/events"
	"github.com/cuemby/opcua-core/pkg/types"
)

func TestBrokerDeliversPublishedEventToSubscriber(t *testing.T) {
	b := events.NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	id := types.NewNumericNodeId(1, 42)
	b.Publish(events.Event{Type: events.TypeNodeAdded, NodeId: id, Message: "widget created"})

	select {
	case ev := <-sub:
		assert.Equal(t, events.TypeNodeAdded, ev.Type)
		assert.True(t, id.Equal(ev.NodeId))
		assert.False(t, ev.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerFansOutToMultipleSubscribers(t *testing.T) {
	b := events.NewBroker()
	b.Start()
	defer b.Stop()

	subA := b.Subscribe()
	subB := b.Subscribe()
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(events.Event{Type: events.TypeServerStarted})

	for _, sub := range []events.Subscriber{subA, subB} {
		select {
		case ev := <-sub:
			assert.Equal(t, events.TypeServerStarted, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := events.NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)
	assert.Equal(t, 0, b.SubscriberCount())

	b.Publish(events.Event{Type: events.TypeWorkerPanic})

	_, ok := <-sub
	assert.False(t, ok, "unsubscribed channel should be closed")
}
