package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRepeatedJobRejectsSmallInterval(t *testing.T) {
	s := NewRepeatedJobScheduler()
	_, err := s.AddRepeatedJob(Job{Kind: KindBinaryMessage}, 1*time.Millisecond)
	require.Error(t, err)
}

func TestPopDueIsDriftFree(t *testing.T) {
	s := NewRepeatedJobScheduler()
	base := time.Now()
	id, err := s.AddRepeatedJob(Job{Kind: KindBinaryMessage}, 100*time.Millisecond)
	require.NoError(t, err)
	require.NotEqual(t, id.String(), "")

	first, ok := s.NextDeadline()
	require.True(t, ok)

	// Fire exactly on schedule, slightly late each time; nextFire should
	// always advance by the fixed interval from its own previous value,
	// never from "now", so the deadlines stay in lockstep regardless of
	// when PopDue happened to be called.
	due := s.PopDue(first.Add(5 * time.Millisecond))
	require.Len(t, due, 1)

	second, ok := s.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, first.Add(100*time.Millisecond), second)
	_ = base
}

func TestPopDueCatchesUpOnceOnStall(t *testing.T) {
	s := NewRepeatedJobScheduler()
	_, err := s.AddRepeatedJob(Job{Kind: KindBinaryMessage}, 10*time.Millisecond)
	require.NoError(t, err)

	first, ok := s.NextDeadline()
	require.True(t, ok)

	// Simulate the loop stalling for 10 intervals: a naive fixed-advance
	// would leave nextFire far in the past, due again on the very next
	// PopDue call. Instead it should re-base to stalledNow+interval so it
	// fires once for the stall, not a burst.
	stalledNow := first.Add(100 * time.Millisecond)
	due := s.PopDue(stalledNow)
	require.Len(t, due, 1)

	next, ok := s.NextDeadline()
	require.True(t, ok)
	assert.True(t, next.After(stalledNow))
	assert.Equal(t, stalledNow.Add(10*time.Millisecond), next)

	// And it doesn't fire again immediately.
	due = s.PopDue(stalledNow)
	assert.Len(t, due, 0)
}

func TestRemoveRepeatedJobIsIdempotent(t *testing.T) {
	s := NewRepeatedJobScheduler()
	id, err := s.AddRepeatedJob(Job{Kind: KindBinaryMessage}, 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	s.RemoveRepeatedJob(id)
	assert.Equal(t, 0, s.Len())

	s.RemoveRepeatedJob(id) // no-op, must not panic
	assert.Equal(t, 0, s.Len())
}
