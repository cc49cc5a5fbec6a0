package job

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuemby/opcua-core/pkg/types"
)

// MinRepeatedInterval is the shortest interval AddRepeatedJob accepts.
// Anything at or below it is rejected with KindArgumentInvalid rather than
// silently clamped, so a misconfigured caller finds out immediately instead
// of starving the loop.
const MinRepeatedInterval = 5 * time.Millisecond

type repeatedEntry struct {
	id       uuid.UUID
	interval time.Duration
	nextFire time.Time
	job      Job
}

// RepeatedJobScheduler holds the set of jobs due to re-fire on an interval.
// It runs no goroutine of its own: the server main loop calls PopDue once
// per iteration and dispatches whatever comes back. All
// methods are safe to call concurrently; PopDue is expected to be called
// only from the loop thread, but nothing here enforces that.
type RepeatedJobScheduler struct {
	mu      sync.Mutex
	entries []*repeatedEntry
}

// NewRepeatedJobScheduler returns an empty scheduler.
func NewRepeatedJobScheduler() *RepeatedJobScheduler {
	return &RepeatedJobScheduler{}
}

// AddRepeatedJob schedules job to fire every interval, starting one interval
// from now, and returns the id used to remove it later.
func (s *RepeatedJobScheduler) AddRepeatedJob(j Job, interval time.Duration) (uuid.UUID, error) {
	if interval <= MinRepeatedInterval {
		return uuid.Nil, types.NewError(types.KindArgumentInvalid, "addRepeatedJob.intervalTooSmall")
	}
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &repeatedEntry{
		id:       id,
		interval: interval,
		nextFire: time.Now().Add(interval),
		job:      j,
	})
	s.sortLocked()
	return id, nil
}

// RemoveRepeatedJob cancels a previously added job. Removing an id that
// doesn't exist (already removed, or never existed) is a no-op, matching
// the idempotent-removal behavior callers expect when a connection tears
// down and tries to cancel jobs it may or may not still own.
func (s *RepeatedJobScheduler) RemoveRepeatedJob(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// PopDue returns every job whose nextFire has passed as of now, advancing
// each entry to its next scheduled fire time. Advancement is drift-free:
// nextFire moves forward by exactly interval from its previous value, never
// from now, so a burst of short delays in the caller doesn't shift the
// schedule's phase. If the loop stalled long enough that an entry's next
// fire time would still be due after one advance, it re-bases to now +
// interval exactly once instead of returning a catch-up storm of missed
// fires.
func (s *RepeatedJobScheduler) PopDue(now time.Time) []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Job
	for _, e := range s.entries {
		if e.nextFire.After(now) {
			continue
		}
		due = append(due, e.job)
		e.nextFire = e.nextFire.Add(e.interval)
		if !e.nextFire.After(now) {
			e.nextFire = now.Add(e.interval)
		}
	}
	if len(due) > 0 {
		s.sortLocked()
	}
	return due
}

// NextDeadline returns the earliest nextFire across all scheduled jobs. The
// second return is false when nothing is scheduled.
func (s *RepeatedJobScheduler) NextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return time.Time{}, false
	}
	return s.entries[0].nextFire, true
}

// Len reports how many repeated jobs are currently scheduled.
func (s *RepeatedJobScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *RepeatedJobScheduler) sortLocked() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].nextFire.Before(s.entries[j].nextFire)
	})
}
