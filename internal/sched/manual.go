package sched

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Nothing runs until the
// caller advances time, which makes timer-heavy code deterministic to test.
type Manual struct {
	now     time.Duration
	next    Handle
	seq     uint64
	entries []entry
}

type entry struct {
	handle Handle
	due    time.Duration
	seq    uint64
	fn     func()
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	m.next++
	m.push(m.next, m.now+delay, fn)
	return m.next
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(h Handle) {
	for i, e := range m.entries {
		if e.handle == h {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

// Go implements Scheduler. The work runs immediately; its completion is
// queued at the current virtual time, as if it arrived on the next loop turn.
func (m *Manual) Go(work func() func()) {
	complete := work()
	if complete == nil {
		return
	}
	m.push(0, m.now, complete)
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int {
	return len(m.entries)
}

// Step runs the earliest queued callback, moving the clock to its due time.
// It reports false when the queue is empty.
func (m *Manual) Step() bool {
	if len(m.entries) == 0 {
		return false
	}
	e := m.entries[0]
	m.entries = m.entries[1:]
	if e.due > m.now {
		m.now = e.due
	}
	e.fn()
	return true
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way, including ones scheduled by callbacks along the way.
func (m *Manual) Advance(d time.Duration) {
	deadline := m.now + d
	for len(m.entries) > 0 && m.entries[0].due <= deadline {
		m.Step()
	}
	m.now = deadline
}

// Flush runs callbacks that are already due without moving the clock.
func (m *Manual) Flush() {
	m.Advance(0)
}

func (m *Manual) push(h Handle, due time.Duration, fn func()) {
	m.seq++
	m.entries = append(m.entries, entry{handle: h, due: due, seq: m.seq, fn: fn})
	sort.SliceStable(m.entries, func(i, j int) bool {
		if m.entries[i].due != m.entries[j].due {
			return m.entries[i].due < m.entries[j].due
		}
		return m.entries[i].seq < m.entries[j].seq
	})
}
