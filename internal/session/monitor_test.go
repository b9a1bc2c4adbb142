package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/five82/griddy/internal/netstatus"
	"github.com/five82/griddy/internal/sched"
)

func TestMonitor_ReportsOnlyTransitions(t *testing.T) {
	s := sched.NewManual()
	prober := &scriptedProber{answers: []bool{false, false, true, true, false}}
	var changes []bool
	m := NewMonitor(MonitorOptions{
		Prober:    prober,
		Scheduler: s,
		Interval:  time.Second,
		Online:    true,
		OnChange:  func(online bool) { changes = append(changes, online) },
	})
	m.Start()

	s.Advance(5 * time.Second)
	assert.Equal(t, 5, prober.calls)
	assert.Equal(t, []bool{false, true, false}, changes)
	assert.False(t, m.Online())
}

func TestMonitor_StopCancelsProbes(t *testing.T) {
	s := sched.NewManual()
	calls := 0
	m := NewMonitor(MonitorOptions{
		Prober:    netstatus.Static(false),
		Scheduler: s,
		Online:    true,
		OnChange:  func(bool) { calls++ },
	})
	m.Start()
	m.Start() // already scheduled
	assert.Equal(t, 1, s.Pending())

	m.Stop()
	s.Advance(time.Hour)
	assert.Zero(t, calls)
	assert.Zero(t, s.Pending())
	assert.True(t, m.Online())
}

func TestMonitor_DefaultsInterval(t *testing.T) {
	s := sched.NewManual()
	m := NewMonitor(MonitorOptions{Prober: netstatus.Static(true), Scheduler: s, Online: true})
	m.Start()
	s.Advance(DefaultProbeInterval - time.Millisecond)
	assert.Equal(t, 1, s.Pending())
	s.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Pending(), "next probe scheduled after the first")
	m.Stop()
}

func TestMonitor_CheckProbesOnceWithoutReporting(t *testing.T) {
	s := sched.NewManual()
	prober := &scriptedProber{answers: []bool{false}}
	changes := 0
	m := NewMonitor(MonitorOptions{
		Prober:    prober,
		Scheduler: s,
		Online:    true,
		OnChange:  func(bool) { changes++ },
	})

	var got []bool
	m.Check(func(online bool) { got = append(got, online) })
	s.Flush()

	assert.Equal(t, []bool{false}, got)
	assert.False(t, m.Online())
	assert.Zero(t, changes)
	assert.Zero(t, s.Pending(), "a check schedules nothing")
}
