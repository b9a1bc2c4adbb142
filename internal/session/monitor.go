package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/griddy/internal/netstatus"
	"github.com/five82/griddy/internal/sched"
)

// DefaultProbeInterval is the time between connectivity probes.
const DefaultProbeInterval = 15 * time.Second

// MonitorOptions configure a Monitor.
type MonitorOptions struct {
	Prober    netstatus.Prober
	Scheduler sched.Scheduler
	Interval  time.Duration
	Context   context.Context
	// Online is the state assumed before the first probe.
	Online   bool
	OnChange func(online bool)
	Logger   *zap.Logger
}

// Monitor probes connectivity on an interval and reports transitions.
type Monitor struct {
	prober   netstatus.Prober
	sched    sched.Scheduler
	interval time.Duration
	ctx      context.Context
	onChange func(bool)
	logger   *zap.Logger

	online  bool
	next    sched.Handle
	probing bool
	stopped bool
}

// NewMonitor builds a Monitor. Call Start to begin probing.
func NewMonitor(opts MonitorOptions) *Monitor {
	m := &Monitor{
		prober:   opts.Prober,
		sched:    opts.Scheduler,
		interval: opts.Interval,
		ctx:      opts.Context,
		onChange: opts.OnChange,
		logger:   opts.Logger,
		online:   opts.Online,
	}
	if m.interval <= 0 {
		m.interval = DefaultProbeInterval
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.onChange == nil {
		m.onChange = func(bool) {}
	}
	return m
}

// Start schedules the first probe.
func (m *Monitor) Start() {
	if m.stopped || m.next != 0 || m.probing {
		return
	}
	m.schedule()
}

// Stop cancels the pending probe. A probe already running is ignored when
// it finishes.
func (m *Monitor) Stop() {
	m.stopped = true
	if m.next != 0 {
		m.sched.Cancel(m.next)
		m.next = 0
	}
}

// Check probes once right away and passes the result to done. The observed
// state is updated without calling OnChange, and no probe is scheduled.
func (m *Monitor) Check(done func(online bool)) {
	prober, ctx := m.prober, m.ctx
	m.sched.Go(func() func() {
		ok := prober.Probe(ctx)
		return func() {
			if m.stopped {
				return
			}
			m.online = ok
			done(ok)
		}
	})
}

// Online returns the last observed state.
func (m *Monitor) Online() bool { return m.online }

func (m *Monitor) schedule() {
	m.next = m.sched.Schedule(m.interval, m.probe)
}

func (m *Monitor) probe() {
	m.next = 0
	if m.stopped {
		return
	}
	m.probing = true
	prober, ctx := m.prober, m.ctx
	m.sched.Go(func() func() {
		ok := prober.Probe(ctx)
		return func() { m.observe(ok) }
	})
}

func (m *Monitor) observe(online bool) {
	m.probing = false
	if m.stopped {
		return
	}
	if online != m.online {
		m.online = online
		m.logger.Debug("probe changed", zap.Bool("online", online))
		m.onChange(online)
	}
	if !m.stopped {
		m.schedule()
	}
}
