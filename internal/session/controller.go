// Package session keeps the grid fed with queries from a spreadsheet.
//
// A Controller polls the spreadsheet on a fixed interval, installs each good
// result into the grid and falls back to a built-in list while the network
// is down. Every method runs on the scheduler's goroutine; network calls are
// handed to Scheduler.Go and their results come back as completions.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/five82/griddy/internal/netstatus"
	"github.com/five82/griddy/internal/query"
	"github.com/five82/griddy/internal/sched"
	"github.com/five82/griddy/internal/spreadsheet"
	"github.com/five82/griddy/internal/state"
)

// Notification lifetimes.
const (
	NoticeTTL = 3 * time.Second
	ErrorTTL  = 15 * time.Second
)

// DefaultInterval is the time between polls.
const DefaultInterval = 5 * time.Minute

// User-facing messages.
const (
	MsgLoading   = "Loading spreadsheet data..."
	MsgOffline   = "Oops! It appears we're offline..."
	MsgNoQueries = "No queries found in spreadsheet"
	MsgStatic    = "No spreadsheet credentials configured, showing built-in queries"
)

// ErrNoQueries is recorded when a spreadsheet loads but yields nothing to type.
var ErrNoQueries = errors.New("no queries found in spreadsheet")

// Target is the part of the grid the controller drives.
type Target interface {
	SetQuerySource(src query.Source)
	StartAll()
}

// NotifyFunc shows a transient message for ttl.
type NotifyFunc func(text string, ttl time.Duration)

// Options configure a Controller.
type Options struct {
	Target    Target
	Fetcher   spreadsheet.Fetcher // nil runs from Fallback only
	Scheduler sched.Scheduler
	Notify    NotifyFunc
	Store     *state.Store
	Logger    *zap.Logger
	Context   context.Context

	DocumentID string
	Interval   time.Duration

	// Fallback is used when there is no Fetcher. Defaults to query.Sample().
	Fallback query.Source

	// Prober enables connectivity monitoring when set.
	Prober        netstatus.Prober
	ProbeInterval time.Duration

	// Offline starts the controller in offline mode.
	Offline bool
}

// Controller owns the polling schedule and the online state.
type Controller struct {
	target   Target
	fetcher  spreadsheet.Fetcher
	sched    sched.Scheduler
	notify   NotifyFunc
	store    *state.Store
	logger   *zap.Logger
	ctx      context.Context
	interval time.Duration
	fallback query.Source
	monitor  *Monitor

	docID    string
	online   bool
	lastGood query.Source
	poll     sched.Handle
	inflight int
	closed   bool
}

// New builds a Controller. Call Start to begin polling.
func New(opts Options) *Controller {
	c := &Controller{
		target:   opts.Target,
		fetcher:  opts.Fetcher,
		sched:    opts.Scheduler,
		notify:   opts.Notify,
		store:    opts.Store,
		logger:   opts.Logger,
		ctx:      opts.Context,
		interval: opts.Interval,
		fallback: opts.Fallback,
		docID:    strings.TrimSpace(opts.DocumentID),
		online:   !opts.Offline,
	}
	if c.sched == nil {
		c.sched = sched.NewManual()
	}
	if c.notify == nil {
		c.notify = func(string, time.Duration) {}
	}
	if c.store == nil {
		c.store = state.NewStore(c.docID)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("session")
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.fallback == nil {
		c.fallback = query.Sample()
	}
	c.store.SetDocumentID(c.docID)
	c.store.SetOnline(c.online)
	if opts.Prober != nil {
		c.monitor = NewMonitor(MonitorOptions{
			Prober:    opts.Prober,
			Scheduler: c.sched,
			Interval:  opts.ProbeInterval,
			Context:   c.ctx,
			Online:    c.online,
			OnChange:  c.SetOnline,
			Logger:    c.logger,
		})
	}
	return c
}

// Start installs the initial source and runs the first fetch. With a
// prober the fetch waits for one connectivity check.
func (c *Controller) Start() {
	switch {
	case c.fetcher == nil:
		c.install(c.fallback)
		c.notify(MsgStatic, ErrorTTL)
		c.logger.Info("static mode", zap.Int("queries", c.fallback.Len()))
	case c.monitor != nil:
		// The first fetch waits for a connectivity check.
		c.monitor.Check(c.begin)
		return
	case !c.online:
		c.install(query.Offline())
	}
	c.Fetch()
}

// begin finishes Start once the first connectivity check is in.
func (c *Controller) begin(online bool) {
	if c.closed {
		return
	}
	if online != c.online {
		c.online = online
		c.store.SetOnline(online)
	}
	c.logger.Info("connectivity checked", zap.Bool("online", online))
	if !online {
		c.install(query.Offline())
	}
	c.monitor.Start()
	c.Fetch()
}

// Fetch requests the spreadsheet now when online, then schedules the next
// poll. Any poll already scheduled is cancelled first, so exactly one stays
// pending.
func (c *Controller) Fetch() {
	if c.closed || c.fetcher == nil {
		return
	}
	if c.online {
		c.notify(MsgLoading, NoticeTTL)
		c.dispatch(c.docID)
	} else {
		c.notify(MsgOffline, ErrorTTL)
		c.logger.Debug("fetch skipped while offline")
	}

	if c.poll != 0 {
		c.sched.Cancel(c.poll)
	}
	c.poll = c.sched.Schedule(c.interval, func() {
		c.poll = 0
		c.Fetch()
	})
}

func (c *Controller) dispatch(id string) {
	c.store.BeginFetch()
	c.inflight++
	fetcher, ctx := c.fetcher, c.ctx
	c.sched.Go(func() func() {
		ss, err := fetcher.Fetch(ctx, id)
		return func() { c.apply(id, ss, err) }
	})
	c.logger.Debug("fetch dispatched", zap.String("document_id", id))
}

func (c *Controller) apply(id string, ss *sheets.Spreadsheet, err error) {
	c.inflight--
	if c.closed {
		return
	}
	if id != c.docID {
		c.logger.Debug("dropped result for previous document", zap.String("document_id", id))
		return
	}
	if err != nil {
		c.store.Update(0, err)
		c.notify(spreadsheet.Message(err), ErrorTTL)
		c.logger.Warn("spreadsheet fetch failed", zap.String("document_id", id), zap.Error(err))
		return
	}

	list := query.FromSpreadsheet(ss)
	if list.Len() == 0 {
		c.store.Update(0, ErrNoQueries)
		c.notify(MsgNoQueries, ErrorTTL)
		c.logger.Warn("spreadsheet has no queries", zap.String("document_id", id))
		return
	}

	c.lastGood = list
	c.store.Update(list.Len(), nil)
	c.logger.Info("spreadsheet loaded", zap.String("document_id", id), zap.Int("queries", list.Len()))
	if c.online {
		c.install(list)
	}
}

// SetOnline reacts to a connectivity change. Going offline swaps in the
// offline messages; coming back restores the last good source and fetches.
func (c *Controller) SetOnline(online bool) {
	if c.closed || online == c.online {
		return
	}
	c.online = online
	c.store.SetOnline(online)
	c.logger.Info("connectivity changed", zap.Bool("online", online))

	if !online {
		c.install(query.Offline())
		return
	}
	switch {
	case c.lastGood != nil:
		c.install(c.lastGood)
	case c.fetcher == nil:
		c.install(c.fallback)
	}
	c.Fetch()
}

// SetDocumentID switches to another spreadsheet and fetches it. Results
// still in flight for the old document are discarded.
func (c *Controller) SetDocumentID(id string) {
	id = strings.TrimSpace(id)
	if c.closed || id == "" {
		return
	}
	if id != c.docID {
		c.docID = id
		c.lastGood = nil
		c.store.SetDocumentID(id)
	}
	c.Fetch()
}

// Close cancels the pending poll and stops connectivity monitoring.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.poll != 0 {
		c.sched.Cancel(c.poll)
		c.poll = 0
	}
	if c.monitor != nil {
		c.monitor.Stop()
	}
}

// DocumentID returns the spreadsheet being polled.
func (c *Controller) DocumentID() string { return c.docID }

// Online reports the last known connectivity state.
func (c *Controller) Online() bool { return c.online }

// Static reports whether the controller runs without a spreadsheet client.
func (c *Controller) Static() bool { return c.fetcher == nil }

// Store returns the fetch status store.
func (c *Controller) Store() *state.Store { return c.store }

// Pending reports whether a poll is scheduled.
func (c *Controller) Pending() bool { return c.poll != 0 }

// InFlight returns the number of fetches awaiting completion.
func (c *Controller) InFlight() int { return c.inflight }

func (c *Controller) install(src query.Source) {
	if c.target == nil {
		return
	}
	c.target.SetQuerySource(src)
	c.target.StartAll()
}
