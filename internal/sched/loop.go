package sched

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FiredMsg is delivered to the Bubble Tea program when a scheduled delay
// elapses. Pass it to Loop.Handle.
type FiredMsg struct {
	Handle Handle
}

// DoneMsg carries the completion of work started with Loop.Go.
type DoneMsg struct {
	complete func()
}

// Loop is a Scheduler backed by Bubble Tea commands. Schedule and Go only
// queue commands; the model must return Loop.Cmd from Update so they run.
type Loop struct {
	next    Handle
	pending map[Handle]func()
	cmds    []tea.Cmd
}

var _ Scheduler = (*Loop)(nil)

// NewLoop returns an empty Loop.
func NewLoop() *Loop {
	return &Loop{pending: make(map[Handle]func())}
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(delay time.Duration, fn func()) Handle {
	l.next++
	h := l.next
	l.pending[h] = fn
	l.cmds = append(l.cmds, tea.Tick(delay, func(time.Time) tea.Msg {
		return FiredMsg{Handle: h}
	}))
	return h
}

// Cancel implements Scheduler.
func (l *Loop) Cancel(h Handle) {
	delete(l.pending, h)
}

// Go implements Scheduler.
func (l *Loop) Go(work func() func()) {
	l.cmds = append(l.cmds, func() tea.Msg {
		return DoneMsg{complete: work()}
	})
}

// Handle runs the callback addressed by msg. It reports whether msg belonged
// to the scheduler.
func (l *Loop) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case FiredMsg:
		fn, ok := l.pending[msg.Handle]
		if !ok {
			return true
		}
		delete(l.pending, msg.Handle)
		fn()
		return true
	case DoneMsg:
		if msg.complete != nil {
			msg.complete()
		}
		return true
	}
	return false
}

// Cmd drains queued commands into a single batch. It returns nil when
// nothing is queued.
func (l *Loop) Cmd() tea.Cmd {
	if len(l.cmds) == 0 {
		return nil
	}
	cmds := l.cmds
	l.cmds = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of callbacks still waiting to fire.
func (l *Loop) Pending() int {
	return len(l.pending)
}
