// Package netstatus answers whether the network is reachable.
package netstatus

import (
	"context"
	"net"
	"time"
)

// Prober reports whether the network is currently reachable.
type Prober interface {
	Probe(ctx context.Context) bool
}

// DefaultAddr is the host the spreadsheet client talks to.
const DefaultAddr = "sheets.googleapis.com:443"

const defaultTimeout = 3 * time.Second

// DialProber considers the network up when a TCP connection to Addr
// succeeds within Timeout.
type DialProber struct {
	Addr    string
	Timeout time.Duration
}

// Probe dials Addr and closes the connection immediately.
func (p DialProber) Probe(ctx context.Context) bool {
	addr := p.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Static always reports the same answer. It serves static mode and tests.
type Static bool

// Probe returns the fixed answer.
func (s Static) Probe(context.Context) bool { return bool(s) }
