// Package probe resolves hostnames over the network and classifies failures
// into the scanner's sentinel outcomes.
package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dnsops/zonectl/internal/dns/infra/metrics"
	"github.com/dnsops/zonectl/internal/dns/services/scanner"
)

const defaultTimeout = 5 * time.Second

// LookupFunc resolves a host to addresses. Injectable for testing.
type LookupFunc func(ctx context.Context, host string) ([]string, error)

// Prober implements the scanner's Resolver port on top of the system resolver.
type Prober struct {
	lookup  LookupFunc
	timeout time.Duration
}

// Options configures a Prober. Zero values select the system resolver and a
// 5 second per-lookup timeout.
type Options struct {
	Lookup  LookupFunc
	Timeout time.Duration
}

// New creates a Prober with the given options.
func New(opts Options) *Prober {
	if opts.Lookup == nil {
		opts.Lookup = net.DefaultResolver.LookupHost
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Prober{lookup: opts.Lookup, timeout: opts.Timeout}
}

// Resolve looks up host and maps the outcome onto the scanner's sentinels.
func (p *Prober) Resolve(ctx context.Context, host string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	addrs, err := p.lookup(ctx, host)
	metrics.LookupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			switch {
			case dnsErr.IsNotFound:
				return scanner.ErrNXDomain
			case dnsErr.IsTimeout:
				return scanner.ErrTimeout
			}
		}
		// The outer context's cancellation takes precedence over the
		// per-lookup deadline.
		if cerr := context.Cause(ctx); cerr != nil && !errors.Is(cerr, context.DeadlineExceeded) {
			return cerr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return scanner.ErrTimeout
		}
		return err
	}
	if len(addrs) == 0 {
		return scanner.ErrNoAnswer
	}
	return nil
}
