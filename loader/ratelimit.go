package loader

import (
	"context"
	"sync"

	"github.com/fwojciec/docindex"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the per-host request rate used by the CLI.
const DefaultRequestsPerSecond = 2

var _ docindex.HostLimiter = (*HostLimiter)(nil)

// HostLimiter keeps one token bucket per host, so refreshing many sites
// served from the same host does not hammer it while unrelated hosts
// proceed in parallel.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host, with the given burst. A burst below 1 is treated as 1.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    max(burst, 1),
	}
}

// Wait blocks until the host's bucket has a token.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.limiter(host).Wait(ctx)
}

func (h *HostLimiter) limiter(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(h.rps), h.burst)
		h.limiters[host] = l
	}
	return l
}
