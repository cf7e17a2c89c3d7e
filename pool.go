package score2pdf

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browser sessions to limit memory
	// (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ServicePool hands out Service instances for batch processing. Every
// download still launches its own isolated browser session; the pool bounds
// how many run at once. Services are created lazily on first acquire to
// avoid startup delay.
type ServicePool struct {
	size    int
	opts    []Option
	sem     chan *Service
	mu      sync.Mutex
	created int
}

// NewServicePool creates a pool with capacity for n Service instances, each
// configured with opts. Services are created lazily when acquired, not at
// pool creation.
func NewServicePool(n int, opts ...Option) *ServicePool {
	if n < 1 {
		n = 1
	}

	return &ServicePool{
		size: n,
		opts: opts,
		sem:  make(chan *Service, n),
	}
}

// Acquire gets a service from the pool, creating one if capacity allows.
// Blocks until a service is released or ctx is done.
func (p *ServicePool) Acquire(ctx context.Context) (*Service, error) {
	// Try to reuse an idle service (non-blocking)
	select {
	case svc := <-p.sem:
		return svc, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return New(p.opts...), nil
	}
	p.mu.Unlock()

	// All services created, wait for one to be released
	select {
	case svc := <-p.sem:
		return svc, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a service to the pool for reuse.
func (p *ServicePool) Release(svc *Service) {
	p.sem <- svc
}

// Size returns the pool capacity.
func (p *ServicePool) Size() int {
	return p.size
}

// ResolvePoolSize determines how many downloads run in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation (adjusted by
// automaxprocs for containers). Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
