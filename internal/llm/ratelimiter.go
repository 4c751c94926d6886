package llm

import (
	"context"
	"sync"
	"time"
)

// retryInterval is how long a blocked caller sleeps before rechecking
// the bucket.
const retryInterval = time.Second

// RateLimitedProvider caps model calls at a fixed requests-per-minute
// budget using a token bucket. Calls beyond the budget block until a
// token refills or the context is cancelled.
type RateLimitedProvider struct {
	inner Provider
	rpm   int

	mu       sync.Mutex
	tokens   int
	refilled time.Time
}

// NewRateLimitedProvider wraps provider with an rpm requests-per-minute
// cap. The bucket starts full.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	return &RateLimitedProvider{
		inner:    provider,
		rpm:      rpm,
		tokens:   rpm,
		refilled: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string { return r.inner.Name() }

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	return r.inner.Complete(ctx, req)
}

// acquire blocks until a token is available or ctx expires.
func (r *RateLimitedProvider) acquire(ctx context.Context) error {
	for {
		if r.takeToken() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

func (r *RateLimitedProvider) takeToken() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Credit tokens earned since the last refill, capped at the budget.
	elapsed := time.Since(r.refilled)
	if earned := int(elapsed.Seconds() * float64(r.rpm) / 60.0); earned > 0 {
		r.tokens = min(r.tokens+earned, r.rpm)
		r.refilled = time.Now()
	}

	if r.tokens == 0 {
		return false
	}
	r.tokens--
	return true
}
