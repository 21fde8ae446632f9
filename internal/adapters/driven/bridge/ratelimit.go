package bridge

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
	headerRetryAfter    = "Retry-After"

	// minRemaining is the quota kept in reserve before waiting for reset.
	minRemaining = 20

	defaultBackoff = 30 * time.Second
)

// rateLimiter throttles listing calls with a token bucket and honours the
// quota a service reports back, either through X-RateLimit headers or
// through an explicit backoff after a 429.
type rateLimiter struct {
	bucket *rate.Limiter

	mu        sync.Mutex
	remaining int
	resetAt   time.Time
	retryAt   time.Time
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	return &rateLimiter{
		bucket:    rate.NewLimiter(rate.Limit(perSecond), burst),
		remaining: -1,
	}
}

// wait blocks until a request may be sent.
func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	until := r.retryAt
	if r.remaining >= 0 && r.remaining < minRemaining && r.resetAt.After(until) {
		until = r.resetAt
	}
	r.mu.Unlock()

	if d := time.Until(until); d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return r.bucket.Wait(ctx)
}

// observe records quota headers from resp and starts a backoff when resp
// says the client is being limited.
func (r *rateLimiter) observe(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, err := strconv.Atoi(resp.Header.Get(headerRateRemaining)); err == nil {
		r.remaining = v
	}
	if v, err := strconv.ParseInt(resp.Header.Get(headerRateReset), 10, 64); err == nil {
		r.resetAt = time.Unix(v, 0)
	}

	limited := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && r.remaining == 0)
	if limited {
		r.retryAt = time.Now().Add(retryAfter(resp))
	}
}

// backoff delays the next request by d, or by the default when d <= 0.
func (r *rateLimiter) backoff(d time.Duration) {
	if d <= 0 {
		d = defaultBackoff
	}
	r.mu.Lock()
	r.retryAt = time.Now().Add(d)
	r.mu.Unlock()
}

func retryAfter(resp *http.Response) time.Duration {
	if secs, err := strconv.Atoi(resp.Header.Get(headerRetryAfter)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultBackoff
}
