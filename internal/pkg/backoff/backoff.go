// Package backoff retries an operation with exponentially growing pauses.
package backoff

import (
	"context"
	"time"

	cbackoff "github.com/cenkalti/backoff/v4"
)

// Config controls the pause between attempts. MaxRetries caps the total number
// of attempts; 0 retries until the context is done.
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
}

func DefaultConfig() Config {
	return Config{
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   30 * time.Second,
		Multiplier: 2,
	}
}

func (c Config) exponential() *cbackoff.ExponentialBackOff {
	b := cbackoff.NewExponentialBackOff()
	b.InitialInterval = c.BaseDelay
	b.MaxInterval = c.MaxDelay
	b.Multiplier = c.Multiplier
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Retry calls fn until it succeeds, the attempts run out or ctx is done.
// onError, when set, sees every failed attempt that is followed by a pause.
func Retry(ctx context.Context, cfg Config, fn func() error, onError func(attempt int, err error)) error {
	var b cbackoff.BackOff = cfg.exponential()
	if cfg.MaxRetries > 0 {
		b = cbackoff.WithMaxRetries(b, uint64(cfg.MaxRetries-1))
	}

	attempt := 0
	return cbackoff.RetryNotify(fn, cbackoff.WithContext(b, ctx), func(err error, _ time.Duration) {
		attempt++
		if onError != nil {
			onError(attempt, err)
		}
	})
}
