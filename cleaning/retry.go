package cleaning

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Policy bounds the retry loop around a fallible store operation. The
// delays are operational tuning, not a correctness contract.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Exponential bool
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   5 * time.Second,
		MaxDelay:    2 * time.Minute,
		Exponential: true,
	}
}

// Backoff returns the delay before the attempt following attempt n
// (1-based). Fixed delay unless Exponential, in which case
// base * 2^(n-1), capped at MaxDelay.
func (p Policy) Backoff(attempt int) time.Duration {
	if !p.Exponential || attempt <= 1 {
		return p.BaseDelay
	}
	delay := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Do runs op with bounded retry. Transient failures are retried up to
// MaxAttempts with backoff; permanent failures return a
// *FatalTransferError immediately. Exhaustion returns a
// *RetryExhaustedError carrying the last cause. Backoff waits abort on
// context cancellation.
func Do(ctx context.Context, logger *logrus.Logger, p Policy, op string, fn func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}

	var last error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !IsTransient(err) {
			return &FatalTransferError{Op: op, Err: err}
		}

		last = err
		if attempt == p.MaxAttempts {
			break
		}

		delay := p.Backoff(attempt)
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"op":      op,
				"attempt": attempt,
				"max":     p.MaxAttempts,
				"delay":   delay.String(),
			}).Warnf("retry %d/%d for %s: %v", attempt, p.MaxAttempts, op, err)
		}
		if err := sleepCtx(ctx, delay); err != nil {
			return err
		}
	}
	return &RetryExhaustedError{Op: op, Attempts: p.MaxAttempts, LastErr: last}
}

// sleepCtx waits for d or until the context is cancelled, whichever
// comes first. All engine pauses go through here so an operator SIGINT
// never has to wait out a delay.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
