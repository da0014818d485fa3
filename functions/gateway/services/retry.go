package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// RetryTransient calls fn until it succeeds, fails with a non-transient error,
// or attempts run out. The delay doubles after every transient failure.
func RetryTransient(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	delay := baseDelay
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !errors.Is(err, types.ErrTransient) {
			return err
		}
		if i == attempts-1 {
			break
		}
		log.Printf("transient failure (attempt %d/%d), retrying in %v: %v", i+1, attempts, delay, err)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
