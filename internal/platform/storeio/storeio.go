// Package storeio bounds blocking store I/O by a context so callers fail fast instead of hanging.
package storeio

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "fathom/internal/platform/errors"
)

// Context derives the per-call deadline. A non-positive timeout only adds cancellation.
func Context(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Run executes fn and returns early once ctx is done. Errors are wrapped as ErrStoreUnavailable
// unless they already carry a domain meaning such as ErrNotFound.
func Run(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return Unavailable(err)
	}
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return Unavailable(err)
	case <-ctx.Done():
		return Unavailable(ctx.Err())
	}
}

func Unavailable(err error) error {
	if err == nil || hasDomainMeaning(err) {
		return err
	}
	return fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
}

func hasDomainMeaning(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrNoActiveChat) ||
		errors.Is(err, apperrors.ErrStoreUnavailable) ||
		apperrors.IsValidation(err) ||
		apperrors.IsRejection(err)
}
