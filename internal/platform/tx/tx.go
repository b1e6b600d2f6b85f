package tx

import (
	"context"
	"sync"
)

// Manager brackets a load, compute and save sequence.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs fn directly. Used where a single caller owns the store.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Serial runs one fn at a time inside this process, so concurrent HTTP requests
// cannot interleave a read-modify-write of the same snapshot. Waiting honours ctx.
type Serial struct {
	once sync.Once
	sem  chan struct{}
}

func (s *Serial) Within(ctx context.Context, fn func(context.Context) error) error {
	s.once.Do(func() { s.sem = make(chan struct{}, 1) })
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.sem }()
	return fn(ctx)
}
