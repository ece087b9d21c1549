package paginate

import (
	"context"

	"github.com/sony/gobreaker"
)

// Fetcher retrieves the items of one page from the backing source. It is
// supplied by the caller at construction time and is the engine's only
// suspension point.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, page int) ([]T, error)
}

// FetchFunc adapts a plain function to the Fetcher interface.
type FetchFunc[T any] func(ctx context.Context, page int) ([]T, error)

// FetchPage implements Fetcher.
func (f FetchFunc[T]) FetchPage(ctx context.Context, page int) ([]T, error) {
	return f(ctx, page)
}

// BreakerFetcher wraps a Fetcher in a circuit breaker. When the breaker is
// open, fetches fail fast and surface like any other fetch failure: an
// Error page state. It is not a retry policy; retrying stays with the
// caller.
type BreakerFetcher[T any] struct {
	next Fetcher[T]
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerFetcher wraps next with a circuit breaker using the given
// settings.
func NewBreakerFetcher[T any](next Fetcher[T], st gobreaker.Settings) *BreakerFetcher[T] {
	return &BreakerFetcher[T]{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

// FetchPage implements Fetcher.
func (b *BreakerFetcher[T]) FetchPage(ctx context.Context, page int) ([]T, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.next.FetchPage(ctx, page)
	})
	if err != nil {
		return nil, err
	}
	items, _ := out.([]T)
	return items, nil
}
