package usecase

import "context"

// Transactor runs fn as one all-or-nothing unit against the store.
// Repository calls made with the ctx handed to fn join the unit.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// directTransactor runs fn without a unit; a failure mid-way keeps the
// writes made so far.
type directTransactor struct{}

func (directTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
