package auditlog

import "context"

type Repository interface {
	Create(ctx context.Context, entry Entry) error
	// ListLatest returns entries newest first.
	ListLatest(ctx context.Context) ([]Entry, error)
}
