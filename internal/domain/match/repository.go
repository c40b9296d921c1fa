package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	// Create stores the match and returns it with the assigned ID.
	Create(ctx context.Context, item Match) (Match, error)
	Update(ctx context.Context, item Match) error
	DeleteAll(ctx context.Context) error
}
