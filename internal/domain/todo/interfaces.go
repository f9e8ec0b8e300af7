package todo

import "context"

// Repository provides persistence for todos. All text comparisons
// (FindExact, FindContaining) are case-insensitive and return todos in
// stable store order (ascending id).
type Repository interface {
	Create(ctx context.Context, t *Todo) error
	Get(ctx context.Context, id int64) (*Todo, error)
	List(ctx context.Context) ([]Todo, error)
	ListByCompleted(ctx context.Context, completed bool) ([]Todo, error)
	ListByPriority(ctx context.Context, priority Priority) ([]Todo, error)
	FindExact(ctx context.Context, text string) (*Todo, error)
	FindContaining(ctx context.Context, text string) ([]Todo, error)
	Update(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
