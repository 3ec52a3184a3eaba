package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, l League) error
	GetByID(ctx context.Context, id string) (League, bool, error)
	List(ctx context.Context) ([]League, error)
	Update(ctx context.Context, l League) error
	Delete(ctx context.Context, id string) error
}
