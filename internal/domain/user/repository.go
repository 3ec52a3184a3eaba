package user

import "context"

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	PlayersOnly bool
	TeamID      string
}

// Repository describes user persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context, filter Filter) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}
