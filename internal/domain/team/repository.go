package team

import "context"

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	LeagueID string
}

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, id string) (Team, bool, error)
	List(ctx context.Context, filter Filter) ([]Team, error)
	Update(ctx context.Context, t Team) error
	Delete(ctx context.Context, id string) error
}
