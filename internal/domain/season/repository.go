package season

import "context"

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	LeagueID string
}

// Repository describes season persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, s Season) error
	GetByID(ctx context.Context, id string) (Season, bool, error)
	List(ctx context.Context, filter Filter) ([]Season, error)
	Update(ctx context.Context, s Season) error
	Delete(ctx context.Context, id string) error
}
