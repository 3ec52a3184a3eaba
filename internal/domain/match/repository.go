package match

import "context"

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	SeasonID string
	LeagueID string
	TeamID   string
	Status   Status
}

// Repository describes match persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, id string) (Match, bool, error)
	List(ctx context.Context, filter Filter) ([]Match, error)
	Update(ctx context.Context, m Match) error
	Delete(ctx context.Context, id string) error
}
