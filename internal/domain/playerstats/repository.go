package playerstats

import "context"

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	UserID   string
	MatchID  string
	SeasonID string
	TeamID   string
}

// Repository describes player-stats persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, p PlayerStats) error
	GetByID(ctx context.Context, id string) (PlayerStats, bool, error)
	List(ctx context.Context, filter Filter) ([]PlayerStats, error)
	Update(ctx context.Context, p PlayerStats) error
	Delete(ctx context.Context, id string) error

	// SumOneTouchPassSuccess totals successful one-touch passes across all
	// rows recorded for a team in a season.
	SumOneTouchPassSuccess(ctx context.Context, teamID, seasonID string) (int, error)
}
