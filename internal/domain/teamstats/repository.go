package teamstats

import "context"

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	TeamID   string
	SeasonID string
	MatchID  string
}

// TeamSeason identifies one (team, season) aggregation scope.
type TeamSeason struct {
	TeamID   string
	SeasonID string
}

// Repository describes team-stats persistence needs from use cases.
//
// Save and Delete recompute the denormalized season totals for the affected
// (team, season) pair inside the same transaction as the row write; a
// recompute failure rolls the row write back.
type Repository interface {
	Save(ctx context.Context, row TeamStats) (TeamStats, error)
	GetByID(ctx context.Context, id string) (TeamStats, bool, error)
	List(ctx context.Context, filter Filter) ([]TeamStats, error)
	Delete(ctx context.Context, id string) error

	// Recompute refreshes the derived totals of one (team, season) pair
	// without touching any match row. Used by maintenance repair.
	Recompute(ctx context.Context, scope TeamSeason) error

	// ListTeamSeasons returns every (team, season) pair that has at least
	// one stats row.
	ListTeamSeasons(ctx context.Context) ([]TeamSeason, error)
}
