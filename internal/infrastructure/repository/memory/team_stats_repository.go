package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/statsrecord/stats-api/internal/domain/playerstats"
	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	"github.com/statsrecord/stats-api/internal/domain/user"
)

// TeamStatsRepository mirrors the transactional recompute of the database
// implementation: every Save and Delete refreshes the derived totals of the
// affected (team, season) pair under one lock.
type TeamStatsRepository struct {
	mu    sync.RWMutex
	rows  map[string]teamstats.TeamStats
	stats playerstats.Repository
	users user.Repository
}

func NewTeamStatsRepository(stats playerstats.Repository, users user.Repository) *TeamStatsRepository {
	return &TeamStatsRepository{
		rows:  make(map[string]teamstats.TeamStats),
		stats: stats,
		users: users,
	}
}

func (r *TeamStatsRepository) Save(ctx context.Context, row teamstats.TeamStats) (teamstats.TeamStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.rows {
		if id != row.ID && existing.TeamID == row.TeamID && existing.MatchID == row.MatchID {
			return teamstats.TeamStats{}, teamstats.ErrDuplicate
		}
	}

	// Roster snapshot is taken for the triggering row only.
	roster, err := r.users.List(ctx, user.Filter{TeamID: row.TeamID})
	if err != nil {
		return teamstats.TeamStats{}, err
	}
	row.PlayerIDs = make([]string, 0, len(roster))
	for _, member := range roster {
		row.PlayerIDs = append(row.PlayerIDs, member.ID)
	}

	r.rows[row.ID] = row
	if err := r.recomputeLocked(ctx, row.TeamID, row.SeasonID); err != nil {
		delete(r.rows, row.ID)
		return teamstats.TeamStats{}, err
	}

	return r.rows[row.ID], nil
}

func (r *TeamStatsRepository) GetByID(_ context.Context, id string) (teamstats.TeamStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	return row, ok, nil
}

func (r *TeamStatsRepository) List(_ context.Context, filter teamstats.Filter) ([]teamstats.TeamStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamstats.TeamStats, 0, len(r.rows))
	for _, row := range r.rows {
		if filter.TeamID != "" && row.TeamID != filter.TeamID {
			continue
		}
		if filter.SeasonID != "" && row.SeasonID != filter.SeasonID {
			continue
		}
		if filter.MatchID != "" && row.MatchID != filter.MatchID {
			continue
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamStatsRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil
	}

	delete(r.rows, id)
	return r.recomputeLocked(ctx, row.TeamID, row.SeasonID)
}

func (r *TeamStatsRepository) Recompute(ctx context.Context, scope teamstats.TeamSeason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.recomputeLocked(ctx, scope.TeamID, scope.SeasonID)
}

func (r *TeamStatsRepository) ListTeamSeasons(_ context.Context) ([]teamstats.TeamSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[teamstats.TeamSeason]struct{})
	out := make([]teamstats.TeamSeason, 0)
	for _, row := range r.rows {
		scope := teamstats.TeamSeason{TeamID: row.TeamID, SeasonID: row.SeasonID}
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		out = append(out, scope)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].SeasonID < out[j].SeasonID
	})
	return out, nil
}

func (r *TeamStatsRepository) recomputeLocked(ctx context.Context, teamID, seasonID string) error {
	siblings := make([]teamstats.TeamStats, 0)
	for _, row := range r.rows {
		if row.TeamID == teamID && row.SeasonID == seasonID {
			siblings = append(siblings, row)
		}
	}

	totals := teamstats.Aggregate(siblings)
	passes, err := r.stats.SumOneTouchPassSuccess(ctx, teamID, seasonID)
	if err != nil {
		return err
	}
	totals.Passes = passes

	for _, row := range siblings {
		row.Totals = totals
		r.rows[row.ID] = row
	}
	return nil
}
