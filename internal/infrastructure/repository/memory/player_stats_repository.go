package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/statsrecord/stats-api/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu      sync.RWMutex
	records map[string]playerstats.PlayerStats
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{records: make(map[string]playerstats.PlayerStats)}
}

func (r *PlayerStatsRepository) Create(_ context.Context, p playerstats.PlayerStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.UserID == p.UserID && existing.MatchID == p.MatchID {
			return playerstats.ErrDuplicate
		}
	}

	r.records[p.ID] = p
	return nil
}

func (r *PlayerStatsRepository) GetByID(_ context.Context, id string) (playerstats.PlayerStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[id]
	return p, ok, nil
}

func (r *PlayerStatsRepository) List(_ context.Context, filter playerstats.Filter) ([]playerstats.PlayerStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.PlayerStats, 0, len(r.records))
	for _, p := range r.records {
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		if filter.MatchID != "" && p.MatchID != filter.MatchID {
			continue
		}
		if filter.SeasonID != "" && p.SeasonID != filter.SeasonID {
			continue
		}
		if filter.TeamID != "" && p.TeamID != filter.TeamID {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerStatsRepository) Update(_ context.Context, p playerstats.PlayerStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[p.ID] = p
	return nil
}

func (r *PlayerStatsRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, id)
	return nil
}

func (r *PlayerStatsRepository) SumOneTouchPassSuccess(_ context.Context, teamID, seasonID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, p := range r.records {
		if p.TeamID == teamID && p.SeasonID == seasonID {
			total += p.OneTouchPassSuccess
		}
	}
	return total, nil
}
