package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/statsrecord/stats-api/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{seasons: make(map[string]season.Season)}
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[s.ID] = s
	return nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.seasons[id]
	return s, ok, nil
}

func (r *SeasonRepository) List(_ context.Context, filter season.Filter) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		if filter.LeagueID != "" && s.LeagueID != filter.LeagueID {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *SeasonRepository) Update(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[s.ID] = s
	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.seasons, id)
	return nil
}
