package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/statsrecord/stats-api/internal/domain/league"
)

// LeagueRepository also tracks which leagues are referenced so deletes can
// mimic the database's restrict behavior. Callers register references via
// MarkInUse in tests.
type LeagueRepository struct {
	mu      sync.RWMutex
	leagues map[string]league.League
	inUse   map[string]bool
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		leagues: make(map[string]league.League),
		inUse:   make(map[string]bool),
	}
}

func (r *LeagueRepository) MarkInUse(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inUse[id] = true
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.leagues {
		if strings.EqualFold(existing.Name, l.Name) {
			return league.ErrNameTaken
		}
	}

	r.leagues[l.ID] = l
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, id string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leagues[id]
	return l, ok, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.leagues))
	for _, l := range r.leagues {
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *LeagueRepository) Update(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.leagues {
		if id != l.ID && strings.EqualFold(existing.Name, l.Name) {
			return league.ErrNameTaken
		}
	}

	r.leagues[l.ID] = l
	return nil
}

func (r *LeagueRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inUse[id] {
		return league.ErrInUse
	}

	delete(r.leagues, id)
	return nil
}
