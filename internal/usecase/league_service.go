package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/league"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type CreateLeagueInput struct {
	Name        string
	Country     string
	FoundedYear int
	LogoURL     string
}

// UpdateLeagueInput is a partial patch: nil fields are left untouched.
type UpdateLeagueInput struct {
	Name        *string
	Country     *string
	FoundedYear *int
	LogoURL     *string
}

type LeagueService struct {
	leagueRepo league.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(leagueRepo league.Repository, idGen idgen.Generator, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LeagueService) Create(ctx context.Context, actor policy.Actor, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Create")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionCreate, policy.ResourceLeague); !decision.Allowed {
		return league.League{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	newLeague := league.League{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Country:     strings.TrimSpace(input.Country),
		FoundedYear: input.FoundedYear,
		LogoURL:     strings.TrimSpace(input.LogoURL),
		CreatedBy:   actor.ID,
		UpdatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := newLeague.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, newLeague); err != nil {
		if isConflict(err) {
			return league.League{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created", "league_id", newLeague.ID, "name", newLeague.Name)
	return newLeague, nil
}

// Get is public: anonymous actors may read leagues.
func (s *LeagueService) Get(ctx context.Context, actor policy.Actor, id string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Get")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceLeague); !decision.Allowed {
		return league.League{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	return s.getLeague(ctx, id)
}

func (s *LeagueService) List(ctx context.Context, actor policy.Actor) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.List")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceLeague); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return leagues, nil
}

func (s *LeagueService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Update")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceLeague); !decision.Allowed {
		return league.League{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	current, err := s.getLeague(ctx, id)
	if err != nil {
		return league.League{}, err
	}

	if input.Name != nil {
		current.Name = strings.TrimSpace(*input.Name)
	}
	if input.Country != nil {
		current.Country = strings.TrimSpace(*input.Country)
	}
	if input.FoundedYear != nil {
		current.FoundedYear = *input.FoundedYear
	}
	if input.LogoURL != nil {
		current.LogoURL = strings.TrimSpace(*input.LogoURL)
	}

	current.UpdatedBy = actor.ID
	current.UpdatedAt = s.now().UTC()

	if err := current.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Update(ctx, current); err != nil {
		if isConflict(err) {
			return league.League{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return current, nil
}

func (s *LeagueService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Delete")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionDelete, policy.ResourceLeague); !decision.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if _, err := s.getLeague(ctx, id); err != nil {
		return err
	}

	if err := s.leagueRepo.Delete(ctx, id); err != nil {
		if isConflict(err) {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return fmt.Errorf("delete league: %w", err)
	}

	s.logger.InfoContext(ctx, "league deleted", "league_id", id, "actor_id", actor.ID)
	return nil
}

func (s *LeagueService) getLeague(ctx context.Context, id string) (league.League, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	current, found, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !found {
		return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, id)
	}
	return current, nil
}
