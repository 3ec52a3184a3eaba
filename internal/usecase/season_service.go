package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/league"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/season"
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type CreateSeasonInput struct {
	LeagueID  string
	Label     string
	StartDate time.Time
	EndDate   time.Time
	IsCurrent bool
}

// UpdateSeasonInput is a partial patch: nil fields are left untouched.
type UpdateSeasonInput struct {
	Label     *string
	StartDate *time.Time
	EndDate   *time.Time
	IsCurrent *bool
}

type SeasonService struct {
	seasonRepo season.Repository
	leagueRepo league.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	leagueRepo league.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		seasonRepo: seasonRepo,
		leagueRepo: leagueRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SeasonService) Create(ctx context.Context, actor policy.Actor, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Create")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionCreate, policy.ResourceSeason); !decision.Allowed {
		return season.Season{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.LeagueID == "" {
		return season.Season{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if _, found, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return season.Season{}, fmt.Errorf("get league: %w", err)
	} else if !found {
		return season.Season{}, fmt.Errorf("%w: league %s does not exist", ErrInvalidInput, input.LeagueID)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	now := s.now().UTC()
	newSeason := season.Season{
		ID:        id,
		LeagueID:  input.LeagueID,
		Label:     strings.TrimSpace(input.Label),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsCurrent: input.IsCurrent,
		CreatedBy: actor.ID,
		UpdatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := newSeason.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Create(ctx, newSeason); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	s.logger.InfoContext(ctx, "season created", "season_id", newSeason.ID, "label", newSeason.Label)
	return newSeason, nil
}

func (s *SeasonService) Get(ctx context.Context, actor policy.Actor, id string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Get")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceSeason); !decision.Allowed {
		return season.Season{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	return s.getSeason(ctx, id)
}

func (s *SeasonService) List(ctx context.Context, actor policy.Actor, filter season.Filter) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.List")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceSeason); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	seasons, err := s.seasonRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

func (s *SeasonService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Update")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceSeason); !decision.Allowed {
		return season.Season{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	current, err := s.getSeason(ctx, id)
	if err != nil {
		return season.Season{}, err
	}

	if input.Label != nil {
		current.Label = strings.TrimSpace(*input.Label)
	}
	if input.StartDate != nil {
		current.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		current.EndDate = *input.EndDate
	}
	if input.IsCurrent != nil {
		current.IsCurrent = *input.IsCurrent
	}

	current.UpdatedBy = actor.ID
	current.UpdatedAt = s.now().UTC()

	if err := current.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Update(ctx, current); err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}

	return current, nil
}

func (s *SeasonService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Delete")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionDelete, policy.ResourceSeason); !decision.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if _, err := s.getSeason(ctx, id); err != nil {
		return err
	}

	if err := s.seasonRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}

	s.logger.InfoContext(ctx, "season deleted", "season_id", id, "actor_id", actor.ID)
	return nil
}

func (s *SeasonService) getSeason(ctx context.Context, id string) (season.Season, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	current, found, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !found {
		return season.Season{}, fmt.Errorf("%w: season %s", ErrNotFound, id)
	}
	return current, nil
}
