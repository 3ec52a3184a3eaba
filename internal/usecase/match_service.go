package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/match"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/season"
	"github.com/statsrecord/stats-api/internal/domain/team"
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type CreateMatchInput struct {
	SeasonID   string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Venue      string
	Type       match.Type
}

// UpdateMatchInput is a partial patch: nil fields are left untouched.
type UpdateMatchInput struct {
	KickoffAt *time.Time
	Venue     *string
	HomeScore *int
	AwayScore *int
	Status    *match.Status
	Type      *match.Type
}

type MatchService struct {
	matchRepo  match.Repository
	seasonRepo season.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:  matchRepo,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, actor policy.Actor, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.Create")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionCreate, policy.ResourceMatch); !decision.Allowed {
		return match.Match{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	input.SeasonID = strings.TrimSpace(input.SeasonID)
	if input.SeasonID == "" {
		return match.Match{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	parentSeason, found, err := s.seasonRepo.GetByID(ctx, input.SeasonID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get season: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: season %s does not exist", ErrInvalidInput, input.SeasonID)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		if _, found, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return match.Match{}, fmt.Errorf("get team: %w", err)
		} else if !found {
			return match.Match{}, fmt.Errorf("%w: team %s does not exist", ErrInvalidInput, teamID)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	matchType := input.Type
	if matchType == "" {
		matchType = match.TypeLeague
	}

	now := s.now().UTC()
	newMatch := match.Match{
		ID:         id,
		SeasonID:   parentSeason.ID,
		LeagueID:   parentSeason.LeagueID,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		KickoffAt:  input.KickoffAt,
		Venue:      strings.TrimSpace(input.Venue),
		Status:     match.StatusScheduled,
		Type:       matchType,
		CreatedBy:  actor.ID,
		UpdatedBy:  actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := newMatch.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, newMatch); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created", "match_id", newMatch.ID, "season_id", newMatch.SeasonID)
	return newMatch, nil
}

func (s *MatchService) Get(ctx context.Context, actor policy.Actor, id string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.Get")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceMatch); !decision.Allowed {
		return match.Match{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	return s.getMatch(ctx, id)
}

func (s *MatchService) List(ctx context.Context, actor policy.Actor, filter match.Filter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.List")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceMatch); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.Update")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceMatch); !decision.Allowed {
		return match.Match{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	current, err := s.getMatch(ctx, id)
	if err != nil {
		return match.Match{}, err
	}

	// Completed and cancelled matches are frozen.
	if current.Status.Terminal() && (input.Status != nil || input.HomeScore != nil || input.AwayScore != nil) {
		return match.Match{}, fmt.Errorf("%w: match %s is %s and can no longer change", ErrConflict, id, current.Status)
	}

	if input.KickoffAt != nil {
		current.KickoffAt = *input.KickoffAt
	}
	if input.Venue != nil {
		current.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.HomeScore != nil {
		current.HomeScore = input.HomeScore
	}
	if input.AwayScore != nil {
		current.AwayScore = input.AwayScore
	}
	if input.Status != nil {
		current.Status = *input.Status
	}
	if input.Type != nil {
		current.Type = *input.Type
	}

	current.UpdatedBy = actor.ID
	current.UpdatedAt = s.now().UTC()

	if err := current.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Update(ctx, current); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return current, nil
}

func (s *MatchService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	ctx, span := startUsecaseSpan(ctx, "MatchService.Delete")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionDelete, policy.ResourceMatch); !decision.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if _, err := s.getMatch(ctx, id); err != nil {
		return err
	}

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", id, "actor_id", actor.ID)
	return nil
}

func (s *MatchService) getMatch(ctx context.Context, id string) (match.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	current, found, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, id)
	}
	return current, nil
}
