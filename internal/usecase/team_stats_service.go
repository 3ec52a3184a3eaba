package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/match"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/team"
	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type CreateTeamStatsInput struct {
	TeamID       string
	MatchID      string
	MatchOutcome teamstats.Outcome
	MatchGoals   int
	GoalsAgainst int
	GoalTimes    []int
	Possession   *float64
}

// UpdateTeamStatsInput patches the mutable part of a record. The team,
// season and match references never change after creation.
type UpdateTeamStatsInput struct {
	MatchOutcome *teamstats.Outcome
	MatchGoals   *int
	GoalsAgainst *int
	GoalTimes    []int
	Possession   *float64
}

// TeamStatsService owns the write path that keeps the denormalized season
// totals consistent: every save or delete goes through the repository's
// transactional recompute.
type TeamStatsService struct {
	statsRepo teamstats.Repository
	teamRepo  team.Repository
	matchRepo match.Repository
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewTeamStatsService(
	statsRepo teamstats.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamStatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamStatsService{
		statsRepo: statsRepo,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TeamStatsService) Create(ctx context.Context, actor policy.Actor, input CreateTeamStatsInput) (teamstats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamStatsService.Create")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionCreate, policy.ResourceTeamStats); !decision.Allowed {
		return teamstats.TeamStats{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.TeamID == "" || input.MatchID == "" {
		return teamstats.TeamStats{}, fmt.Errorf("%w: team id and match id are required", ErrInvalidInput)
	}

	if _, found, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("get team: %w", err)
	} else if !found {
		return teamstats.TeamStats{}, fmt.Errorf("%w: team %s does not exist", ErrInvalidInput, input.TeamID)
	}

	fixture, found, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return teamstats.TeamStats{}, fmt.Errorf("%w: match %s does not exist", ErrInvalidInput, input.MatchID)
	}
	if fixture.HomeTeamID != input.TeamID && fixture.AwayTeamID != input.TeamID {
		return teamstats.TeamStats{}, fmt.Errorf("%w: team %s did not play match %s", ErrInvalidInput, input.TeamID, input.MatchID)
	}

	existing, err := s.statsRepo.List(ctx, teamstats.Filter{TeamID: input.TeamID, MatchID: input.MatchID})
	if err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("list team stats: %w", err)
	}
	if len(existing) > 0 {
		return teamstats.TeamStats{}, fmt.Errorf("%w: %v", ErrConflict, teamstats.ErrDuplicate)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("generate team stats id: %w", err)
	}

	now := s.now().UTC()
	row := teamstats.TeamStats{
		ID:           id,
		TeamID:       input.TeamID,
		SeasonID:     fixture.SeasonID,
		MatchID:      fixture.ID,
		MatchOutcome: input.MatchOutcome,
		MatchGoals:   input.MatchGoals,
		GoalsAgainst: input.GoalsAgainst,
		GoalTimes:    input.GoalTimes,
		Possession:   input.Possession,
		CreatedBy:    actor.ID,
		UpdatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := row.Validate(); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.statsRepo.Save(ctx, row)
	if err != nil {
		if isConflict(err) {
			return teamstats.TeamStats{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return teamstats.TeamStats{}, fmt.Errorf("save team stats: %w", err)
	}

	s.logger.InfoContext(ctx, "team stats recorded",
		"stats_id", saved.ID, "team_id", saved.TeamID, "season_id", saved.SeasonID,
		"matches_played", saved.MatchesPlayed)
	return saved, nil
}

func (s *TeamStatsService) Get(ctx context.Context, actor policy.Actor, id string) (teamstats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamStatsService.Get")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceTeamStats); !decision.Allowed {
		return teamstats.TeamStats{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	return s.getRow(ctx, id)
}

func (s *TeamStatsService) List(ctx context.Context, actor policy.Actor, filter teamstats.Filter) ([]teamstats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamStatsService.List")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceTeamStats); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	rows, err := s.statsRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}
	return rows, nil
}

func (s *TeamStatsService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateTeamStatsInput) (teamstats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamStatsService.Update")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceTeamStats); !decision.Allowed {
		return teamstats.TeamStats{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	row, err := s.getRow(ctx, id)
	if err != nil {
		return teamstats.TeamStats{}, err
	}

	if input.MatchOutcome != nil {
		row.MatchOutcome = *input.MatchOutcome
	}
	if input.MatchGoals != nil {
		row.MatchGoals = *input.MatchGoals
	}
	if input.GoalsAgainst != nil {
		row.GoalsAgainst = *input.GoalsAgainst
	}
	if input.GoalTimes != nil {
		row.GoalTimes = input.GoalTimes
	}
	if input.Possession != nil {
		row.Possession = input.Possession
	}

	row.UpdatedBy = actor.ID
	row.UpdatedAt = s.now().UTC()

	if err := row.Validate(); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.statsRepo.Save(ctx, row)
	if err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("save team stats: %w", err)
	}

	return saved, nil
}

func (s *TeamStatsService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	ctx, span := startUsecaseSpan(ctx, "TeamStatsService.Delete")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionDelete, policy.ResourceTeamStats); !decision.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if _, err := s.getRow(ctx, id); err != nil {
		return err
	}

	if err := s.statsRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team stats: %w", err)
	}

	s.logger.InfoContext(ctx, "team stats deleted", "stats_id", id, "actor_id", actor.ID)
	return nil
}

func (s *TeamStatsService) getRow(ctx context.Context, id string) (teamstats.TeamStats, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return teamstats.TeamStats{}, fmt.Errorf("%w: team stats id is required", ErrInvalidInput)
	}

	row, found, err := s.statsRepo.GetByID(ctx, id)
	if err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("get team stats: %w", err)
	}
	if !found {
		return teamstats.TeamStats{}, fmt.Errorf("%w: team stats %s", ErrNotFound, id)
	}
	return row, nil
}
