package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/match"
	"github.com/statsrecord/stats-api/internal/domain/playerstats"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/user"
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type CreatePlayerStatsInput struct {
	UserID           string
	MatchID          string
	OpposingTeamName string
	MatchHalfPlayed  playerstats.Half
	StartMatch       bool
	SubInAtMinute    *int
	SubOutAtMinute   *int
	GoalTimes        []int
	Counters         playerstats.Counters
}

// UpdatePlayerStatsInput patches the mutable part of a record. The user,
// match, season and team references never change after creation.
type UpdatePlayerStatsInput struct {
	OpposingTeamName *string
	MatchHalfPlayed  *playerstats.Half
	StartMatch       *bool
	SubInAtMinute    *int
	SubOutAtMinute   *int
	GoalTimes        []int
	Counters         *playerstats.Counters
}

type PlayerStatsService struct {
	statsRepo playerstats.Repository
	userRepo  user.Repository
	matchRepo match.Repository
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewPlayerStatsService(
	statsRepo playerstats.Repository,
	userRepo user.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerStatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerStatsService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		matchRepo: matchRepo,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *PlayerStatsService) Create(ctx context.Context, actor policy.Actor, input CreatePlayerStatsInput) (playerstats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerStatsService.Create")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionCreate, policy.ResourcePlayerStats); !decision.Allowed {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.UserID == "" || input.MatchID == "" {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}

	subject, found, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return playerstats.PlayerStats{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: user %s does not exist", ErrInvalidInput, input.UserID)
	}
	if !subject.IsPlayer {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: user %s is not a player", ErrInvalidInput, input.UserID)
	}
	if subject.TeamID == nil || *subject.TeamID == "" {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: player %s has no team", ErrInvalidInput, input.UserID)
	}

	fixture, found, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return playerstats.PlayerStats{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: match %s does not exist", ErrInvalidInput, input.MatchID)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return playerstats.PlayerStats{}, fmt.Errorf("generate player stats id: %w", err)
	}

	now := s.now().UTC()
	record := playerstats.PlayerStats{
		ID:               id,
		UserID:           subject.ID,
		MatchID:          fixture.ID,
		SeasonID:         fixture.SeasonID,
		TeamID:           *subject.TeamID,
		OpposingTeamName: strings.TrimSpace(input.OpposingTeamName),
		MatchHalfPlayed:  input.MatchHalfPlayed,
		StartMatch:       input.StartMatch,
		SubInAtMinute:    input.SubInAtMinute,
		SubOutAtMinute:   input.SubOutAtMinute,
		GoalTimes:        input.GoalTimes,
		Counters:         input.Counters,
		CreatedBy:        actor.ID,
		UpdatedBy:        actor.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := record.Validate(); err != nil {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.statsRepo.Create(ctx, record); err != nil {
		if isConflict(err) {
			return playerstats.PlayerStats{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return playerstats.PlayerStats{}, fmt.Errorf("create player stats: %w", err)
	}

	s.logger.InfoContext(ctx, "player stats recorded", "stats_id", record.ID, "user_id", record.UserID, "match_id", record.MatchID)
	return record, nil
}

func (s *PlayerStatsService) Get(ctx context.Context, actor policy.Actor, id string) (playerstats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerStatsService.Get")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourcePlayerStats); !decision.Allowed {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	return s.getRecord(ctx, id)
}

func (s *PlayerStatsService) List(ctx context.Context, actor policy.Actor, filter playerstats.Filter) ([]playerstats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerStatsService.List")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourcePlayerStats); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	records, err := s.statsRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}
	return records, nil
}

func (s *PlayerStatsService) Update(ctx context.Context, actor policy.Actor, id string, input UpdatePlayerStatsInput) (playerstats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerStatsService.Update")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionUpdate, policy.ResourcePlayerStats); !decision.Allowed {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return playerstats.PlayerStats{}, err
	}

	if input.OpposingTeamName != nil {
		record.OpposingTeamName = strings.TrimSpace(*input.OpposingTeamName)
	}
	if input.MatchHalfPlayed != nil {
		record.MatchHalfPlayed = *input.MatchHalfPlayed
	}
	if input.StartMatch != nil {
		record.StartMatch = *input.StartMatch
	}
	if input.SubInAtMinute != nil {
		record.SubInAtMinute = input.SubInAtMinute
	}
	if input.SubOutAtMinute != nil {
		record.SubOutAtMinute = input.SubOutAtMinute
	}
	if input.GoalTimes != nil {
		record.GoalTimes = input.GoalTimes
	}
	if input.Counters != nil {
		record.Counters = *input.Counters
	}

	record.UpdatedBy = actor.ID
	record.UpdatedAt = s.now().UTC()

	if err := record.Validate(); err != nil {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.statsRepo.Update(ctx, record); err != nil {
		return playerstats.PlayerStats{}, fmt.Errorf("update player stats: %w", err)
	}

	return record, nil
}

func (s *PlayerStatsService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	ctx, span := startUsecaseSpan(ctx, "PlayerStatsService.Delete")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionDelete, policy.ResourcePlayerStats); !decision.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if _, err := s.getRecord(ctx, id); err != nil {
		return err
	}

	if err := s.statsRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete player stats: %w", err)
	}

	s.logger.InfoContext(ctx, "player stats deleted", "stats_id", id, "actor_id", actor.ID)
	return nil
}

func (s *PlayerStatsService) getRecord(ctx context.Context, id string) (playerstats.PlayerStats, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: player stats id is required", ErrInvalidInput)
	}

	record, found, err := s.statsRepo.GetByID(ctx, id)
	if err != nil {
		return playerstats.PlayerStats{}, fmt.Errorf("get player stats: %w", err)
	}
	if !found {
		return playerstats.PlayerStats{}, fmt.Errorf("%w: player stats %s", ErrNotFound, id)
	}
	return record, nil
}
