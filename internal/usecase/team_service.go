package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/league"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/team"
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type CreateTeamInput struct {
	Name        string
	LogoURL     string
	ManagerName string
	LeagueID    *string
}

// UpdateTeamInput is a partial patch: nil fields are left untouched.
type UpdateTeamInput struct {
	Name        *string
	LogoURL     *string
	ManagerName *string
	LeagueID    *string
	ClearLeague bool
}

type TeamService struct {
	teamRepo   team.Repository
	leagueRepo league.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	leagueRepo league.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, actor policy.Actor, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Create")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionCreate, policy.ResourceTeam); !decision.Allowed {
		return team.Team{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if input.LeagueID != nil && *input.LeagueID != "" {
		if err := s.requireLeague(ctx, *input.LeagueID); err != nil {
			return team.Team{}, err
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	newTeam := team.Team{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		LogoURL:     strings.TrimSpace(input.LogoURL),
		ManagerName: strings.TrimSpace(input.ManagerName),
		LeagueID:    input.LeagueID,
		CreatedBy:   actor.ID,
		UpdatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := newTeam.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, newTeam); err != nil {
		if isConflict(err) {
			return team.Team{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", newTeam.ID, "name", newTeam.Name)
	return newTeam, nil
}

func (s *TeamService) Get(ctx context.Context, actor policy.Actor, id string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Get")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceTeam); !decision.Allowed {
		return team.Team{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	return s.getTeam(ctx, id)
}

func (s *TeamService) List(ctx context.Context, actor policy.Actor, filter team.Filter) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.List")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceTeam); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	teams, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Update")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceTeam); !decision.Allowed {
		return team.Team{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	current, err := s.getTeam(ctx, id)
	if err != nil {
		return team.Team{}, err
	}

	if input.Name != nil {
		current.Name = strings.TrimSpace(*input.Name)
	}
	if input.LogoURL != nil {
		current.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	if input.ManagerName != nil {
		current.ManagerName = strings.TrimSpace(*input.ManagerName)
	}
	if input.ClearLeague {
		current.LeagueID = nil
	} else if input.LeagueID != nil {
		if err := s.requireLeague(ctx, *input.LeagueID); err != nil {
			return team.Team{}, err
		}
		current.LeagueID = input.LeagueID
	}

	current.UpdatedBy = actor.ID
	current.UpdatedAt = s.now().UTC()

	if err := current.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Update(ctx, current); err != nil {
		if isConflict(err) {
			return team.Team{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return current, nil
}

func (s *TeamService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Delete")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionDelete, policy.ResourceTeam); !decision.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if _, err := s.getTeam(ctx, id); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", id, "actor_id", actor.ID)
	return nil
}

func (s *TeamService) getTeam(ctx context.Context, id string) (team.Team, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	current, found, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, id)
	}
	return current, nil
}

func (s *TeamService) requireLeague(ctx context.Context, leagueID string) error {
	_, found, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: league %s does not exist", ErrInvalidInput, leagueID)
	}
	return nil
}
