package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/team"
	"github.com/statsrecord/stats-api/internal/domain/user"
	"github.com/statsrecord/stats-api/internal/platform/auth"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

// UpdateUserInput is a partial patch: nil fields are left untouched.
type UpdateUserInput struct {
	FirstName       *string
	LastName        *string
	Email           *string
	Password        *string
	IsPlayer        *bool
	TeamID          *string
	ClearTeam       bool
	HeightCM        *int
	DateOfBirth     *time.Time
	PrimaryPosition *user.Position
	Subscribed      *bool
	IsAdmin         *bool
	IsSuperuser     *bool
}

type UserService struct {
	userRepo user.Repository
	teamRepo team.Repository
	hasher   auth.PasswordHasher
	logger   *logging.Logger
	now      func() time.Time
}

func NewUserService(
	userRepo user.Repository,
	teamRepo team.Repository,
	hasher auth.PasswordHasher,
	logger *logging.Logger,
) *UserService {
	if logger == nil {
		logger = logging.Default()
	}

	return &UserService{
		userRepo: userRepo,
		teamRepo: teamRepo,
		hasher:   hasher,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) List(ctx context.Context, actor policy.Actor, filter user.Filter) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.List")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceUser); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, actor policy.Actor, id string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.Get")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionRead, policy.ResourceUser); !decision.Allowed {
		return user.User{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	return s.getUser(ctx, id)
}

// GetPlayer fetches a user and requires the player flag.
func (s *UserService) GetPlayer(ctx context.Context, actor policy.Actor, id string) (user.User, error) {
	account, err := s.Get(ctx, actor, id)
	if err != nil {
		return user.User{}, err
	}
	if !account.IsPlayer {
		return user.User{}, fmt.Errorf("%w: user %s is not a player", ErrNotFound, id)
	}
	return account, nil
}

func (s *UserService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.Update")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceUser); !decision.Allowed {
		return user.User{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	// Privileged fields are gated per field, on top of the action check.
	if (input.Subscribed != nil || input.IsAdmin != nil || input.IsSuperuser != nil) && !actor.IsSuperuser {
		return user.User{}, fmt.Errorf("%w: only superusers may change subscription or role flags", ErrForbidden)
	}

	account, err := s.getUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	if input.FirstName != nil {
		account.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		account.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email == "" {
			return user.User{}, fmt.Errorf("%w: email must not be empty", ErrInvalidInput)
		}
		account.Email = email
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return user.User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
		}
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return user.User{}, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hashed
	}
	if input.IsPlayer != nil {
		account.IsPlayer = *input.IsPlayer
	}
	if input.ClearTeam {
		account.TeamID = nil
	} else if input.TeamID != nil {
		if _, found, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			return user.User{}, fmt.Errorf("get team: %w", err)
		} else if !found {
			return user.User{}, fmt.Errorf("%w: team %s does not exist", ErrInvalidInput, *input.TeamID)
		}
		account.TeamID = input.TeamID
	}
	if input.HeightCM != nil {
		account.HeightCM = input.HeightCM
	}
	if input.DateOfBirth != nil {
		account.DateOfBirth = input.DateOfBirth
	}
	if input.PrimaryPosition != nil {
		account.PrimaryPosition = input.PrimaryPosition
	}
	if input.Subscribed != nil {
		account.Subscribed = *input.Subscribed
	}
	if input.IsAdmin != nil {
		account.IsAdmin = *input.IsAdmin
	}
	if input.IsSuperuser != nil {
		account.IsSuperuser = *input.IsSuperuser
	}

	account.UpdatedBy = actor.ID
	account.UpdatedAt = s.now().UTC()

	if err := account.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.userRepo.Update(ctx, account); err != nil {
		if isConflict(err) {
			return user.User{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	return account, nil
}

func (s *UserService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	ctx, span := startUsecaseSpan(ctx, "UserService.Delete")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionDelete, policy.ResourceUser); !decision.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}

// ToggleSubscription flips a player's subscription flag. Superusers only.
func (s *UserService) ToggleSubscription(ctx context.Context, actor policy.Actor, id string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.ToggleSubscription")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionToggleSubscription, policy.ResourceUser); !decision.Allowed {
		return user.User{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	account, err := s.getUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	account.Subscribed = !account.Subscribed
	account.UpdatedBy = actor.ID
	account.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, account); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "subscription toggled", "user_id", id, "subscribed", account.Subscribed)
	return account, nil
}

func (s *UserService) getUser(ctx context.Context, id string) (user.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	account, found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return account, nil
}
