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
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

// RegisterInput is the incoming payload for account registration. Role and
// subscription flags are never accepted here.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	IsPlayer        bool
	TeamID          *string
	HeightCM        *int
	DateOfBirth     *time.Time
	PrimaryPosition *user.Position
}

// LoginInput carries credentials. NewPassword is honored for admin accounts
// only: it rotates the password on a successful login.
type LoginInput struct {
	Email       string
	Password    string
	NewPassword string
}

// LoginResult is the issued token plus the authenticated account.
type LoginResult struct {
	Token string
	User  user.User
}

type AuthService struct {
	userRepo user.Repository
	teamRepo team.Repository
	hasher   auth.PasswordHasher
	tokens   auth.TokenIssuer
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewAuthService(
	userRepo user.Repository,
	teamRepo team.Repository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		teamRepo: teamRepo,
		hasher:   hasher,
		tokens:   tokens,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, actor policy.Actor, input RegisterInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Register")
	defer span.End()

	if decision := policy.Authorize(actor, policy.ActionCreate, policy.ResourceUser); !decision.Allowed {
		return user.User{}, fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = normalizeEmail(input.Email)

	if input.Email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return user.User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	if input.TeamID != nil && *input.TeamID != "" {
		if _, found, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			return user.User{}, fmt.Errorf("get team: %w", err)
		} else if !found {
			return user.User{}, fmt.Errorf("%w: team %s does not exist", ErrInvalidInput, *input.TeamID)
		}
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	createdBy := actor.ID
	if createdBy == "" {
		createdBy = id
	}

	newUser := user.User{
		ID:              id,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		PasswordHash:    hashed,
		IsPlayer:        input.IsPlayer,
		TeamID:          input.TeamID,
		HeightCM:        input.HeightCM,
		DateOfBirth:     input.DateOfBirth,
		PrimaryPosition: input.PrimaryPosition,
		CreatedBy:       createdBy,
		UpdatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := newUser.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// The very first account bootstraps the instance and becomes the
	// superuser; every later account starts unprivileged.
	existing, err := s.userRepo.List(ctx, user.Filter{})
	if err != nil {
		return user.User{}, fmt.Errorf("list users: %w", err)
	}
	if len(existing) == 0 {
		newUser.IsAdmin = true
		newUser.IsSuperuser = true
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if isConflict(err) {
			return user.User{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", newUser.ID, "is_player", newUser.IsPlayer)
	return newUser, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Login")
	defer span.End()

	input.Email = normalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, found, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("get user by email: %w", err)
	}
	if !found {
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	if err := s.hasher.Compare(account.PasswordHash, input.Password); err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	// Admins may rotate their password on login. For everyone else the
	// field is ignored.
	if input.NewPassword != "" && account.IsAdmin {
		if len(input.NewPassword) < 8 {
			return LoginResult{}, fmt.Errorf("%w: new password must be at least 8 characters", ErrInvalidInput)
		}
		rotated, err := s.hasher.Hash(input.NewPassword)
		if err != nil {
			return LoginResult{}, fmt.Errorf("hash new password: %w", err)
		}
		account.PasswordHash = rotated
		account.UpdatedBy = account.ID
		account.UpdatedAt = s.now().UTC()
		if err := s.userRepo.Update(ctx, account); err != nil {
			return LoginResult{}, fmt.Errorf("rotate password: %w", err)
		}
		s.logger.InfoContext(ctx, "admin password rotated on login", "user_id", account.ID)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{Token: token, User: account}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
