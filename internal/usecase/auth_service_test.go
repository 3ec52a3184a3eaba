package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/infrastructure/repository/memory"
	"github.com/statsrecord/stats-api/internal/platform/auth"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type seqIDGenerator struct {
	prefix string
	next   int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

func newAuthFixture(t *testing.T) (*AuthService, *memory.UserRepository, *memory.TeamRepository) {
	t.Helper()

	userRepo := memory.NewUserRepository()
	teamRepo := memory.NewTeamRepository()

	tokens, err := auth.NewJWTManager("test-secret", "stats-api", time.Hour)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	service := NewAuthService(
		userRepo,
		teamRepo,
		auth.NewBcryptHasher(4),
		tokens,
		&seqIDGenerator{prefix: "user"},
		logging.NewNop(),
	)
	return service, userRepo, teamRepo
}

func TestAuthService_Register_FirstUserBootstrapsSuperuser(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	first, err := service.Register(t.Context(), policy.Anonymous, RegisterInput{
		FirstName: "Root",
		Email:     "root@example.com",
		Password:  "bootstrap-pass",
	})
	if err != nil {
		t.Fatalf("register first user failed: %v", err)
	}
	if !first.IsSuperuser || !first.IsAdmin {
		t.Fatalf("expected first user to be superuser admin, got %+v", first)
	}

	second, err := service.Register(t.Context(), policy.Anonymous, RegisterInput{
		FirstName: "Member",
		Email:     "member@example.com",
		Password:  "member-pass",
	})
	if err != nil {
		t.Fatalf("register second user failed: %v", err)
	}
	if second.IsSuperuser || second.IsAdmin {
		t.Fatalf("expected second user to be unprivileged, got %+v", second)
	}
}

func TestAuthService_Register_DuplicateEmailConflicts(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	input := RegisterInput{FirstName: "Ada", Email: "ada@example.com", Password: "some-password"}
	if _, err := service.Register(t.Context(), policy.Anonymous, input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := service.Register(t.Context(), policy.Anonymous, input)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthService_Register_StoresHashNotPassword(t *testing.T) {
	service, userRepo, _ := newAuthFixture(t)

	created, err := service.Register(t.Context(), policy.Anonymous, RegisterInput{
		FirstName: "Ada", Email: "ada@example.com", Password: "some-password",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored, found, err := userRepo.GetByID(t.Context(), created.ID)
	if err != nil || !found {
		t.Fatalf("expected stored user, found=%v err=%v", found, err)
	}
	if stored.PasswordHash == "some-password" {
		t.Fatal("password stored in plain text")
	}
}

func TestAuthService_Login(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	if _, err := service.Register(t.Context(), policy.Anonymous, RegisterInput{
		FirstName: "Ada", Email: "ada@example.com", Password: "some-password",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := service.Login(t.Context(), LoginInput{Email: "Ada@Example.com", Password: "some-password"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	_, err = service.Login(t.Context(), LoginInput{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for bad password, got %v", err)
	}

	_, err = service.Login(t.Context(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown email, got %v", err)
	}
}

func TestAuthService_Login_AdminPasswordRotation(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	// First user bootstraps as admin.
	if _, err := service.Register(t.Context(), policy.Anonymous, RegisterInput{
		FirstName: "Root", Email: "root@example.com", Password: "initial-pass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.Login(t.Context(), LoginInput{
		Email: "root@example.com", Password: "initial-pass", NewPassword: "rotated-pass",
	}); err != nil {
		t.Fatalf("login with rotation failed: %v", err)
	}

	if _, err := service.Login(t.Context(), LoginInput{Email: "root@example.com", Password: "initial-pass"}); err == nil {
		t.Fatal("old password should no longer work")
	}
	if _, err := service.Login(t.Context(), LoginInput{Email: "root@example.com", Password: "rotated-pass"}); err != nil {
		t.Fatalf("rotated password should work: %v", err)
	}
}

func TestAuthService_Login_NewPasswordIgnoredForNonAdmin(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	if _, err := service.Register(t.Context(), policy.Anonymous, RegisterInput{
		FirstName: "Root", Email: "root@example.com", Password: "bootstrap-pass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := service.Register(t.Context(), policy.Anonymous, RegisterInput{
		FirstName: "Member", Email: "member@example.com", Password: "member-pass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.Login(t.Context(), LoginInput{
		Email: "member@example.com", Password: "member-pass", NewPassword: "sneaky-rotation",
	}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := service.Login(t.Context(), LoginInput{Email: "member@example.com", Password: "member-pass"}); err != nil {
		t.Fatalf("original password should still work for non-admin: %v", err)
	}
}
