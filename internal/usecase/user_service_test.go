package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/user"
	"github.com/statsrecord/stats-api/internal/infrastructure/repository/memory"
	"github.com/statsrecord/stats-api/internal/platform/auth"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

func newUserFixture(t *testing.T) (*UserService, *memory.UserRepository) {
	t.Helper()

	userRepo := memory.NewUserRepository()
	teamRepo := memory.NewTeamRepository()
	service := NewUserService(userRepo, teamRepo, auth.NewBcryptHasher(4), logging.NewNop())
	return service, userRepo
}

func seedUser(t *testing.T, repo *memory.UserRepository, u user.User) user.User {
	t.Helper()

	if u.PasswordHash == "" {
		u.PasswordHash = "$2a$04$seeded"
	}
	if u.FirstName == "" {
		u.FirstName = "Seeded"
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", u.ID, err)
	}
	return u
}

func TestUserService_Update_SubscriptionFieldRequiresSuperuser(t *testing.T) {
	service, repo := newUserFixture(t)
	seedUser(t, repo, user.User{ID: "u1", Email: "u1@example.com"})

	member := policy.Actor{ID: "u1", Authenticated: true}
	subscribed := true

	_, err := service.Update(t.Context(), member, "u1", UpdateUserInput{Subscribed: &subscribed})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member, got %v", err)
	}

	super := policy.Actor{ID: "root", Authenticated: true, IsSuperuser: true}
	updated, err := service.Update(t.Context(), super, "u1", UpdateUserInput{Subscribed: &subscribed})
	if err != nil {
		t.Fatalf("superuser update failed: %v", err)
	}
	if !updated.Subscribed {
		t.Fatal("expected subscribed to be set")
	}
}

func TestUserService_Update_PlainFieldsAllowedForMembers(t *testing.T) {
	service, repo := newUserFixture(t)
	seedUser(t, repo, user.User{ID: "u1", Email: "u1@example.com"})

	member := policy.Actor{ID: "u1", Authenticated: true}
	name := "Renamed"

	updated, err := service.Update(t.Context(), member, "u1", UpdateUserInput{FirstName: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FirstName != "Renamed" {
		t.Fatalf("first name = %q, want Renamed", updated.FirstName)
	}
	if updated.UpdatedBy != "u1" {
		t.Fatalf("updated by = %q, want u1", updated.UpdatedBy)
	}
}

func TestUserService_Update_PatchIdempotent(t *testing.T) {
	service, repo := newUserFixture(t)
	seedUser(t, repo, user.User{ID: "u1", Email: "u1@example.com"})

	member := policy.Actor{ID: "u1", Authenticated: true}
	service.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }

	name := "Stable"
	first, err := service.Update(t.Context(), member, "u1", UpdateUserInput{FirstName: &name})
	if err != nil {
		t.Fatalf("first patch failed: %v", err)
	}
	second, err := service.Update(t.Context(), member, "u1", UpdateUserInput{FirstName: &name})
	if err != nil {
		t.Fatalf("second patch failed: %v", err)
	}
	if first.FirstName != second.FirstName || first.Email != second.Email {
		t.Fatalf("patch not idempotent: first=%+v second=%+v", first, second)
	}
}

func TestUserService_ToggleSubscription(t *testing.T) {
	service, repo := newUserFixture(t)
	teamID := "t1"
	height := 180
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, repo, user.User{
		ID: "p1", Email: "p1@example.com", IsPlayer: true,
		TeamID: &teamID, HeightCM: &height, DateOfBirth: &dob,
	})

	member := policy.Actor{ID: "u2", Authenticated: true}
	if _, err := service.ToggleSubscription(t.Context(), member, "p1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member, got %v", err)
	}

	super := policy.Actor{ID: "root", Authenticated: true, IsSuperuser: true}
	toggled, err := service.ToggleSubscription(t.Context(), super, "p1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.Subscribed {
		t.Fatal("expected subscription on after first toggle")
	}

	toggled, err = service.ToggleSubscription(t.Context(), super, "p1")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if toggled.Subscribed {
		t.Fatal("expected subscription off after second toggle")
	}
}

func TestUserService_Delete_SuperuserOnly(t *testing.T) {
	service, repo := newUserFixture(t)
	seedUser(t, repo, user.User{ID: "u1", Email: "u1@example.com"})

	member := policy.Actor{ID: "u2", Authenticated: true}
	if err := service.Delete(t.Context(), member, "u1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	super := policy.Actor{ID: "root", Authenticated: true, IsSuperuser: true}
	if err := service.Delete(t.Context(), super, "u1"); err != nil {
		t.Fatalf("superuser delete failed: %v", err)
	}

	if err := service.Delete(t.Context(), super, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestUserService_GetPlayer_RequiresPlayerFlag(t *testing.T) {
	service, repo := newUserFixture(t)
	seedUser(t, repo, user.User{ID: "u1", Email: "u1@example.com"})

	member := policy.Actor{ID: "u1", Authenticated: true}
	if _, err := service.GetPlayer(t.Context(), member, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-player, got %v", err)
	}
}
