package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/statsrecord/stats-api/internal/domain/league"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type leagueRepoMock struct {
	mock.Mock
}

func (m *leagueRepoMock) Create(ctx context.Context, l league.League) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *leagueRepoMock) GetByID(ctx context.Context, id string) (league.League, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(league.League), args.Bool(1), args.Error(2)
}

func (m *leagueRepoMock) List(ctx context.Context) ([]league.League, error) {
	args := m.Called(ctx)
	if leagues := args.Get(0); leagues != nil {
		return leagues.([]league.League), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *leagueRepoMock) Update(ctx context.Context, l league.League) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *leagueRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestLeagueService_Create_PersistsTrimmedLeague(t *testing.T) {
	t.Parallel()

	repo := &leagueRepoMock{}
	service := NewLeagueService(repo, &seqIDGenerator{prefix: "league"}, logging.NewNop())
	super := policy.Actor{ID: "root", Authenticated: true, IsSuperuser: true}

	repo.
		On("Create", mock.Anything, mock.MatchedBy(func(l league.League) bool {
			return l.Name == "Premier Division" && l.Country == "England" && l.CreatedBy == "root"
		})).
		Return(nil).
		Once()

	created, err := service.Create(context.Background(), super, CreateLeagueInput{
		Name:        "  Premier Division ",
		Country:     " England ",
		FoundedYear: 1992,
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if created.Name != "Premier Division" {
		t.Fatalf("unexpected league name: %q", created.Name)
	}
	repo.AssertExpectations(t)
}

func TestLeagueService_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo := &leagueRepoMock{}
	service := NewLeagueService(repo, &seqIDGenerator{prefix: "league"}, logging.NewNop())

	repo.
		On("GetByID", mock.Anything, "missing").
		Return(league.League{}, false, nil).
		Once()

	_, err := service.Get(context.Background(), policy.Anonymous, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	repo.AssertExpectations(t)
}

func TestLeagueService_Delete_MapsInUseToConflict(t *testing.T) {
	t.Parallel()

	repo := &leagueRepoMock{}
	service := NewLeagueService(repo, &seqIDGenerator{prefix: "league"}, logging.NewNop())
	super := policy.Actor{ID: "root", Authenticated: true, IsSuperuser: true}

	repo.
		On("GetByID", mock.Anything, "league-1").
		Return(league.League{ID: "league-1", Name: "Premier Division"}, true, nil).
		Once()
	repo.
		On("Delete", mock.Anything, "league-1").
		Return(league.ErrInUse).
		Once()

	err := service.Delete(context.Background(), super, "league-1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	repo.AssertExpectations(t)
}

func TestLeagueService_Delete_RequiresSuperuser(t *testing.T) {
	t.Parallel()

	repo := &leagueRepoMock{}
	service := NewLeagueService(repo, &seqIDGenerator{prefix: "league"}, logging.NewNop())
	member := policy.Actor{ID: "u1", Authenticated: true}

	err := service.Delete(context.Background(), member, "league-1")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	repo.AssertExpectations(t)
}
