package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/match"
	"github.com/statsrecord/stats-api/internal/domain/playerstats"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/team"
	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	"github.com/statsrecord/stats-api/internal/domain/user"
	"github.com/statsrecord/stats-api/internal/infrastructure/repository/memory"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

type teamStatsFixture struct {
	service   *TeamStatsService
	statsRepo *memory.TeamStatsRepository
	userRepo  *memory.UserRepository
	playerStats *memory.PlayerStatsRepository
	matchRepo *memory.MatchRepository
}

func newTeamStatsFixture(t *testing.T) teamStatsFixture {
	t.Helper()

	ctx := context.Background()
	userRepo := memory.NewUserRepository()
	teamRepo := memory.NewTeamRepository()
	matchRepo := memory.NewMatchRepository()
	playerStatsRepo := memory.NewPlayerStatsRepository()
	statsRepo := memory.NewTeamStatsRepository(playerStatsRepo, userRepo)

	for _, item := range []team.Team{
		{ID: "t1", Name: "United"},
		{ID: "t2", Name: "Rovers"},
	} {
		if err := teamRepo.Create(ctx, item); err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}

	kickoff := time.Date(2025, 9, 6, 15, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2", "m3", "m4"} {
		fixture := match.Match{
			ID: id, SeasonID: "s1", LeagueID: "l1",
			HomeTeamID: "t1", AwayTeamID: "t2",
			KickoffAt: kickoff.AddDate(0, 0, 7*i),
			Status:    match.StatusCompleted, Type: match.TypeLeague,
		}
		if err := matchRepo.Create(ctx, fixture); err != nil {
			t.Fatalf("seed match: %v", err)
		}
	}

	service := NewTeamStatsService(
		statsRepo, teamRepo, matchRepo,
		&seqIDGenerator{prefix: "ts"},
		logging.NewNop(),
	)
	return teamStatsFixture{
		service:   service,
		statsRepo: statsRepo,
		userRepo:  userRepo,
		playerStats: playerStatsRepo,
		matchRepo: matchRepo,
	}
}

func TestTeamStatsService_CreateRecomputesSeasonTotals(t *testing.T) {
	fx := newTeamStatsFixture(t)
	actor := policy.Actor{ID: "staff", Authenticated: true}

	inputs := []CreateTeamStatsInput{
		{TeamID: "t1", MatchID: "m1", MatchOutcome: teamstats.OutcomeWin, MatchGoals: 3, GoalsAgainst: 1},
		{TeamID: "t1", MatchID: "m2", MatchOutcome: teamstats.OutcomeWin, MatchGoals: 1, GoalsAgainst: 0},
		{TeamID: "t1", MatchID: "m3", MatchOutcome: teamstats.OutcomeDraw, MatchGoals: 2, GoalsAgainst: 2},
		{TeamID: "t1", MatchID: "m4", MatchOutcome: teamstats.OutcomeLoss, MatchGoals: 0, GoalsAgainst: 4},
	}

	var last teamstats.TeamStats
	for _, input := range inputs {
		row, err := fx.service.Create(t.Context(), actor, input)
		if err != nil {
			t.Fatalf("create team stats for %s failed: %v", input.MatchID, err)
		}
		last = row
	}

	if last.Wins != 2 || last.Draws != 1 || last.Loses != 1 {
		t.Fatalf("unexpected outcome totals: %+v", last.Totals)
	}
	if last.Goals != 6 {
		t.Fatalf("goals = %d, want 6", last.Goals)
	}
	if last.MatchesPlayed != 4 {
		t.Fatalf("matches played = %d, want 4", last.MatchesPlayed)
	}

	// Every sibling row carries the same refreshed totals.
	rows, err := fx.service.List(t.Context(), actor, teamstats.Filter{TeamID: "t1", SeasonID: "s1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, row := range rows {
		if row.Totals != last.Totals {
			t.Fatalf("row %s totals %+v diverge from %+v", row.ID, row.Totals, last.Totals)
		}
	}
}

func TestTeamStatsService_PassTotalsComeFromPlayerRecords(t *testing.T) {
	fx := newTeamStatsFixture(t)
	actor := policy.Actor{ID: "staff", Authenticated: true}
	ctx := context.Background()

	for i, passes := range []int{12, 30} {
		record := playerstats.PlayerStats{
			ID: "ps" + string(rune('1'+i)), UserID: "p" + string(rune('1'+i)),
			MatchID: "m1", SeasonID: "s1", TeamID: "t1",
		}
		record.OneTouchPassSuccess = passes
		if err := fx.playerStats.Create(ctx, record); err != nil {
			t.Fatalf("seed player stats: %v", err)
		}
	}

	row, err := fx.service.Create(t.Context(), actor, CreateTeamStatsInput{
		TeamID: "t1", MatchID: "m1", MatchOutcome: teamstats.OutcomeWin, MatchGoals: 2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if row.Passes != 42 {
		t.Fatalf("passes = %d, want 42", row.Passes)
	}
}

func TestTeamStatsService_RosterSnapshotFrozenAtWrite(t *testing.T) {
	fx := newTeamStatsFixture(t)
	actor := policy.Actor{ID: "staff", Authenticated: true}
	ctx := context.Background()

	teamID := "t1"
	height := 180
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := fx.userRepo.Create(ctx, user.User{
		ID: "p1", FirstName: "Ada", Email: "p1@example.com", PasswordHash: "x",
		IsPlayer: true, TeamID: &teamID, HeightCM: &height, DateOfBirth: &dob,
	}); err != nil {
		t.Fatalf("seed player: %v", err)
	}

	row, err := fx.service.Create(t.Context(), actor, CreateTeamStatsInput{
		TeamID: "t1", MatchID: "m1", MatchOutcome: teamstats.OutcomeWin, MatchGoals: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(row.PlayerIDs) != 1 || row.PlayerIDs[0] != "p1" {
		t.Fatalf("unexpected roster snapshot: %v", row.PlayerIDs)
	}

	// A player joining later must not appear on the earlier snapshot.
	if err := fx.userRepo.Create(ctx, user.User{
		ID: "p2", FirstName: "Bo", Email: "p2@example.com", PasswordHash: "x",
		IsPlayer: true, TeamID: &teamID, HeightCM: &height, DateOfBirth: &dob,
	}); err != nil {
		t.Fatalf("seed later player: %v", err)
	}

	second, err := fx.service.Create(t.Context(), actor, CreateTeamStatsInput{
		TeamID: "t1", MatchID: "m2", MatchOutcome: teamstats.OutcomeDraw, MatchGoals: 0,
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if len(second.PlayerIDs) != 2 {
		t.Fatalf("expected two players on second snapshot, got %v", second.PlayerIDs)
	}

	first, found, err := fx.statsRepo.GetByID(ctx, row.ID)
	if err != nil || !found {
		t.Fatalf("reload first row: found=%v err=%v", found, err)
	}
	if len(first.PlayerIDs) != 1 {
		t.Fatalf("first snapshot should stay frozen, got %v", first.PlayerIDs)
	}
}

func TestTeamStatsService_DuplicateMatchConflicts(t *testing.T) {
	fx := newTeamStatsFixture(t)
	actor := policy.Actor{ID: "staff", Authenticated: true}

	input := CreateTeamStatsInput{TeamID: "t1", MatchID: "m1", MatchOutcome: teamstats.OutcomeWin, MatchGoals: 1}
	if _, err := fx.service.Create(t.Context(), actor, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := fx.service.Create(t.Context(), actor, input)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTeamStatsService_CreateRejectsNonParticipant(t *testing.T) {
	fx := newTeamStatsFixture(t)
	actor := policy.Actor{ID: "staff", Authenticated: true}
	ctx := context.Background()

	if err := fx.matchRepo.Create(ctx, match.Match{
		ID: "other", SeasonID: "s1", LeagueID: "l1",
		HomeTeamID: "x1", AwayTeamID: "x2",
		KickoffAt: time.Date(2025, 10, 1, 15, 0, 0, 0, time.UTC),
		Status:    match.StatusCompleted, Type: match.TypeLeague,
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	_, err := fx.service.Create(t.Context(), actor, CreateTeamStatsInput{
		TeamID: "t1", MatchID: "other", MatchOutcome: teamstats.OutcomeWin,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamStatsService_DeleteRecomputesRemaining(t *testing.T) {
	fx := newTeamStatsFixture(t)
	super := policy.Actor{ID: "root", Authenticated: true, IsSuperuser: true}

	first, err := fx.service.Create(t.Context(), super, CreateTeamStatsInput{
		TeamID: "t1", MatchID: "m1", MatchOutcome: teamstats.OutcomeWin, MatchGoals: 2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := fx.service.Create(t.Context(), super, CreateTeamStatsInput{
		TeamID: "t1", MatchID: "m2", MatchOutcome: teamstats.OutcomeLoss, MatchGoals: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := fx.service.Delete(t.Context(), super, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	remaining, err := fx.service.Get(t.Context(), super, second.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if remaining.Wins != 0 || remaining.Loses != 1 || remaining.MatchesPlayed != 1 || remaining.Goals != 1 {
		t.Fatalf("unexpected totals after delete: %+v", remaining.Totals)
	}
}
