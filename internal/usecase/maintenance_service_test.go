package usecase

import (
	"context"
	"testing"

	"github.com/statsrecord/stats-api/internal/domain/playerstats"
	"github.com/statsrecord/stats-api/internal/domain/policy"
	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

func TestMaintenanceService_RecomputeRepairsDrift(t *testing.T) {
	fx := newTeamStatsFixture(t)
	actor := policy.Actor{ID: "staff", Authenticated: true}
	ctx := context.Background()

	row, err := fx.service.Create(t.Context(), actor, CreateTeamStatsInput{
		TeamID: "t1", MatchID: "m1", MatchOutcome: teamstats.OutcomeWin, MatchGoals: 2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Simulate manual data surgery: player passes recorded after the team
	// row was written, so the stored pass total is stale.
	record := playerstats.PlayerStats{ID: "ps1", UserID: "p1", MatchID: "m1", SeasonID: "s1", TeamID: "t1"}
	record.OneTouchPassSuccess = 25
	if err := fx.playerStats.Create(ctx, record); err != nil {
		t.Fatalf("seed player stats: %v", err)
	}

	maintenance := NewMaintenanceService(fx.statsRepo, logging.NewNop())
	result, err := maintenance.RecomputeTeamTotals(t.Context(), RecomputeInput{})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if result.TaskCount != 1 || result.SuccessCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	repaired, found, err := fx.statsRepo.GetByID(ctx, row.ID)
	if err != nil || !found {
		t.Fatalf("reload row: found=%v err=%v", found, err)
	}
	if repaired.Passes != 25 {
		t.Fatalf("passes = %d, want 25", repaired.Passes)
	}
}

func TestMaintenanceService_RecomputeEmptyStore(t *testing.T) {
	fx := newTeamStatsFixture(t)

	maintenance := NewMaintenanceService(fx.statsRepo, logging.NewNop())
	result, err := maintenance.RecomputeTeamTotals(t.Context(), RecomputeInput{MaxWorkers: 8})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if result.TaskCount != 0 || len(result.Tasks) != 0 {
		t.Fatalf("expected no tasks, got %+v", result)
	}
}

func TestNormalizeRecomputeWorkerCount(t *testing.T) {
	cases := []struct {
		requested, tasks, want int
	}{
		{0, 10, defaultRecomputeWorkers},
		{100, 100, maxRecomputeWorkers},
		{8, 2, 2},
		{-1, 1, 1},
	}
	for _, tc := range cases {
		if got := normalizeRecomputeWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeRecomputeWorkerCount(%d, %d) = %d, want %d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}
