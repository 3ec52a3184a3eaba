package teamstats

import "testing"

func TestAggregate(t *testing.T) {
	rows := []TeamStats{
		{MatchOutcome: OutcomeWin, MatchGoals: 3},
		{MatchOutcome: OutcomeWin, MatchGoals: 1},
		{MatchOutcome: OutcomeDraw, MatchGoals: 2},
		{MatchOutcome: OutcomeLoss, MatchGoals: 0},
	}

	totals := Aggregate(rows)

	if totals.Wins != 2 {
		t.Fatalf("wins = %d, want 2", totals.Wins)
	}
	if totals.Draws != 1 {
		t.Fatalf("draws = %d, want 1", totals.Draws)
	}
	if totals.Loses != 1 {
		t.Fatalf("loses = %d, want 1", totals.Loses)
	}
	if totals.Goals != 6 {
		t.Fatalf("goals = %d, want 6", totals.Goals)
	}
	if totals.MatchesPlayed != 4 {
		t.Fatalf("matches played = %d, want 4", totals.MatchesPlayed)
	}
	if totals.Passes != 0 {
		t.Fatalf("passes = %d, want 0 (filled by caller)", totals.Passes)
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals for no rows, got %+v", totals)
	}
}

func TestValidateRejectsUnknownOutcome(t *testing.T) {
	row := TeamStats{
		ID:           "ts1",
		TeamID:       "t1",
		SeasonID:     "s1",
		MatchID:      "m1",
		MatchOutcome: "victory",
	}
	if err := row.Validate(); err == nil {
		t.Fatal("expected validation error for unknown outcome")
	}
}

func TestValidatePossessionRange(t *testing.T) {
	bad := 101.0
	row := TeamStats{
		ID:           "ts1",
		TeamID:       "t1",
		SeasonID:     "s1",
		MatchID:      "m1",
		MatchOutcome: OutcomeWin,
		Possession:   &bad,
	}
	if err := row.Validate(); err == nil {
		t.Fatal("expected validation error for possession above 100")
	}
}
