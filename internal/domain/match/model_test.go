package match

import (
	"testing"
	"time"
)

func validMatch() Match {
	return Match{
		ID:         "m1",
		SeasonID:   "s1",
		LeagueID:   "l1",
		HomeTeamID: "t1",
		AwayTeamID: "t2",
		KickoffAt:  time.Date(2025, time.August, 16, 15, 0, 0, 0, time.UTC),
		Status:     StatusScheduled,
		Type:       TypeLeague,
	}
}

func TestValidate(t *testing.T) {
	if err := validMatch().Validate(); err != nil {
		t.Fatalf("expected valid match, got %v", err)
	}
}

func TestValidateRejectsSameTeams(t *testing.T) {
	m := validMatch()
	m.AwayTeamID = m.HomeTeamID
	if err := m.Validate(); err == nil {
		t.Fatal("expected validation error for identical teams")
	}
}

func TestValidateRejectsHalfSetScore(t *testing.T) {
	m := validMatch()
	score := 2
	m.HomeScore = &score
	if err := m.Validate(); err == nil {
		t.Fatal("expected validation error when only one score is set")
	}
}

func TestStatusTerminal(t *testing.T) {
	cases := map[Status]bool{
		StatusScheduled: false,
		StatusLive:      false,
		StatusCompleted: true,
		StatusCancelled: true,
	}
	for status, want := range cases {
		if got := status.Terminal(); got != want {
			t.Fatalf("Terminal(%s) = %v, want %v", status, got, want)
		}
	}
}
