package teamstats

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicate is reported by repositories when a team already has a stats
// row for the match.
var ErrDuplicate = errors.New("team stats already recorded for this match")

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeDraw Outcome = "draw"
	OutcomeLoss Outcome = "loss"
)

var AllOutcomes = map[Outcome]struct{}{
	OutcomeWin:  {},
	OutcomeDraw: {},
	OutcomeLoss: {},
}

// Totals are the season-to-date aggregates derived from all rows of one
// (team, season) pair. They are stored denormalized on every row.
type Totals struct {
	Goals         int
	Wins          int
	Loses         int
	Draws         int
	MatchesPlayed int
	Passes        int
}

// TeamStats is one team's record for one match, plus the derived season
// totals and the roster snapshot taken when the row was written.
type TeamStats struct {
	ID           string
	TeamID       string
	SeasonID     string
	MatchID      string
	MatchOutcome Outcome
	MatchGoals   int
	GoalsAgainst int
	GoalTimes    []int
	Possession   *float64

	Totals

	// PlayerIDs is the roster snapshot: users on the team when this row
	// was last written. It is frozen, not recomputed on later writes.
	PlayerIDs []string

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t TeamStats) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team stats id is required")
	}
	if t.TeamID == "" {
		return fmt.Errorf("team stats team id is required")
	}
	if t.SeasonID == "" {
		return fmt.Errorf("team stats season id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("team stats match id is required")
	}
	if _, ok := AllOutcomes[t.MatchOutcome]; !ok {
		return fmt.Errorf("unknown match outcome: %s", t.MatchOutcome)
	}
	if t.MatchGoals < 0 || t.GoalsAgainst < 0 {
		return fmt.Errorf("goal counts must not be negative")
	}
	if t.Possession != nil && (*t.Possession < 0 || *t.Possession > 100) {
		return fmt.Errorf("possession must be between 0 and 100")
	}
	for _, minute := range t.GoalTimes {
		if minute < 0 {
			return fmt.Errorf("goal time must not be negative")
		}
	}

	return nil
}

// Aggregate recomputes season totals from every row of one (team, season)
// pair. No rows yields zero totals. Passes are summed from player records,
// not from these rows, so the caller fills Totals.Passes separately.
func Aggregate(rows []TeamStats) Totals {
	var totals Totals
	for _, row := range rows {
		switch row.MatchOutcome {
		case OutcomeWin:
			totals.Wins++
		case OutcomeDraw:
			totals.Draws++
		case OutcomeLoss:
			totals.Loses++
		}
		totals.Goals += row.MatchGoals
		totals.MatchesPlayed++
	}

	return totals
}
