package match

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusLive:      {},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Terminal reports whether a match can no longer change status or score.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Type string

const (
	TypeLeague       Type = "league"
	TypeKnockout     Type = "knockout"
	TypeFriendly     Type = "friendly"
	TypeGroupStage   Type = "group_stage"
	TypeQuarterFinal Type = "quarter_final"
	TypeSemiFinal    Type = "semi_final"
	TypeFinal        Type = "final"
)

var AllTypes = map[Type]struct{}{
	TypeLeague:       {},
	TypeKnockout:     {},
	TypeFriendly:     {},
	TypeGroupStage:   {},
	TypeQuarterFinal: {},
	TypeSemiFinal:    {},
	TypeFinal:        {},
}

// Match is a single fixture between two teams in a season.
type Match struct {
	ID         string
	SeasonID   string
	LeagueID   string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Venue      string
	HomeScore  *int
	AwayScore  *int
	Status     Status
	Type       Type

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("match league id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match home and away teams are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match teams must differ")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("match kickoff time is required")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("unknown match status: %s", m.Status)
	}
	if _, ok := AllTypes[m.Type]; !ok {
		return fmt.Errorf("unknown match type: %s", m.Type)
	}
	if m.HomeScore != nil && *m.HomeScore < 0 {
		return fmt.Errorf("match home score must not be negative")
	}
	if m.AwayScore != nil && *m.AwayScore < 0 {
		return fmt.Errorf("match away score must not be negative")
	}
	if (m.HomeScore == nil) != (m.AwayScore == nil) {
		return fmt.Errorf("match scores must be set together")
	}

	return nil
}
