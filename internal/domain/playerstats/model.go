package playerstats

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicate is reported by repositories when a player already has a
// stats row for the match.
var ErrDuplicate = errors.New("player stats already recorded for this match")

type Half string

const (
	HalfFirst  Half = "first"
	HalfSecond Half = "second"
	HalfBoth   Half = "both"
)

var AllHalves = map[Half]struct{}{
	HalfFirst:  {},
	HalfSecond: {},
	HalfBoth:   {},
}

// Counters holds the per-match event tallies for one player. Paired fields
// record successful and failed attempts separately.
type Counters struct {
	ControlSuccess      int
	ControlFail         int
	DuelSuccess         int
	DuelFail            int
	DribbleSuccess      int
	DribbleFail         int
	CrossSuccess        int
	CrossFail           int
	ShootSuccess        int
	ShootFail           int
	InterceptionSuccess int
	InterceptionFail    int
	OneTouchPassSuccess int
	OneTouchPassFail    int
	CallOfBallSuccess   int
	CallOfBallFail      int
	TackleSuccess       int
	TackleFail          int
	ClearanceSuccess    int
	ClearanceFail       int
	CornerSuccess       int
	CornerFail          int
	FreeKickSuccess     int
	FreeKickFail        int
	PenaltyKickSuccess  int
	PenaltyKickFail     int
	ThrowInSuccess      int
	ThrowInFail         int

	FouledOn         int
	FoulCommited     int
	YellowCard       int
	RedCard          int
	GoalSave         int
	GoalConceded     int
	PenaltySave      int
	PenaltyConceded  int
	Offside          int
	GoalScored       int
	Assists          int
}

// PlayerStats is one player's record for one match. The user, match, season
// and team references are fixed at creation; counters and timing metadata
// are what later updates touch.
type PlayerStats struct {
	ID               string
	UserID           string
	MatchID          string
	SeasonID         string
	TeamID           string
	OpposingTeamName string

	MatchHalfPlayed Half
	StartMatch      bool
	SubInAtMinute   *int
	SubOutAtMinute  *int
	GoalTimes       []int

	Counters

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p PlayerStats) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player stats id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("player stats user id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("player stats match id is required")
	}
	if p.SeasonID == "" {
		return fmt.Errorf("player stats season id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player stats team id is required")
	}
	if p.MatchHalfPlayed != "" {
		if _, ok := AllHalves[p.MatchHalfPlayed]; !ok {
			return fmt.Errorf("unknown match half: %s", p.MatchHalfPlayed)
		}
	}
	if p.SubInAtMinute != nil && *p.SubInAtMinute < 0 {
		return fmt.Errorf("sub-in minute must not be negative")
	}
	if p.SubOutAtMinute != nil && *p.SubOutAtMinute < 0 {
		return fmt.Errorf("sub-out minute must not be negative")
	}
	for _, minute := range p.GoalTimes {
		if minute < 0 {
			return fmt.Errorf("goal time must not be negative")
		}
	}

	return nil
}
