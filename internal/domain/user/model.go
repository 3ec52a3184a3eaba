package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmailTaken is reported by repositories when a create or update would
// reuse another account's email.
var ErrEmailTaken = errors.New("email already registered")

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// User is an account in the system. Players are regular users with the
// player flag set and the player profile fields filled in.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsPlayer     bool
	IsAdmin      bool
	IsSuperuser  bool
	Subscribed   bool

	// Player profile, required when IsPlayer is set.
	TeamID          *string
	HeightCM        *int
	DateOfBirth     *time.Time
	PrimaryPosition *Position

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.FirstName) == "" {
		return fmt.Errorf("user first name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("user password hash is required")
	}
	if u.PrimaryPosition != nil {
		if _, ok := AllPositions[*u.PrimaryPosition]; !ok {
			return fmt.Errorf("unknown player position: %s", *u.PrimaryPosition)
		}
	}
	if u.IsPlayer {
		if u.TeamID == nil || *u.TeamID == "" {
			return fmt.Errorf("player accounts require a team")
		}
		if u.HeightCM == nil || *u.HeightCM <= 0 {
			return fmt.Errorf("player accounts require a height")
		}
		if u.DateOfBirth == nil || u.DateOfBirth.IsZero() {
			return fmt.Errorf("player accounts require a date of birth")
		}
	}

	return nil
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
