package user

import (
	"testing"
	"time"
)

func validUser() User {
	return User{
		ID:           "u1",
		FirstName:    "Ada",
		LastName:     "Okafor",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
	}
}

func TestValidate(t *testing.T) {
	if err := validUser().Validate(); err != nil {
		t.Fatalf("expected valid user, got %v", err)
	}
}

func TestValidatePlayerProfileRequired(t *testing.T) {
	teamID := "t1"
	height := 183
	dob := time.Date(1999, time.June, 12, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(*User)
	}{
		{"missing team", func(u *User) { u.TeamID = nil }},
		{"empty team", func(u *User) { empty := ""; u.TeamID = &empty }},
		{"missing height", func(u *User) { u.HeightCM = nil }},
		{"zero height", func(u *User) { zero := 0; u.HeightCM = &zero }},
		{"missing date of birth", func(u *User) { u.DateOfBirth = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			u.IsPlayer = true
			u.TeamID = &teamID
			u.HeightCM = &height
			u.DateOfBirth = &dob
			tc.mutate(&u)

			if err := u.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidatePlayerComplete(t *testing.T) {
	teamID := "t1"
	height := 183
	dob := time.Date(1999, time.June, 12, 0, 0, 0, 0, time.UTC)
	pos := PositionMidfielder

	u := validUser()
	u.IsPlayer = true
	u.TeamID = &teamID
	u.HeightCM = &height
	u.DateOfBirth = &dob
	u.PrimaryPosition = &pos

	if err := u.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}
}

func TestValidateRejectsUnknownPosition(t *testing.T) {
	pos := Position("STRIKER")
	u := validUser()
	u.PrimaryPosition = &pos

	if err := u.Validate(); err == nil {
		t.Fatal("expected validation error for unknown position")
	}
}
