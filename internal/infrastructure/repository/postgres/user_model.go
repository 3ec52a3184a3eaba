package postgres

import (
	"database/sql"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/user"
)

type userTableModel struct {
	ID              string         `db:"id"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	Email           string         `db:"email"`
	PasswordHash    string         `db:"password_hash"`
	IsPlayer        bool           `db:"is_player"`
	IsAdmin         bool           `db:"is_admin"`
	IsSuperuser     bool           `db:"is_superuser"`
	Subscribed      bool           `db:"subscribed"`
	TeamID          sql.NullString `db:"team_id"`
	HeightCM        sql.NullInt64  `db:"height_cm"`
	DateOfBirth     sql.NullTime   `db:"date_of_birth"`
	PrimaryPosition sql.NullString `db:"primary_position"`
	CreatedBy       sql.NullString `db:"created_by"`
	UpdatedBy       sql.NullString `db:"updated_by"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

const userColumns = `id, first_name, last_name, email, password_hash, is_player, is_admin, is_superuser, subscribed, team_id, height_cm, date_of_birth, primary_position, created_by, updated_by, created_at, updated_at`

func (m userTableModel) toDomain() user.User {
	u := user.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsPlayer:     m.IsPlayer,
		IsAdmin:      m.IsAdmin,
		IsSuperuser:  m.IsSuperuser,
		Subscribed:   m.Subscribed,
		CreatedBy:    m.CreatedBy.String,
		UpdatedBy:    m.UpdatedBy.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.TeamID.Valid {
		teamID := m.TeamID.String
		u.TeamID = &teamID
	}
	if m.HeightCM.Valid {
		height := int(m.HeightCM.Int64)
		u.HeightCM = &height
	}
	if m.DateOfBirth.Valid {
		dob := m.DateOfBirth.Time
		u.DateOfBirth = &dob
	}
	if m.PrimaryPosition.Valid {
		position := user.Position(m.PrimaryPosition.String)
		u.PrimaryPosition = &position
	}
	return u
}

func userNamedArgs(u user.User) map[string]any {
	args := map[string]any{
		"id":               u.ID,
		"first_name":       u.FirstName,
		"last_name":        u.LastName,
		"email":            u.Email,
		"password_hash":    u.PasswordHash,
		"is_player":        u.IsPlayer,
		"is_admin":         u.IsAdmin,
		"is_superuser":     u.IsSuperuser,
		"subscribed":       u.Subscribed,
		"team_id":          nil,
		"height_cm":        nil,
		"date_of_birth":    nil,
		"primary_position": nil,
		"created_by":       nullableString(u.CreatedBy),
		"updated_by":       nullableString(u.UpdatedBy),
		"created_at":       u.CreatedAt,
		"updated_at":       u.UpdatedAt,
	}
	if u.TeamID != nil {
		args["team_id"] = *u.TeamID
	}
	if u.HeightCM != nil {
		args["height_cm"] = *u.HeightCM
	}
	if u.DateOfBirth != nil {
		args["date_of_birth"] = *u.DateOfBirth
	}
	if u.PrimaryPosition != nil {
		args["primary_position"] = string(*u.PrimaryPosition)
	}
	return args
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
