package postgres

import (
	"database/sql"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/team"
)

type teamTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	LogoURL     string         `db:"logo_url"`
	ManagerName string         `db:"manager_name"`
	LeagueID    sql.NullString `db:"league_id"`
	CreatedBy   sql.NullString `db:"created_by"`
	UpdatedBy   sql.NullString `db:"updated_by"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

const teamColumns = `id, name, logo_url, manager_name, league_id, created_by, updated_by, created_at, updated_at`

func (m teamTableModel) toDomain() team.Team {
	t := team.Team{
		ID:          m.ID,
		Name:        m.Name,
		LogoURL:     m.LogoURL,
		ManagerName: m.ManagerName,
		CreatedBy:   m.CreatedBy.String,
		UpdatedBy:   m.UpdatedBy.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.LeagueID.Valid {
		leagueID := m.LeagueID.String
		t.LeagueID = &leagueID
	}
	return t
}

func teamNamedArgs(t team.Team) map[string]any {
	args := map[string]any{
		"id":           t.ID,
		"name":         t.Name,
		"logo_url":     t.LogoURL,
		"manager_name": t.ManagerName,
		"league_id":    nil,
		"created_by":   nullableString(t.CreatedBy),
		"updated_by":   nullableString(t.UpdatedBy),
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
	if t.LeagueID != nil {
		args["league_id"] = *t.LeagueID
	}
	return args
}
