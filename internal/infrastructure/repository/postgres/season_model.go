package postgres

import (
	"database/sql"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/season"
)

type seasonTableModel struct {
	ID        string         `db:"id"`
	LeagueID  string         `db:"league_id"`
	Label     string         `db:"label"`
	StartDate time.Time      `db:"start_date"`
	EndDate   time.Time      `db:"end_date"`
	IsCurrent bool           `db:"is_current"`
	CreatedBy sql.NullString `db:"created_by"`
	UpdatedBy sql.NullString `db:"updated_by"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

const seasonColumns = `id, league_id, label, start_date, end_date, is_current, created_by, updated_by, created_at, updated_at`

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:        m.ID,
		LeagueID:  m.LeagueID,
		Label:     m.Label,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		IsCurrent: m.IsCurrent,
		CreatedBy: m.CreatedBy.String,
		UpdatedBy: m.UpdatedBy.String,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func seasonNamedArgs(s season.Season) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"league_id":  s.LeagueID,
		"label":      s.Label,
		"start_date": s.StartDate,
		"end_date":   s.EndDate,
		"is_current": s.IsCurrent,
		"created_by": nullableString(s.CreatedBy),
		"updated_by": nullableString(s.UpdatedBy),
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
}
