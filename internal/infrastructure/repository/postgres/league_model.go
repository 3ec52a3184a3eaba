package postgres

import (
	"database/sql"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/league"
)

type leagueTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Country     string         `db:"country"`
	FoundedYear int            `db:"founded_year"`
	LogoURL     string         `db:"logo_url"`
	CreatedBy   sql.NullString `db:"created_by"`
	UpdatedBy   sql.NullString `db:"updated_by"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

const leagueColumns = `id, name, country, founded_year, logo_url, created_by, updated_by, created_at, updated_at`

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          m.ID,
		Name:        m.Name,
		Country:     m.Country,
		FoundedYear: m.FoundedYear,
		LogoURL:     m.LogoURL,
		CreatedBy:   m.CreatedBy.String,
		UpdatedBy:   m.UpdatedBy.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func leagueNamedArgs(l league.League) map[string]any {
	return map[string]any{
		"id":           l.ID,
		"name":         l.Name,
		"country":      l.Country,
		"founded_year": l.FoundedYear,
		"logo_url":     l.LogoURL,
		"created_by":   nullableString(l.CreatedBy),
		"updated_by":   nullableString(l.UpdatedBy),
		"created_at":   l.CreatedAt,
		"updated_at":   l.UpdatedAt,
	}
}
