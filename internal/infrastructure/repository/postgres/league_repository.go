package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statsrecord/stats-api/internal/domain/league"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	const query = `
INSERT INTO leagues (id, name, country, founded_year, logo_url, created_by, updated_by, created_at, updated_at)
VALUES (:id, :name, :country, :founded_year, :logo_url, :created_by, :updated_by, :created_at, :updated_at)`

	insertSQL, args, err := sqlx.Named(query, leagueNamedArgs(l))
	if err != nil {
		return fmt.Errorf("bind insert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return league.ErrNameTaken
		}
		return fmt.Errorf("insert league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id string) (league.League, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM leagues WHERE id = $1`, leagueColumns)

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query := fmt.Sprintf(`SELECT %s FROM leagues ORDER BY name ASC`, leagueColumns)

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	const query = `
UPDATE leagues SET
    name = :name,
    country = :country,
    founded_year = :founded_year,
    logo_url = :logo_url,
    updated_by = :updated_by,
    updated_at = :updated_at
WHERE id = :id`

	updateSQL, args, err := sqlx.Named(query, leagueNamedArgs(l))
	if err != nil {
		return fmt.Errorf("bind update league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(updateSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return league.ErrNameTaken
		}
		return fmt.Errorf("update league: %w", err)
	}
	return nil
}

// Delete relies on the database's restrictive foreign keys: a league that
// still owns seasons or teams refuses to go.
func (r *LeagueRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return league.ErrInUse
		}
		return fmt.Errorf("delete league: %w", err)
	}
	return nil
}
