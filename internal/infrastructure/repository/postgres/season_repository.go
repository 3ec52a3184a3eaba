package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statsrecord/stats-api/internal/domain/season"
	"github.com/statsrecord/stats-api/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	const query = `
INSERT INTO seasons (id, league_id, label, start_date, end_date, is_current, created_by, updated_by, created_at, updated_at)
VALUES (:id, :league_id, :label, :start_date, :end_date, :is_current, :created_by, :updated_by, :created_at, :updated_at)`

	insertSQL, args, err := sqlx.Named(query, seasonNamedArgs(s))
	if err != nil {
		return fmt.Errorf("bind insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertSQL), args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM seasons WHERE id = $1`, seasonColumns)

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) List(ctx context.Context, filter season.Filter) ([]season.Season, error) {
	builder := querybuilder.Select(seasonColumns).From("seasons").OrderBy("start_date ASC")
	if filter.LeagueID != "" {
		builder.Where(querybuilder.Eq("league_id", filter.LeagueID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) Update(ctx context.Context, s season.Season) error {
	const query = `
UPDATE seasons SET
    label = :label,
    start_date = :start_date,
    end_date = :end_date,
    is_current = :is_current,
    updated_by = :updated_by,
    updated_at = :updated_at
WHERE id = :id`

	updateSQL, args, err := sqlx.Named(query, seasonNamedArgs(s))
	if err != nil {
		return fmt.Errorf("bind update season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(updateSQL), args...); err != nil {
		return fmt.Errorf("update season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}
