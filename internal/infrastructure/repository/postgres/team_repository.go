package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statsrecord/stats-api/internal/domain/team"
	"github.com/statsrecord/stats-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	const query = `
INSERT INTO teams (id, name, logo_url, manager_name, league_id, created_by, updated_by, created_at, updated_at)
VALUES (:id, :name, :logo_url, :manager_name, :league_id, :created_by, :updated_by, :created_at, :updated_at)`

	insertSQL, args, err := sqlx.Named(query, teamNamedArgs(t))
	if err != nil {
		return fmt.Errorf("bind insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return team.ErrNameTaken
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE id = $1`, teamColumns)

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	builder := querybuilder.Select(teamColumns).From("teams").OrderBy("name ASC")
	if filter.LeagueID != "" {
		builder.Where(querybuilder.Eq("league_id", filter.LeagueID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	const query = `
UPDATE teams SET
    name = :name,
    logo_url = :logo_url,
    manager_name = :manager_name,
    league_id = :league_id,
    updated_by = :updated_by,
    updated_at = :updated_at
WHERE id = :id`

	updateSQL, args, err := sqlx.Named(query, teamNamedArgs(t))
	if err != nil {
		return fmt.Errorf("bind update team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(updateSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return team.ErrNameTaken
		}
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}
