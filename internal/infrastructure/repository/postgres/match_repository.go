package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statsrecord/stats-api/internal/domain/match"
	"github.com/statsrecord/stats-api/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	const query = `
INSERT INTO matches (id, season_id, league_id, home_team_id, away_team_id, kickoff_at, venue, home_score, away_score, status, match_type, created_by, updated_by, created_at, updated_at)
VALUES (:id, :season_id, :league_id, :home_team_id, :away_team_id, :kickoff_at, :venue, :home_score, :away_score, :status, :match_type, :created_by, :updated_by, :created_at, :updated_at)`

	insertSQL, args, err := sqlx.Named(query, matchNamedArgs(m))
	if err != nil {
		return fmt.Errorf("bind insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertSQL), args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id = $1`, matchColumns)

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	builder := querybuilder.Select(matchColumns).From("matches").OrderBy("kickoff_at ASC")
	if filter.SeasonID != "" {
		builder.Where(querybuilder.Eq("season_id", filter.SeasonID))
	}
	if filter.LeagueID != "" {
		builder.Where(querybuilder.Eq("league_id", filter.LeagueID))
	}
	if filter.Status != "" {
		builder.Where(querybuilder.Eq("status", string(filter.Status)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	// Team participation spans two columns, which the builder's equality
	// conditions cannot express.
	if filter.TeamID != "" {
		query = fmt.Sprintf(
			`SELECT %s FROM matches WHERE (home_team_id = $1 OR away_team_id = $1)`, matchColumns)
		args = []any{filter.TeamID}
		argIndex := 2
		if filter.SeasonID != "" {
			query += fmt.Sprintf(" AND season_id = $%d", argIndex)
			args = append(args, filter.SeasonID)
			argIndex++
		}
		if filter.LeagueID != "" {
			query += fmt.Sprintf(" AND league_id = $%d", argIndex)
			args = append(args, filter.LeagueID)
			argIndex++
		}
		if filter.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argIndex)
			args = append(args, string(filter.Status))
		}
		query += " ORDER BY kickoff_at ASC"
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	const query = `
UPDATE matches SET
    kickoff_at = :kickoff_at,
    venue = :venue,
    home_score = :home_score,
    away_score = :away_score,
    status = :status,
    match_type = :match_type,
    updated_by = :updated_by,
    updated_at = :updated_at
WHERE id = :id`

	updateSQL, args, err := sqlx.Named(query, matchNamedArgs(m))
	if err != nil {
		return fmt.Errorf("bind update match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(updateSQL), args...); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}
