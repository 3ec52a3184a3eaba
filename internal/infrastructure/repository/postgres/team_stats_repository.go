package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	"github.com/statsrecord/stats-api/internal/platform/querybuilder"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

const teamStatsInsertQuery = `
INSERT INTO team_stats (id, team_id, season_id, match_id, match_outcome, match_goals, goals_against, goal_times, possession_pct,
    created_by, updated_by, created_at, updated_at)
VALUES (:id, :team_id, :season_id, :match_id, :match_outcome, :match_goals, :goals_against, :goal_times, :possession_pct,
    :created_by, :updated_by, :created_at, :updated_at)`

const teamStatsUpdateQuery = `
UPDATE team_stats SET
    match_outcome = :match_outcome,
    match_goals = :match_goals,
    goals_against = :goals_against,
    goal_times = :goal_times,
    possession_pct = :possession_pct,
    updated_by = :updated_by,
    updated_at = :updated_at
WHERE id = :id`

// Save writes the match row, refreshes the triggering row's roster snapshot,
// and recomputes the season totals of every (team, season) sibling, all in
// one transaction. A recompute failure rolls the row write back.
func (r *TeamStatsRepository) Save(ctx context.Context, row teamstats.TeamStats) (teamstats.TeamStats, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("begin save team stats: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID string
	err = tx.GetContext(ctx, &existingID, `SELECT id FROM team_stats WHERE team_id = $1 AND match_id = $2 FOR UPDATE`, row.TeamID, row.MatchID)
	switch {
	case err == nil && existingID != row.ID:
		return teamstats.TeamStats{}, teamstats.ErrDuplicate
	case err != nil && !isNotFound(err):
		return teamstats.TeamStats{}, fmt.Errorf("check team stats row: %w", err)
	}

	query := teamStatsInsertQuery
	if existingID == row.ID && existingID != "" {
		query = teamStatsUpdateQuery
	}
	boundSQL, args, err := sqlx.Named(query, teamStatsNamedArgs(row))
	if err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("bind save team stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(boundSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return teamstats.TeamStats{}, teamstats.ErrDuplicate
		}
		return teamstats.TeamStats{}, fmt.Errorf("save team stats: %w", err)
	}

	// The snapshot is taken only on writes to this row; sibling rows keep
	// the roster they were written with.
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_stat_players WHERE team_stat_id = $1`, row.ID); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("clear roster snapshot: %w", err)
	}
	const snapshotQuery = `
INSERT INTO team_stat_players (team_stat_id, user_id)
SELECT $1, id FROM users WHERE team_id = $2`
	if _, err := tx.ExecContext(ctx, snapshotQuery, row.ID, row.TeamID); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("insert roster snapshot: %w", err)
	}

	if err := r.recomputeTx(ctx, tx, teamstats.TeamSeason{TeamID: row.TeamID, SeasonID: row.SeasonID}); err != nil {
		return teamstats.TeamStats{}, err
	}

	saved, err := r.getTx(ctx, tx, row.ID)
	if err != nil {
		return teamstats.TeamStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("commit save team stats: %w", err)
	}
	return saved, nil
}

func (r *TeamStatsRepository) GetByID(ctx context.Context, id string) (teamstats.TeamStats, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_stats WHERE id = $1`, teamStatsColumns)

	var row teamStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return teamstats.TeamStats{}, false, nil
		}
		return teamstats.TeamStats{}, false, fmt.Errorf("get team stats: %w", err)
	}

	out := row.toDomain()
	playerIDs, err := r.loadSnapshot(ctx, id)
	if err != nil {
		return teamstats.TeamStats{}, false, err
	}
	out.PlayerIDs = playerIDs
	return out, true, nil
}

func (r *TeamStatsRepository) List(ctx context.Context, filter teamstats.Filter) ([]teamstats.TeamStats, error) {
	builder := querybuilder.Select(teamStatsColumns).From("team_stats").OrderBy("created_at ASC")
	if filter.TeamID != "" {
		builder.Where(querybuilder.Eq("team_id", filter.TeamID))
	}
	if filter.SeasonID != "" {
		builder.Where(querybuilder.Eq("season_id", filter.SeasonID))
	}
	if filter.MatchID != "" {
		builder.Where(querybuilder.Eq("match_id", filter.MatchID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team stats query: %w", err)
	}

	var rows []teamStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}

	out := make([]teamstats.TeamStats, 0, len(rows))
	for _, row := range rows {
		record := row.toDomain()
		playerIDs, err := r.loadSnapshot(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		record.PlayerIDs = playerIDs
		out = append(out, record)
	}
	return out, nil
}

// Delete removes the row and its snapshot, then refreshes the totals of the
// remaining (team, season) siblings in the same transaction.
func (r *TeamStatsRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete team stats: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var scope teamstats.TeamSeason
	err = tx.QueryRowxContext(ctx, `SELECT team_id, season_id FROM team_stats WHERE id = $1 FOR UPDATE`, id).
		Scan(&scope.TeamID, &scope.SeasonID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("load team stats scope: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM team_stat_players WHERE team_stat_id = $1`, id); err != nil {
		return fmt.Errorf("delete roster snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_stats WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete team stats: %w", err)
	}

	if err := r.recomputeTx(ctx, tx, scope); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete team stats: %w", err)
	}
	return nil
}

func (r *TeamStatsRepository) Recompute(ctx context.Context, scope teamstats.TeamSeason) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin recompute team stats: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.recomputeTx(ctx, tx, scope); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recompute team stats: %w", err)
	}
	return nil
}

func (r *TeamStatsRepository) ListTeamSeasons(ctx context.Context) ([]teamstats.TeamSeason, error) {
	const query = `SELECT DISTINCT team_id, season_id FROM team_stats ORDER BY team_id, season_id`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
	defer rows.Close()

	var out []teamstats.TeamSeason
	for rows.Next() {
		var scope teamstats.TeamSeason
		if err := rows.Scan(&scope.TeamID, &scope.SeasonID); err != nil {
			return nil, fmt.Errorf("scan team season: %w", err)
		}
		out = append(out, scope)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team seasons: %w", err)
	}
	return out, nil
}

// recomputeTx locks every row of the scope, rederives the season totals, and
// writes them back onto each sibling. Zero rows is a no-op: there is nothing
// left to carry the totals.
func (r *TeamStatsRepository) recomputeTx(ctx context.Context, tx *sqlx.Tx, scope teamstats.TeamSeason) error {
	query := fmt.Sprintf(`SELECT %s FROM team_stats WHERE team_id = $1 AND season_id = $2 ORDER BY created_at ASC FOR UPDATE`, teamStatsColumns)

	var models []teamStatsTableModel
	if err := tx.SelectContext(ctx, &models, query, scope.TeamID, scope.SeasonID); err != nil {
		return fmt.Errorf("load team season rows: %w", err)
	}
	if len(models) == 0 {
		return nil
	}

	rows := make([]teamstats.TeamStats, 0, len(models))
	for _, m := range models {
		rows = append(rows, m.toDomain())
	}
	totals := teamstats.Aggregate(rows)

	const passesQuery = `
SELECT COALESCE(SUM(one_touch_pass_success), 0)
FROM player_stats
WHERE team_id = $1 AND season_id = $2`
	if err := tx.GetContext(ctx, &totals.Passes, passesQuery, scope.TeamID, scope.SeasonID); err != nil {
		return fmt.Errorf("sum team season passes: %w", err)
	}

	const totalsQuery = `
UPDATE team_stats SET
    total_number_of_goals = $1,
    total_number_of_wins = $2,
    total_number_of_loses = $3,
    total_number_of_draws = $4,
    total_number_of_matches_played = $5,
    total_number_of_passes = $6
WHERE team_id = $7 AND season_id = $8`
	if _, err := tx.ExecContext(ctx, totalsQuery,
		totals.Goals, totals.Wins, totals.Loses, totals.Draws, totals.MatchesPlayed, totals.Passes,
		scope.TeamID, scope.SeasonID); err != nil {
		return fmt.Errorf("update team season totals: %w", err)
	}
	return nil
}

func (r *TeamStatsRepository) getTx(ctx context.Context, tx *sqlx.Tx, id string) (teamstats.TeamStats, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_stats WHERE id = $1`, teamStatsColumns)

	var row teamStatsTableModel
	if err := tx.GetContext(ctx, &row, query, id); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("reload team stats: %w", err)
	}

	out := row.toDomain()
	var playerIDs []string
	if err := tx.SelectContext(ctx, &playerIDs, `SELECT user_id FROM team_stat_players WHERE team_stat_id = $1 ORDER BY user_id`, id); err != nil {
		return teamstats.TeamStats{}, fmt.Errorf("load roster snapshot: %w", err)
	}
	out.PlayerIDs = playerIDs
	return out, nil
}

func (r *TeamStatsRepository) loadSnapshot(ctx context.Context, teamStatID string) ([]string, error) {
	var playerIDs []string
	if err := r.db.SelectContext(ctx, &playerIDs, `SELECT user_id FROM team_stat_players WHERE team_stat_id = $1 ORDER BY user_id`, teamStatID); err != nil {
		return nil, fmt.Errorf("load roster snapshot: %w", err)
	}
	return playerIDs, nil
}
