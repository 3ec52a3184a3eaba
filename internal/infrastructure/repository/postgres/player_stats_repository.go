package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statsrecord/stats-api/internal/domain/playerstats"
	"github.com/statsrecord/stats-api/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

const playerStatsInsertQuery = `
INSERT INTO player_stats (id, user_id, match_id, season_id, team_id, opposing_team_name, match_half_played, start_match, sub_in_at_minute, sub_out_at_minute, goal_times,
    control_success, control_fail, duel_success, duel_fail, dribble_success, dribble_fail, cross_success, cross_fail, shoot_success, shoot_fail,
    interception_success, interception_fail, one_touch_pass_success, one_touch_pass_fail, call_of_ball_success, call_of_ball_fail, tackle_success, tackle_fail,
    clearance_success, clearance_fail, corner_success, corner_fail, free_kick_success, free_kick_fail, penalty_kick_success, penalty_kick_fail,
    throw_in_success, throw_in_fail, fouled_on, foul_commited, yellow_card, red_card, goal_save, goal_conceded, penalty_save, penalty_conceded,
    offside, goal_scored, assists, created_by, updated_by, created_at, updated_at)
VALUES (:id, :user_id, :match_id, :season_id, :team_id, :opposing_team_name, :match_half_played, :start_match, :sub_in_at_minute, :sub_out_at_minute, :goal_times,
    :control_success, :control_fail, :duel_success, :duel_fail, :dribble_success, :dribble_fail, :cross_success, :cross_fail, :shoot_success, :shoot_fail,
    :interception_success, :interception_fail, :one_touch_pass_success, :one_touch_pass_fail, :call_of_ball_success, :call_of_ball_fail, :tackle_success, :tackle_fail,
    :clearance_success, :clearance_fail, :corner_success, :corner_fail, :free_kick_success, :free_kick_fail, :penalty_kick_success, :penalty_kick_fail,
    :throw_in_success, :throw_in_fail, :fouled_on, :foul_commited, :yellow_card, :red_card, :goal_save, :goal_conceded, :penalty_save, :penalty_conceded,
    :offside, :goal_scored, :assists, :created_by, :updated_by, :created_at, :updated_at)`

const playerStatsUpdateQuery = `
UPDATE player_stats SET
    opposing_team_name = :opposing_team_name,
    match_half_played = :match_half_played,
    start_match = :start_match,
    sub_in_at_minute = :sub_in_at_minute,
    sub_out_at_minute = :sub_out_at_minute,
    goal_times = :goal_times,
    control_success = :control_success, control_fail = :control_fail,
    duel_success = :duel_success, duel_fail = :duel_fail,
    dribble_success = :dribble_success, dribble_fail = :dribble_fail,
    cross_success = :cross_success, cross_fail = :cross_fail,
    shoot_success = :shoot_success, shoot_fail = :shoot_fail,
    interception_success = :interception_success, interception_fail = :interception_fail,
    one_touch_pass_success = :one_touch_pass_success, one_touch_pass_fail = :one_touch_pass_fail,
    call_of_ball_success = :call_of_ball_success, call_of_ball_fail = :call_of_ball_fail,
    tackle_success = :tackle_success, tackle_fail = :tackle_fail,
    clearance_success = :clearance_success, clearance_fail = :clearance_fail,
    corner_success = :corner_success, corner_fail = :corner_fail,
    free_kick_success = :free_kick_success, free_kick_fail = :free_kick_fail,
    penalty_kick_success = :penalty_kick_success, penalty_kick_fail = :penalty_kick_fail,
    throw_in_success = :throw_in_success, throw_in_fail = :throw_in_fail,
    fouled_on = :fouled_on, foul_commited = :foul_commited,
    yellow_card = :yellow_card, red_card = :red_card,
    goal_save = :goal_save, goal_conceded = :goal_conceded,
    penalty_save = :penalty_save, penalty_conceded = :penalty_conceded,
    offside = :offside, goal_scored = :goal_scored, assists = :assists,
    updated_by = :updated_by,
    updated_at = :updated_at
WHERE id = :id`

func (r *PlayerStatsRepository) Create(ctx context.Context, p playerstats.PlayerStats) error {
	insertSQL, args, err := sqlx.Named(playerStatsInsertQuery, playerStatsNamedArgs(p))
	if err != nil {
		return fmt.Errorf("bind insert player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return playerstats.ErrDuplicate
		}
		return fmt.Errorf("insert player stats: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) GetByID(ctx context.Context, id string) (playerstats.PlayerStats, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM player_stats WHERE id = $1`, playerStatsColumns)

	var row playerStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return playerstats.PlayerStats{}, false, nil
		}
		return playerstats.PlayerStats{}, false, fmt.Errorf("get player stats: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerStatsRepository) List(ctx context.Context, filter playerstats.Filter) ([]playerstats.PlayerStats, error) {
	builder := querybuilder.Select(playerStatsColumns).From("player_stats").OrderBy("created_at ASC")
	if filter.UserID != "" {
		builder.Where(querybuilder.Eq("user_id", filter.UserID))
	}
	if filter.MatchID != "" {
		builder.Where(querybuilder.Eq("match_id", filter.MatchID))
	}
	if filter.SeasonID != "" {
		builder.Where(querybuilder.Eq("season_id", filter.SeasonID))
	}
	if filter.TeamID != "" {
		builder.Where(querybuilder.Eq("team_id", filter.TeamID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player stats query: %w", err)
	}

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}

	out := make([]playerstats.PlayerStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerStatsRepository) Update(ctx context.Context, p playerstats.PlayerStats) error {
	updateSQL, args, err := sqlx.Named(playerStatsUpdateQuery, playerStatsNamedArgs(p))
	if err != nil {
		return fmt.Errorf("bind update player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(updateSQL), args...); err != nil {
		return fmt.Errorf("update player stats: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM player_stats WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete player stats: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) SumOneTouchPassSuccess(ctx context.Context, teamID, seasonID string) (int, error) {
	const query = `
SELECT COALESCE(SUM(one_touch_pass_success), 0)
FROM player_stats
WHERE team_id = $1 AND season_id = $2`

	var total int
	if err := r.db.GetContext(ctx, &total, query, teamID, seasonID); err != nil {
		return 0, fmt.Errorf("sum one touch passes: %w", err)
	}
	return total, nil
}
