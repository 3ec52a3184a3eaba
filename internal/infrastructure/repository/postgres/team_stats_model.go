package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/statsrecord/stats-api/internal/domain/teamstats"
)

type teamStatsTableModel struct {
	ID           string          `db:"id"`
	TeamID       string          `db:"team_id"`
	SeasonID     string          `db:"season_id"`
	MatchID      string          `db:"match_id"`
	MatchOutcome string          `db:"match_outcome"`
	MatchGoals   int             `db:"match_goals"`
	GoalsAgainst int             `db:"goals_against"`
	GoalTimes    pq.Int64Array   `db:"goal_times"`
	Possession   sql.NullFloat64 `db:"possession_pct"`

	TotalGoals         int `db:"total_number_of_goals"`
	TotalWins          int `db:"total_number_of_wins"`
	TotalLoses         int `db:"total_number_of_loses"`
	TotalDraws         int `db:"total_number_of_draws"`
	TotalMatchesPlayed int `db:"total_number_of_matches_played"`
	TotalPasses        int `db:"total_number_of_passes"`

	CreatedBy sql.NullString `db:"created_by"`
	UpdatedBy sql.NullString `db:"updated_by"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

const teamStatsColumns = `id, team_id, season_id, match_id, match_outcome, match_goals, goals_against, goal_times, possession_pct,
total_number_of_goals, total_number_of_wins, total_number_of_loses, total_number_of_draws, total_number_of_matches_played, total_number_of_passes,
created_by, updated_by, created_at, updated_at`

func (m teamStatsTableModel) toDomain() teamstats.TeamStats {
	out := teamstats.TeamStats{
		ID:           m.ID,
		TeamID:       m.TeamID,
		SeasonID:     m.SeasonID,
		MatchID:      m.MatchID,
		MatchOutcome: teamstats.Outcome(m.MatchOutcome),
		MatchGoals:   m.MatchGoals,
		GoalsAgainst: m.GoalsAgainst,
		GoalTimes:    int64sToInts(m.GoalTimes),
		Totals: teamstats.Totals{
			Goals:         m.TotalGoals,
			Wins:          m.TotalWins,
			Loses:         m.TotalLoses,
			Draws:         m.TotalDraws,
			MatchesPlayed: m.TotalMatchesPlayed,
			Passes:        m.TotalPasses,
		},
		CreatedBy: m.CreatedBy.String,
		UpdatedBy: m.UpdatedBy.String,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Possession.Valid {
		possession := m.Possession.Float64
		out.Possession = &possession
	}
	return out
}

func teamStatsNamedArgs(t teamstats.TeamStats) map[string]any {
	args := map[string]any{
		"id":             t.ID,
		"team_id":        t.TeamID,
		"season_id":      t.SeasonID,
		"match_id":       t.MatchID,
		"match_outcome":  string(t.MatchOutcome),
		"match_goals":    t.MatchGoals,
		"goals_against":  t.GoalsAgainst,
		"goal_times":     intsToInt64Array(t.GoalTimes),
		"possession_pct": nil,
		"created_by":     nullableString(t.CreatedBy),
		"updated_by":     nullableString(t.UpdatedBy),
		"created_at":     t.CreatedAt,
		"updated_at":     t.UpdatedAt,
	}
	if t.Possession != nil {
		args["possession_pct"] = *t.Possession
	}
	return args
}
