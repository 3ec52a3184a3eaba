package postgres

import (
	"database/sql"
	"time"

	"github.com/statsrecord/stats-api/internal/domain/match"
)

type matchTableModel struct {
	ID         string         `db:"id"`
	SeasonID   string         `db:"season_id"`
	LeagueID   string         `db:"league_id"`
	HomeTeamID string         `db:"home_team_id"`
	AwayTeamID string         `db:"away_team_id"`
	KickoffAt  time.Time      `db:"kickoff_at"`
	Venue      string         `db:"venue"`
	HomeScore  sql.NullInt64  `db:"home_score"`
	AwayScore  sql.NullInt64  `db:"away_score"`
	Status     string         `db:"status"`
	MatchType  string         `db:"match_type"`
	CreatedBy  sql.NullString `db:"created_by"`
	UpdatedBy  sql.NullString `db:"updated_by"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

const matchColumns = `id, season_id, league_id, home_team_id, away_team_id, kickoff_at, venue, home_score, away_score, status, match_type, created_by, updated_by, created_at, updated_at`

func (m matchTableModel) toDomain() match.Match {
	out := match.Match{
		ID:         m.ID,
		SeasonID:   m.SeasonID,
		LeagueID:   m.LeagueID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		KickoffAt:  m.KickoffAt,
		Venue:      m.Venue,
		Status:     match.Status(m.Status),
		Type:       match.Type(m.MatchType),
		CreatedBy:  m.CreatedBy.String,
		UpdatedBy:  m.UpdatedBy.String,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.HomeScore.Valid {
		score := int(m.HomeScore.Int64)
		out.HomeScore = &score
	}
	if m.AwayScore.Valid {
		score := int(m.AwayScore.Int64)
		out.AwayScore = &score
	}
	return out
}

func matchNamedArgs(m match.Match) map[string]any {
	args := map[string]any{
		"id":           m.ID,
		"season_id":    m.SeasonID,
		"league_id":    m.LeagueID,
		"home_team_id": m.HomeTeamID,
		"away_team_id": m.AwayTeamID,
		"kickoff_at":   m.KickoffAt,
		"venue":        m.Venue,
		"home_score":   nil,
		"away_score":   nil,
		"status":       string(m.Status),
		"match_type":   string(m.Type),
		"created_by":   nullableString(m.CreatedBy),
		"updated_by":   nullableString(m.UpdatedBy),
		"created_at":   m.CreatedAt,
		"updated_at":   m.UpdatedAt,
	}
	if m.HomeScore != nil {
		args["home_score"] = *m.HomeScore
	}
	if m.AwayScore != nil {
		args["away_score"] = *m.AwayScore
	}
	return args
}
