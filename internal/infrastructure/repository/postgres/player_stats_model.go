package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/statsrecord/stats-api/internal/domain/playerstats"
)

type playerStatsTableModel struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	MatchID          string         `db:"match_id"`
	SeasonID         string         `db:"season_id"`
	TeamID           string         `db:"team_id"`
	OpposingTeamName string         `db:"opposing_team_name"`
	MatchHalfPlayed  string         `db:"match_half_played"`
	StartMatch       bool           `db:"start_match"`
	SubInAtMinute    sql.NullInt64  `db:"sub_in_at_minute"`
	SubOutAtMinute   sql.NullInt64  `db:"sub_out_at_minute"`
	GoalTimes        pq.Int64Array  `db:"goal_times"`
	CreatedBy        sql.NullString `db:"created_by"`
	UpdatedBy        sql.NullString `db:"updated_by"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`

	ControlSuccess      int `db:"control_success"`
	ControlFail         int `db:"control_fail"`
	DuelSuccess         int `db:"duel_success"`
	DuelFail            int `db:"duel_fail"`
	DribbleSuccess      int `db:"dribble_success"`
	DribbleFail         int `db:"dribble_fail"`
	CrossSuccess        int `db:"cross_success"`
	CrossFail           int `db:"cross_fail"`
	ShootSuccess        int `db:"shoot_success"`
	ShootFail           int `db:"shoot_fail"`
	InterceptionSuccess int `db:"interception_success"`
	InterceptionFail    int `db:"interception_fail"`
	OneTouchPassSuccess int `db:"one_touch_pass_success"`
	OneTouchPassFail    int `db:"one_touch_pass_fail"`
	CallOfBallSuccess   int `db:"call_of_ball_success"`
	CallOfBallFail      int `db:"call_of_ball_fail"`
	TackleSuccess       int `db:"tackle_success"`
	TackleFail          int `db:"tackle_fail"`
	ClearanceSuccess    int `db:"clearance_success"`
	ClearanceFail       int `db:"clearance_fail"`
	CornerSuccess       int `db:"corner_success"`
	CornerFail          int `db:"corner_fail"`
	FreeKickSuccess     int `db:"free_kick_success"`
	FreeKickFail        int `db:"free_kick_fail"`
	PenaltyKickSuccess  int `db:"penalty_kick_success"`
	PenaltyKickFail     int `db:"penalty_kick_fail"`
	ThrowInSuccess      int `db:"throw_in_success"`
	ThrowInFail         int `db:"throw_in_fail"`
	FouledOn            int `db:"fouled_on"`
	FoulCommited        int `db:"foul_commited"`
	YellowCard          int `db:"yellow_card"`
	RedCard             int `db:"red_card"`
	GoalSave            int `db:"goal_save"`
	GoalConceded        int `db:"goal_conceded"`
	PenaltySave         int `db:"penalty_save"`
	PenaltyConceded     int `db:"penalty_conceded"`
	Offside             int `db:"offside"`
	GoalScored          int `db:"goal_scored"`
	Assists             int `db:"assists"`
}

const playerStatsColumns = `id, user_id, match_id, season_id, team_id, opposing_team_name, match_half_played, start_match, sub_in_at_minute, sub_out_at_minute, goal_times,
control_success, control_fail, duel_success, duel_fail, dribble_success, dribble_fail, cross_success, cross_fail, shoot_success, shoot_fail,
interception_success, interception_fail, one_touch_pass_success, one_touch_pass_fail, call_of_ball_success, call_of_ball_fail, tackle_success, tackle_fail,
clearance_success, clearance_fail, corner_success, corner_fail, free_kick_success, free_kick_fail, penalty_kick_success, penalty_kick_fail,
throw_in_success, throw_in_fail, fouled_on, foul_commited, yellow_card, red_card, goal_save, goal_conceded, penalty_save, penalty_conceded,
offside, goal_scored, assists, created_by, updated_by, created_at, updated_at`

func (m playerStatsTableModel) toDomain() playerstats.PlayerStats {
	out := playerstats.PlayerStats{
		ID:               m.ID,
		UserID:           m.UserID,
		MatchID:          m.MatchID,
		SeasonID:         m.SeasonID,
		TeamID:           m.TeamID,
		OpposingTeamName: m.OpposingTeamName,
		MatchHalfPlayed:  playerstats.Half(m.MatchHalfPlayed),
		StartMatch:       m.StartMatch,
		GoalTimes:        int64sToInts(m.GoalTimes),
		CreatedBy:        m.CreatedBy.String,
		UpdatedBy:        m.UpdatedBy.String,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Counters: playerstats.Counters{
			ControlSuccess:      m.ControlSuccess,
			ControlFail:         m.ControlFail,
			DuelSuccess:         m.DuelSuccess,
			DuelFail:            m.DuelFail,
			DribbleSuccess:      m.DribbleSuccess,
			DribbleFail:         m.DribbleFail,
			CrossSuccess:        m.CrossSuccess,
			CrossFail:           m.CrossFail,
			ShootSuccess:        m.ShootSuccess,
			ShootFail:           m.ShootFail,
			InterceptionSuccess: m.InterceptionSuccess,
			InterceptionFail:    m.InterceptionFail,
			OneTouchPassSuccess: m.OneTouchPassSuccess,
			OneTouchPassFail:    m.OneTouchPassFail,
			CallOfBallSuccess:   m.CallOfBallSuccess,
			CallOfBallFail:      m.CallOfBallFail,
			TackleSuccess:       m.TackleSuccess,
			TackleFail:          m.TackleFail,
			ClearanceSuccess:    m.ClearanceSuccess,
			ClearanceFail:       m.ClearanceFail,
			CornerSuccess:       m.CornerSuccess,
			CornerFail:          m.CornerFail,
			FreeKickSuccess:     m.FreeKickSuccess,
			FreeKickFail:        m.FreeKickFail,
			PenaltyKickSuccess:  m.PenaltyKickSuccess,
			PenaltyKickFail:     m.PenaltyKickFail,
			ThrowInSuccess:      m.ThrowInSuccess,
			ThrowInFail:         m.ThrowInFail,
			FouledOn:            m.FouledOn,
			FoulCommited:        m.FoulCommited,
			YellowCard:          m.YellowCard,
			RedCard:             m.RedCard,
			GoalSave:            m.GoalSave,
			GoalConceded:        m.GoalConceded,
			PenaltySave:         m.PenaltySave,
			PenaltyConceded:     m.PenaltyConceded,
			Offside:             m.Offside,
			GoalScored:          m.GoalScored,
			Assists:             m.Assists,
		},
	}
	if m.SubInAtMinute.Valid {
		minute := int(m.SubInAtMinute.Int64)
		out.SubInAtMinute = &minute
	}
	if m.SubOutAtMinute.Valid {
		minute := int(m.SubOutAtMinute.Int64)
		out.SubOutAtMinute = &minute
	}
	return out
}

func playerStatsNamedArgs(p playerstats.PlayerStats) map[string]any {
	args := map[string]any{
		"id":                 p.ID,
		"user_id":            p.UserID,
		"match_id":           p.MatchID,
		"season_id":          p.SeasonID,
		"team_id":            p.TeamID,
		"opposing_team_name": p.OpposingTeamName,
		"match_half_played":  string(p.MatchHalfPlayed),
		"start_match":        p.StartMatch,
		"sub_in_at_minute":   nil,
		"sub_out_at_minute":  nil,
		"goal_times":         intsToInt64Array(p.GoalTimes),
		"created_by":         nullableString(p.CreatedBy),
		"updated_by":         nullableString(p.UpdatedBy),
		"created_at":         p.CreatedAt,
		"updated_at":         p.UpdatedAt,

		"control_success":        p.ControlSuccess,
		"control_fail":           p.ControlFail,
		"duel_success":           p.DuelSuccess,
		"duel_fail":              p.DuelFail,
		"dribble_success":        p.DribbleSuccess,
		"dribble_fail":           p.DribbleFail,
		"cross_success":          p.CrossSuccess,
		"cross_fail":             p.CrossFail,
		"shoot_success":          p.ShootSuccess,
		"shoot_fail":             p.ShootFail,
		"interception_success":   p.InterceptionSuccess,
		"interception_fail":      p.InterceptionFail,
		"one_touch_pass_success": p.OneTouchPassSuccess,
		"one_touch_pass_fail":    p.OneTouchPassFail,
		"call_of_ball_success":   p.CallOfBallSuccess,
		"call_of_ball_fail":      p.CallOfBallFail,
		"tackle_success":         p.TackleSuccess,
		"tackle_fail":            p.TackleFail,
		"clearance_success":      p.ClearanceSuccess,
		"clearance_fail":         p.ClearanceFail,
		"corner_success":         p.CornerSuccess,
		"corner_fail":            p.CornerFail,
		"free_kick_success":      p.FreeKickSuccess,
		"free_kick_fail":         p.FreeKickFail,
		"penalty_kick_success":   p.PenaltyKickSuccess,
		"penalty_kick_fail":      p.PenaltyKickFail,
		"throw_in_success":       p.ThrowInSuccess,
		"throw_in_fail":          p.ThrowInFail,
		"fouled_on":              p.FouledOn,
		"foul_commited":          p.FoulCommited,
		"yellow_card":            p.YellowCard,
		"red_card":               p.RedCard,
		"goal_save":              p.GoalSave,
		"goal_conceded":          p.GoalConceded,
		"penalty_save":           p.PenaltySave,
		"penalty_conceded":       p.PenaltyConceded,
		"offside":                p.Offside,
		"goal_scored":            p.GoalScored,
		"assists":                p.Assists,
	}
	if p.SubInAtMinute != nil {
		args["sub_in_at_minute"] = *p.SubInAtMinute
	}
	if p.SubOutAtMinute != nil {
		args["sub_out_at_minute"] = *p.SubOutAtMinute
	}
	return args
}

func int64sToInts(values pq.Int64Array) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, int(v))
	}
	return out
}

func intsToInt64Array(values []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(values))
	for _, v := range values {
		out = append(out, int64(v))
	}
	return out
}
