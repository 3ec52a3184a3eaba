package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/domain/playerstats"
	"github.com/statsrecord/stats-api/internal/usecase"
)

// countersPayload mirrors the per-match event tallies on the wire. Zero
// values are meaningful, so partial updates replace the block wholesale.
type countersPayload struct {
	ControlSuccess      int `json:"control_success" validate:"gte=0"`
	ControlFail         int `json:"control_fail" validate:"gte=0"`
	DuelSuccess         int `json:"duel_success" validate:"gte=0"`
	DuelFail            int `json:"duel_fail" validate:"gte=0"`
	DribbleSuccess      int `json:"dribble_success" validate:"gte=0"`
	DribbleFail         int `json:"dribble_fail" validate:"gte=0"`
	CrossSuccess        int `json:"cross_success" validate:"gte=0"`
	CrossFail           int `json:"cross_fail" validate:"gte=0"`
	ShootSuccess        int `json:"shoot_success" validate:"gte=0"`
	ShootFail           int `json:"shoot_fail" validate:"gte=0"`
	InterceptionSuccess int `json:"interception_success" validate:"gte=0"`
	InterceptionFail    int `json:"interception_fail" validate:"gte=0"`
	OneTouchPassSuccess int `json:"one_touch_pass_success" validate:"gte=0"`
	OneTouchPassFail    int `json:"one_touch_pass_fail" validate:"gte=0"`
	CallOfBallSuccess   int `json:"call_of_ball_success" validate:"gte=0"`
	CallOfBallFail      int `json:"call_of_ball_fail" validate:"gte=0"`
	TackleSuccess       int `json:"tackle_success" validate:"gte=0"`
	TackleFail          int `json:"tackle_fail" validate:"gte=0"`
	ClearanceSuccess    int `json:"clearance_success" validate:"gte=0"`
	ClearanceFail       int `json:"clearance_fail" validate:"gte=0"`
	CornerSuccess       int `json:"corner_success" validate:"gte=0"`
	CornerFail          int `json:"corner_fail" validate:"gte=0"`
	FreeKickSuccess     int `json:"free_kick_success" validate:"gte=0"`
	FreeKickFail        int `json:"free_kick_fail" validate:"gte=0"`
	PenaltyKickSuccess  int `json:"penalty_kick_success" validate:"gte=0"`
	PenaltyKickFail     int `json:"penalty_kick_fail" validate:"gte=0"`
	ThrowInSuccess      int `json:"throw_in_success" validate:"gte=0"`
	ThrowInFail         int `json:"throw_in_fail" validate:"gte=0"`
	FouledOn            int `json:"fouled_on" validate:"gte=0"`
	FoulCommited        int `json:"foul_commited" validate:"gte=0"`
	YellowCard          int `json:"yellow_card" validate:"gte=0"`
	RedCard             int `json:"red_card" validate:"gte=0"`
	GoalSave            int `json:"goal_save" validate:"gte=0"`
	GoalConceded        int `json:"goal_conceded" validate:"gte=0"`
	PenaltySave         int `json:"penalty_save" validate:"gte=0"`
	PenaltyConceded     int `json:"penalty_conceded" validate:"gte=0"`
	Offside             int `json:"offside" validate:"gte=0"`
	GoalScored          int `json:"goal_scored" validate:"gte=0"`
	Assists             int `json:"assists" validate:"gte=0"`
}

func (p countersPayload) toDomain() playerstats.Counters {
	return playerstats.Counters(p)
}

func countersToPayload(c playerstats.Counters) countersPayload {
	return countersPayload(c)
}

type createPlayerStatsRequest struct {
	UserID           string          `json:"user_id" validate:"required"`
	MatchID          string          `json:"match_id" validate:"required"`
	OpposingTeamName string          `json:"opposing_team_name" validate:"max=150"`
	MatchHalfPlayed  string          `json:"match_half_played" validate:"omitempty,oneof=first second both"`
	StartMatch       bool            `json:"start_match"`
	SubInAtMinute    *int            `json:"sub_in_at_minute,omitempty" validate:"omitempty,gte=0"`
	SubOutAtMinute   *int            `json:"sub_out_at_minute,omitempty" validate:"omitempty,gte=0"`
	GoalTimes        []int           `json:"goal_times,omitempty" validate:"omitempty,dive,gte=0"`
	Counters         countersPayload `json:"counters"`
}

type updatePlayerStatsRequest struct {
	OpposingTeamName *string          `json:"opposing_team_name,omitempty" validate:"omitempty,max=150"`
	MatchHalfPlayed  *string          `json:"match_half_played,omitempty" validate:"omitempty,oneof=first second both"`
	StartMatch       *bool            `json:"start_match,omitempty"`
	SubInAtMinute    *int             `json:"sub_in_at_minute,omitempty" validate:"omitempty,gte=0"`
	SubOutAtMinute   *int             `json:"sub_out_at_minute,omitempty" validate:"omitempty,gte=0"`
	GoalTimes        []int            `json:"goal_times,omitempty" validate:"omitempty,dive,gte=0"`
	Counters         *countersPayload `json:"counters,omitempty"`
}

type playerStatsDTO struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	MatchID          string          `json:"match_id"`
	SeasonID         string          `json:"season_id"`
	TeamID           string          `json:"team_id"`
	OpposingTeamName string          `json:"opposing_team_name,omitempty"`
	MatchHalfPlayed  string          `json:"match_half_played,omitempty"`
	StartMatch       bool            `json:"start_match"`
	SubInAtMinute    *int            `json:"sub_in_at_minute,omitempty"`
	SubOutAtMinute   *int            `json:"sub_out_at_minute,omitempty"`
	GoalTimes        []int           `json:"goal_times,omitempty"`
	Counters         countersPayload `json:"counters"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

func playerStatsToDTO(ctx context.Context, p playerstats.PlayerStats) playerStatsDTO {
	return playerStatsDTO{
		ID:               p.ID,
		UserID:           p.UserID,
		MatchID:          p.MatchID,
		SeasonID:         p.SeasonID,
		TeamID:           p.TeamID,
		OpposingTeamName: p.OpposingTeamName,
		MatchHalfPlayed:  string(p.MatchHalfPlayed),
		StartMatch:       p.StartMatch,
		SubInAtMinute:    p.SubInAtMinute,
		SubOutAtMinute:   p.SubOutAtMinute,
		GoalTimes:        p.GoalTimes,
		Counters:         countersToPayload(p.Counters),
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerStats")
	defer span.End()

	query := r.URL.Query()
	filter := playerstats.Filter{
		UserID:   strings.TrimSpace(query.Get("user_id")),
		MatchID:  strings.TrimSpace(query.Get("match_id")),
		SeasonID: strings.TrimSpace(query.Get("season_id")),
		TeamID:   strings.TrimSpace(query.Get("team_id")),
	}
	records, err := h.playerStatsService.List(ctx, actorFromContext(ctx), filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list player stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatsDTO, 0, len(records))
	for _, record := range records {
		items = append(items, playerStatsToDTO(ctx, record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayerStats")
	defer span.End()

	var req createPlayerStatsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerStatsService.Create(ctx, actorFromContext(ctx), usecase.CreatePlayerStatsInput{
		UserID:           req.UserID,
		MatchID:          req.MatchID,
		OpposingTeamName: req.OpposingTeamName,
		MatchHalfPlayed:  playerstats.Half(req.MatchHalfPlayed),
		StartMatch:       req.StartMatch,
		SubInAtMinute:    req.SubInAtMinute,
		SubOutAtMinute:   req.SubOutAtMinute,
		GoalTimes:        req.GoalTimes,
		Counters:         req.Counters.toDomain(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player stats failed", "user_id", req.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerStatsToDTO(ctx, created))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	statID := r.PathValue("statID")
	record, err := h.playerStatsService.Get(ctx, actorFromContext(ctx), statID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerStatsToDTO(ctx, record))
}

func (h *Handler) UpdatePlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerStats")
	defer span.End()

	var req updatePlayerStatsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdatePlayerStatsInput{
		OpposingTeamName: req.OpposingTeamName,
		StartMatch:       req.StartMatch,
		SubInAtMinute:    req.SubInAtMinute,
		SubOutAtMinute:   req.SubOutAtMinute,
		GoalTimes:        req.GoalTimes,
	}
	if req.MatchHalfPlayed != nil {
		half := playerstats.Half(*req.MatchHalfPlayed)
		input.MatchHalfPlayed = &half
	}
	if req.Counters != nil {
		counters := req.Counters.toDomain()
		input.Counters = &counters
	}

	statID := r.PathValue("statID")
	updated, err := h.playerStatsService.Update(ctx, actorFromContext(ctx), statID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update player stats failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerStatsToDTO(ctx, updated))
}

func (h *Handler) DeletePlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayerStats")
	defer span.End()

	statID := r.PathValue("statID")
	if err := h.playerStatsService.Delete(ctx, actorFromContext(ctx), statID); err != nil {
		h.logger.WarnContext(ctx, "delete player stats failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
