package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	"github.com/statsrecord/stats-api/internal/usecase"
)

type createTeamStatsRequest struct {
	TeamID       string   `json:"team_id" validate:"required"`
	MatchID      string   `json:"match_id" validate:"required"`
	MatchOutcome string   `json:"match_outcome" validate:"required,oneof=win draw loss"`
	MatchGoals   int      `json:"match_goals" validate:"gte=0"`
	GoalsAgainst int      `json:"goals_against" validate:"gte=0"`
	GoalTimes    []int    `json:"goal_times,omitempty" validate:"omitempty,dive,gte=0"`
	Possession   *float64 `json:"possession_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type updateTeamStatsRequest struct {
	MatchOutcome *string  `json:"match_outcome,omitempty" validate:"omitempty,oneof=win draw loss"`
	MatchGoals   *int     `json:"match_goals,omitempty" validate:"omitempty,gte=0"`
	GoalsAgainst *int     `json:"goals_against,omitempty" validate:"omitempty,gte=0"`
	GoalTimes    []int    `json:"goal_times,omitempty" validate:"omitempty,dive,gte=0"`
	Possession   *float64 `json:"possession_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type teamStatsTotalsDTO struct {
	Goals         int `json:"total_number_of_goals"`
	Wins          int `json:"total_number_of_wins"`
	Loses         int `json:"total_number_of_loses"`
	Draws         int `json:"total_number_of_draws"`
	MatchesPlayed int `json:"total_number_of_matches_played"`
	Passes        int `json:"total_number_of_passes"`
}

type teamStatsDTO struct {
	ID           string             `json:"id"`
	TeamID       string             `json:"team_id"`
	SeasonID     string             `json:"season_id"`
	MatchID      string             `json:"match_id"`
	MatchOutcome string             `json:"match_outcome"`
	MatchGoals   int                `json:"match_goals"`
	GoalsAgainst int                `json:"goals_against"`
	GoalTimes    []int              `json:"goal_times,omitempty"`
	Possession   *float64           `json:"possession_pct,omitempty"`
	Totals       teamStatsTotalsDTO `json:"totals"`
	PlayerIDs    []string           `json:"player_ids,omitempty"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

func teamStatsToDTO(ctx context.Context, t teamstats.TeamStats) teamStatsDTO {
	return teamStatsDTO{
		ID:           t.ID,
		TeamID:       t.TeamID,
		SeasonID:     t.SeasonID,
		MatchID:      t.MatchID,
		MatchOutcome: string(t.MatchOutcome),
		MatchGoals:   t.MatchGoals,
		GoalsAgainst: t.GoalsAgainst,
		GoalTimes:    t.GoalTimes,
		Possession:   t.Possession,
		Totals: teamStatsTotalsDTO{
			Goals:         t.Totals.Goals,
			Wins:          t.Totals.Wins,
			Loses:         t.Totals.Loses,
			Draws:         t.Totals.Draws,
			MatchesPlayed: t.Totals.MatchesPlayed,
			Passes:        t.Totals.Passes,
		},
		PlayerIDs: t.PlayerIDs,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) ListTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStats")
	defer span.End()

	query := r.URL.Query()
	filter := teamstats.Filter{
		TeamID:   strings.TrimSpace(query.Get("team_id")),
		SeasonID: strings.TrimSpace(query.Get("season_id")),
		MatchID:  strings.TrimSpace(query.Get("match_id")),
	}
	rows, err := h.teamStatsService.List(ctx, actorFromContext(ctx), filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list team stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, teamStatsToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeamStats")
	defer span.End()

	var req createTeamStatsRequest
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

	created, err := h.teamStatsService.Create(ctx, actorFromContext(ctx), usecase.CreateTeamStatsInput{
		TeamID:       req.TeamID,
		MatchID:      req.MatchID,
		MatchOutcome: teamstats.Outcome(req.MatchOutcome),
		MatchGoals:   req.MatchGoals,
		GoalsAgainst: req.GoalsAgainst,
		GoalTimes:    req.GoalTimes,
		Possession:   req.Possession,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team stats failed", "team_id", req.TeamID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamStatsToDTO(ctx, created))
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	statID := r.PathValue("statID")
	row, err := h.teamStatsService.Get(ctx, actorFromContext(ctx), statID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(ctx, row))
}

func (h *Handler) UpdateTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeamStats")
	defer span.End()

	var req updateTeamStatsRequest
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

	input := usecase.UpdateTeamStatsInput{
		MatchGoals:   req.MatchGoals,
		GoalsAgainst: req.GoalsAgainst,
		GoalTimes:    req.GoalTimes,
		Possession:   req.Possession,
	}
	if req.MatchOutcome != nil {
		outcome := teamstats.Outcome(*req.MatchOutcome)
		input.MatchOutcome = &outcome
	}

	statID := r.PathValue("statID")
	updated, err := h.teamStatsService.Update(ctx, actorFromContext(ctx), statID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update team stats failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(ctx, updated))
}

func (h *Handler) DeleteTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeamStats")
	defer span.End()

	statID := r.PathValue("statID")
	if err := h.teamStatsService.Delete(ctx, actorFromContext(ctx), statID); err != nil {
		h.logger.WarnContext(ctx, "delete team stats failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
