package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/domain/match"
	"github.com/statsrecord/stats-api/internal/usecase"
)

type createMatchRequest struct {
	SeasonID   string `json:"season_id" validate:"required"`
	HomeTeamID string `json:"home_team_id" validate:"required"`
	AwayTeamID string `json:"away_team_id" validate:"required"`
	KickoffAt  string `json:"kickoff_at" validate:"required"`
	Venue      string `json:"venue" validate:"max=200"`
	Type       string `json:"match_type" validate:"omitempty,oneof=league knockout friendly group_stage quarter_final semi_final final"`
}

type updateMatchRequest struct {
	KickoffAt *string `json:"kickoff_at,omitempty"`
	Venue     *string `json:"venue,omitempty" validate:"omitempty,max=200"`
	HomeScore *int    `json:"home_score,omitempty" validate:"omitempty,gte=0"`
	AwayScore *int    `json:"away_score,omitempty" validate:"omitempty,gte=0"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=scheduled live completed cancelled"`
	Type      *string `json:"match_type,omitempty" validate:"omitempty,oneof=league knockout friendly group_stage quarter_final semi_final final"`
}

type matchDTO struct {
	ID         string `json:"id"`
	SeasonID   string `json:"season_id"`
	LeagueID   string `json:"league_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	KickoffAt  string `json:"kickoff_at"`
	Venue      string `json:"venue,omitempty"`
	HomeScore  *int   `json:"home_score,omitempty"`
	AwayScore  *int   `json:"away_score,omitempty"`
	Status     string `json:"status"`
	Type       string `json:"match_type"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func matchToDTO(ctx context.Context, m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		SeasonID:   m.SeasonID,
		LeagueID:   m.LeagueID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		KickoffAt:  m.KickoffAt.UTC().Format(time.RFC3339),
		Venue:      m.Venue,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Status:     string(m.Status),
		Type:       string(m.Type),
		CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	filter := match.Filter{
		SeasonID: strings.TrimSpace(query.Get("season_id")),
		LeagueID: strings.TrimSpace(query.Get("league_id")),
		TeamID:   strings.TrimSpace(query.Get("team_id")),
		Status:   match.Status(strings.TrimSpace(query.Get("status"))),
	}
	matches, err := h.matchService.List(ctx, actorFromContext(ctx), filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
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

	kickoffAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.KickoffAt))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid kickoff_at: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.matchService.Create(ctx, actorFromContext(ctx), usecase.CreateMatchInput{
		SeasonID:   req.SeasonID,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  kickoffAt,
		Venue:      req.Venue,
		Type:       match.Type(req.Type),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, created))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Get(ctx, actorFromContext(ctx), matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	var req updateMatchRequest
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

	input := usecase.UpdateMatchInput{
		Venue:     req.Venue,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	}
	if req.KickoffAt != nil {
		kickoffAt, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.KickoffAt))
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid kickoff_at: %v", usecase.ErrInvalidInput, err))
			return
		}
		input.KickoffAt = &kickoffAt
	}
	if req.Status != nil {
		status := match.Status(*req.Status)
		input.Status = &status
	}
	if req.Type != nil {
		matchType := match.Type(*req.Type)
		input.Type = &matchType
	}

	matchID := r.PathValue("matchID")
	updated, err := h.matchService.Update(ctx, actorFromContext(ctx), matchID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, updated))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.matchService.Delete(ctx, actorFromContext(ctx), matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
