package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/domain/team"
	"github.com/statsrecord/stats-api/internal/usecase"
)

type createTeamRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	LogoURL     string  `json:"logo_url" validate:"omitempty,url"`
	ManagerName string  `json:"manager_name" validate:"max=150"`
	LeagueID    *string `json:"league_id,omitempty"`
}

type updateTeamRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=150"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	ManagerName *string `json:"manager_name,omitempty" validate:"omitempty,max=150"`
	LeagueID    *string `json:"league_id,omitempty"`
	ClearLeague bool    `json:"clear_league,omitempty"`
}

type teamDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LogoURL     string  `json:"logo_url,omitempty"`
	ManagerName string  `json:"manager_name,omitempty"`
	LeagueID    *string `json:"league_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func teamToDTO(ctx context.Context, t team.Team) teamDTO {
	return teamDTO{
		ID:          t.ID,
		Name:        t.Name,
		LogoURL:     t.LogoURL,
		ManagerName: t.ManagerName,
		LeagueID:    t.LeagueID,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	filter := team.Filter{
		LeagueID: strings.TrimSpace(r.URL.Query().Get("league_id")),
	}
	teams, err := h.teamService.List(ctx, actorFromContext(ctx), filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
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

	created, err := h.teamService.Create(ctx, actorFromContext(ctx), usecase.CreateTeamInput{
		Name:        req.Name,
		LogoURL:     req.LogoURL,
		ManagerName: req.ManagerName,
		LeagueID:    req.LeagueID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	item, err := h.teamService.Get(ctx, actorFromContext(ctx), teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	var req updateTeamRequest
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

	teamID := r.PathValue("teamID")
	updated, err := h.teamService.Update(ctx, actorFromContext(ctx), teamID, usecase.UpdateTeamInput{
		Name:        req.Name,
		LogoURL:     req.LogoURL,
		ManagerName: req.ManagerName,
		LeagueID:    req.LeagueID,
		ClearLeague: req.ClearLeague,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, updated))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	if err := h.teamService.Delete(ctx, actorFromContext(ctx), teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
