package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/domain/season"
	"github.com/statsrecord/stats-api/internal/usecase"
)

type createSeasonRequest struct {
	LeagueID  string `json:"league_id" validate:"required"`
	Label     string `json:"label" validate:"required,max=50"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	IsCurrent bool   `json:"is_current"`
}

type updateSeasonRequest struct {
	Label     *string `json:"label,omitempty" validate:"omitempty,max=50"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	IsCurrent *bool   `json:"is_current,omitempty"`
}

type seasonDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"league_id"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsCurrent bool   `json:"is_current"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func seasonToDTO(ctx context.Context, s season.Season) seasonDTO {
	return seasonDTO{
		ID:        s.ID,
		LeagueID:  s.LeagueID,
		Label:     s.Label,
		StartDate: s.StartDate.UTC().Format(dateLayout),
		EndDate:   s.EndDate.UTC().Format(dateLayout),
		IsCurrent: s.IsCurrent,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s: %v", usecase.ErrInvalidInput, field, err)
	}
	return parsed, nil
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	filter := season.Filter{
		LeagueID: strings.TrimSpace(r.URL.Query().Get("league_id")),
	}
	seasons, err := h.seasonService.List(ctx, actorFromContext(ctx), filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
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

	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.seasonService.Create(ctx, actorFromContext(ctx), usecase.CreateSeasonInput{
		LeagueID:  req.LeagueID,
		Label:     req.Label,
		StartDate: startDate,
		EndDate:   endDate,
		IsCurrent: req.IsCurrent,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "league_id", req.LeagueID, "label", req.Label, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(ctx, created))
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.Get(ctx, actorFromContext(ctx), seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(ctx, item))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	var req updateSeasonRequest
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

	input := usecase.UpdateSeasonInput{
		Label:     req.Label,
		IsCurrent: req.IsCurrent,
	}
	if req.StartDate != nil {
		startDate, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.EndDate = &endDate
	}

	seasonID := r.PathValue("seasonID")
	updated, err := h.seasonService.Update(ctx, actorFromContext(ctx), seasonID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(ctx, updated))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	if err := h.seasonService.Delete(ctx, actorFromContext(ctx), seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
