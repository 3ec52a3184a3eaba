package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/usecase"
)

type recomputeRequest struct {
	TeamID     string `json:"team_id"`
	SeasonID   string `json:"season_id"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,gte=0"`
}

// RecomputeTeamTotals re-derives the denormalized season totals. The body is
// optional; an empty body means every (team, season) pair.
func (h *Handler) RecomputeTeamTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeTeamTotals")
	defer span.End()

	var req recomputeRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.maintenanceService.RecomputeTeamTotals(ctx, usecase.RecomputeInput{
		TeamID:     req.TeamID,
		SeasonID:   req.SeasonID,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute team totals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
