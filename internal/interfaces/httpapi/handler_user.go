package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/domain/user"
	"github.com/statsrecord/stats-api/internal/usecase"
)

type updateUserRequest struct {
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Password        *string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsPlayer        *bool   `json:"is_player,omitempty"`
	TeamID          *string `json:"team_id,omitempty"`
	ClearTeam       bool    `json:"clear_team,omitempty"`
	HeightCM        *int    `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	PrimaryPosition *string `json:"primary_position,omitempty" validate:"omitempty,oneof=GK DEF MID FWD"`
	Subscribed      *bool   `json:"subscribed,omitempty"`
	IsAdmin         *bool   `json:"is_admin,omitempty"`
	IsSuperuser     *bool   `json:"is_superuser,omitempty"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	filter := user.Filter{
		TeamID: strings.TrimSpace(r.URL.Query().Get("team_id")),
	}
	users, err := h.userService.List(ctx, actorFromContext(ctx), filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list users failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userDTO, 0, len(users))
	for _, u := range users {
		items = append(items, userToDTO(ctx, u))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// CreateUser is the authenticated counterpart of Register: same payload,
// same role restrictions, but audit-stamped with the acting account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateUser")
	defer span.End()

	h.Register(w, r.WithContext(ctx))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUser")
	defer span.End()

	userID := r.PathValue("userID")
	account, err := h.userService.Get(ctx, actorFromContext(ctx), userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, account))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateUser")
	defer span.End()

	var req updateUserRequest
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

	input := usecase.UpdateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		IsPlayer:    req.IsPlayer,
		TeamID:      req.TeamID,
		ClearTeam:   req.ClearTeam,
		HeightCM:    req.HeightCM,
		Subscribed:  req.Subscribed,
		IsAdmin:     req.IsAdmin,
		IsSuperuser: req.IsSuperuser,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, strings.TrimSpace(*req.DateOfBirth))
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid date_of_birth: %v", usecase.ErrInvalidInput, err))
			return
		}
		input.DateOfBirth = &dob
	}
	if req.PrimaryPosition != nil {
		position := user.Position(*req.PrimaryPosition)
		input.PrimaryPosition = &position
	}

	userID := r.PathValue("userID")
	updated, err := h.userService.Update(ctx, actorFromContext(ctx), userID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update user failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, updated))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteUser")
	defer span.End()

	userID := r.PathValue("userID")
	if err := h.userService.Delete(ctx, actorFromContext(ctx), userID); err != nil {
		h.logger.WarnContext(ctx, "delete user failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	filter := user.Filter{
		PlayersOnly: true,
		TeamID:      strings.TrimSpace(r.URL.Query().Get("team_id")),
	}
	players, err := h.userService.List(ctx, actorFromContext(ctx), filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userDTO, 0, len(players))
	for _, p := range players {
		items = append(items, userToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	userID := r.PathValue("userID")
	player, err := h.userService.GetPlayer(ctx, actorFromContext(ctx), userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, player))
}

func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSubscription")
	defer span.End()

	userID := r.PathValue("userID")
	updated, err := h.userService.ToggleSubscription(ctx, actorFromContext(ctx), userID)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle subscription failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, updated))
}
