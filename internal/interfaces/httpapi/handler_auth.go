package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/statsrecord/stats-api/internal/domain/user"
	"github.com/statsrecord/stats-api/internal/usecase"
)

const dateLayout = "2006-01-02"

type registerRequest struct {
	FirstName       string  `json:"first_name" validate:"required,max=100"`
	LastName        string  `json:"last_name" validate:"max=100"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	IsPlayer        bool    `json:"is_player"`
	TeamID          *string `json:"team_id,omitempty"`
	HeightCM        *int    `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	PrimaryPosition *string `json:"primary_position,omitempty" validate:"omitempty,oneof=GK DEF MID FWD"`
}

type loginRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"omitempty,min=8"`
}

type loginResponseDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

// userDTO is the outward shape of an account. The password hash is never
// part of it.
type userDTO struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	IsPlayer        bool    `json:"is_player"`
	IsAdmin         bool    `json:"is_admin"`
	IsSuperuser     bool    `json:"is_superuser"`
	Subscribed      bool    `json:"subscribed"`
	TeamID          *string `json:"team_id,omitempty"`
	HeightCM        *int    `json:"height_cm,omitempty"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	PrimaryPosition *string `json:"primary_position,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func userToDTO(ctx context.Context, u user.User) userDTO {
	dto := userDTO{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsPlayer:    u.IsPlayer,
		IsAdmin:     u.IsAdmin,
		IsSuperuser: u.IsSuperuser,
		Subscribed:  u.Subscribed,
		TeamID:      u.TeamID,
		HeightCM:    u.HeightCM,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.UTC().Format(dateLayout)
		dto.DateOfBirth = &dob
	}
	if u.PrimaryPosition != nil {
		position := string(*u.PrimaryPosition)
		dto.PrimaryPosition = &position
	}
	return dto
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
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

	input := usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsPlayer:  req.IsPlayer,
		TeamID:    req.TeamID,
		HeightCM:  req.HeightCM,
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

	created, err := h.authService.Register(ctx, actorFromContext(ctx), input)
	if err != nil {
		h.logger.WarnContext(ctx, "register failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(ctx, created))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
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

	result, err := h.authService.Login(ctx, usecase.LoginInput{
		Email:       req.Email,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, loginResponseDTO{
		Token: result.Token,
		User:  userToDTO(ctx, result.User),
	})
}
