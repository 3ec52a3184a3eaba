package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/statsrecord/stats-api/internal/platform/logging"
	"github.com/statsrecord/stats-api/internal/usecase"
)

type Handler struct {
	authService        *usecase.AuthService
	userService        *usecase.UserService
	teamService        *usecase.TeamService
	leagueService      *usecase.LeagueService
	seasonService      *usecase.SeasonService
	matchService       *usecase.MatchService
	playerStatsService *usecase.PlayerStatsService
	teamStatsService   *usecase.TeamStatsService
	maintenanceService *usecase.MaintenanceService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	userService *usecase.UserService,
	teamService *usecase.TeamService,
	leagueService *usecase.LeagueService,
	seasonService *usecase.SeasonService,
	matchService *usecase.MatchService,
	playerStatsService *usecase.PlayerStatsService,
	teamStatsService *usecase.TeamStatsService,
	maintenanceService *usecase.MaintenanceService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:        authService,
		userService:        userService,
		teamService:        teamService,
		leagueService:      leagueService,
		seasonService:      seasonService,
		matchService:       matchService,
		playerStatsService: playerStatsService,
		teamStatsService:   teamStatsService,
		maintenanceService: maintenanceService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
