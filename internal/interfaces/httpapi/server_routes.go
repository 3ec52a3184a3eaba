package httpapi

import (
	"net/http"

	"github.com/statsrecord/stats-api/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/register", handler.Register)
	mux.HandleFunc("POST /v1/login", handler.Login)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, users user.Repository) {
	authed := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, users, h)
	}

	mux.Handle("GET /v1/users", authed(handler.ListUsers))
	mux.Handle("POST /v1/users", authed(handler.CreateUser))
	mux.Handle("GET /v1/users/{userID}", authed(handler.GetUser))
	mux.Handle("PATCH /v1/users/{userID}", authed(handler.UpdateUser))
	mux.Handle("DELETE /v1/users/{userID}", authed(handler.DeleteUser))

	mux.Handle("GET /v1/players", authed(handler.ListPlayers))
	mux.Handle("GET /v1/players/{userID}", authed(handler.GetPlayer))
	mux.Handle("PATCH /v1/players/{userID}/subscription", authed(handler.ToggleSubscription))

	mux.Handle("GET /v1/teams", authed(handler.ListTeams))
	mux.Handle("POST /v1/teams", authed(handler.CreateTeam))
	mux.Handle("GET /v1/teams/{teamID}", authed(handler.GetTeam))
	mux.Handle("PATCH /v1/teams/{teamID}", authed(handler.UpdateTeam))
	mux.Handle("DELETE /v1/teams/{teamID}", authed(handler.DeleteTeam))

	mux.Handle("POST /v1/leagues", authed(handler.CreateLeague))
	mux.Handle("PATCH /v1/leagues/{leagueID}", authed(handler.UpdateLeague))
	mux.Handle("DELETE /v1/leagues/{leagueID}", authed(handler.DeleteLeague))

	mux.Handle("GET /v1/seasons", authed(handler.ListSeasons))
	mux.Handle("POST /v1/seasons", authed(handler.CreateSeason))
	mux.Handle("GET /v1/seasons/{seasonID}", authed(handler.GetSeason))
	mux.Handle("PATCH /v1/seasons/{seasonID}", authed(handler.UpdateSeason))
	mux.Handle("DELETE /v1/seasons/{seasonID}", authed(handler.DeleteSeason))

	mux.Handle("GET /v1/matches", authed(handler.ListMatches))
	mux.Handle("POST /v1/matches", authed(handler.CreateMatch))
	mux.Handle("GET /v1/matches/{matchID}", authed(handler.GetMatch))
	mux.Handle("PATCH /v1/matches/{matchID}", authed(handler.UpdateMatch))
	mux.Handle("DELETE /v1/matches/{matchID}", authed(handler.DeleteMatch))

	mux.Handle("GET /v1/player-stats", authed(handler.ListPlayerStats))
	mux.Handle("POST /v1/player-stats", authed(handler.CreatePlayerStats))
	mux.Handle("GET /v1/player-stats/{statID}", authed(handler.GetPlayerStats))
	mux.Handle("PATCH /v1/player-stats/{statID}", authed(handler.UpdatePlayerStats))
	mux.Handle("DELETE /v1/player-stats/{statID}", authed(handler.DeletePlayerStats))

	mux.Handle("GET /v1/team-stats", authed(handler.ListTeamStats))
	mux.Handle("POST /v1/team-stats", authed(handler.CreateTeamStats))
	mux.Handle("GET /v1/team-stats/{statID}", authed(handler.GetTeamStats))
	mux.Handle("PATCH /v1/team-stats/{statID}", authed(handler.UpdateTeamStats))
	mux.Handle("DELETE /v1/team-stats/{statID}", authed(handler.DeleteTeamStats))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/maintenance/recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecomputeTeamTotals)))
}
