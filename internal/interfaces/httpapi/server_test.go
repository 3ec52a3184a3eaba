package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/statsrecord/stats-api/internal/infrastructure/repository/memory"
	"github.com/statsrecord/stats-api/internal/platform/auth"
	"github.com/statsrecord/stats-api/internal/platform/logging"
	"github.com/statsrecord/stats-api/internal/usecase"
)

type seqIDGenerator struct {
	prefix string
	next   int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	userRepo := memory.NewUserRepository()
	teamRepo := memory.NewTeamRepository()
	leagueRepo := memory.NewLeagueRepository()
	seasonRepo := memory.NewSeasonRepository()
	matchRepo := memory.NewMatchRepository()
	playerStatsRepo := memory.NewPlayerStatsRepository()
	teamStatsRepo := memory.NewTeamStatsRepository(playerStatsRepo, userRepo)

	tokens, err := auth.NewJWTManager("test-secret-0123456789abcdef", "stats-api", time.Hour)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	hasher := auth.NewBcryptHasher(4)
	idGen := &seqIDGenerator{prefix: "id"}
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewAuthService(userRepo, teamRepo, hasher, tokens, idGen, logger),
		usecase.NewUserService(userRepo, teamRepo, hasher, logger),
		usecase.NewTeamService(teamRepo, leagueRepo, idGen, logger),
		usecase.NewLeagueService(leagueRepo, idGen, logger),
		usecase.NewSeasonService(seasonRepo, leagueRepo, idGen, logger),
		usecase.NewMatchService(matchRepo, seasonRepo, teamRepo, idGen, logger),
		usecase.NewPlayerStatsService(playerStatsRepo, userRepo, matchRepo, idGen, logger),
		usecase.NewTeamStatsService(teamStatsRepo, teamRepo, matchRepo, idGen, logger),
		usecase.NewMaintenanceService(teamStatsRepo, logger),
		logger,
	)

	router := NewRouter(handler, tokens, userRepo, logger, []string{"*"}, "job-secret")
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, client *http.Client, method, url, token, body string) (int, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var envelope map[string]any
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, envelope
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()

	status, envelope := doJSON(t, client, http.MethodPost, baseURL+"/v1/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	if status != http.StatusOK {
		t.Fatalf("login %s: expected status 200, got %d (%v)", email, status, envelope)
	}
	data, _ := envelope["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("login %s: empty token", email)
	}
	return token
}

func TestServer_RegisterLoginTeamLifecycle(t *testing.T) {
	server := newTestServer(t)
	client := server.Client()

	// The first registered account bootstraps as admin and superuser.
	status, envelope := doJSON(t, client, http.MethodPost, server.URL+"/v1/register", "",
		`{"first_name":"Root","last_name":"Admin","email":"root@example.com","password":"supersecret"}`)
	if status != http.StatusCreated {
		t.Fatalf("register first user: expected status 201, got %d (%v)", status, envelope)
	}
	data, _ := envelope["data"].(map[string]any)
	if got, _ := data["is_superuser"].(bool); !got {
		t.Fatalf("expected first user to bootstrap as superuser, got %v", data)
	}
	if _, ok := data["password"]; ok {
		t.Fatalf("password leaked in register response: %v", data)
	}
	if _, ok := data["password_hash"]; ok {
		t.Fatalf("password hash leaked in register response: %v", data)
	}

	status, envelope = doJSON(t, client, http.MethodPost, server.URL+"/v1/register", "",
		`{"first_name":"Plain","last_name":"Member","email":"member@example.com","password":"memberpass"}`)
	if status != http.StatusCreated {
		t.Fatalf("register second user: expected status 201, got %d (%v)", status, envelope)
	}
	data, _ = envelope["data"].(map[string]any)
	if got, _ := data["is_superuser"].(bool); got {
		t.Fatalf("second user must not be superuser: %v", data)
	}

	memberToken := login(t, client, server.URL, "member@example.com", "memberpass")

	// Authenticated members may create teams.
	status, envelope = doJSON(t, client, http.MethodPost, server.URL+"/v1/teams", memberToken,
		`{"name":"Garuda FC","manager_name":"Pak Budi"}`)
	if status != http.StatusCreated {
		t.Fatalf("create team: expected status 201, got %d (%v)", status, envelope)
	}
	data, _ = envelope["data"].(map[string]any)
	teamID, _ := data["id"].(string)
	if teamID == "" {
		t.Fatalf("create team: missing id in %v", data)
	}

	// Team names are unique.
	status, _ = doJSON(t, client, http.MethodPost, server.URL+"/v1/teams", memberToken,
		`{"name":"Garuda FC"}`)
	if status != http.StatusConflict {
		t.Fatalf("duplicate team name: expected status 409, got %d", status)
	}

	// Deletes are superuser-only.
	status, _ = doJSON(t, client, http.MethodDelete, server.URL+"/v1/teams/"+teamID, memberToken, "")
	if status != http.StatusForbidden {
		t.Fatalf("member delete team: expected status 403, got %d", status)
	}

	rootToken := login(t, client, server.URL, "root@example.com", "supersecret")
	status, _ = doJSON(t, client, http.MethodDelete, server.URL+"/v1/teams/"+teamID, rootToken, "")
	if status != http.StatusOK {
		t.Fatalf("superuser delete team: expected status 200, got %d", status)
	}

	status, _ = doJSON(t, client, http.MethodGet, server.URL+"/v1/teams/"+teamID, rootToken, "")
	if status != http.StatusNotFound {
		t.Fatalf("get deleted team: expected status 404, got %d", status)
	}
}

func TestServer_AnonymousAccess(t *testing.T) {
	server := newTestServer(t)
	client := server.Client()

	status, _ := doJSON(t, client, http.MethodGet, server.URL+"/v1/leagues", "", "")
	if status != http.StatusOK {
		t.Fatalf("anonymous league list: expected status 200, got %d", status)
	}

	status, _ = doJSON(t, client, http.MethodGet, server.URL+"/v1/teams", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous team list: expected status 401, got %d", status)
	}

	resp, err := client.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: expected status 200, got %d", resp.StatusCode)
	}
}

func TestServer_MaintenanceRecomputeGuard(t *testing.T) {
	server := newTestServer(t)
	client := server.Client()

	status, _ := doJSON(t, client, http.MethodPost, server.URL+"/v1/internal/maintenance/recompute", "", `{}`)
	if status != http.StatusUnauthorized {
		t.Fatalf("recompute without job token: expected status 401, got %d", status)
	}

	req, err := http.NewRequest(http.MethodPost, server.URL+"/v1/internal/maintenance/recompute", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recompute with job token: expected status 200, got %d", resp.StatusCode)
	}
}
