package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	"github.com/riskibarqy/group-stage/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
	"github.com/riskibarqy/group-stage/internal/usecase"
)

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	auditService := usecase.NewAuditLogService(memory.NewAuditLogRepository())
	guard := usecase.NewWriteGuard()

	handler := NewHandler(
		usecase.NewTeamService(teamRepo, matchRepo, guard, memory.NewTransactor(teamRepo, matchRepo), auditService, logger),
		usecase.NewMatchService(teamRepo, matchRepo, guard, auditService, logger),
		usecase.NewRankingService(teamRepo, matchRepo, tournament.DefaultRules()),
		auditService,
		logger,
	)

	return NewRouter(handler, logger, nil)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var payload *bytes.Reader
	if body == "" {
		payload = bytes.NewReader(nil)
	} else {
		payload = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestHandler_RegisterTeam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "created", body: `{"name":"Theta","date":"09/04","group":2}`, status: http.StatusCreated},
		{name: "duplicate name", body: `{"name":"Alpha","date":"09/04","group":1}`, status: http.StatusConflict},
		{name: "bad date", body: `{"name":"Iota","date":"32/01","group":1}`, status: http.StatusBadRequest},
		{name: "missing group", body: `{"name":"Iota","date":"01/01"}`, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"name":"Iota","date":"01/01","group":1,"city":"x"}`, status: http.StatusBadRequest},
		{name: "malformed json", body: `{"name":`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/teams", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d body=%s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_RegisterTeamReturnsCreatedTeam(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/teams", `{"name":" Theta ","date":"09/04","group":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	body := decodeBody[teamDTO](t, rec)
	if body.Data.Name != "Theta" || body.Data.RegistrationDate != "09/04" || body.Data.Group != 2 {
		t.Fatalf("unexpected team payload: %+v", body.Data)
	}
}

func TestHandler_AddMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "created", body: `{"team_a":"Alpha","team_b":"Gamma","goals_a":1,"goals_b":2}`, status: http.StatusCreated},
		{name: "duplicate reversed pair", body: `{"team_a":"Beta","team_b":"Alpha","goals_a":0,"goals_b":0}`, status: http.StatusConflict},
		{name: "cross group", body: `{"team_a":"Alpha","team_b":"Zeta","goals_a":0,"goals_b":0}`, status: http.StatusBadRequest},
		{name: "self match", body: `{"team_a":"Alpha","team_b":"Alpha","goals_a":0,"goals_b":0}`, status: http.StatusBadRequest},
		{name: "unknown team", body: `{"team_a":"Alpha","team_b":"Nobody","goals_a":0,"goals_b":0}`, status: http.StatusNotFound},
		{name: "negative goals", body: `{"team_a":"Alpha","team_b":"Gamma","goals_a":-1,"goals_b":0}`, status: http.StatusBadRequest},
		{name: "missing goals", body: `{"team_a":"Alpha","team_b":"Gamma","goals_a":1}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/matches", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d body=%s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_EditTeamCascadesRename(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPut, "/v1/teams/Alpha", `{"name":"Omega","date":"01/01","group":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	got := decodeBody[matchDTO](t, rec)
	if got.Data.TeamA != "Omega" || got.Data.TeamB != "Beta" || got.Data.GoalsA != 3 {
		t.Fatalf("expected renamed match, got %+v", got.Data)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/teams/Alpha", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected old name to be gone, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/teams/Omega", "")
	details := decodeBody[teamDetailDTO](t, rec)
	if len(details.Data.Matches) != 1 || details.Data.Matches[0].ID != 1 {
		t.Fatalf("expected renamed team to keep its match, got %+v", details.Data)
	}
}

func TestHandler_EditTeamRejectsTakenName(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodPut, "/v1/teams/Alpha", `{"name":"Beta","date":"01/01","group":1}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestHandler_EditMatch(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPut, "/v1/matches/1", `{"team_a":"Alpha","team_b":"Beta","goals_a":0,"goals_b":4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPut, "/v1/matches/99", `{"team_a":"Alpha","team_b":"Beta","goals_a":0,"goals_b":4}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_GetStandings(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/v1/rankings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeBody[[]groupStandingDTO](t, rec)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(body.Data))
	}

	groupOne := body.Data[0]
	want := []string{"Alpha", "Gamma", "Delta", "Beta"}
	if groupOne.Group != 1 || len(groupOne.Entries) != len(want) {
		t.Fatalf("unexpected group one: %+v", groupOne)
	}
	for i, name := range want {
		entry := groupOne.Entries[i]
		if entry.Team != name || entry.Position != i+1 || !entry.Qualified {
			t.Fatalf("entry %d: got %+v want team=%s", i, entry, name)
		}
	}
	if groupOne.Entries[0].TotalPoints != 3 || groupOne.Entries[0].AlternatePoints != 5 {
		t.Fatalf("unexpected leader tally: %+v", groupOne.Entries[0])
	}
}

func TestHandler_GetGroupStanding(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	tests := []struct {
		path   string
		status int
	}{
		{path: "/v1/rankings/2", status: http.StatusOK},
		{path: "/v1/rankings/9", status: http.StatusNotFound},
		{path: "/v1/rankings/0", status: http.StatusBadRequest},
		{path: "/v1/rankings/x", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := doRequest(t, router, http.MethodGet, tt.path, "")
		if rec.Code != tt.status {
			t.Fatalf("GET %s: expected status %d, got %d", tt.path, tt.status, rec.Code)
		}
	}
}

func TestHandler_ComputeStandings(t *testing.T) {
	t.Parallel()

	body := `{
		"teams": [
			{"name":"Red","date":"05/05","group":1},
			{"name":"Blue","date":"01/05","group":1}
		],
		"matches": [
			{"team_a":"Red","team_b":"Blue","goals_a":1,"goals_b":1}
		]
	}`
	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/rankings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	got := decodeBody[[]groupStandingDTO](t, rec)
	if len(got.Data) != 1 || len(got.Data[0].Entries) != 2 {
		t.Fatalf("unexpected standings: %+v", got.Data)
	}
	if got.Data[0].Entries[0].Team != "Blue" {
		t.Fatalf("expected earlier registration to rank first on a full tie, got %+v", got.Data[0].Entries)
	}
}

func TestHandler_ClearAllAndLogs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodDelete, "/v1/data", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/teams", "")
	teams := decodeBody[[]teamDTO](t, rec)
	if len(teams.Data) != 0 {
		t.Fatalf("expected no teams after clear, got %d", len(teams.Data))
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/logs", "")
	logs := decodeBody[[]logEntryDTO](t, rec)
	if len(logs.Data) != 1 || logs.Data[0].Message != "All teams and matches deleted" {
		t.Fatalf("unexpected audit log: %+v", logs.Data)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/logs", `{"message":"manual note"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
}

func TestHandler_RecoversPanic(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/v1/teams", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
