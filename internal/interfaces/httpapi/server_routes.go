package httpapi

import "net/http"

// handleRoute registers h and names the request span after the matched
// pattern, so /v1/teams/{name} is one span name rather than one per team.
func handleRoute(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nameServerSpan(r)
		h(w, r)
	}))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	handleRoute(mux, "GET /healthz", handler.Healthz)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	handleRoute(mux, "POST /v1/teams", handler.RegisterTeam)
	handleRoute(mux, "GET /v1/teams", handler.ListTeams)
	handleRoute(mux, "GET /v1/teams/{name}", handler.GetTeamDetails)
	handleRoute(mux, "PUT /v1/teams/{name}", handler.EditTeam)
	// Wipes every team and match; audit history is kept.
	handleRoute(mux, "DELETE /v1/data", handler.ClearAll)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	handleRoute(mux, "POST /v1/matches", handler.AddMatch)
	handleRoute(mux, "GET /v1/matches", handler.ListMatches)
	handleRoute(mux, "GET /v1/matches/{matchID}", handler.GetMatch)
	handleRoute(mux, "PUT /v1/matches/{matchID}", handler.EditMatch)
}

func registerRankingRoutes(mux *http.ServeMux, handler *Handler) {
	handleRoute(mux, "GET /v1/rankings", handler.GetStandings)
	handleRoute(mux, "GET /v1/rankings/{group}", handler.GetGroupStanding)
	handleRoute(mux, "POST /v1/rankings", handler.ComputeStandings)
}

func registerLogRoutes(mux *http.ServeMux, handler *Handler) {
	handleRoute(mux, "GET /v1/logs", handler.ListLogs)
	handleRoute(mux, "POST /v1/logs", handler.RecordLog)
}
