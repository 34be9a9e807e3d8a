package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
	mux.Handle("GET /v1/teams/{teamID}/history", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamHistory)))
	mux.Handle("GET /v1/teams/{teamID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamStats)))
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/competitions", RequireAuth(verifier, http.HandlerFunc(handler.ListCompetitions)))
	mux.Handle("GET /v1/overview", RequireAuth(verifier, http.HandlerFunc(handler.GetOverview)))
}

func registerAssistantRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/assistant/query", RequireAuth(verifier, http.HandlerFunc(handler.AskAssistant)))
}
