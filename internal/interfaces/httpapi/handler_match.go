package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/betfinder/internal/domain/stats"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	filter, err := parseMatchFilter(query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	thresholds, err := parseThresholds(query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.List(ctx, usecase.MatchListInput{Filter: filter, Thresholds: thresholds})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{
		Count:   len(items),
		Matches: enrichedMatchesToDTO(items),
	})
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := parsePositiveID(r.PathValue("matchID"), "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GetTeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamHistory")
	defer span.End()

	teamID, err := parsePositiveID(r.PathValue("teamID"), "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	role, err := stats.ParseRole(r.URL.Query().Get("location"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	outcome, err := stats.ParseOutcome(r.URL.Query().Get("type"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.statsService.History(ctx, teamID, role, outcome)
	if err != nil {
		h.logger.WarnContext(ctx, "get team history failed", "team_id", teamID, "location", role, "type", outcome, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamHistoryDTO{
		TeamID:   teamID,
		Location: string(role),
		Type:     string(outcome),
		Count:    len(items),
		Matches:  matchesToDTO(items),
	})
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID, err := parsePositiveID(r.PathValue("teamID"), "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	role, err := stats.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	before, err := parseDateParam(r.URL.Query(), "before")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	cutoff := h.now().UTC()
	if before != nil {
		cutoff = *before
	}

	window, err := h.statsService.Window(ctx, teamID, role, cutoff)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "role", role, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsDTO{
		TeamID: teamID,
		Role:   string(role),
		Before: cutoff.Format(time.RFC3339),
		Stats:  windowToDTO(window),
	})
}
