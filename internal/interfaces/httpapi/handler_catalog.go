package httpapi

import "net/http"

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.catalogService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionsToDTO(items))
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	overview, err := h.catalogService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "database overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}
