package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/betfinder/internal/usecase"
)

const maxAssistantBodyBytes = 64 << 10

func (h *Handler) AskAssistant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AskAssistant")
	defer span.End()

	var req assistantQueryRequest
	body := http.MaxBytesReader(w, r.Body, maxAssistantBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(&req); err != nil {
		writeAssistantError(ctx, w, fmt.Errorf("%w: invalid JSON body", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeAssistantError(ctx, w, err)
		return
	}

	userID := ""
	if principal, ok := principalFromContext(ctx); ok {
		userID = principal.UserID
	}

	result, err := h.assistantService.Ask(ctx, req.Question)
	if err != nil {
		mapped := mapError(ctx, err)
		if mapped.HTTPStatus >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "assistant query failed", "user_id", userID, "error", err)
		} else {
			h.logger.WarnContext(ctx, "assistant query rejected", "user_id", userID, "reason", mapped.Reason, "error", err)
		}
		writeAssistantError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "assistant query answered", "user_id", userID, "total_count", result.TotalCount)
	writeSuccess(ctx, w, http.StatusOK, assistantResultToDTO(result))
}
