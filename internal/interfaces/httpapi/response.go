package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/betfinder/internal/domain/assistant"
	"github.com/riskibarqy/betfinder/internal/domain/stats"
	"github.com/riskibarqy/betfinder/internal/platform/sqlguard"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "betfinder"

	internalErrorMessage = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// mappedError.Friendly is shown to end users when the error carries no hint.
type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	Friendly   string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error:      errorBody(mapped, err),
	})
}

// writeAssistantError adds a chat-style data payload next to the error so the
// client can render the failure as an assistant reply.
func writeAssistantError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeAssistantError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data: assistantReplyDTO{
			Type:    usecase.AssistantResultError,
			Message: friendlyMessage(mapped, err),
			Matches: []matchDTO{},
		},
		Error: errorBody(mapped, err),
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: internalErrorMessage,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: internalErrorMessage,
				},
			},
		},
	})
}

func errorBody(mapped mappedError, err error) *googleErrorBody {
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = internalErrorMessage
	}

	return &googleErrorBody{
		Code:    mapped.HTTPStatus,
		Message: message,
		Status:  mapped.Status,
		Errors: []googleErrorItem{
			{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: message,
			},
		},
	}
}

func friendlyMessage(mapped mappedError, err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return mapped.Friendly
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, assistant.ErrTranslation):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "translationFailed",
			Status:     "FAILED_PRECONDITION",
			Friendly:   "could not understand the question, please rephrase it",
		}
	case errors.Is(err, sqlguard.ErrForbiddenStatement),
		errors.Is(err, sqlguard.ErrDangerousOperation),
		errors.Is(err, sqlguard.ErrInvalidTable):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "unsafeQuery",
			Status:     "INVALID_ARGUMENT",
			Friendly:   "the generated query was rejected, please rephrase the question",
		}
	case errors.Is(err, usecase.ErrQueryTimeout), errors.Is(err, context.DeadlineExceeded):
		return mappedError{
			HTTPStatus: http.StatusGatewayTimeout,
			Reason:     "queryTimeout",
			Status:     "DEADLINE_EXCEEDED",
			Friendly:   "the request took too long, please try a simpler question",
		}
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, stats.ErrUnknownRole),
		errors.Is(err, stats.ErrUnknownOutcome):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
			Friendly:   "the request is invalid",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
			Friendly:   "nothing was found",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
			Friendly:   "please sign in again",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
			Friendly:   "the service is temporarily unavailable, please try again later",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
			Friendly:   "an unexpected error occurred",
		}
	}
}
