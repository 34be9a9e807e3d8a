package httpapi

import (
	"net/http"

	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
	traceBodyBytes int,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerMatchRoutes(mux, handler, verifier)
	registerCatalogRoutes(mux, handler, verifier)
	registerAssistantRoutes(mux, handler, verifier)

	return RequestTracing(CaptureRequestBody(traceBodyBytes, RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
