package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/betfinder/internal/platform/logging"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

type Handler struct {
	matchService     *usecase.MatchService
	statsService     *usecase.StatsService
	catalogService   *usecase.CatalogService
	assistantService *usecase.AssistantService
	logger           *logging.Logger
	validator        *validator.Validate
	now              func() time.Time
}

func NewHandler(
	matchService *usecase.MatchService,
	statsService *usecase.StatsService,
	catalogService *usecase.CatalogService,
	assistantService *usecase.AssistantService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:     matchService,
		statsService:     statsService,
		catalogService:   catalogService,
		assistantService: assistantService,
		logger:           logger,
		validator:        validator.New(),
		now:              time.Now,
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
