package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/betfinder/internal/domain/assistant"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
	"github.com/riskibarqy/betfinder/internal/platform/sqlguard"
)

const (
	AssistantResultMatches = "matches"
	AssistantResultError   = "error"

	defaultAssistantQueryTimeout      = 5 * time.Second
	defaultAssistantMaxQuestionLength = 500
)

type AssistantConfig struct {
	QueryTimeout      time.Duration
	DefaultLimit      int
	MaxQuestionLength int
}

type AssistantResult struct {
	Type       string
	Message    string
	Matches    []EnrichedMatch
	TotalCount int
	SQL        string
	Intent     assistant.Intent
}

// AssistantService answers free-text questions: model → SQL guard → bounded execution → stats.
// Nothing in the pipeline is retried.
type AssistantService struct {
	llm    assistant.LLM
	runner assistant.QueryRunner
	guard  *sqlguard.Guard
	stats  *StatsService
	cfg    AssistantConfig
	logger *logging.Logger
}

func NewAssistantService(
	llm assistant.LLM,
	runner assistant.QueryRunner,
	statsService *StatsService,
	cfg AssistantConfig,
	logger *logging.Logger,
) *AssistantService {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaultAssistantQueryTimeout
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = sqlguard.DefaultLimit
	}
	if cfg.MaxQuestionLength <= 0 {
		cfg.MaxQuestionLength = defaultAssistantMaxQuestionLength
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AssistantService{
		llm:    llm,
		runner: runner,
		guard:  sqlguard.New(cfg.DefaultLimit),
		stats:  statsService,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *AssistantService) Ask(ctx context.Context, question string) (AssistantResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssistantService.Ask")
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return AssistantResult{}, errors.WithHint(
			fmt.Errorf("%w: question is required", ErrInvalidInput),
			"the question must not be empty",
		)
	}
	if utf8.RuneCountInString(question) > s.cfg.MaxQuestionLength {
		return AssistantResult{}, errors.WithHint(
			fmt.Errorf("%w: question exceeds %d characters", ErrInvalidInput, s.cfg.MaxQuestionLength),
			fmt.Sprintf("please keep the question under %d characters", s.cfg.MaxQuestionLength),
		)
	}
	if s.llm == nil {
		return AssistantResult{}, notConfigured(assistant.ErrNotConfigured)
	}

	s.logger.InfoContext(ctx, "assistant question received", "question_length", len(question))

	reply, err := s.llm.Complete(ctx, assistant.SystemPrompt, question)
	if err != nil {
		if errors.Is(err, assistant.ErrNotConfigured) {
			return AssistantResult{}, notConfigured(err)
		}
		if ctx.Err() != nil {
			return AssistantResult{}, ctx.Err()
		}
		s.logger.ErrorContext(ctx, "assistant completion failed", "error", err)
		return AssistantResult{}, errors.WithHint(
			fmt.Errorf("%w: language model: %w", ErrDependencyUnavailable, err),
			"the AI service is currently unavailable, please try again later",
		)
	}

	intent, err := assistant.ParseIntent(reply)
	if err != nil {
		s.logger.WarnContext(ctx, "assistant reply not parseable", "error", err, "reply_length", len(reply))
		return AssistantResult{}, err
	}
	span.SetAttributes(attribute.String("assistant.intent", intent.Intent))

	validated, err := s.guard.Validate(intent.SQL)
	if err != nil {
		s.logger.WarnContext(ctx, "assistant sql rejected", "error", err, "sql", intent.SQL)
		return AssistantResult{}, err
	}
	s.logger.InfoContext(ctx, "assistant sql validated", "sql", validated)

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	rows, err := s.runner.Run(runCtx, validated)
	timedOut := errors.Is(runCtx.Err(), context.DeadlineExceeded)
	cancel()
	if err != nil {
		if timedOut || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, assistant.ErrQueryCanceled) {
			s.logger.WarnContext(ctx, "assistant query timed out", "timeout", s.cfg.QueryTimeout.String(), "sql", validated)
			return AssistantResult{}, errors.WithHint(
				fmt.Errorf("%w: after %s", ErrQueryTimeout, s.cfg.QueryTimeout),
				"the request took too long, please try a simpler question",
			)
		}
		return AssistantResult{}, fmt.Errorf("run assistant query: %w", err)
	}

	enriched, err := s.stats.Enrich(ctx, rows)
	if err != nil {
		return AssistantResult{}, fmt.Errorf("enrich assistant matches: %w", err)
	}

	message := intent.Explanation
	if message == "" {
		message = fmt.Sprintf("%d matches found", len(enriched))
	}

	return AssistantResult{
		Type:       AssistantResultMatches,
		Message:    message,
		Matches:    enriched,
		TotalCount: len(enriched),
		SQL:        validated,
		Intent:     intent,
	}, nil
}

func notConfigured(err error) error {
	return errors.WithHint(
		fmt.Errorf("%w: %w", ErrDependencyUnavailable, err),
		"the AI service is not configured, please contact the administrator",
	)
}
