package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/betfinder/internal/domain/assistant"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
	"github.com/riskibarqy/betfinder/internal/platform/resilience"
)

const (
	DefaultModel     = string(sdk.ModelClaudeSonnet4_5)
	DefaultMaxTokens = 1024
	DefaultTimeout   = 30 * time.Second
)

type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int64
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client sends one system+user exchange to the Messages API and returns the text reply.
type Client struct {
	messages  *sdk.MessageService
	model     sdk.Model
	maxTokens int64
	breaker   *resilience.CircuitBreaker
	logger    *logging.Logger
}

// New returns nil when no API key is configured so callers can report the
// assistant as unavailable instead of failing on every request.
func New(cfg Config, logger *logging.Logger) *Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := sdk.NewClient(opts...)
	return &Client{
		messages:  &client.Messages,
		model:     sdk.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		breaker:   resilience.NewFromConfig(cfg.CircuitBreaker),
		logger:    logger.Named("anthropic"),
	}
}

func (c *Client) Complete(ctx context.Context, system, question string) (string, error) {
	if c == nil || c.messages == nil {
		return "", assistant.ErrNotConfigured
	}

	var reply string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		started := time.Now()
		msg, err := c.messages.New(ctx, sdk.MessageNewParams{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			System:    []sdk.TextBlockParam{{Text: system}},
			Messages: []sdk.MessageParam{
				sdk.NewUserMessage(sdk.NewTextBlock(question)),
			},
		})
		if err != nil {
			return err
		}

		reply = collectText(msg.Content)
		c.logger.DebugContext(ctx, "anthropic completion",
			"model", string(c.model),
			"duration_ms", time.Since(started).Milliseconds(),
			"input_tokens", msg.Usage.InputTokens,
			"output_tokens", msg.Usage.OutputTokens,
		)
		return nil
	})
	if err != nil {
		return "", classifyError(err)
	}
	return reply, nil
}

func collectText(blocks []sdk.ContentBlockUnion) string {
	var out strings.Builder
	for _, block := range blocks {
		if block.Type != "text" {
			continue
		}
		out.WriteString(block.Text)
	}
	return out.String()
}

func classifyError(err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("anthropic messages: %w", err)
	}

	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: anthropic rejected credentials (status %d)", assistant.ErrNotConfigured, apiErr.StatusCode)
		default:
			return fmt.Errorf("anthropic messages status %d: %w", apiErr.StatusCode, err)
		}
	}
	return fmt.Errorf("anthropic messages: %w", err)
}
