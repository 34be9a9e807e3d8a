package observability

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/betfinder/internal/config"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

const (
	betterStackQueueSize      = 1024
	defaultBetterStackBatch   = 100
	defaultBetterStackFlush   = 2 * time.Second
	defaultBetterStackTimeout = 3 * time.Second
)

// InitBetterStackCore returns a zap core that ships entries at or above
// BETTERSTACK_MIN_LEVEL in batches. A nil core means shipping is disabled.
func InitBetterStackCore(cfg config.Config, logger *logging.Logger) (zapcore.Core, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.BetterStackEnabled {
		logger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return nil, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeBetterStackEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	shipper := newBetterStackShipper(betterStackShipperConfig{
		endpoint:      endpoint,
		token:         strings.TrimSpace(cfg.BetterStackToken),
		timeout:       cfg.BetterStackTimeout,
		batchSize:     cfg.BetterStackBatchSize,
		flushInterval: cfg.BetterStackFlushInterval,
	})

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig()),
		zapcore.AddSync(shipper),
		cfg.BetterStackMinLevel,
	)

	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"batch_size", shipper.batchSize,
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)

	return core, func(ctx context.Context) error {
		drainCtx := ctx
		if drainCtx == nil {
			drainCtx = context.Background()
		}
		if _, hasDeadline := drainCtx.Deadline(); !hasDeadline {
			withTimeout, cancel := context.WithTimeout(drainCtx, 5*time.Second)
			defer cancel()
			drainCtx = withTimeout
		}
		if err := shipper.Close(drainCtx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		return nil
	}, nil
}

func normalizeBetterStackEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

type betterStackShipperConfig struct {
	endpoint      string
	token         string
	timeout       time.Duration
	batchSize     int
	flushInterval time.Duration
}

// betterStackShipper queues encoded log lines and posts them as a JSON array.
type betterStackShipper struct {
	endpoint      string
	token         string
	timeout       time.Duration
	batchSize     int
	flushInterval time.Duration
	client        *fasthttp.Client

	queue     chan []byte
	queueMu   sync.RWMutex
	closeOnce sync.Once
	closed    atomic.Bool
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	failed    atomic.Uint64
}

func newBetterStackShipper(cfg betterStackShipperConfig) *betterStackShipper {
	if cfg.timeout <= 0 {
		cfg.timeout = defaultBetterStackTimeout
	}
	if cfg.batchSize <= 0 {
		cfg.batchSize = defaultBetterStackBatch
	}
	if cfg.flushInterval <= 0 {
		cfg.flushInterval = defaultBetterStackFlush
	}

	s := &betterStackShipper{
		endpoint:      cfg.endpoint,
		token:         cfg.token,
		timeout:       cfg.timeout,
		batchSize:     cfg.batchSize,
		flushInterval: cfg.flushInterval,
		client: &fasthttp.Client{
			Name:                "betfinder-log-shipper",
			ReadTimeout:         cfg.timeout,
			WriteTimeout:        cfg.timeout,
			MaxIdleConnDuration: 30 * time.Second,
		},
		queue: make(chan []byte, betterStackQueueSize),
	}
	s.wg.Add(1)
	go s.run()

	return s
}

func (s *betterStackShipper) Write(p []byte) (int, error) {
	payload := bytes.TrimSpace(p)
	if len(payload) == 0 {
		return len(p), nil
	}

	s.queueMu.RLock()
	defer s.queueMu.RUnlock()
	if s.closed.Load() {
		return len(p), nil
	}

	// zap reuses its buffer once Write returns.
	copied := make([]byte, len(payload))
	copy(copied, payload)

	select {
	case s.queue <- copied:
	default:
		dropped := s.dropped.Add(1)
		if dropped == 1 || dropped%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full; dropped logs=%d\n", dropped)
		}
	}
	return len(p), nil
}

func (s *betterStackShipper) Sync() error {
	return nil
}

func (s *betterStackShipper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, s.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.send(batch)
		batch = batch[:0]
	}

	for {
		select {
		case line, ok := <-s.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, line)
			if len(batch) >= s.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (s *betterStackShipper) send(batch [][]byte) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	writeBatch(buf, batch)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.SetBodyRaw(buf.B)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		s.reportFailure("betterstack send logs failed: %v", err)
		return
	}
	if status := resp.StatusCode(); status >= fasthttp.StatusMultipleChoices {
		s.reportFailure("betterstack send logs got non-2xx status=%d", status)
	}
}

func (s *betterStackShipper) reportFailure(format string, args ...any) {
	failed := s.failed.Add(1)
	if failed == 1 || failed%50 == 0 {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// writeBatch renders lines as a JSON array; each line is already a JSON object.
func writeBatch(buf *bytebufferpool.ByteBuffer, batch [][]byte) {
	_ = buf.WriteByte('[')
	for i, line := range batch {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.Write(line)
	}
	_ = buf.WriteByte(']')
}

func (s *betterStackShipper) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.closeOnce.Do(func() {
		s.queueMu.Lock()
		s.closed.Store(true)
		close(s.queue)
		s.queueMu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
