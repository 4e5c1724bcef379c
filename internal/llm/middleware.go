package llm

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"
)

// Middleware decorates a Client to inject cross-cutting concerns
// (rate limiting, retries, logging, hooks).
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Rate limiting --------

// RateLimit limits request rate using a token-bucket limiter.
// If rps <= 0, the limiter is effectively disabled.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Client) Client {
		rl := newRPSLimiter(rps, burst) // nil when disabled
		return &rateLimited{next: next, rl: rl}
	}
}

type rateLimited struct {
	next Client
	rl   *rpsLimiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error {
	c.rl.Stop()
	return c.next.Close()
}
func (c *rateLimited) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := c.rl.Acquire(ctx); err != nil {
		return nil, err
	}
	return c.next.Generate(ctx, req)
}

// RateLimitFromEnv reads RPS/BURST from environment variables with the
// given prefixes in priority order. For example, ("LLM","GEMINI")
// checks LLM_RPS/LLM_BURST first, then GEMINI_RPS/GEMINI_BURST.
func RateLimitFromEnv(prefixes ...string) Middleware {
	find := func(suffix string) string {
		for _, p := range prefixes {
			if p == "" {
				continue
			}
			if v := os.Getenv(p + suffix); v != "" {
				return v
			}
		}
		return ""
	}
	rps, _ := strconv.ParseFloat(find("_RPS"), 64)
	burst, _ := strconv.Atoi(find("_BURST"))
	return RateLimit(rps, burst)
}

// -------- RPM/RPD/TPM combined limiter --------

// MultiLimit combines requests-per-minute, requests-per-day and
// tokens-per-minute limits. Pass 0 to disable any of them. The token
// limiter is fed an estimate of prompt size, roughly four characters
// per token.
func MultiLimit(rpm, rpd, tpm int) Middleware {
	var rpmL, rpdL, tpmL *rpsLimiter
	if rpm > 0 {
		rpmL = newRPSLimiter(float64(rpm)/60.0, rpm)
	}
	if rpd > 0 {
		rpdL = newRPSLimiter(float64(rpd)/86400.0, rpd)
	}
	if tpm > 0 {
		tpmL = newRPSLimiter(float64(tpm)/60.0, tpm)
	}
	return func(next Client) Client {
		return &multiLimited{next: next, rpm: rpmL, rpd: rpdL, tpm: tpmL}
	}
}

// MultiLimitFromEnv reads _RPM, _RPD and _TPM integers using the given
// env prefixes in priority order.
func MultiLimitFromEnv(prefixes ...string) Middleware {
	find := func(suffix string) int {
		for _, p := range prefixes {
			if p == "" {
				continue
			}
			if v := os.Getenv(p + suffix); v != "" {
				n, _ := strconv.Atoi(v)
				return n
			}
		}
		return 0
	}
	return MultiLimit(find("_RPM"), find("_RPD"), find("_TPM"))
}

type multiLimited struct {
	next Client
	rpm  *rpsLimiter
	rpd  *rpsLimiter
	tpm  *rpsLimiter
}

func (m *multiLimited) Name() string { return m.next.Name() }
func (m *multiLimited) Close() error {
	m.rpm.Stop()
	m.rpd.Stop()
	m.tpm.Stop()
	return m.next.Close()
}

func (m *multiLimited) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := m.rpm.Acquire(ctx); err != nil {
		return nil, err
	}
	if err := m.rpd.Acquire(ctx); err != nil {
		return nil, err
	}
	if m.tpm != nil {
		if err := m.tpm.AcquireN(ctx, estimateTokens(req)); err != nil {
			return nil, err
		}
	}
	return m.next.Generate(ctx, req)
}

func estimateTokens(req Request) int {
	n := (len(req.System) + len(req.User)) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// -------- Retry with exponential backoff --------

// Retry retries Generate up to maxAttempts with exponential backoff
// starting at baseDelay. Permanent errors and context cancellation stop
// the loop immediately.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Client) Client {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Client
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }
func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	var last error
	for i := 0; i < r.max; i++ {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		last = err
		if IsPermanent(err) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		time.Sleep(r.base * time.Duration(1<<i))
	}
	return nil, last
}

// -------- Logging & Hooks --------

// WithLogging logs request size, usage and errors. Provide a custom logger
// or nil to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Client
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }
func (l *logging) Generate(ctx context.Context, req Request) (*Response, error) {
	l.log.Printf("LLM request (%s): %d bytes", PhaseFrom(ctx), len(req.System)+len(req.User))
	resp, err := l.next.Generate(ctx, req)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", PhaseFrom(ctx), err)
	} else {
		l.log.Printf("LLM response (%s): %d tokens in / %d out",
			PhaseFrom(ctx), resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	return resp, err
}

// WithHooks calls HookFrom(ctx).Before/After around Generate.
// If no hook is present in the context, it is a no-op.
func WithHooks() Middleware {
	return func(next Client) Client {
		return &hooked{next: next}
	}
}

type hooked struct{ next Client }

func (h *hooked) Name() string { return h.next.Name() }
func (h *hooked) Close() error { return h.next.Close() }
func (h *hooked) Generate(ctx context.Context, req Request) (*Response, error) {
	if hook := HookFrom(ctx); hook != nil {
		hook.Before(ctx, PhaseFrom(ctx), req)
	}
	resp, err := h.next.Generate(ctx, req)
	if hook := HookFrom(ctx); hook != nil {
		hook.After(ctx, PhaseFrom(ctx), resp, err)
	}
	return resp, err
}
