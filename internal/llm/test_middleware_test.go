package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type flakyClient struct {
	failures int
	calls    int
}

func (c *flakyClient) Name() string { return "flaky" }
func (c *flakyClient) Close() error { return nil }
func (c *flakyClient) Generate(ctx context.Context, req Request) (*Response, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, errors.New("transient")
	}
	return &Response{Text: "{}"}, nil
}

func TestRetryRecoversTransientError(t *testing.T) {
	inner := &flakyClient{failures: 2}
	cli := Wrap(inner, Retry(3, time.Millisecond))

	if _, err := cli.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyClient{failures: 10}
	cli := Wrap(inner, Retry(2, time.Millisecond))

	if _, err := cli.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 2 {
		t.Fatalf("calls = %d, want 2", inner.calls)
	}
}

type permFailClient struct{ calls int }

func (c *permFailClient) Name() string { return "perm" }
func (c *permFailClient) Close() error { return nil }
func (c *permFailClient) Generate(ctx context.Context, req Request) (*Response, error) {
	c.calls++
	return nil, NewPermanentError(errors.New("bad request"))
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	inner := &permFailClient{}
	cli := Wrap(inner, Retry(5, time.Millisecond))

	_, err := cli.Generate(context.Background(), Request{})
	if !IsPermanent(err) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}
}

func TestRateLimitAcquireRespectsContext(t *testing.T) {
	// One token burst, slow refill: second call must block until cancel.
	inner := &flakyClient{}
	cli := Wrap(inner, RateLimit(0.1, 1))
	defer cli.Close()

	if _, err := cli.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := cli.Generate(ctx, Request{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second Generate() error = %v, want deadline exceeded", err)
	}
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next Client) Client {
			return clientFunc(func(ctx context.Context, req Request) (*Response, error) {
				order = append(order, tag)
				return next.Generate(ctx, req)
			})
		}
	}
	cli := Wrap(&flakyClient{}, mw("outer"), mw("inner"))
	if _, err := cli.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("order = %v", order)
	}
}

type clientFunc func(ctx context.Context, req Request) (*Response, error)

func (f clientFunc) Name() string { return "func" }
func (f clientFunc) Close() error { return nil }
func (f clientFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

func TestMultiLimitDisabledPassesThrough(t *testing.T) {
	inner := &flakyClient{}
	cli := Wrap(inner, MultiLimit(0, 0, 0))
	defer cli.Close()

	for i := 0; i < 5; i++ {
		if _, err := cli.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	}
	if inner.calls != 5 {
		t.Fatalf("calls = %d, want 5", inner.calls)
	}
}

func TestMultiLimitTokenBudgetBlocks(t *testing.T) {
	// 60 TPM means a 60-token burst; a large prompt must exceed it.
	inner := &flakyClient{}
	cli := Wrap(inner, MultiLimit(0, 0, 60))
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	big := Request{User: strings.Repeat("describe the product ", 100)}
	if _, err := cli.Generate(ctx, big); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Generate() error = %v, want deadline exceeded", err)
	}
	if inner.calls != 0 {
		t.Fatalf("calls = %d, want 0", inner.calls)
	}
}

func TestAcquireNWithinBurstIsImmediate(t *testing.T) {
	l := newRPSLimiter(10, 50)
	defer l.Stop()

	start := time.Now()
	if err := l.AcquireN(context.Background(), 50); err != nil {
		t.Fatalf("AcquireN() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("AcquireN took %v, want immediate", elapsed)
	}
}
