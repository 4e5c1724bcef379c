package llm

import "context"

// PromptHook observes generator calls. Before runs ahead of the API call,
// After runs with the raw response or the error.
type PromptHook interface {
	Before(ctx context.Context, phase string, req Request)
	After(ctx context.Context, phase string, resp *Response, err error)
}

type ctxKeyHook struct{}

// WithHook attaches a PromptHook to the context used by Generate.
func WithHook(ctx context.Context, hook PromptHook) context.Context {
	return context.WithValue(ctx, ctxKeyHook{}, hook)
}

// HookFrom returns the hook stored in the context.
func HookFrom(ctx context.Context) PromptHook {
	if v := ctx.Value(ctxKeyHook{}); v != nil {
		if h, ok := v.(PromptHook); ok {
			return h
		}
	}
	return nil
}
