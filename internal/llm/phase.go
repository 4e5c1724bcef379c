package llm

import "context"

type ctxKeyPhase struct{}

// WithPhase tags the context with the pipeline phase issuing the call
// ("intent", "blueprint", "section", "regenerate"). Middleware and the
// fake client read it back via PhaseFrom.
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// PhaseFrom returns the phase string stored in the context.
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}
