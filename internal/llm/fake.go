package llm

import (
	"context"
	"encoding/json"
)

// FakeClient returns deterministic, minimal JSON payloads per phase for
// offline runs and tests.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(ctx context.Context, req Request) (*Response, error) {
	phase := PhaseFrom(ctx)
	var obj any
	switch phase {
	case "intent":
		obj = map[string]any{
			"product_type":         "saas",
			"target_audience":      "startup founders",
			"primary_value_prop":   "Ship your product faster",
			"secondary_value_props": []string{"Save engineering time", "Launch with confidence"},
			"tone":                 "professional",
			"urgency_level":        "medium",
			"price_point":          "mid",
			"keywords":             []string{"software", "productivity"},
		}
	case "blueprint":
		obj = map[string]any{
			"framework_rationale": "fake rationale",
			"sections": []any{
				map[string]any{"type": "hero", "purpose": "attention", "copy_guidelines": "Lead with the outcome."},
				map[string]any{"type": "features", "purpose": "interest", "copy_guidelines": "Show three concrete capabilities."},
				map[string]any{"type": "testimonials", "purpose": "proof", "copy_guidelines": "Quote a named customer."},
				map[string]any{"type": "cta", "purpose": "action", "copy_guidelines": "One unambiguous next step."},
			},
		}
	case "section", "regenerate":
		obj = map[string]any{
			"heading":    "Ship your product faster",
			"subheading": "Everything you need to go from idea to launch",
			"body_text":  "Teams use the platform to cut weeks off every release cycle.",
			"cta_text":   "Start Free Trial",
			"items": []any{
				map[string]any{"title": "Instant Deploys", "description": "Push to production in seconds."},
				map[string]any{"title": "Built-in Analytics", "description": "Know what works from day one."},
				map[string]any{"title": "Team Workflows", "description": "Review and ship together."},
			},
		}
	default:
		obj = map[string]any{}
	}
	b, _ := json.Marshal(obj)
	return &Response{
		Text:  string(b),
		Usage: Usage{InputTokens: (len(req.System) + len(req.User)) / 4, OutputTokens: len(b) / 4},
	}, nil
}
