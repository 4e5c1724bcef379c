package pipeline

import (
	"context"
	"strings"
	"testing"

	"pagecraft/internal/llm"
)

// scriptClient answers each generate call through a phase-aware script
// and records the phases it saw.
type scriptClient struct {
	respond func(phase string, req llm.Request) (string, error)
	calls   []string
}

func (c *scriptClient) Name() string { return "script" }

func (c *scriptClient) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	phase := llm.PhaseFrom(ctx)
	c.calls = append(c.calls, phase)
	text, err := c.respond(phase, req)
	if err != nil {
		return nil, err
	}
	return &llm.Response{Text: text, Usage: llm.Usage{InputTokens: 10, OutputTokens: 20}}, nil
}

func (c *scriptClient) Close() error { return nil }

func (c *scriptClient) phaseCount(phase string) int {
	n := 0
	for _, p := range c.calls {
		if p == phase {
			n++
		}
	}
	return n
}

func TestAnalyzeParsesAndNormalizes(t *testing.T) {
	client := &scriptClient{respond: func(phase string, req llm.Request) (string, error) {
		if phase != "intent" {
			t.Fatalf("unexpected phase %q", phase)
		}
		return `{"product_type":"SaaS","target_audience":"startup founders",
			"primary_value_prop":"Close your books in minutes","tone":"shouty",
			"urgency_level":"medium","price_point":"mid","keywords":["bookkeeping"]}`, nil
	}}

	a := &IntentAnalyzer{LLM: client}
	intent, usage, err := a.Analyze(context.Background(), OrchestrationInput{Description: "Bookkeeping tool for startups"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if intent.ProductType != "saas" {
		t.Errorf("product type = %q, want saas", intent.ProductType)
	}
	if intent.Tone != DefaultTone {
		t.Errorf("unknown tone not coerced: %q", intent.Tone)
	}
	if intent.TargetAudience != "startup founders" {
		t.Errorf("target audience = %q", intent.TargetAudience)
	}
	if usage.Total() != 30 {
		t.Errorf("usage total = %d, want 30", usage.Total())
	}
}

func TestAnalyzeFallsBackOnUnparseableOutput(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "I'd be happy to help you build a landing page!", nil
	}}

	a := &IntentAnalyzer{LLM: client}
	desc := "Handmade ceramic mugs for coffee lovers. Each one is unique."
	intent, _, err := a.Analyze(context.Background(), OrchestrationInput{Description: desc})
	if err != nil {
		t.Fatalf("parse failure must not surface as error, got %v", err)
	}
	if intent.ProductType != DefaultProductType {
		t.Errorf("product type = %q, want %q", intent.ProductType, DefaultProductType)
	}
	if intent.PrimaryValueProp != "Handmade ceramic mugs for coffee lovers" {
		t.Errorf("value prop = %q", intent.PrimaryValueProp)
	}
	if len(intent.Keywords) == 0 {
		t.Error("fallback intent has no keywords")
	}
	for _, kw := range intent.Keywords {
		if len(kw) < 4 {
			t.Errorf("keyword %q shorter than 4 chars", kw)
		}
	}
}

func TestAnalyzePropagatesTransportErrors(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "", context.DeadlineExceeded
	}}

	a := &IntentAnalyzer{LLM: client}
	_, _, err := a.Analyze(context.Background(), OrchestrationInput{Description: "anything"})
	if err == nil {
		t.Fatal("transport error swallowed")
	}
}

func TestWizardOverridesWinOverInference(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return `{"product_type":"saas","target_audience":"everyone",
			"primary_value_prop":"Learn to code","tone":"professional",
			"urgency_level":"low","price_point":"mid"}`, nil
	}}

	a := &IntentAnalyzer{LLM: client}
	intent, _, err := a.Analyze(context.Background(), OrchestrationInput{
		Description: "Coding bootcamp",
		WizardData: &WizardData{
			Vibe:           "luxury",
			PageType:       "sales-funnel",
			TargetAudience: "career changers",
		},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if intent.Tone != "elegant" {
		t.Errorf("vibe luxury should map tone to elegant, got %q", intent.Tone)
	}
	if intent.ProductType != "course" {
		t.Errorf("page type sales-funnel should map product to course, got %q", intent.ProductType)
	}
	if intent.TargetAudience != "career changers" {
		t.Errorf("stated audience not applied: %q", intent.TargetAudience)
	}
}

func TestAnalyzeIncludesWizardDetailsInPrompt(t *testing.T) {
	var seen string
	client := &scriptClient{respond: func(_ string, req llm.Request) (string, error) {
		seen = req.User
		return `{"product_type":"agency"}`, nil
	}}

	a := &IntentAnalyzer{LLM: client}
	_, _, err := a.Analyze(context.Background(), OrchestrationInput{
		Description: "Design studio",
		WizardData:  &WizardData{ProductDescription: "Brand identity for fintechs", TargetAudience: "fintech founders"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !strings.Contains(seen, "Brand identity for fintechs") {
		t.Error("wizard product description missing from prompt")
	}
	if !strings.Contains(seen, "fintech founders") {
		t.Error("wizard audience missing from prompt")
	}
}

func TestAnalyzeEmptyDescriptionFullyPopulated(t *testing.T) {
	// Empty input plus unparseable generator output is the worst case;
	// the analyzer must still hand later phases a complete record.
	client := &scriptClient{respond: func(phase string, req llm.Request) (string, error) {
		return "I could not make sense of that.", nil
	}}

	a := &IntentAnalyzer{LLM: client}
	intent, _, err := a.Analyze(context.Background(), OrchestrationInput{Description: ""})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if intent.ProductType != DefaultProductType {
		t.Errorf("product type = %q", intent.ProductType)
	}
	if intent.TargetAudience == "" || intent.PrimaryValueProp == "" {
		t.Errorf("audience/value prop empty: %+v", intent)
	}
	if intent.Tone != DefaultTone || intent.UrgencyLevel != DefaultUrgency || intent.PricePoint != DefaultPricePoint {
		t.Errorf("enums not defaulted: %+v", intent)
	}
	if len(intent.Keywords) == 0 {
		t.Error("keywords must never be empty")
	}
}

func TestFallbackIntentEmptyDescriptionKeywords(t *testing.T) {
	intent := FallbackIntent("")
	if len(intent.Keywords) != 1 || intent.Keywords[0] != DefaultProductType {
		t.Errorf("keywords = %v, want [%s]", intent.Keywords, DefaultProductType)
	}
	if intent.PrimaryValueProp == "" {
		t.Error("value prop empty")
	}
}
