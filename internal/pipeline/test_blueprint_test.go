package pipeline

import (
	"context"
	"testing"

	"pagecraft/internal/catalog"
	"pagecraft/internal/llm"
)

func saasIntent() PageIntent {
	return PageIntent{
		ProductType:      "saas",
		TargetAudience:   "startup founders",
		PrimaryValueProp: "Close your books in minutes",
		Tone:             "bold",
		UrgencyLevel:     "medium",
		PricePoint:       "mid",
		Keywords:         []string{"bookkeeping", "automation"},
	}
}

func TestPlanUsesGeneratorSequence(t *testing.T) {
	client := &scriptClient{respond: func(phase string, req llm.Request) (string, error) {
		if phase != "blueprint" {
			t.Fatalf("unexpected phase %q", phase)
		}
		return `{"framework_rationale":"Founders respond to outcome-first framing.",
			"sections":[
				{"type":"hero","purpose":"attention","copy_guidelines":"Lead with time saved."},
				{"type":"features","purpose":"interest","copy_guidelines":"Three automations.","key_elements":["bank sync"]},
				{"type":"social-proof","purpose":"proof","copy_guidelines":"Named customers."},
				{"type":"cta","purpose":"action","copy_guidelines":"Free trial."}
			]}`, nil
	}}

	p := &BlueprintPlanner{LLM: client, Catalog: catalog.Default()}
	bp, usage, err := p.Plan(context.Background(), saasIntent(), OrchestrationInput{})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if bp.CopyFramework != catalog.FrameworkAIDA {
		t.Errorf("framework = %s, want AIDA", bp.CopyFramework)
	}
	if bp.FrameworkRationale != "Founders respond to outcome-first framing." {
		t.Errorf("rationale = %q", bp.FrameworkRationale)
	}
	if len(bp.SectionSequence) != 4 {
		t.Fatalf("sections = %d, want 4", len(bp.SectionSequence))
	}
	if bp.SectionSequence[2].Type != catalog.SectionTestimonials {
		t.Errorf("social-proof alias not normalized, got %s", bp.SectionSequence[2].Type)
	}
	if bp.SectionSequence[1].KeyElements[0] != "bank sync" {
		t.Error("key elements dropped")
	}
	for i, s := range bp.SectionSequence {
		if s.Variant == "" {
			t.Errorf("section %d has no variant", i)
		}
	}
	if usage.Total() != 30 {
		t.Errorf("usage total = %d", usage.Total())
	}
}

func TestPlanFallsBackToPatternFlow(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "Sure! Here's a plan for your page:", nil
	}}

	p := &BlueprintPlanner{LLM: client, Catalog: catalog.Default()}
	bp, _, err := p.Plan(context.Background(), saasIntent(), OrchestrationInput{})
	if err != nil {
		t.Fatalf("parse failure must not surface as error, got %v", err)
	}
	if len(bp.SectionSequence) != 10 {
		t.Fatalf("fallback sections = %d, want the full saas flow of 10", len(bp.SectionSequence))
	}
	if bp.SectionSequence[0].Type != catalog.SectionHero {
		t.Errorf("fallback flow starts with %s, want hero", bp.SectionSequence[0].Type)
	}
	for i, s := range bp.SectionSequence {
		if s.CopyGuidelines == "" {
			t.Errorf("fallback section %d (%s) has no guidance", i, s.Type)
		}
		if s.Variant == "" {
			t.Errorf("fallback section %d has no variant", i)
		}
	}
	if bp.FrameworkRationale == "" {
		t.Error("fallback blueprint has no rationale")
	}
}

func TestPlanHonorsSectionCountPreference(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "not json", nil
	}}
	p := &BlueprintPlanner{LLM: client, Catalog: catalog.Default()}

	for _, tc := range []struct{ pref, want int }{
		{5, 5},
		{1, 3},
		{20, 10}, // clamp hits 12, flow only has 10
	} {
		bp, _, err := p.Plan(context.Background(), saasIntent(), OrchestrationInput{
			Preferences: &Preferences{SectionCount: tc.pref},
		})
		if err != nil {
			t.Fatalf("Plan(pref=%d): %v", tc.pref, err)
		}
		if len(bp.SectionSequence) != tc.want {
			t.Errorf("pref %d: sections = %d, want %d", tc.pref, len(bp.SectionSequence), tc.want)
		}
	}
}

func TestPlanAppliesWizardThemeAndFonts(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "not json", nil
	}}
	p := &BlueprintPlanner{LLM: client, Catalog: catalog.Default()}

	bp, _, err := p.Plan(context.Background(), saasIntent(), OrchestrationInput{
		WizardData: &WizardData{ColorTheme: "ocean", FontPair: "classic"},
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := catalog.Default().Theme("ocean")
	if bp.ColorStrategy.Background != want.Background {
		t.Errorf("background = %s, want %s", bp.ColorStrategy.Background, want.Background)
	}
	if bp.Typography != catalog.Default().FontPair("classic") {
		t.Errorf("typography = %+v", bp.Typography)
	}
}

func TestPlanPropagatesTransportErrors(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "", context.DeadlineExceeded
	}}
	p := &BlueprintPlanner{LLM: client, Catalog: catalog.Default()}
	if _, _, err := p.Plan(context.Background(), saasIntent(), OrchestrationInput{}); err == nil {
		t.Fatal("transport error swallowed")
	}
}
