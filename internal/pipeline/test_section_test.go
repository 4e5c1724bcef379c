package pipeline

import (
	"context"
	"strings"
	"testing"

	"pagecraft/internal/catalog"
	"pagecraft/internal/llm"
)

func testColors() catalog.ColorStrategy {
	return catalog.Default().Theme("dark")
}

func featurePlan() SectionPlan {
	return SectionPlan{
		Type:           catalog.SectionFeatures,
		Variant:        "grid-3",
		Tier:           catalog.TierPremium,
		Effects:        []string{"glassmorphism"},
		Purpose:        catalog.PurposeInterest,
		CopyGuidelines: "Three concrete automations.",
	}
}

func testGctx(index, total int) GenerationContext {
	return GenerationContext{
		Intent:      saasIntent(),
		ColorScheme: testColors(),
		Index:       index,
		Total:       total,
	}
}

func TestGenerateAppliesBlueprintStyling(t *testing.T) {
	client := &scriptClient{respond: func(phase string, req llm.Request) (string, error) {
		if phase != "section" {
			t.Fatalf("unexpected phase %q", phase)
		}
		return `{"heading":"Save hours on every close","subheading":"Automation that works",
			"items":[{"title":"Bank sync","description":"Live feeds."},
			         {"title":"Auto-categorize","description":"Rules engine."},
			         {"title":"One-click reports","description":"Board ready."}]}`, nil
	}}

	g := &SectionGenerator{LLM: client}
	section, usage, err := g.Generate(context.Background(), featurePlan(), testGctx(0, 4))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if section.ID != "section-features-1" {
		t.Errorf("id = %q", section.ID)
	}
	colors := testColors()
	if section.Content.BackgroundColor != colors.Background || section.Content.AccentColor != colors.Accent {
		t.Error("blueprint colors not applied")
	}
	if section.Content.Variant != "grid-3" {
		t.Errorf("variant = %q", section.Content.Variant)
	}
	if section.Style["glassmorphism"] != true || section.Style["tier"] != catalog.TierPremium {
		t.Errorf("premium style map = %v", section.Style)
	}
	if len(section.Items) != 3 {
		t.Errorf("items = %d", len(section.Items))
	}
	if usage.Total() != 30 {
		t.Errorf("usage total = %d", usage.Total())
	}
}

func TestGenerateFallbackFillsItems(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "Here are some testimonials you could use...", nil
	}}

	plan := SectionPlan{Type: catalog.SectionTestimonials, Variant: "cards", Tier: catalog.TierStandard}
	g := &SectionGenerator{LLM: client}
	section, _, err := g.Generate(context.Background(), plan, testGctx(2, 4))
	if err != nil {
		t.Fatalf("parse failure must not surface as error, got %v", err)
	}
	if section.ID != "section-testimonials-3" {
		t.Errorf("id = %q", section.ID)
	}
	if section.Content.Heading != saasIntent().PrimaryValueProp {
		t.Errorf("fallback heading = %q", section.Content.Heading)
	}
	want := []string{"Key Feature", "Another Feature", "Third Feature"}
	if len(section.Items) != len(want) {
		t.Fatalf("fallback items = %d, want %d", len(section.Items), len(want))
	}
	for i, title := range want {
		if section.Items[i].Title != title {
			t.Errorf("item %d title = %q, want %q", i, section.Items[i].Title, title)
		}
	}
}

func TestGenerateKeepsParsedEmptyItems(t *testing.T) {
	// A parsed section with no items is left empty so validation can
	// flag it; only the unparseable path gets default items.
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return `{"heading":"Why teams choose us","items":[]}`, nil
	}}

	g := &SectionGenerator{LLM: client}
	section, _, err := g.Generate(context.Background(), featurePlan(), testGctx(0, 4))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(section.Items) != 0 {
		t.Errorf("parsed empty items were defaulted: %v", section.Items)
	}
}

func TestGenerateThreadsPreviousSummary(t *testing.T) {
	var seen string
	client := &scriptClient{respond: func(_ string, req llm.Request) (string, error) {
		seen = req.User
		return `{"heading":"A heading with enough words"}`, nil
	}}

	gctx := testGctx(1, 4)
	gctx.Previous = []PageSection{{
		ID:   "section-hero-1",
		Type: catalog.SectionHero,
		Content: SectionContent{
			Heading:    "Close your books in minutes",
			Subheading: "Automated bookkeeping for founders",
		},
	}}

	g := &SectionGenerator{LLM: client}
	if _, _, err := g.Generate(context.Background(), featurePlan(), gctx); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(seen, "Close your books in minutes") {
		t.Error("previous section summary missing from prompt")
	}
}

func TestRegenerateKeepsIDAndFeedsBackIssues(t *testing.T) {
	var seen string
	client := &scriptClient{respond: func(phase string, req llm.Request) (string, error) {
		if phase != "regenerate" {
			t.Fatalf("unexpected phase %q", phase)
		}
		seen = req.User
		return `{"heading":"Three automations that close your books",
			"items":[{"title":"Bank sync"},{"title":"Rules"},{"title":"Reports"}]}`, nil
	}}

	old := PageSection{ID: "section-features-2", Type: catalog.SectionFeatures}
	issues := []QualityIssue{{
		Severity: SeverityError, SectionID: old.ID, Field: "items",
		Issue: "features section has no items", Suggestion: "regenerate with at least 3 items",
	}}

	g := &SectionGenerator{LLM: client}
	section, _, err := g.Regenerate(context.Background(), old, featurePlan(), testGctx(1, 4), issues)
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if section.ID != "section-features-2" {
		t.Errorf("regenerated section changed id: %q", section.ID)
	}
	if !strings.Contains(seen, "features section has no items") {
		t.Error("quality issues missing from regeneration prompt")
	}
	if len(section.Items) != 3 {
		t.Errorf("items = %d", len(section.Items))
	}
}

func TestGeneratePropagatesTransportErrors(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		return "", context.DeadlineExceeded
	}}
	g := &SectionGenerator{LLM: client}
	if _, _, err := g.Generate(context.Background(), featurePlan(), testGctx(0, 1)); err == nil {
		t.Fatal("transport error swallowed")
	}
}
