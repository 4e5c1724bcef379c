package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pagecraft/internal/catalog"
	"pagecraft/internal/llm"
)

const testIntentJSON = `{"product_type":"saas","target_audience":"startup founders",
	"primary_value_prop":"Close your books in minutes","tone":"bold",
	"urgency_level":"medium","price_point":"mid","keywords":["bookkeeping"]}`

const goodSectionJSON = `{"heading":"Save hours on every monthly close",
	"subheading":"Automated bookkeeping built for founders",
	"cta_text":"Start your free trial","cta_link":"#cta",
	"items":[{"title":"Bank sync","description":"Live transaction feeds."},
	         {"title":"Auto-categorize","description":"A rules engine that learns."},
	         {"title":"One-click reports","description":"Board-ready in seconds."}]}`

// happyScript answers every phase with valid output. Blueprint output is
// deliberately unparseable so the run exercises the pattern-flow fallback
// deterministically.
func happyScript(phase string, req llm.Request) (string, error) {
	switch phase {
	case "intent":
		return testIntentJSON, nil
	case "blueprint":
		return "no json here", nil
	default:
		return goodSectionJSON, nil
	}
}

func newTestOrchestrator(client llm.Client) *Orchestrator {
	o := NewOrchestrator(client)
	return o
}

func TestRunProducesCompletePage(t *testing.T) {
	client := &scriptClient{respond: happyScript}
	o := newTestOrchestrator(client)

	var events []ProgressEvent
	o.OnProgress = func(ev ProgressEvent) { events = append(events, ev) }

	four := 4
	result, err := o.Run(context.Background(), OrchestrationInput{
		Description: "Automated bookkeeping for startups",
		Preferences: &Preferences{SectionCount: four},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success {
		t.Fatalf("result not successful: %s", result.Error)
	}
	if len(result.Page.Sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(result.Page.Sections))
	}

	// saas flow prefix: hero, logos, problem, features.
	wantIDs := []string{"section-hero-1", "section-logos-2", "section-problem-3", "section-features-4"}
	for i, id := range wantIDs {
		if result.Page.Sections[i].ID != id {
			t.Errorf("section %d id = %q, want %q", i, result.Page.Sections[i].ID, id)
		}
	}

	// intent + blueprint + 4 sections, 30 tokens each.
	if result.Metadata.TokensUsed != 180 {
		t.Errorf("tokens used = %d, want 180", result.Metadata.TokensUsed)
	}
	if result.Metadata.QualityScore != 100 {
		t.Errorf("quality score = %d; page should be clean", result.Metadata.QualityScore)
	}
	if !result.Page.SmoothScroll {
		t.Error("smooth scroll default not set")
	}
	if result.Page.Description != "Close your books in minutes" {
		t.Errorf("page description = %q", result.Page.Description)
	}

	wantPhases := []string{PhaseUnderstanding, PhasePlanning, PhaseGenerating, PhaseValidating, PhaseComplete}
	seen := map[string]bool{}
	for _, ev := range events {
		seen[ev.Phase] = true
	}
	for _, phase := range wantPhases {
		if !seen[phase] {
			t.Errorf("no progress event for phase %s", phase)
		}
	}
	if seen[PhaseRegenerating] {
		t.Error("clean run should not regenerate")
	}
	if last := events[len(events)-1]; last.Phase != PhaseComplete || last.Progress != 100 {
		t.Errorf("final event = %+v", last)
	}
}

// badFeaturesJSON carries three error-severity issues (two placeholder
// fields plus no items), scoring 55 and pulling the page below the
// refinement floor.
const badFeaturesJSON = `{"heading":"[Your headline here]",
	"subheading":"lorem ipsum dolor sit amet","items":[]}`

func TestRunRegeneratesFailingSections(t *testing.T) {
	// The features section first comes back bad enough to drag the page
	// under the score floor; the regeneration pass must repair it.
	client := &scriptClient{}
	client.respond = func(phase string, req llm.Request) (string, error) {
		switch phase {
		case "intent":
			return testIntentJSON, nil
		case "blueprint":
			return "no json", nil
		case "section":
			if strings.Contains(req.User, "features") {
				return badFeaturesJSON, nil
			}
			return goodSectionJSON, nil
		case "regenerate":
			return goodSectionJSON, nil
		}
		return "", errors.New("unknown phase")
	}

	o := newTestOrchestrator(client)
	result, err := o.Run(context.Background(), OrchestrationInput{
		Description: "Automated bookkeeping for startups",
		Preferences: &Preferences{SectionCount: 4},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success {
		t.Fatalf("result not successful: %s", result.Error)
	}
	if got := client.phaseCount("regenerate"); got != 1 {
		t.Errorf("regenerate calls = %d, want 1", got)
	}
	features := result.Page.SectionByID("section-features-4")
	if features == nil {
		t.Fatal("features section lost its id across regeneration")
	}
	if len(features.Items) != 3 {
		t.Errorf("regenerated features items = %d", len(features.Items))
	}
	if result.Metadata.QualityScore != 100 {
		t.Errorf("quality score = %d after repair", result.Metadata.QualityScore)
	}
}

func TestRunRegenerationIsBounded(t *testing.T) {
	// Regeneration never improves the section; the loop must still stop
	// at MaxIterations and the run must still succeed with the page it has.
	client := &scriptClient{}
	client.respond = func(phase string, req llm.Request) (string, error) {
		switch phase {
		case "intent":
			return testIntentJSON, nil
		case "blueprint":
			return "no json", nil
		default:
			if strings.Contains(req.User, "features") {
				return badFeaturesJSON, nil
			}
			return goodSectionJSON, nil
		}
	}

	o := newTestOrchestrator(client)
	result, err := o.Run(context.Background(), OrchestrationInput{
		Description: "Automated bookkeeping for startups",
		Preferences: &Preferences{SectionCount: 4},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success {
		t.Fatal("bounded refinement must not fail the run")
	}
	want := o.Policy.MaxIterations // one broken section per round
	if got := client.phaseCount("regenerate"); got != want {
		t.Errorf("regenerate calls = %d, want %d", got, want)
	}
	if result.Metadata.QualityScore != 55 {
		t.Errorf("quality score = %d, want 55 with three standing errors", result.Metadata.QualityScore)
	}
}

func TestRunShipsAtScoreFloorWithResidualError(t *testing.T) {
	// A single missing-items error scores 85. That fails validation but
	// clears the floor, so the page ships without any regeneration.
	emptyFeatures := `{"heading":"Automation that does the busywork","items":[]}`
	client := &scriptClient{}
	client.respond = func(phase string, req llm.Request) (string, error) {
		switch phase {
		case "intent":
			return testIntentJSON, nil
		case "blueprint":
			return "no json", nil
		default:
			if strings.Contains(req.User, "features") {
				return emptyFeatures, nil
			}
			return goodSectionJSON, nil
		}
	}

	var events []ProgressEvent
	o := newTestOrchestrator(client)
	o.OnProgress = func(ev ProgressEvent) { events = append(events, ev) }
	result, err := o.Run(context.Background(), OrchestrationInput{
		Description: "Automated bookkeeping for startups",
		Preferences: &Preferences{SectionCount: 4},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success {
		t.Fatalf("result not successful: %s", result.Error)
	}
	if got := client.phaseCount("regenerate"); got != 0 {
		t.Errorf("regenerate calls = %d, want 0 at score 85", got)
	}
	if result.Metadata.QualityScore != 85 {
		t.Errorf("quality score = %d, want 85", result.Metadata.QualityScore)
	}
	features := result.Page.SectionByID("section-features-4")
	if features == nil || len(features.Items) != 0 {
		t.Error("section with the residual error must ship unchanged")
	}
	for _, ev := range events {
		if ev.Phase == PhaseRegenerating {
			t.Error("no regenerating event expected at score 85")
		}
	}
}

func TestRunRespectsRefinementOptOut(t *testing.T) {
	// Bad enough to trigger refinement, so zero calls proves the opt-out.
	client := &scriptClient{}
	client.respond = func(phase string, req llm.Request) (string, error) {
		switch phase {
		case "intent":
			return testIntentJSON, nil
		case "blueprint":
			return "no json", nil
		default:
			if strings.Contains(req.User, "features") {
				return badFeaturesJSON, nil
			}
			return goodSectionJSON, nil
		}
	}

	off := false
	o := newTestOrchestrator(client)
	result, err := o.Run(context.Background(), OrchestrationInput{
		Description: "Automated bookkeeping for startups",
		Preferences: &Preferences{SectionCount: 4, EnableRefinement: &off},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := client.phaseCount("regenerate"); got != 0 {
		t.Errorf("regenerate calls = %d with refinement off", got)
	}
	if result.Metadata.QualityScore != 55 {
		t.Errorf("quality score = %d", result.Metadata.QualityScore)
	}
}

func TestRunFailsOnTransportError(t *testing.T) {
	boom := errors.New("upstream unavailable")
	client := &scriptClient{respond: func(phase string, req llm.Request) (string, error) {
		if phase == "blueprint" {
			return "", boom
		}
		return testIntentJSON, nil
	}}

	var events []ProgressEvent
	o := newTestOrchestrator(client)
	o.OnProgress = func(ev ProgressEvent) { events = append(events, ev) }

	result, err := o.Run(context.Background(), OrchestrationInput{Description: "anything"})
	if err == nil {
		t.Fatal("transport error swallowed")
	}
	if result.Success {
		t.Error("result marked successful after transport failure")
	}
	if result.Error == "" {
		t.Error("result has no error message")
	}
	if result.Page != nil {
		t.Error("failed run returned a page")
	}
	if last := events[len(events)-1]; last.Phase != PhaseFailed {
		t.Errorf("final event phase = %s, want failed", last.Phase)
	}
}

func TestRunRejectsEmptyDescription(t *testing.T) {
	client := &scriptClient{respond: func(string, llm.Request) (string, error) {
		t.Fatal("generator must not be called for empty input")
		return "", nil
	}}
	o := newTestOrchestrator(client)
	result, err := o.Run(context.Background(), OrchestrationInput{Description: "   "})
	if err == nil || result.Success {
		t.Fatal("empty description accepted")
	}
}

func TestRunWithFakeClient(t *testing.T) {
	// The canned development client must drive a full run end to end.
	o := newTestOrchestrator(llm.NewFakeClient())
	result, err := o.Run(context.Background(), OrchestrationInput{
		Description: "A project management tool for remote teams",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success || result.Page == nil {
		t.Fatalf("fake run failed: %s", result.Error)
	}
	if len(result.Page.Sections) == 0 {
		t.Fatal("fake run produced no sections")
	}
	for _, s := range result.Page.Sections {
		if s.Content.BackgroundColor == "" {
			t.Errorf("section %s missing colors", s.ID)
		}
		if catalog.RequiresItems(s.Type) && len(s.Items) == 0 {
			t.Errorf("section %s missing items", s.ID)
		}
	}
}
