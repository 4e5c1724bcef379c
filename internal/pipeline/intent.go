package pipeline

import (
	"context"
	"fmt"
	"strings"

	"pagecraft/internal/llm"
	"pagecraft/internal/prompt"
	"pagecraft/internal/util/jsonutil"
)

// IntentAnalyzer converts a free-text description plus optional wizard
// hints into a normalized PageIntent. It makes exactly one generator call
// and always returns a fully-populated intent: unparseable output yields
// a deterministic fallback, never an error. Only transport failures
// propagate.
type IntentAnalyzer struct {
	LLM llm.Client
}

// vibeTone maps wizard vibes onto intent tones. Hint values always win
// over generator inference.
var vibeTone = map[string]string{
	"playful":    "playful",
	"corporate":  "professional",
	"luxury":     "elegant",
	"elegant":    "elegant",
	"bold":       "bold",
	"friendly":   "friendly",
	"minimal":    "professional",
	"futuristic": "technical",
	"technical":  "technical",
}

// pageTypeProduct maps wizard page types onto product types.
var pageTypeProduct = map[string]string{
	"saas":           "saas",
	"ecommerce":      "ecommerce",
	"course":         "course",
	"sales-funnel":   "course",
	"webinar":        "webinar",
	"lead-magnet":    "lead-magnet",
	"agency":         "agency",
	"portfolio":      "portfolio",
	"local-business": "local-business",
	"coaching":       "coaching",
}

var intentPromptSpec = prompt.ApplyPresets(prompt.Spec{
	Purpose:      "Classify a landing-page request into a normalized intent record.",
	Background:   "The description is free text from a user building a landing page. Extract what to sell, to whom, and how to pitch it.",
	OutputFields: prompt.MustFieldsFromStruct(PageIntent{}),
	Rules: []string{
		"product_type must be the closest enum value, never an invented category.",
		"primary_value_prop is one benefit-led sentence, not a slogan.",
		"Choose urgency_level=high only when the description itself signals deadlines or scarcity.",
		"keywords are lowercase single words or short phrases taken from the description.",
	},
	Assumptions:  []string{"When the description is too thin to classify, prefer product_type=general and tone=professional."},
	OutputFormat: "JSON only.",
	Language:     "English",
}, prompt.PresetStrictJSON())

// Analyze runs the intent phase.
func (a *IntentAnalyzer) Analyze(ctx context.Context, in OrchestrationInput) (PageIntent, llm.Usage, error) {
	if a == nil || a.LLM == nil {
		return PageIntent{}, llm.Usage{}, fmt.Errorf("intent: llm client is nil")
	}
	ctx = llm.WithPhase(ctx, "intent")

	user := strings.TrimSpace(in.Description)
	if in.WizardData != nil {
		if d := strings.TrimSpace(in.WizardData.ProductDescription); d != "" && d != user {
			user += "\n\nAdditional product details: " + d
		}
		if aud := strings.TrimSpace(in.WizardData.TargetAudience); aud != "" {
			user += "\nStated target audience: " + aud
		}
	}

	resp, err := a.LLM.Generate(ctx, llm.Request{
		System:      intentPromptSpec.MustRender(),
		User:        user,
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		return PageIntent{}, llm.Usage{}, fmt.Errorf("intent: generate: %w", err)
	}

	var intent PageIntent
	if perr := jsonutil.UnmarshalText(resp.Text, &intent); perr != nil {
		intent = FallbackIntent(in.Description)
	}
	intent = normalizeIntent(intent, in.Description)
	intent = applyWizardOverrides(intent, in.WizardData)
	return intent, resp.Usage, nil
}

// FallbackIntent builds the deterministic default-filled intent used when
// the generator output cannot be parsed.
func FallbackIntent(description string) PageIntent {
	keywords := extractKeywords(description, 5)
	if len(keywords) == 0 {
		keywords = []string{DefaultProductType}
	}
	return PageIntent{
		ProductType:      DefaultProductType,
		TargetAudience:   "general audience",
		PrimaryValueProp: fallbackValueProp(description),
		Tone:             DefaultTone,
		UrgencyLevel:     DefaultUrgency,
		PricePoint:       DefaultPricePoint,
		Keywords:         keywords,
	}
}

func fallbackValueProp(description string) string {
	d := strings.TrimSpace(description)
	if d == "" {
		return "A better way to get results"
	}
	// First sentence, capped.
	if i := strings.IndexAny(d, ".!?\n"); i > 0 {
		d = d[:i]
	}
	return truncate(strings.TrimSpace(d), 120)
}

var keywordStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "your": true, "our": true, "are": true,
	"can": true, "will": true, "has": true, "have": true, "you": true,
}

func extractKeywords(description string, max int) []string {
	var out []string
	seen := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(description)) {
		w = strings.Trim(w, ".,;:!?()\"'")
		if len(w) < 4 || keywordStopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == max {
			break
		}
	}
	return out
}

// normalizeIntent fills empty fields and coerces enums so every later
// phase can rely on a fully-populated record.
func normalizeIntent(intent PageIntent, description string) PageIntent {
	intent.ProductType = strings.ToLower(strings.TrimSpace(intent.ProductType))
	if intent.ProductType == "" {
		intent.ProductType = DefaultProductType
	}
	intent.Tone = strings.ToLower(strings.TrimSpace(intent.Tone))
	if !knownTones[intent.Tone] {
		intent.Tone = DefaultTone
	}
	intent.UrgencyLevel = strings.ToLower(strings.TrimSpace(intent.UrgencyLevel))
	if !knownUrgency[intent.UrgencyLevel] {
		intent.UrgencyLevel = DefaultUrgency
	}
	intent.PricePoint = strings.ToLower(strings.TrimSpace(intent.PricePoint))
	if !knownPricePoints[intent.PricePoint] {
		intent.PricePoint = DefaultPricePoint
	}
	if strings.TrimSpace(intent.TargetAudience) == "" {
		intent.TargetAudience = "general audience"
	}
	if strings.TrimSpace(intent.PrimaryValueProp) == "" {
		intent.PrimaryValueProp = fallbackValueProp(description)
	}
	if len(intent.Keywords) == 0 {
		intent.Keywords = extractKeywords(description, 5)
	}
	if len(intent.Keywords) == 0 {
		// Nothing extractable from the description either.
		intent.Keywords = []string{intent.ProductType}
	}
	return intent
}

// applyWizardOverrides applies the fixed hint lookup tables: a wizard
// vibe overrides the inferred tone, a wizard page type overrides the
// inferred product type, and a stated audience overrides the inferred one.
func applyWizardOverrides(intent PageIntent, w *WizardData) PageIntent {
	if w == nil {
		return intent
	}
	if vibe := strings.ToLower(strings.TrimSpace(w.Vibe)); vibe != "" {
		if tone, ok := vibeTone[vibe]; ok {
			intent.Tone = tone
		}
	}
	if pt := strings.ToLower(strings.TrimSpace(w.PageType)); pt != "" {
		if product, ok := pageTypeProduct[pt]; ok {
			intent.ProductType = product
		}
	}
	if aud := strings.TrimSpace(w.TargetAudience); aud != "" {
		intent.TargetAudience = aud
	}
	return intent
}
