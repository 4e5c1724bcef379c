package pipeline

import (
	"context"
	"fmt"
	"strings"

	"pagecraft/internal/catalog"
	"pagecraft/internal/llm"
	"pagecraft/internal/prompt"
	"pagecraft/internal/util/jsonutil"
)

// BlueprintPlanner turns an intent into a full page plan: a matched
// template pattern, a copy framework from the fixed decision table, a
// color strategy and typography, and a generator-proposed section
// sequence with per-section variants. One generator call; a parse
// failure substitutes the entire pattern flow (full structural fallback,
// not a partial patch).
type BlueprintPlanner struct {
	LLM     llm.Client
	Catalog *catalog.Catalog
}

// plannedSection is the generator's wire contract for one section.
type plannedSection struct {
	Type           string   `json:"type" prompt_desc:"section type from the allowed list"`
	Purpose        string   `json:"purpose" prompt_desc:"one of: attention, interest, desire, action, proof, objections"`
	CopyGuidelines string   `json:"copy_guidelines" prompt_desc:"one or two sentences directing the section's copy"`
	KeyElements    []string `json:"key_elements" prompt:"optional" prompt_desc:"concrete elements the section must mention"`
}

// plannedBlueprint is the generator's wire contract for the whole plan.
type plannedBlueprint struct {
	FrameworkRationale string           `json:"framework_rationale" prompt_desc:"why this copy framework fits, one sentence"`
	Sections           []plannedSection `json:"sections" prompt_desc:"ordered section sequence"`
}

var blueprintPromptSpec = prompt.ApplyPresets(prompt.Spec{
	Purpose:    "Plan the section sequence of a landing page for the given intent.",
	Background: "A template pattern and copywriting framework have already been chosen; propose the ordered sections that tell this product's story within them.",
	OutputFields: prompt.MustFieldsFromStruct(plannedBlueprint{}),
	Constraints: []string{
		"Section types are limited to: hero, problem, solution, features, benefits, stats, process, testimonials, pricing, faq, guarantee, cta, about, contact, logos, curriculum, countdown, video.",
		"The first section must be a hero; the last must drive action.",
	},
	Rules: []string{
		"Honor the requested section count exactly.",
		"Assign each section the framework stage purpose it serves.",
		"copy_guidelines must be specific to this product, not generic advice.",
	},
	OutputFormat: "JSON only.",
	Language:     "English",
}, prompt.PresetStrictJSON())

// Plan runs the planning phase.
func (p *BlueprintPlanner) Plan(ctx context.Context, intent PageIntent, in OrchestrationInput) (PageBlueprint, llm.Usage, error) {
	if p == nil || p.LLM == nil {
		return PageBlueprint{}, llm.Usage{}, fmt.Errorf("blueprint: llm client is nil")
	}
	if p.Catalog == nil {
		return PageBlueprint{}, llm.Usage{}, fmt.Errorf("blueprint: catalog is nil")
	}
	ctx = llm.WithPhase(ctx, "blueprint")

	pattern := p.Catalog.MatchTemplatePattern(intent.ProductType, intent.Keywords)
	framework := catalog.SelectFramework(intent.ProductType, intent.UrgencyLevel, intent.PricePoint)
	fwDef := p.Catalog.Frameworks[framework]

	var theme, fontPair string
	if in.WizardData != nil {
		theme = in.WizardData.ColorTheme
		fontPair = in.WizardData.FontPair
	}
	colors := p.Catalog.Theme(theme)
	typography := p.Catalog.FontPair(fontPair)

	target := pattern.AvgSections
	if in.Preferences != nil && in.Preferences.SectionCount > 0 {
		target = clampSections(in.Preferences.SectionCount)
	}

	user := fmt.Sprintf(
		"Product: %s\nAudience: %s\nValue proposition: %s\nTone: %s\nCopy framework: %s\nTemplate pattern: %s (canonical flow: %s)\nSection count: %d",
		intent.ProductType, intent.TargetAudience, intent.PrimaryValueProp, intent.Tone,
		framework, pattern.ID, flowTypes(pattern.SectionFlow), target,
	)

	resp, err := p.LLM.Generate(ctx, llm.Request{
		System:      blueprintPromptSpec.MustRender(),
		User:        user,
		MaxTokens:   2048,
		Temperature: 0.4,
	})
	if err != nil {
		return PageBlueprint{}, llm.Usage{}, fmt.Errorf("blueprint: generate: %w", err)
	}

	var planned plannedBlueprint
	perr := jsonutil.UnmarshalText(resp.Text, &planned)

	var sequence []SectionPlan
	rationale := fwDef.Rationale
	if perr != nil || len(planned.Sections) == 0 {
		sequence = FallbackSectionPlans(p.Catalog, pattern, fwDef, intent, in.Vibe(), target)
	} else {
		sequence = p.resolveSections(planned.Sections, fwDef, intent, in.Vibe(), target)
		if r := strings.TrimSpace(planned.FrameworkRationale); r != "" {
			rationale = r
		}
	}

	return PageBlueprint{
		CopyFramework:      framework,
		FrameworkRationale: rationale,
		SectionSequence:    sequence,
		ColorStrategy:      colors,
		Typography:         typography,
		TargetSectionCount: target,
	}, resp.Usage, nil
}

// resolveSections converts the generator's proposal into section plans,
// attaching variants from the selector and framework-derived guidance
// where the generator left it blank.
func (p *BlueprintPlanner) resolveSections(planned []plannedSection, fwDef catalog.FrameworkDefinition, intent PageIntent, vibe string, target int) []SectionPlan {
	if len(planned) > target {
		planned = planned[:target]
	}
	out := make([]SectionPlan, 0, len(planned))
	for _, ps := range planned {
		st := normalizeSectionType(ps.Type)
		purpose := normalizePurpose(ps.Purpose)
		choice := p.Catalog.SelectVariant(st, intent.Tone, vibe, fwDef.Name)
		guidelines := strings.TrimSpace(ps.CopyGuidelines)
		if guidelines == "" {
			guidelines = fwDef.GuidanceFor(st, purpose)
		}
		out = append(out, SectionPlan{
			Type:           st,
			Variant:        choice.Variant,
			Effects:        choice.Effects,
			Tier:           choice.Tier,
			Purpose:        purpose,
			CopyGuidelines: guidelines,
			KeyElements:    ps.KeyElements,
		})
	}
	return out
}

// FallbackSectionPlans substitutes the template pattern's canonical flow
// when the generator's plan cannot be parsed. Variants are still resolved
// through the selector and guidance comes from the framework definition.
func FallbackSectionPlans(cat *catalog.Catalog, pattern catalog.TemplatePattern, fwDef catalog.FrameworkDefinition, intent PageIntent, vibe string, target int) []SectionPlan {
	flow := pattern.SectionFlow
	if target > 0 && target < len(flow) {
		flow = flow[:target]
	}
	out := make([]SectionPlan, 0, len(flow))
	for _, entry := range flow {
		choice := cat.SelectVariant(entry.Type, intent.Tone, vibe, fwDef.Name)
		out = append(out, SectionPlan{
			Type:           entry.Type,
			Variant:        choice.Variant,
			Effects:        choice.Effects,
			Tier:           choice.Tier,
			Purpose:        entry.Purpose,
			CopyGuidelines: fwDef.GuidanceFor(entry.Type, entry.Purpose),
		})
	}
	return out
}

func clampSections(n int) int {
	if n < 3 {
		return 3
	}
	if n > 12 {
		return 12
	}
	return n
}

func flowTypes(flow []catalog.FlowEntry) string {
	types := make([]string, len(flow))
	for i, e := range flow {
		types[i] = string(e.Type)
	}
	return strings.Join(types, ", ")
}

var sectionTypeAliases = map[string]catalog.SectionType{
	"header":       catalog.SectionHero,
	"banner":       catalog.SectionHero,
	"feature":      catalog.SectionFeatures,
	"benefit":      catalog.SectionBenefits,
	"testimonial":  catalog.SectionTestimonials,
	"social-proof": catalog.SectionTestimonials,
	"faqs":         catalog.SectionFAQ,
	"questions":    catalog.SectionFAQ,
	"steps":        catalog.SectionProcess,
	"how-it-works": catalog.SectionProcess,
	"call-to-action": catalog.SectionCTA,
	"team":         catalog.SectionAbout,
}

func normalizeSectionType(raw string) catalog.SectionType {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "-")
	if alias, ok := sectionTypeAliases[s]; ok {
		return alias
	}
	if s == "" {
		return catalog.SectionCTA
	}
	return catalog.SectionType(s)
}

func normalizePurpose(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case catalog.PurposeAttention, catalog.PurposeInterest, catalog.PurposeDesire,
		catalog.PurposeAction, catalog.PurposeProof, catalog.PurposeObjections:
		return s
	}
	return catalog.PurposeInterest
}
