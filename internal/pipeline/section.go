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

// SectionGenerator produces one renderable section per call. Sections are
// generated sequentially so each call can see a one-section summary of
// the previous output; the generator itself holds no state between calls.
type SectionGenerator struct {
	LLM llm.Client
}

// generatedSection is the generator's wire contract for a section body.
// Color fields are deliberately absent: colors come from the blueprint's
// strategy during post-processing, never from the generator.
type generatedSection struct {
	Heading    string        `json:"heading" prompt_desc:"section headline"`
	Subheading string        `json:"subheading" prompt:"optional" prompt_desc:"supporting line under the headline"`
	BodyText   string        `json:"body_text" prompt:"optional" prompt_desc:"one or two short paragraphs"`
	CTAText    string        `json:"cta_text" prompt:"optional" prompt_desc:"button label, if the section carries one"`
	CTALink    string        `json:"cta_link" prompt:"optional" prompt_desc:"button target, an anchor like #pricing"`
	Items      []SectionItem `json:"items" prompt:"optional" prompt_desc:"list entries for feature/testimonial/pricing/faq/stats/process sections"`
}

var sectionPromptSpec = prompt.ApplyPresets(prompt.Spec{
	Purpose:      "Write the copy for one landing page section.",
	Background:   "The page is generated section by section in order; stay consistent with what came before and do not repeat it.",
	OutputFields: prompt.MustFieldsFromStruct(generatedSection{}),
	Rules: []string{
		"Follow the copy guidelines for this section exactly.",
		"Testimonials need a plausible name and role in the title field.",
		"Pricing tiers put the price in the value field.",
		"Stats put the number in value and the caption in label.",
	},
	OutputFormat: "JSON only.",
	Language:     "English",
}, prompt.PresetStrictJSON(), prompt.PresetNoPlaceholders(), prompt.PresetConcreteCopy())

// Generate produces the section at gctx.Index from its plan. The id is
// derived from type and position and stays stable for the page's lifetime.
func (g *SectionGenerator) Generate(ctx context.Context, plan SectionPlan, gctx GenerationContext) (PageSection, llm.Usage, error) {
	return g.generate(ctx, "section", plan, gctx, SectionID(plan.Type, gctx.Index), nil)
}

// Regenerate rewrites an existing section, keeping its id. The quality
// issues found in the previous attempt are fed back into the prompt.
func (g *SectionGenerator) Regenerate(ctx context.Context, old PageSection, plan SectionPlan, gctx GenerationContext, issues []QualityIssue) (PageSection, llm.Usage, error) {
	return g.generate(ctx, "regenerate", plan, gctx, old.ID, issues)
}

func (g *SectionGenerator) generate(ctx context.Context, phase string, plan SectionPlan, gctx GenerationContext, id string, issues []QualityIssue) (PageSection, llm.Usage, error) {
	if g == nil || g.LLM == nil {
		return PageSection{}, llm.Usage{}, fmt.Errorf("section: llm client is nil")
	}
	ctx = llm.WithPhase(ctx, phase)

	resp, err := g.LLM.Generate(ctx, llm.Request{
		System:      sectionPromptSpec.MustRender(),
		User:        sectionUserMessage(plan, gctx, issues),
		MaxTokens:   1536,
		Temperature: 0.7,
	})
	if err != nil {
		return PageSection{}, llm.Usage{}, fmt.Errorf("section %s: generate: %w", id, err)
	}

	var gen generatedSection
	var section PageSection
	if perr := jsonutil.UnmarshalText(resp.Text, &gen); perr != nil || strings.TrimSpace(gen.Heading) == "" {
		section = FallbackSection(plan, gctx)
	} else {
		section = PageSection{
			Type: plan.Type,
			Content: SectionContent{
				Heading:    strings.TrimSpace(gen.Heading),
				Subheading: strings.TrimSpace(gen.Subheading),
				BodyText:   strings.TrimSpace(gen.BodyText),
				CTAText:    strings.TrimSpace(gen.CTAText),
				CTALink:    strings.TrimSpace(gen.CTALink),
			},
			Items: gen.Items,
		}
	}

	section.ID = id
	finishSection(&section, plan, gctx.ColorScheme)
	return section, resp.Usage, nil
}

// finishSection applies the uniform post-processing every section gets,
// generated or fallback: blueprint colors, the planned variant, and a
// style side-map for premium visual effects.
func finishSection(s *PageSection, plan SectionPlan, colors catalog.ColorStrategy) {
	s.Content.BackgroundColor = colors.Background
	s.Content.TextColor = colors.Text
	s.Content.AccentColor = colors.Accent
	s.Content.Variant = plan.Variant
	if plan.Tier == catalog.TierPremium || plan.Tier == catalog.TierAdvanced {
		style := map[string]any{"tier": plan.Tier}
		for _, effect := range plan.Effects {
			style[effect] = true
		}
		s.Style = style
	}
}

// FallbackSection builds a minimal usable section when the generator's
// output cannot be parsed. Item-backed section types get three generic
// entries so the section still renders.
func FallbackSection(plan SectionPlan, gctx GenerationContext) PageSection {
	heading := strings.TrimSpace(gctx.Intent.PrimaryValueProp)
	if heading == "" {
		heading = "Everything you need, in one place"
	}
	section := PageSection{
		Type: plan.Type,
		Content: SectionContent{
			Heading:    heading,
			Subheading: fallbackSubheading(plan, gctx.Intent),
		},
	}
	if plan.Type == catalog.SectionHero || plan.Type == catalog.SectionCTA {
		section.Content.CTAText = "Get Started"
		section.Content.CTALink = "#cta"
	}
	if catalog.RequiresItems(plan.Type) {
		section.Items = []SectionItem{
			{Title: "Key Feature", Description: "Built around what matters most to you."},
			{Title: "Another Feature", Description: "Designed to save you time every day."},
			{Title: "Third Feature", Description: "Works the way you already do."},
		}
	}
	return section
}

func fallbackSubheading(plan SectionPlan, intent PageIntent) string {
	if len(intent.SecondaryValueProps) > 0 {
		return intent.SecondaryValueProps[0]
	}
	if intent.TargetAudience != "" {
		return fmt.Sprintf("Built for %s.", intent.TargetAudience)
	}
	return ""
}

func sectionUserMessage(plan SectionPlan, gctx GenerationContext, issues []QualityIssue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Section %d of %d: %s (variant %s)\n", gctx.Index+1, gctx.Total, plan.Type, plan.Variant)
	fmt.Fprintf(&b, "Purpose: %s\n", plan.Purpose)
	fmt.Fprintf(&b, "Copy guidelines: %s\n", plan.CopyGuidelines)
	if len(plan.KeyElements) > 0 {
		fmt.Fprintf(&b, "Must mention: %s\n", strings.Join(plan.KeyElements, "; "))
	}
	fmt.Fprintf(&b, "Product: %s for %s\n", gctx.Intent.ProductType, gctx.Intent.TargetAudience)
	fmt.Fprintf(&b, "Value proposition: %s\n", gctx.Intent.PrimaryValueProp)
	fmt.Fprintf(&b, "Tone: %s\n", gctx.Intent.Tone)
	if catalog.RequiresItems(plan.Type) {
		b.WriteString("Include at least 3 items.\n")
	}
	if prev := gctx.PrevSummary(); prev != "" {
		b.WriteString(prev)
		b.WriteString("\n")
	}
	if len(issues) > 0 {
		b.WriteString("The previous attempt had these problems; fix all of them:\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- [%s] %s: %s", issue.Severity, issue.Field, issue.Issue)
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, " (%s)", issue.Suggestion)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
