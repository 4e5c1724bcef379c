// Package pipeline implements the multi-phase generation pipeline that
// turns a free-text product description into a structured, styled,
// multi-section landing page: intent extraction, blueprint planning,
// sequential section generation, and a quality-gated refinement loop.
package pipeline

import (
	"fmt"
	"strings"

	"pagecraft/internal/catalog"
)

// Normalized intent enums. Anything outside these sets is coerced to the
// default during intent normalization.
var (
	knownTones       = map[string]bool{"professional": true, "playful": true, "bold": true, "elegant": true, "friendly": true, "technical": true}
	knownUrgency     = map[string]bool{"low": true, "medium": true, "high": true}
	knownPricePoints = map[string]bool{"free": true, "budget": true, "mid": true, "premium": true, "enterprise": true}
)

const (
	DefaultProductType = "general"
	DefaultTone        = "professional"
	DefaultUrgency     = "medium"
	DefaultPricePoint  = "mid"
)

// PageIntent is the normalized understanding of the request. Created once
// by the intent phase and immutable afterward.
type PageIntent struct {
	ProductType         string   `json:"product_type" prompt_desc:"one of: saas, ecommerce, course, agency, lead-magnet, webinar, sales-funnel, local-business, portfolio, coaching, general"`
	TargetAudience      string   `json:"target_audience" prompt_desc:"who the page speaks to"`
	PrimaryValueProp    string   `json:"primary_value_prop" prompt_desc:"the single strongest benefit, one sentence"`
	SecondaryValueProps []string `json:"secondary_value_props" prompt:"optional" prompt_desc:"up to three supporting benefits"`
	Tone                string   `json:"tone" prompt_desc:"one of: professional, playful, bold, elegant, friendly, technical"`
	UrgencyLevel        string   `json:"urgency_level" prompt_desc:"one of: low, medium, high"`
	PricePoint          string   `json:"price_point" prompt_desc:"one of: free, budget, mid, premium, enterprise"`
	Keywords            []string `json:"keywords" prompt:"optional" prompt_desc:"up to five lowercase topic keywords"`
}

// SectionPlan is one planned section: what to build, how it should look,
// and what the copy must accomplish. Created by the planner, consumed
// read-only by the section generator.
type SectionPlan struct {
	Type           catalog.SectionType `json:"type"`
	Variant        string              `json:"variant"`
	Effects        []string            `json:"effects,omitempty"`
	Tier           string              `json:"tier"`
	Purpose        string              `json:"purpose"`
	CopyGuidelines string              `json:"copy_guidelines"`
	KeyElements    []string            `json:"key_elements,omitempty"`
}

// PageBlueprint is the full plan for a page. Read-only after creation.
type PageBlueprint struct {
	CopyFramework      catalog.Framework     `json:"copy_framework"`
	FrameworkRationale string                `json:"framework_rationale"`
	SectionSequence    []SectionPlan         `json:"section_sequence"`
	ColorStrategy      catalog.ColorStrategy `json:"color_strategy"`
	Typography         catalog.Typography    `json:"typography"`
	TargetSectionCount int                   `json:"target_section_count"`
}

// SectionItem is one entry of a list-type section (a feature, a
// testimonial, a pricing tier, an FAQ pair, a stat, a process step).
type SectionItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Value       string `json:"value,omitempty"`
	Label       string `json:"label,omitempty"`
}

// SectionContent carries the copy and the color contract of one section.
// Color fields are always populated from the blueprint's strategy during
// post-processing, even when the generator omits them.
type SectionContent struct {
	Heading         string `json:"heading"`
	Subheading      string `json:"subheading,omitempty"`
	BodyText        string `json:"body_text,omitempty"`
	CTAText         string `json:"cta_text,omitempty"`
	CTALink         string `json:"cta_link,omitempty"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	AccentColor     string `json:"accent_color"`
	Variant         string `json:"variant"`
}

// PageSection is one generated, renderable section. Style is a side-map
// for premium visual-effect flags, kept apart from the content contract.
type PageSection struct {
	ID      string              `json:"id"`
	Type    catalog.SectionType `json:"type"`
	Content SectionContent      `json:"content"`
	Items   []SectionItem       `json:"items,omitempty"`
	Style   map[string]any      `json:"style,omitempty"`
}

// SectionID builds the deterministic id for a section at a position.
// Ids are assigned on initial generation and retained across regeneration.
func SectionID(t catalog.SectionType, index int) string {
	return fmt.Sprintf("section-%s-%d", t, index+1)
}

// LandingPage is the shape persisted by the storage layer and rendered by
// the editor.
type LandingPage struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Sections        []PageSection         `json:"sections"`
	ColorScheme     catalog.ColorStrategy `json:"color_scheme"`
	Typography      catalog.Typography    `json:"typography"`
	SmoothScroll    bool                  `json:"smooth_scroll"`
	AnimationPreset string                `json:"animation_preset"`
	ContentWidth    string                `json:"content_width"`
}

// SectionByID returns a pointer into the page's section slice, or nil.
func (p *LandingPage) SectionByID(id string) *PageSection {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

// Quality issue severities.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// QualityIssue is one detected defect in a generated page.
type QualityIssue struct {
	Severity   Severity `json:"severity"`
	SectionID  string   `json:"section_id"`
	Field      string   `json:"field"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// QualityReport is the aggregate verdict of one validation pass.
type QualityReport struct {
	Score            int            `json:"score"`
	Issues           []QualityIssue `json:"issues"`
	Suggestions      []string       `json:"suggestions,omitempty"`
	PassesValidation bool           `json:"passes_validation"`
}

// WizardData carries optional structured hints from the setup wizard.
// Hint values always win over generator inference.
type WizardData struct {
	BusinessName       string `json:"business_name,omitempty"`
	ProductDescription string `json:"product_description,omitempty"`
	TargetAudience     string `json:"target_audience,omitempty"`
	ColorTheme         string `json:"color_theme,omitempty"`
	Vibe               string `json:"vibe,omitempty"`
	FontPair           string `json:"font_pair,omitempty"`
	PageType           string `json:"page_type,omitempty"`
}

// Preferences tune one orchestration run.
type Preferences struct {
	SectionCount     int   `json:"section_count,omitempty"`
	EnableRefinement *bool `json:"enable_refinement,omitempty"`
}

// OrchestrationInput is the inbound interface from the UI layer.
type OrchestrationInput struct {
	Description string       `json:"description"`
	WizardData  *WizardData  `json:"wizard_data,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Vibe returns the wizard vibe hint, if any.
func (in OrchestrationInput) Vibe() string {
	if in.WizardData == nil {
		return ""
	}
	return strings.TrimSpace(in.WizardData.Vibe)
}

// Metadata summarizes one pipeline run for the caller.
type Metadata struct {
	Intent           PageIntent     `json:"intent"`
	Blueprint        *PageBlueprint `json:"blueprint,omitempty"`
	TokensUsed       int            `json:"tokens_used"`
	GenerationTimeMs int64          `json:"generation_time_ms"`
	QualityScore     int            `json:"quality_score"`
}

// OrchestrationResult is the final pipeline output, returned once per
// top-level invocation.
type OrchestrationResult struct {
	Success  bool         `json:"success"`
	Page     *LandingPage `json:"page,omitempty"`
	Metadata Metadata     `json:"metadata"`
	Error    string       `json:"error,omitempty"`
}

// GenerationContext bundles everything a single section generation needs.
// Previous holds only already-generated sections; the generator derives a
// short summary of the last one rather than threading the whole page.
type GenerationContext struct {
	Blueprint   *PageBlueprint
	Intent      PageIntent
	Previous    []PageSection
	ColorScheme catalog.ColorStrategy
	Index       int
	Total       int
}

// PrevSummary renders the rolling one-section summary threaded between
// generation calls: headline, key message, item count of the immediately
// preceding section. Empty for the first section.
func (g GenerationContext) PrevSummary() string {
	if len(g.Previous) == 0 {
		return ""
	}
	prev := g.Previous[len(g.Previous)-1]
	var b strings.Builder
	fmt.Fprintf(&b, "Previous section (%s): %q", prev.Type, prev.Content.Heading)
	if msg := firstNonEmpty(prev.Content.Subheading, prev.Content.BodyText); msg != "" {
		fmt.Fprintf(&b, ": %s", truncate(msg, 140))
	}
	if n := len(prev.Items); n > 0 {
		fmt.Fprintf(&b, " (%d items)", n)
	}
	return b.String()
}

// Pipeline phases, in execution order.
const (
	PhaseUnderstanding = "understanding"
	PhasePlanning      = "planning"
	PhaseGenerating    = "generating"
	PhaseValidating    = "validating"
	PhaseRegenerating  = "regenerating"
	PhaseComplete      = "complete"
	PhaseFailed        = "failed"
)

// ProgressEvent is delivered to the optional progress callback at phase
// boundaries and after each generated section.
type ProgressEvent struct {
	Phase          string `json:"phase"`
	Progress       int    `json:"progress"`
	Message        string `json:"message"`
	CurrentSection int    `json:"current_section,omitempty"`
	TotalSections  int    `json:"total_sections,omitempty"`
}

// ProgressFunc observes pipeline progress. May be nil.
type ProgressFunc func(ProgressEvent)

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "…"
}
