// Package catalog holds the static tables the planner draws from:
// template patterns (page archetypes), copywriting frameworks, color
// strategies, typography pairs, and per-section variant candidates.
// Everything here is immutable after Default() returns; components
// receive the catalog by reference and never mutate it.
package catalog

import "strings"

// SectionType identifies one renderable section archetype.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionProblem      SectionType = "problem"
	SectionSolution     SectionType = "solution"
	SectionFeatures     SectionType = "features"
	SectionBenefits     SectionType = "benefits"
	SectionStats        SectionType = "stats"
	SectionProcess      SectionType = "process"
	SectionTestimonials SectionType = "testimonials"
	SectionPricing      SectionType = "pricing"
	SectionFAQ          SectionType = "faq"
	SectionGuarantee    SectionType = "guarantee"
	SectionCTA          SectionType = "cta"
	SectionAbout        SectionType = "about"
	SectionContact      SectionType = "contact"
	SectionLogos        SectionType = "logos"
	SectionCurriculum   SectionType = "curriculum"
	SectionCountdown    SectionType = "countdown"
	SectionVideo        SectionType = "video"
)

// Section purposes, named after copy-framework stages.
const (
	PurposeAttention  = "attention"
	PurposeInterest   = "interest"
	PurposeDesire     = "desire"
	PurposeAction     = "action"
	PurposeProof      = "proof"
	PurposeObjections = "objections"
)

// Framework identifies a copywriting methodology.
type Framework string

const (
	FrameworkAIDA Framework = "AIDA"
	FrameworkPAS  Framework = "PAS"
	FrameworkBAB  Framework = "BAB"
)

// FlowEntry is one step of a pattern's canonical section sequence.
type FlowEntry struct {
	Type    SectionType
	Purpose string
	Variant string
}

// TemplatePattern is a known page archetype.
type TemplatePattern struct {
	ID            string
	Industries    []string
	SectionFlow   []FlowEntry
	CopyFramework Framework
	AvgSections   int
}

// Catalog bundles every static table. Load it once with Default() and
// pass it by reference into the planner and selector.
type Catalog struct {
	Patterns   []TemplatePattern
	Frameworks map[Framework]FrameworkDefinition
	Themes     map[string]ColorStrategy
	FontPairs  map[string]Typography
	Variants   map[SectionType][]VariantCandidate
}

// Default builds the full static catalog.
func Default() *Catalog {
	return &Catalog{
		Patterns:   templatePatterns(),
		Frameworks: frameworkDefinitions(),
		Themes:     colorThemes(),
		FontPairs:  fontPairs(),
		Variants:   variantCandidates(),
	}
}

// MatchTemplatePattern resolves an intent to exactly one pattern:
// direct id match on productType, else keyword-substring match against
// each pattern's industries, else the first (saas) pattern. Deterministic
// and total: same inputs always yield the same pattern.
func (c *Catalog) MatchTemplatePattern(productType string, keywords []string) TemplatePattern {
	pt := strings.ToLower(strings.TrimSpace(productType))
	for _, p := range c.Patterns {
		if p.ID == pt {
			return p
		}
	}
	for _, p := range c.Patterns {
		for _, industry := range p.Industries {
			if industryMatches(industry, pt, keywords) {
				return p
			}
		}
	}
	return c.Patterns[0]
}

func industryMatches(industry, productType string, keywords []string) bool {
	if productType != "" && (strings.Contains(productType, industry) || strings.Contains(industry, productType)) {
		return true
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(kw, industry) || strings.Contains(industry, kw) {
			return true
		}
	}
	return false
}

// SelectFramework applies the fixed decision table: high urgency or
// ecommerce lean on pain (PAS); transformation products and premium price
// points lean on outcome contrast (BAB); everything else gets AIDA.
func SelectFramework(productType, urgency, pricePoint string) Framework {
	productType = strings.ToLower(strings.TrimSpace(productType))
	urgency = strings.ToLower(strings.TrimSpace(urgency))
	pricePoint = strings.ToLower(strings.TrimSpace(pricePoint))

	if urgency == "high" || productType == "ecommerce" {
		return FrameworkPAS
	}
	switch productType {
	case "course", "webinar", "coaching":
		return FrameworkBAB
	}
	switch pricePoint {
	case "premium", "enterprise":
		return FrameworkBAB
	}
	return FrameworkAIDA
}

// Theme returns the color strategy for a named theme, defaulting to dark.
func (c *Catalog) Theme(name string) ColorStrategy {
	if t, ok := c.Themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return c.Themes["dark"]
}

// FontPair returns the typography for a named pair, defaulting to modern.
func (c *Catalog) FontPair(name string) Typography {
	if t, ok := c.FontPairs[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return c.FontPairs["modern"]
}

// itemSectionTypes lists section types that are meaningless without items.
var itemSectionTypes = map[SectionType]bool{
	SectionFeatures:     true,
	SectionTestimonials: true,
	SectionPricing:      true,
	SectionFAQ:          true,
	SectionStats:        true,
	SectionProcess:      true,
}

// RequiresItems reports whether a section type must carry at least one item.
func RequiresItems(t SectionType) bool { return itemSectionTypes[t] }
