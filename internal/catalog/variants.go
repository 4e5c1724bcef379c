package catalog

import "strings"

// Visual-richness tiers attached to a variant.
const (
	TierStandard = "standard"
	TierPremium  = "premium"
	TierAdvanced = "advanced"
)

// VariantCandidate is one scoreable visual/content variant for a
// section type. Tags list the tones, vibes and frameworks the candidate
// suits; each match adds to its base score.
type VariantCandidate struct {
	Name    string
	Tier    string
	Effects []string
	Tags    []string
	Base    int
}

// VariantChoice is the resolved variant for one planned section.
type VariantChoice struct {
	Variant string
	Tier    string
	Effects []string
}

// SelectVariant scores the candidates for a section type against the
// intent's tone, the requested vibe and the chosen framework, returning
// the best candidate. Candidates are walked in declaration order and only
// a strictly higher score replaces the leader, so selection is
// deterministic for identical inputs.
func (c *Catalog) SelectVariant(t SectionType, tone, vibe string, fw Framework) VariantChoice {
	candidates := c.Variants[t]
	if len(candidates) == 0 {
		return VariantChoice{Variant: "default", Tier: TierStandard}
	}

	signals := []string{
		strings.ToLower(strings.TrimSpace(tone)),
		strings.ToLower(strings.TrimSpace(vibe)),
		strings.ToLower(string(fw)),
	}

	best := candidates[0]
	bestScore := scoreCandidate(candidates[0], signals)
	for _, cand := range candidates[1:] {
		if s := scoreCandidate(cand, signals); s > bestScore {
			best, bestScore = cand, s
		}
	}
	return VariantChoice{Variant: best.Name, Tier: best.Tier, Effects: best.Effects}
}

func scoreCandidate(cand VariantCandidate, signals []string) int {
	score := cand.Base
	for _, tag := range cand.Tags {
		for _, sig := range signals {
			if sig != "" && sig == tag {
				score += 2
			}
		}
	}
	return score
}

func variantCandidates() map[SectionType][]VariantCandidate {
	return map[SectionType][]VariantCandidate{
		SectionHero: {
			{Name: "split", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"professional", "modern", "aida"}, Base: 1},
			{Name: "centered", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"elegant", "minimal", "bab"}},
			{Name: "gradient-burst", Tier: TierPremium, Effects: []string{"gradient-shift", "glow"}, Tags: []string{"bold", "playful", "vibrant"}},
			{Name: "longform", Tier: TierStandard, Effects: nil, Tags: []string{"pas", "urgent"}},
			{Name: "particles", Tier: TierAdvanced, Effects: []string{"particles", "parallax"}, Tags: []string{"technical", "futuristic"}},
		},
		SectionProblem: {
			{Name: "narrative", Tier: TierStandard, Effects: nil, Tags: []string{"pas", "bab", "friendly"}, Base: 1},
			{Name: "cards", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"professional", "aida"}},
			{Name: "pain-points", Tier: TierPremium, Effects: []string{"stagger"}, Tags: []string{"bold", "urgent"}},
		},
		SectionSolution: {
			{Name: "split", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"professional"}, Base: 1},
			{Name: "reveal", Tier: TierPremium, Effects: []string{"reveal", "glow"}, Tags: []string{"bold", "pas"}},
		},
		SectionFeatures: {
			{Name: "grid", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"professional", "technical"}, Base: 1},
			{Name: "alternating", Tier: TierStandard, Effects: []string{"slide-in"}, Tags: []string{"elegant", "bab"}},
			{Name: "cards", Tier: TierStandard, Effects: []string{"hover-lift"}, Tags: []string{"friendly", "playful"}},
			{Name: "bento", Tier: TierPremium, Effects: []string{"hover-lift", "glow"}, Tags: []string{"bold", "modern"}},
		},
		SectionBenefits: {
			{Name: "checklist", Tier: TierStandard, Effects: nil, Tags: []string{"friendly", "aida"}, Base: 1},
			{Name: "alternating", Tier: TierStandard, Effects: []string{"slide-in"}, Tags: []string{"professional"}},
			{Name: "stack", Tier: TierPremium, Effects: []string{"stagger"}, Tags: []string{"pas", "bold"}},
		},
		SectionStats: {
			{Name: "counter", Tier: TierPremium, Effects: []string{"count-up"}, Tags: []string{"professional", "technical"}, Base: 1},
			{Name: "inline", Tier: TierStandard, Effects: nil, Tags: []string{"minimal", "elegant"}},
		},
		SectionProcess: {
			{Name: "timeline", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"professional"}, Base: 1},
			{Name: "steps", Tier: TierStandard, Effects: nil, Tags: []string{"friendly", "bab"}},
			{Name: "agenda", Tier: TierStandard, Effects: nil, Tags: []string{"webinar"}},
		},
		SectionTestimonials: {
			{Name: "cards", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"professional"}, Base: 1},
			{Name: "carousel", Tier: TierPremium, Effects: []string{"auto-scroll"}, Tags: []string{"playful", "friendly"}},
			{Name: "quotes", Tier: TierStandard, Effects: nil, Tags: []string{"elegant", "minimal"}},
			{Name: "wall", Tier: TierAdvanced, Effects: []string{"masonry", "stagger"}, Tags: []string{"bold", "pas"}},
		},
		SectionPricing: {
			{Name: "tiers", Tier: TierStandard, Effects: []string{"hover-lift"}, Tags: []string{"professional", "aida"}, Base: 1},
			{Name: "single", Tier: TierStandard, Effects: nil, Tags: []string{"bab", "elegant"}},
			{Name: "anchor", Tier: TierPremium, Effects: []string{"highlight"}, Tags: []string{"pas", "bold"}},
		},
		SectionFAQ: {
			{Name: "accordion", Tier: TierStandard, Effects: nil, Tags: []string{"professional", "friendly"}, Base: 1},
			{Name: "two-column", Tier: TierStandard, Effects: nil, Tags: []string{"minimal"}},
		},
		SectionGuarantee: {
			{Name: "badge", Tier: TierStandard, Effects: nil, Tags: []string{"professional"}, Base: 1},
			{Name: "letter", Tier: TierPremium, Effects: []string{"paper"}, Tags: []string{"bab", "elegant"}},
		},
		SectionCTA: {
			{Name: "banner", Tier: TierStandard, Effects: []string{"fade-up"}, Tags: []string{"professional", "aida"}, Base: 1},
			{Name: "optin", Tier: TierStandard, Effects: nil, Tags: []string{"lead-magnet"}},
			{Name: "urgency", Tier: TierPremium, Effects: []string{"pulse"}, Tags: []string{"pas", "urgent", "bold"}},
		},
		SectionAbout: {
			{Name: "split", Tier: TierStandard, Effects: nil, Tags: []string{"professional"}, Base: 1},
			{Name: "story", Tier: TierStandard, Effects: nil, Tags: []string{"friendly", "bab", "elegant"}},
		},
		SectionContact: {
			{Name: "form", Tier: TierStandard, Effects: nil, Tags: []string{"professional"}, Base: 1},
			{Name: "map", Tier: TierStandard, Effects: nil, Tags: []string{"local"}},
		},
		SectionLogos: {
			{Name: "marquee", Tier: TierPremium, Effects: []string{"marquee"}, Tags: []string{"professional", "modern"}, Base: 1},
			{Name: "grid", Tier: TierStandard, Effects: nil, Tags: []string{"minimal"}},
		},
		SectionCurriculum: {
			{Name: "modules", Tier: TierStandard, Effects: []string{"accordion"}, Tags: []string{"course", "bab"}, Base: 1},
		},
		SectionCountdown: {
			{Name: "timer", Tier: TierPremium, Effects: []string{"tick"}, Tags: []string{"urgent", "webinar"}, Base: 1},
		},
		SectionVideo: {
			{Name: "embed", Tier: TierStandard, Effects: nil, Tags: []string{"professional"}, Base: 1},
			{Name: "cinema", Tier: TierAdvanced, Effects: []string{"lightbox", "glow"}, Tags: []string{"bold", "vibrant"}},
		},
	}
}
