package catalog

// templatePatterns returns the known page archetypes. Order matters: the
// matcher walks the slice front to back and the first entry doubles as
// the universal fallback.
func templatePatterns() []TemplatePattern {
	return []TemplatePattern{
		{
			ID:            "saas",
			Industries:    []string{"software", "app", "platform", "tool", "api", "developer", "productivity", "ai"},
			CopyFramework: FrameworkAIDA,
			AvgSections:   10,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "split"},
				{Type: SectionLogos, Purpose: PurposeProof, Variant: "marquee"},
				{Type: SectionProblem, Purpose: PurposeInterest, Variant: "cards"},
				{Type: SectionFeatures, Purpose: PurposeInterest, Variant: "grid"},
				{Type: SectionBenefits, Purpose: PurposeDesire, Variant: "alternating"},
				{Type: SectionStats, Purpose: PurposeProof, Variant: "counter"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "cards"},
				{Type: SectionPricing, Purpose: PurposeDesire, Variant: "tiers"},
				{Type: SectionFAQ, Purpose: PurposeObjections, Variant: "accordion"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "banner"},
			},
		},
		{
			ID:            "agency",
			Industries:    []string{"agency", "studio", "design", "marketing", "consulting", "creative"},
			CopyFramework: FrameworkAIDA,
			AvgSections:   8,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "fullscreen"},
				{Type: SectionAbout, Purpose: PurposeInterest, Variant: "split"},
				{Type: SectionFeatures, Purpose: PurposeInterest, Variant: "cards"},
				{Type: SectionProcess, Purpose: PurposeDesire, Variant: "timeline"},
				{Type: SectionStats, Purpose: PurposeProof, Variant: "counter"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "carousel"},
				{Type: SectionContact, Purpose: PurposeAction, Variant: "form"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "banner"},
			},
		},
		{
			ID:            "course",
			Industries:    []string{"course", "education", "training", "learning", "bootcamp", "masterclass"},
			CopyFramework: FrameworkBAB,
			AvgSections:   9,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "centered"},
				{Type: SectionProblem, Purpose: PurposeInterest, Variant: "narrative"},
				{Type: SectionSolution, Purpose: PurposeDesire, Variant: "split"},
				{Type: SectionCurriculum, Purpose: PurposeInterest, Variant: "modules"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "cards"},
				{Type: SectionAbout, Purpose: PurposeProof, Variant: "instructor"},
				{Type: SectionPricing, Purpose: PurposeDesire, Variant: "single"},
				{Type: SectionGuarantee, Purpose: PurposeObjections, Variant: "badge"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "banner"},
			},
		},
		{
			ID:            "ecommerce",
			Industries:    []string{"shop", "store", "product", "retail", "merch", "commerce"},
			CopyFramework: FrameworkPAS,
			AvgSections:   8,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "product"},
				{Type: SectionProblem, Purpose: PurposeInterest, Variant: "narrative"},
				{Type: SectionFeatures, Purpose: PurposeDesire, Variant: "grid"},
				{Type: SectionVideo, Purpose: PurposeDesire, Variant: "embed"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "cards"},
				{Type: SectionStats, Purpose: PurposeProof, Variant: "counter"},
				{Type: SectionFAQ, Purpose: PurposeObjections, Variant: "accordion"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "banner"},
			},
		},
		{
			ID:            "lead-magnet",
			Industries:    []string{"ebook", "guide", "checklist", "newsletter", "download", "report"},
			CopyFramework: FrameworkAIDA,
			AvgSections:   6,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "optin"},
				{Type: SectionBenefits, Purpose: PurposeDesire, Variant: "checklist"},
				{Type: SectionAbout, Purpose: PurposeProof, Variant: "author"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "quotes"},
				{Type: SectionFAQ, Purpose: PurposeObjections, Variant: "accordion"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "optin"},
			},
		},
		{
			ID:            "webinar",
			Industries:    []string{"webinar", "workshop", "event", "live", "summit"},
			CopyFramework: FrameworkBAB,
			AvgSections:   7,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "countdown"},
				{Type: SectionBenefits, Purpose: PurposeDesire, Variant: "checklist"},
				{Type: SectionAbout, Purpose: PurposeProof, Variant: "speaker"},
				{Type: SectionProcess, Purpose: PurposeInterest, Variant: "agenda"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "quotes"},
				{Type: SectionCountdown, Purpose: PurposeAction, Variant: "timer"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "register"},
			},
		},
		{
			ID:            "sales-funnel",
			Industries:    []string{"funnel", "offer", "launch", "program"},
			CopyFramework: FrameworkPAS,
			AvgSections:   11,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "longform"},
				{Type: SectionProblem, Purpose: PurposeInterest, Variant: "narrative"},
				{Type: SectionSolution, Purpose: PurposeDesire, Variant: "reveal"},
				{Type: SectionBenefits, Purpose: PurposeDesire, Variant: "stack"},
				{Type: SectionVideo, Purpose: PurposeDesire, Variant: "embed"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "wall"},
				{Type: SectionStats, Purpose: PurposeProof, Variant: "counter"},
				{Type: SectionPricing, Purpose: PurposeDesire, Variant: "anchor"},
				{Type: SectionGuarantee, Purpose: PurposeObjections, Variant: "badge"},
				{Type: SectionFAQ, Purpose: PurposeObjections, Variant: "accordion"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "urgency"},
			},
		},
		{
			ID:            "local-business",
			Industries:    []string{"restaurant", "salon", "clinic", "gym", "local", "service", "repair"},
			CopyFramework: FrameworkAIDA,
			AvgSections:   7,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "photo"},
				{Type: SectionAbout, Purpose: PurposeInterest, Variant: "story"},
				{Type: SectionFeatures, Purpose: PurposeInterest, Variant: "cards"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "quotes"},
				{Type: SectionStats, Purpose: PurposeProof, Variant: "counter"},
				{Type: SectionContact, Purpose: PurposeAction, Variant: "map"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "banner"},
			},
		},
		{
			ID:            "portfolio",
			Industries:    []string{"portfolio", "freelance", "photographer", "artist", "writer", "personal"},
			CopyFramework: FrameworkAIDA,
			AvgSections:   6,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "minimal"},
				{Type: SectionAbout, Purpose: PurposeInterest, Variant: "story"},
				{Type: SectionFeatures, Purpose: PurposeInterest, Variant: "gallery"},
				{Type: SectionProcess, Purpose: PurposeDesire, Variant: "timeline"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "quotes"},
				{Type: SectionContact, Purpose: PurposeAction, Variant: "form"},
			},
		},
		{
			ID:            "coaching",
			Industries:    []string{"coach", "coaching", "mentor", "therapy", "fitness", "wellness"},
			CopyFramework: FrameworkBAB,
			AvgSections:   8,
			SectionFlow: []FlowEntry{
				{Type: SectionHero, Purpose: PurposeAttention, Variant: "centered"},
				{Type: SectionProblem, Purpose: PurposeInterest, Variant: "narrative"},
				{Type: SectionSolution, Purpose: PurposeDesire, Variant: "split"},
				{Type: SectionAbout, Purpose: PurposeProof, Variant: "story"},
				{Type: SectionProcess, Purpose: PurposeInterest, Variant: "steps"},
				{Type: SectionTestimonials, Purpose: PurposeProof, Variant: "cards"},
				{Type: SectionPricing, Purpose: PurposeDesire, Variant: "single"},
				{Type: SectionCTA, Purpose: PurposeAction, Variant: "banner"},
			},
		},
	}
}
