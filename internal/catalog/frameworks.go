package catalog

// FrameworkStage is one step of a copy framework's progression.
type FrameworkStage struct {
	Name         string
	SectionTypes []SectionType
	Guidance     string
}

// FrameworkDefinition maps a copywriting methodology onto section purposes.
type FrameworkDefinition struct {
	Name      Framework
	Rationale string
	Stages    []FrameworkStage
	// PurposeGuidance supplies default copy guidance when the planner's
	// generator output omits it for a section.
	PurposeGuidance map[string]string
}

func frameworkDefinitions() map[Framework]FrameworkDefinition {
	return map[Framework]FrameworkDefinition{
		FrameworkAIDA: {
			Name:      FrameworkAIDA,
			Rationale: "Classic staged persuasion for audiences discovering a new product.",
			Stages: []FrameworkStage{
				{Name: "Attention", SectionTypes: []SectionType{SectionHero}, Guidance: "Open with the single strongest outcome. One idea, stated plainly, in the visitor's own vocabulary."},
				{Name: "Interest", SectionTypes: []SectionType{SectionProblem, SectionFeatures, SectionAbout, SectionProcess, SectionCurriculum}, Guidance: "Earn the next scroll: name what the visitor struggles with today and show the capability that addresses it."},
				{Name: "Desire", SectionTypes: []SectionType{SectionBenefits, SectionSolution, SectionPricing, SectionVideo}, Guidance: "Shift from what it does to what they get. Paint the after-state with concrete outcomes."},
				{Name: "Action", SectionTypes: []SectionType{SectionCTA, SectionContact, SectionCountdown}, Guidance: "One unambiguous next step. Restate the value in the button, reduce perceived risk next to it."},
			},
			PurposeGuidance: map[string]string{
				PurposeAttention:  "Lead with the outcome, not the product name. Avoid generic claims.",
				PurposeInterest:   "Be specific about the problem and the mechanism that solves it.",
				PurposeDesire:     "Describe the after-state; concrete benefits over feature lists.",
				PurposeAction:     "Single clear call to action; value-restating button text.",
				PurposeProof:      "Concrete named evidence: numbers, customers, logos. No vague superlatives.",
				PurposeObjections: "Answer the top hesitation honestly and briefly.",
			},
		},
		FrameworkPAS: {
			Name:      FrameworkPAS,
			Rationale: "Pain-led structure for urgent problems and impulse-weighted purchases.",
			Stages: []FrameworkStage{
				{Name: "Problem", SectionTypes: []SectionType{SectionHero, SectionProblem}, Guidance: "Name the pain in the first line, in the visitor's words. Make them feel seen before selling anything."},
				{Name: "Agitate", SectionTypes: []SectionType{SectionStats, SectionVideo, SectionBenefits}, Guidance: "Show the cost of inaction: what the problem compounds into if nothing changes."},
				{Name: "Solution", SectionTypes: []SectionType{SectionSolution, SectionFeatures, SectionPricing, SectionCTA, SectionGuarantee}, Guidance: "Present the product as the direct resolution of the agitated pain, then make acting easy."},
			},
			PurposeGuidance: map[string]string{
				PurposeAttention:  "Open on the pain point itself; the product enters later.",
				PurposeInterest:   "Sharpen the problem with specifics the visitor recognizes.",
				PurposeDesire:     "Contrast life with and without the product.",
				PurposeAction:     "Urgent but honest: what to do right now and why now.",
				PurposeProof:      "Evidence the pain resolves: measurable before/after numbers.",
				PurposeObjections: "Defuse risk directly; guarantees and straight answers.",
			},
		},
		FrameworkBAB: {
			Name:      FrameworkBAB,
			Rationale: "Transformation arc for outcomes people aspire to, fitting premium offers.",
			Stages: []FrameworkStage{
				{Name: "Before", SectionTypes: []SectionType{SectionHero, SectionProblem}, Guidance: "Describe the visitor's current state without judgment. Make it recognizable, not insulting."},
				{Name: "After", SectionTypes: []SectionType{SectionSolution, SectionBenefits, SectionTestimonials, SectionStats}, Guidance: "Paint the transformed state vividly: what a week looks like once the change has happened."},
				{Name: "Bridge", SectionTypes: []SectionType{SectionProcess, SectionCurriculum, SectionPricing, SectionGuarantee, SectionCTA}, Guidance: "Lay out the path between the two states as concrete, finite steps. The offer is the bridge."},
			},
			PurposeGuidance: map[string]string{
				PurposeAttention:  "Sketch the before-state and hint at the after in one breath.",
				PurposeInterest:   "Show the path exists: steps, modules, milestones.",
				PurposeDesire:     "Dwell on the after-state; let the visitor inhabit it.",
				PurposeAction:     "Frame the CTA as stepping onto the bridge.",
				PurposeProof:      "People who crossed already: transformations with names and numbers.",
				PurposeObjections: "Acknowledge the leap feels big; shrink it with guarantees.",
			},
		},
	}
}

// StageFor returns the framework stage covering a section type, if any.
func (d FrameworkDefinition) StageFor(t SectionType) (FrameworkStage, bool) {
	for _, stage := range d.Stages {
		for _, st := range stage.SectionTypes {
			if st == t {
				return stage, true
			}
		}
	}
	return FrameworkStage{}, false
}

// GuidanceFor returns copy guidance for a section, preferring the stage
// covering its type and falling back to purpose-level guidance.
func (d FrameworkDefinition) GuidanceFor(t SectionType, purpose string) string {
	if stage, ok := d.StageFor(t); ok {
		return stage.Guidance
	}
	return d.PurposeGuidance[purpose]
}
