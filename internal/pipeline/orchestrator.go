package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"pagecraft/internal/catalog"
	"pagecraft/internal/llm"
)

// RefinePolicy bounds the regeneration loop. The zero value disables
// refinement entirely; use DefaultRefinePolicy for the production bounds.
type RefinePolicy struct {
	// MaxIterations caps validate-regenerate rounds after the initial pass.
	MaxIterations int
	// ScoreFloor keeps refining below this score even with zero errors.
	ScoreFloor int
	// MaxSectionsPerIteration caps regenerations per round.
	MaxSectionsPerIteration int
}

// DefaultRefinePolicy bounds total generator calls at
// sections + MaxIterations*MaxSectionsPerIteration.
func DefaultRefinePolicy() RefinePolicy {
	return RefinePolicy{
		MaxIterations:           2,
		ScoreFloor:              70,
		MaxSectionsPerIteration: 2,
	}
}

// Orchestrator drives the full pipeline: intent, blueprint, sequential
// section generation, validation, and the bounded refinement loop.
type Orchestrator struct {
	LLM        llm.Client
	Catalog    *catalog.Catalog
	Policy     RefinePolicy
	OnProgress ProgressFunc
	Logger     *log.Logger
}

// NewOrchestrator wires an orchestrator with the default catalog and
// refinement policy.
func NewOrchestrator(client llm.Client) *Orchestrator {
	return &Orchestrator{
		LLM:     client,
		Catalog: catalog.Default(),
		Policy:  DefaultRefinePolicy(),
	}
}

// Run executes one full generation. Transport failures abort the run and
// surface in both the result and the returned error; parse failures never
// abort, they degrade to fallback content upstream. Run always returns a
// populated result.
func (o *Orchestrator) Run(ctx context.Context, in OrchestrationInput) (OrchestrationResult, error) {
	start := time.Now()
	ledger := llm.NewUsageLedger()

	fail := func(phase string, err error) (OrchestrationResult, error) {
		o.logf("run failed in %s phase: %v", phase, err)
		o.emit(ProgressEvent{Phase: PhaseFailed, Progress: 100, Message: err.Error()})
		return OrchestrationResult{
			Success: false,
			Error:   err.Error(),
			Metadata: Metadata{
				TokensUsed:       ledger.Total().Total(),
				GenerationTimeMs: time.Since(start).Milliseconds(),
			},
		}, err
	}

	if strings.TrimSpace(in.Description) == "" && (in.WizardData == nil || strings.TrimSpace(in.WizardData.ProductDescription) == "") {
		return fail(PhaseUnderstanding, fmt.Errorf("orchestrator: empty description"))
	}

	o.emit(ProgressEvent{Phase: PhaseUnderstanding, Progress: 5, Message: "Analyzing your product"})
	analyzer := &IntentAnalyzer{LLM: o.LLM}
	intent, usage, err := analyzer.Analyze(ctx, in)
	if err != nil {
		return fail(PhaseUnderstanding, err)
	}
	ledger.Record("intent", usage)

	o.emit(ProgressEvent{Phase: PhasePlanning, Progress: 20, Message: "Planning your page"})
	planner := &BlueprintPlanner{LLM: o.LLM, Catalog: o.catalog()}
	blueprint, usage, err := planner.Plan(ctx, intent, in)
	if err != nil {
		return fail(PhasePlanning, err)
	}
	ledger.Record("blueprint", usage)

	gen := &SectionGenerator{LLM: o.LLM}
	total := len(blueprint.SectionSequence)
	sections := make([]PageSection, 0, total)
	for i, plan := range blueprint.SectionSequence {
		gctx := GenerationContext{
			Blueprint:   &blueprint,
			Intent:      intent,
			Previous:    sections,
			ColorScheme: blueprint.ColorStrategy,
			Index:       i,
			Total:       total,
		}
		section, usage, err := gen.Generate(ctx, plan, gctx)
		if err != nil {
			return fail(PhaseGenerating, err)
		}
		ledger.Record("section", usage)
		sections = append(sections, section)
		o.emit(ProgressEvent{
			Phase:          PhaseGenerating,
			Progress:       30 + (i+1)*50/max(total, 1),
			Message:        fmt.Sprintf("Writing %s section", plan.Type),
			CurrentSection: i + 1,
			TotalSections:  total,
		})
	}

	page := assemblePage(intent, &blueprint, in, sections)

	o.emit(ProgressEvent{Phase: PhaseValidating, Progress: 85, Message: "Reviewing quality"})
	report := AssessQuality(page, &blueprint)

	if o.refinementEnabled(in) {
		report = o.refine(ctx, gen, ledger, page, &blueprint, intent, report)
	}

	o.emit(ProgressEvent{Phase: PhaseComplete, Progress: 100, Message: "Your page is ready"})
	return OrchestrationResult{
		Success: true,
		Page:    page,
		Metadata: Metadata{
			Intent:           intent,
			Blueprint:        &blueprint,
			TokensUsed:       ledger.Total().Total(),
			GenerationTimeMs: time.Since(start).Milliseconds(),
			QualityScore:     report.Score,
		},
	}, nil
}

// refine runs the bounded regenerate-and-revalidate loop, mutating page
// in place. A regeneration transport failure keeps the old section and
// moves on; the page it already has is better than no page.
func (o *Orchestrator) refine(ctx context.Context, gen *SectionGenerator, ledger *llm.UsageLedger, page *LandingPage, blueprint *PageBlueprint, intent PageIntent, report QualityReport) QualityReport {
	for iter := 0; iter < o.Policy.MaxIterations; iter++ {
		// A page that clears the score floor ships as-is, even with
		// residual error-severity issues.
		if report.PassesValidation || report.Score >= o.Policy.ScoreFloor {
			return report
		}
		ids := ErrorSectionIDs(page, report)
		if len(ids) == 0 {
			// No section qualifies for regeneration.
			return report
		}
		if o.Policy.MaxSectionsPerIteration > 0 && len(ids) > o.Policy.MaxSectionsPerIteration {
			ids = ids[:o.Policy.MaxSectionsPerIteration]
		}

		o.emit(ProgressEvent{
			Phase:    PhaseRegenerating,
			Progress: 90,
			Message:  fmt.Sprintf("Improving %d section(s), round %d", len(ids), iter+1),
		})

		for _, id := range ids {
			idx := sectionIndex(page, id)
			if idx < 0 || idx >= len(blueprint.SectionSequence) {
				continue
			}
			plan := blueprint.SectionSequence[idx]
			gctx := GenerationContext{
				Blueprint:   blueprint,
				Intent:      intent,
				Previous:    page.Sections[:idx],
				ColorScheme: blueprint.ColorStrategy,
				Index:       idx,
				Total:       len(page.Sections),
			}
			replacement, usage, err := gen.Regenerate(ctx, page.Sections[idx], plan, gctx, issuesFor(report, id))
			if err != nil {
				o.logf("regenerate %s: %v (keeping previous version)", id, err)
				continue
			}
			ledger.Record("regenerate", usage)
			page.Sections[idx] = replacement
		}

		report = AssessQuality(page, blueprint)
	}
	return report
}

func assemblePage(intent PageIntent, blueprint *PageBlueprint, in OrchestrationInput, sections []PageSection) *LandingPage {
	title := ""
	if in.WizardData != nil {
		title = strings.TrimSpace(in.WizardData.BusinessName)
	}
	if title == "" {
		title = truncate(intent.PrimaryValueProp, 60)
	}
	return &LandingPage{
		Title:           title,
		Description:     intent.PrimaryValueProp,
		Sections:        sections,
		ColorScheme:     blueprint.ColorStrategy,
		Typography:      blueprint.Typography,
		SmoothScroll:    true,
		AnimationPreset: "fade-up",
		ContentWidth:    "normal",
	}
}

func (o *Orchestrator) refinementEnabled(in OrchestrationInput) bool {
	if o.Policy.MaxIterations <= 0 {
		return false
	}
	if in.Preferences != nil && in.Preferences.EnableRefinement != nil {
		return *in.Preferences.EnableRefinement
	}
	return true
}

func (o *Orchestrator) catalog() *catalog.Catalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return catalog.Default()
}

func (o *Orchestrator) emit(ev ProgressEvent) {
	if o.OnProgress != nil {
		o.OnProgress(ev)
	}
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func sectionIndex(page *LandingPage, id string) int {
	for i := range page.Sections {
		if page.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

func issuesFor(report QualityReport, sectionID string) []QualityIssue {
	var out []QualityIssue
	for _, issue := range report.Issues {
		if issue.SectionID == sectionID {
			out = append(out, issue)
		}
	}
	return out
}
