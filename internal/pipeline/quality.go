package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"pagecraft/internal/catalog"
)

// Quality validation is a pure pass over the assembled page: no generator
// calls, no mutation, same report for the same page and blueprint.

// placeholderPatterns detect unfinished copy. Matched case-insensitively
// against every text field of every section.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)lorem\s+ipsum`),
	regexp.MustCompile(`\[[^\]]{1,40}\]`),
	regexp.MustCompile(`(?i)\byour\s+\w+\s+here\b`),
	regexp.MustCompile(`(?i)\bTODO:`),
	regexp.MustCompile(`(?i)\bexample\.com\b`),
	regexp.MustCompile(`(?i)\binsert\s+\w+\b`),
	regexp.MustCompile(`(?i)\bplaceholder\b`),
	regexp.MustCompile(`\bXXX+\b`),
}

// weakCTAs are button labels that state an action without a reason.
var weakCTAs = map[string]bool{
	"click here": true,
	"submit":     true,
	"learn more": true,
	"read more":  true,
	"go":         true,
	"click":      true,
	"here":       true,
}

// powerWords signal benefit-led hero headlines. Their absence is only
// informational.
var powerWords = []string{
	"free", "new", "proven", "instantly", "guaranteed", "save",
	"faster", "easy", "unlock", "boost", "grow", "stop", "finally",
	"without", "more", "never", "now",
}

const (
	errorPenalty   = 15
	warningPenalty = 5
)

// AssessQuality inspects every section of the page and returns a scored
// report. The page passes only when no error-severity issues remain.
func AssessQuality(page *LandingPage, blueprint *PageBlueprint) QualityReport {
	var issues []QualityIssue
	for i := range page.Sections {
		issues = append(issues, assessSection(&page.Sections[i], blueprint)...)
	}

	errors, warnings := 0, 0
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	score := 100 - errorPenalty*errors - warningPenalty*warnings
	if score < 0 {
		score = 0
	}

	return QualityReport{
		Score:            score,
		Issues:           issues,
		Suggestions:      collectSuggestions(issues),
		PassesValidation: errors == 0,
	}
}

func assessSection(s *PageSection, blueprint *PageBlueprint) []QualityIssue {
	var issues []QualityIssue

	issues = append(issues, placeholderIssues(s)...)
	issues = append(issues, headlineIssues(s)...)

	if cta := strings.ToLower(strings.TrimSpace(s.Content.CTAText)); cta != "" && weakCTAs[cta] {
		issues = append(issues, QualityIssue{
			Severity:   SeverityWarning,
			SectionID:  s.ID,
			Field:      "cta_text",
			Issue:      fmt.Sprintf("weak call to action %q", s.Content.CTAText),
			Suggestion: "restate the value in the button text, e.g. \"Start saving time\"",
		})
	}

	if catalog.RequiresItems(s.Type) && len(s.Items) == 0 {
		issues = append(issues, QualityIssue{
			Severity:   SeverityError,
			SectionID:  s.ID,
			Field:      "items",
			Issue:      fmt.Sprintf("%s section has no items", s.Type),
			Suggestion: "regenerate with at least 3 items",
		})
	}

	if blueprint != nil {
		issues = append(issues, colorDriftIssues(s, blueprint.ColorStrategy)...)
	}

	return issues
}

func placeholderIssues(s *PageSection) []QualityIssue {
	var issues []QualityIssue
	for _, ft := range sectionTexts(s) {
		field, text := ft.field, ft.text
		for _, re := range placeholderPatterns {
			if m := re.FindString(text); m != "" {
				issues = append(issues, QualityIssue{
					Severity:   SeverityError,
					SectionID:  s.ID,
					Field:      field,
					Issue:      fmt.Sprintf("placeholder text %q", m),
					Suggestion: "replace with finished copy",
				})
				break
			}
		}
	}
	return issues
}

func headlineIssues(s *PageSection) []QualityIssue {
	heading := strings.TrimSpace(s.Content.Heading)
	if heading == "" {
		return []QualityIssue{{
			Severity:  SeverityError,
			SectionID: s.ID,
			Field:     "heading",
			Issue:     "section has no headline",
		}}
	}

	var issues []QualityIssue
	words := strings.Fields(heading)
	if len(words) < 3 {
		issues = append(issues, QualityIssue{
			Severity:   SeverityWarning,
			SectionID:  s.ID,
			Field:      "heading",
			Issue:      fmt.Sprintf("headline is only %d word(s)", len(words)),
			Suggestion: "headlines between 3 and 15 words convert better",
		})
	} else if len(words) > 15 {
		issues = append(issues, QualityIssue{
			Severity:   SeverityWarning,
			SectionID:  s.ID,
			Field:      "heading",
			Issue:      fmt.Sprintf("headline runs %d words", len(words)),
			Suggestion: "tighten to 15 words or fewer",
		})
	}

	if s.Type == catalog.SectionHero && !containsPowerWord(heading) {
		issues = append(issues, QualityIssue{
			Severity:   SeverityInfo,
			SectionID:  s.ID,
			Field:      "heading",
			Issue:      "hero headline has no benefit-signaling word",
			Suggestion: "consider a concrete outcome word like \"faster\" or \"save\"",
		})
	}
	return issues
}

// colorDriftIssues flags only the section background; text and accent
// colors may vary per section without comment.
func colorDriftIssues(s *PageSection, colors catalog.ColorStrategy) []QualityIssue {
	got, want := s.Content.BackgroundColor, colors.Background
	if got == "" || want == "" || strings.EqualFold(got, want) {
		return nil
	}
	return []QualityIssue{{
		Severity:  SeverityInfo,
		SectionID: s.ID,
		Field:     "background_color",
		Issue:     fmt.Sprintf("background_color %s differs from the page strategy %s", got, want),
	}}
}

type fieldText struct {
	field string
	text  string
}

// sectionTexts lists each checkable text field of a section in a fixed
// order so reports are byte-for-byte reproducible.
func sectionTexts(s *PageSection) []fieldText {
	texts := []fieldText{
		{"heading", s.Content.Heading},
		{"subheading", s.Content.Subheading},
		{"body_text", s.Content.BodyText},
		{"cta_text", s.Content.CTAText},
	}
	var items strings.Builder
	for _, item := range s.Items {
		items.WriteString(item.Title)
		items.WriteString(" ")
		items.WriteString(item.Description)
		items.WriteString(" ")
	}
	if items.Len() > 0 {
		texts = append(texts, fieldText{"items", items.String()})
	}
	return texts
}

func containsPowerWord(heading string) bool {
	lower := strings.ToLower(heading)
	for _, w := range powerWords {
		if containsWord(lower, w) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// ErrorSectionIDs returns the ids of sections carrying at least one
// error-severity issue, in page order, deduplicated.
func ErrorSectionIDs(page *LandingPage, report QualityReport) []string {
	flagged := map[string]bool{}
	for _, issue := range report.Issues {
		if issue.Severity == SeverityError && issue.SectionID != "" {
			flagged[issue.SectionID] = true
		}
	}
	var ids []string
	for _, s := range page.Sections {
		if flagged[s.ID] {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func collectSuggestions(issues []QualityIssue) []string {
	seen := map[string]bool{}
	var out []string
	for _, issue := range issues {
		if issue.Suggestion == "" || seen[issue.Suggestion] {
			continue
		}
		seen[issue.Suggestion] = true
		out = append(out, issue.Suggestion)
	}
	return out
}
