package pagestore

import (
	"strings"
	"time"

	"pagecraft/internal/pipeline"
)

// Record is one persisted landing page plus its run metadata.
type Record struct {
	PageID       string               `json:"page_id"`
	OwnerID      string               `json:"owner_id"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	QualityScore int                  `json:"quality_score"`
	TokensUsed   int                  `json:"tokens_used"`
	Page         pipeline.LandingPage `json:"page"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Summary is the list-view projection of a record, without the page body.
type Summary struct {
	PageID       string    `json:"page_id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	QualityScore int       `json:"quality_score"`
	SectionCount int       `json:"section_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r Record) summary() Summary {
	return Summary{
		PageID:       r.PageID,
		OwnerID:      r.OwnerID,
		Title:        r.Title,
		QualityScore: r.QualityScore,
		SectionCount: len(r.Page.Sections),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func normalizeRecord(rec Record) Record {
	rec.PageID = strings.TrimSpace(rec.PageID)
	rec.OwnerID = strings.TrimSpace(rec.OwnerID)
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		rec.Title = "Untitled Page"
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.UpdatedAt.Before(rec.CreatedAt) {
		rec.UpdatedAt = rec.CreatedAt
	}
	return rec
}
