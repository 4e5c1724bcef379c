package pagestore

import (
	"database/sql"
	"encoding/json"

	"pagecraft/internal/pipeline"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS landing_pages (
  page_id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT 'Untitled Page',
  description TEXT NOT NULL DEFAULT '',
  quality_score INTEGER NOT NULL DEFAULT 0,
  tokens_used INTEGER NOT NULL DEFAULT 0,
  page JSONB NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_landing_pages_owner_id ON landing_pages (owner_id);
CREATE INDEX IF NOT EXISTS idx_landing_pages_updated_at ON landing_pages (updated_at DESC);
`)
	})
	return s.schemaErr
}

func (s *Store) getDB(pageID string) (Record, error) {
	if err := s.ensureSchema(); err != nil {
		return Record{}, err
	}
	row := s.db.QueryRow(`
SELECT page_id, owner_id, title, description, quality_score, tokens_used, page, created_at, updated_at
FROM landing_pages WHERE page_id = $1`, pageID)

	var rec Record
	var pageJSON []byte
	err := row.Scan(&rec.PageID, &rec.OwnerID, &rec.Title, &rec.Description,
		&rec.QualityScore, &rec.TokensUsed, &pageJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var page pipeline.LandingPage
	if err := json.Unmarshal(pageJSON, &page); err != nil {
		return Record{}, err
	}
	rec.Page = page
	return normalizeRecord(rec), nil
}

func (s *Store) putDB(rec Record) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	pageJSON, err := json.Marshal(rec.Page)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO landing_pages (page_id, owner_id, title, description, quality_score, tokens_used, page, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (page_id)
DO UPDATE SET owner_id=EXCLUDED.owner_id,
  title=EXCLUDED.title,
  description=EXCLUDED.description,
  quality_score=EXCLUDED.quality_score,
  tokens_used=EXCLUDED.tokens_used,
  page=EXCLUDED.page,
  updated_at=EXCLUDED.updated_at`,
		rec.PageID, rec.OwnerID, rec.Title, rec.Description,
		rec.QualityScore, rec.TokensUsed, pageJSON, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (s *Store) deleteDB(pageID string) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM landing_pages WHERE page_id = $1`, pageID)
	return err
}

func (s *Store) listDB(ownerID string) ([]Summary, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	var (
		rows *sql.Rows
		err  error
	)
	if ownerID == "" {
		rows, err = s.db.Query(`
SELECT page_id, owner_id, title, quality_score, jsonb_array_length(page->'sections'), created_at, updated_at
FROM landing_pages ORDER BY updated_at DESC`)
	} else {
		rows, err = s.db.Query(`
SELECT page_id, owner_id, title, quality_score, jsonb_array_length(page->'sections'), created_at, updated_at
FROM landing_pages WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0, 32)
	for rows.Next() {
		var sum Summary
		var count sql.NullInt64
		if err := rows.Scan(&sum.PageID, &sum.OwnerID, &sum.Title, &sum.QualityScore, &count, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			continue
		}
		sum.SectionCount = int(count.Int64)
		out = append(out, sum)
	}
	return out, rows.Err()
}
