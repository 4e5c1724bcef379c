package pagestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Record
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			id := strings.TrimSpace(row.PageID)
			if id == "" {
				continue
			}
			s.byID[id] = normalizeRecord(row)
		}
	})
}

// saveFileLocked writes the whole map back. Caller holds mu.
func (s *Store) saveFileLocked() error {
	rows := make([]Record, 0, len(s.byID))
	for _, rec := range s.byID {
		rows = append(rows, rec)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PageID < rows[j].PageID })

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *Store) getFile(pageID string) (Record, error) {
	s.ensureLoadedFile()
	s.mu.RLock()
	rec, ok := s.byID[pageID]
	s.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Store) putFile(rec Record) error {
	s.ensureLoadedFile()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[rec.PageID] = rec
	return s.saveFileLocked()
}

func (s *Store) deleteFile(pageID string) error {
	s.ensureLoadedFile()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[pageID]; !ok {
		return nil
	}
	delete(s.byID, pageID)
	return s.saveFileLocked()
}

func (s *Store) listFile(ownerID string) ([]Summary, error) {
	s.ensureLoadedFile()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.byID))
	for _, rec := range s.byID {
		if ownerID != "" && rec.OwnerID != ownerID {
			continue
		}
		out = append(out, rec.summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].PageID < out[j].PageID
	})
	return out, nil
}
