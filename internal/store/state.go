// Package store keeps the per-session admin state: the checked blocks, the
// last loaded block list and the cached reference lists.
package store

import (
	"sync"
	"time"

	"github.com/tennisclub/court-admin/internal/models"
)

// State is the shared state of one admin session. All accessors copy so
// callers never alias the stored slices.
type State struct {
	mu        sync.RWMutex
	selection models.Selection
	blocks    []models.Block
	loadedAt  time.Time
	reasons   []models.Reason
	templates []models.Template
	series    []models.Series
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// SetSelectedBlocks replaces the selection.
func (s *State) SetSelectedBlocks(selection models.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = append(models.Selection(nil), selection...)
}

// SelectedBlocks returns a copy of the selection.
func (s *State) SelectedBlocks() models.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(models.Selection{}, s.selection...)
}

// ClearSelectedBlocks empties the selection.
func (s *State) ClearSelectedBlocks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}

// SetBlocks stores a freshly loaded block list. The selection refers to rows
// of the previous list and is dropped.
func (s *State) SetBlocks(blocks []models.Block, loadedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append([]models.Block(nil), blocks...)
	s.loadedAt = loadedAt
	s.selection = nil
}

// Blocks returns the last loaded block list and when it was loaded.
func (s *State) Blocks() ([]models.Block, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Block{}, s.blocks...), s.loadedAt
}

// FilterLoaded keeps only selection entries whose block id is part of the
// loaded list. The batch id is taken from the loaded block.
func (s *State) FilterLoaded(selection models.Selection) models.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[int]string, len(s.blocks))
	for _, b := range s.blocks {
		byID[b.ID] = b.BatchID
	}
	seen := make(map[int]struct{}, len(selection))
	out := make(models.Selection, 0, len(selection))
	for _, item := range selection {
		batchID, ok := byID[item.ID]
		if !ok {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, models.SelectedBlock{ID: item.ID, BatchID: batchID})
	}
	return out
}

// SelectAll selects every loaded block.
func (s *State) SelectAll() models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := make(models.Selection, 0, len(s.blocks))
	for _, b := range s.blocks {
		sel = append(sel, models.SelectedBlock{ID: b.ID, BatchID: b.BatchID})
	}
	s.selection = sel
	return append(models.Selection{}, sel...)
}

func (s *State) SetReasons(reasons []models.Reason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reasons = append([]models.Reason(nil), reasons...)
}

func (s *State) Reasons() []models.Reason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Reason{}, s.reasons...)
}

func (s *State) SetTemplates(templates []models.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append([]models.Template(nil), templates...)
}

func (s *State) Templates() []models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Template{}, s.templates...)
}

// Template finds a cached template by id.
func (s *State) Template(id int) (models.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.Template{}, false
}

func (s *State) SetSeries(series []models.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = append([]models.Series(nil), series...)
}

func (s *State) Series() []models.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Series{}, s.series...)
}
