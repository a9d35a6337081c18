// Package moderation holds the in-memory moderation store: user reports
// against catalog items and the set of items hidden from browsing.
package moderation

import (
	"fmt"
	"sync"
	"time"
)

// Report is one user complaint against a catalog item.
type Report struct {
	ItemID string    `json:"itemId"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// Store tracks reports and hidden items for the lifetime of the process.
type Store struct {
	mu      sync.RWMutex
	reports []Report
	hidden  map[string]bool
}

// NewStore creates an empty moderation store.
func NewStore() *Store {
	return &Store{hidden: make(map[string]bool)}
}

// Report records a complaint against an item.
func (s *Store) Report(itemID, reason string) error {
	if itemID == "" {
		return fmt.Errorf("report requires an item id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, Report{ItemID: itemID, Reason: reason, At: time.Now()})
	return nil
}

// Reports returns all recorded reports, oldest first.
func (s *Store) Reports() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// Hide removes an item from every browsing surface.
func (s *Store) Hide(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden[itemID] = true
}

// Unhide restores a hidden item.
func (s *Store) Unhide(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hidden, itemID)
}

// IsHidden reports whether an item is hidden. Satisfies content.Hider.
func (s *Store) IsHidden(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hidden[itemID]
}
