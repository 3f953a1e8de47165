package store

import (
	"strings"
	"sync"

	"item-finder-be/internal/entity"

	"github.com/google/uuid"
)

// ReconciliationItem is a matched candidate under review. Addressed by a
// stable ID so rows can be removed concurrently without index shuffling.
type ReconciliationItem struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	SourceImage string `json:"image_name"`
	Aisle       string `json:"aisle"`

	Editing       bool   `json:"editing"`
	ProposedAisle string `json:"proposed_aisle,omitempty"`
	Invalid       bool   `json:"invalid"`
}

// UnmatchedEntry is a candidate with no aisle yet. Always editable; it leaves
// the session only after its category is persisted.
type UnmatchedEntry struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	SourceImage string `json:"image_name"`

	ProposedAisle string `json:"proposed_aisle,omitempty"`
	Invalid       bool   `json:"invalid"`
}

// AisleGroup collects reviewed items sharing one aisle. Groups keep their
// first-seen order and are retained even when emptied.
type AisleGroup struct {
	Aisle string                `json:"aisle"`
	Items []*ReconciliationItem `json:"items"`
}

// ReconciliationSession holds the review state for one batch of match
// results. One session belongs to one user interaction; mutations are guarded
// so that confirms on distinct rows may run concurrently.
type ReconciliationSession struct {
	ID        string            `json:"id"`
	Groups    []*AisleGroup     `json:"groups"`
	Unmatched []*UnmatchedEntry `json:"unmatched"`

	mu sync.Mutex
}

// NewReconciliationSession partitions the match results: matched candidates
// are grouped by aisle (first-seen aisle order, input order within a group),
// unmatched candidates become the unmatched list in input order.
func NewReconciliationSession(results []entity.MatchResult) *ReconciliationSession {
	s := &ReconciliationSession{
		ID:        uuid.New().String(),
		Groups:    []*AisleGroup{},
		Unmatched: []*UnmatchedEntry{},
	}

	groupIndex := map[string]*AisleGroup{}
	for _, r := range results {
		if !r.Matched {
			s.Unmatched = append(s.Unmatched, &UnmatchedEntry{
				ID:          uuid.New().String(),
				Category:    r.Candidate.Category,
				Name:        r.Candidate.Name,
				SourceImage: r.Candidate.SourceImage,
			})
			continue
		}

		group, ok := groupIndex[r.Aisle]
		if !ok {
			group = &AisleGroup{Aisle: r.Aisle, Items: []*ReconciliationItem{}}
			groupIndex[r.Aisle] = group
			s.Groups = append(s.Groups, group)
		}
		group.Items = append(group.Items, &ReconciliationItem{
			ID:          uuid.New().String(),
			Category:    r.Candidate.Category,
			Name:        r.Candidate.Name,
			SourceImage: r.Candidate.SourceImage,
			Aisle:       r.Aisle,
		})
	}

	return s
}

// FindItem returns a copy of the matched item with the given ID, or nil.
// The fields are read in one critical section, so a caller never observes a
// half-applied edit; mutations go through the session methods by ID.
func (s *ReconciliationSession) FindItem(id string) *ReconciliationItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findItemLocked(id)
	if item == nil {
		return nil
	}
	copied := *item
	return &copied
}

// FindUnmatched returns a copy of the unmatched entry with the given ID, or
// nil.
func (s *ReconciliationSession) FindUnmatched(id string) *UnmatchedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findUnmatchedLocked(id)
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

// BeginEdit puts a matched item into editing mode. No-op when already
// editing; unmatched entries are always editable and are not touched here.
// Returns false when the ID does not belong to a matched item.
func (s *ReconciliationSession) BeginEdit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findItemLocked(id)
	if item == nil {
		return false
	}
	item.Editing = true
	return true
}

// SetProposedAisle records the user's correction text and clears the invalid
// flag. Unmatched entries get their leading whitespace trimmed; matched items
// keep the text untrimmed; final trimming happens on confirm either way.
func (s *ReconciliationSession) SetProposedAisle(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findItemLocked(id); item != nil {
		item.ProposedAisle = text
		item.Invalid = false
		return true
	}
	if e := s.findUnmatchedLocked(id); e != nil {
		e.ProposedAisle = strings.TrimLeft(text, " \t")
		e.Invalid = false
		return true
	}
	return false
}

// MarkInvalid flags a row as failing validation. The row stays in the
// session awaiting re-entry.
func (s *ReconciliationSession) MarkInvalid(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findItemLocked(id); item != nil {
		item.Invalid = true
		return true
	}
	if e := s.findUnmatchedLocked(id); e != nil {
		e.Invalid = true
		return true
	}
	return false
}

// Remove takes a row out of the session. Emptied groups are kept.
func (s *ReconciliationSession) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.Groups {
		for i, item := range g.Items {
			if item.ID == id {
				g.Items = append(g.Items[:i], g.Items[i+1:]...)
				return true
			}
		}
	}
	for i, e := range s.Unmatched {
		if e.ID == id {
			s.Unmatched = append(s.Unmatched[:i], s.Unmatched[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy safe to serialize while other confirms run.
func (s *ReconciliationSession) Snapshot() *ReconciliationSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &ReconciliationSession{
		ID:        s.ID,
		Groups:    make([]*AisleGroup, 0, len(s.Groups)),
		Unmatched: make([]*UnmatchedEntry, 0, len(s.Unmatched)),
	}
	for _, g := range s.Groups {
		items := make([]*ReconciliationItem, 0, len(g.Items))
		for _, item := range g.Items {
			copied := *item
			items = append(items, &copied)
		}
		out.Groups = append(out.Groups, &AisleGroup{Aisle: g.Aisle, Items: items})
	}
	for _, e := range s.Unmatched {
		copied := *e
		out.Unmatched = append(out.Unmatched, &copied)
	}
	return out
}

func (s *ReconciliationSession) findItemLocked(id string) *ReconciliationItem {
	for _, g := range s.Groups {
		for _, item := range g.Items {
			if item.ID == id {
				return item
			}
		}
	}
	return nil
}

func (s *ReconciliationSession) findUnmatchedLocked(id string) *UnmatchedEntry {
	for _, e := range s.Unmatched {
		if e.ID == id {
			return e
		}
	}
	return nil
}
