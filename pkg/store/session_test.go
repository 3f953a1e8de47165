package store

import (
	"testing"

	"item-finder-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func matched(category, name, aisle string) entity.MatchResult {
	return entity.MatchResult{
		Candidate: entity.ProductCandidate{Category: category, Name: name},
		Aisle:     aisle,
		Matched:   true,
	}
}

func unmatched(category, name string) entity.MatchResult {
	return entity.MatchResult{
		Candidate: entity.ProductCandidate{Category: category, Name: name},
		Aisle:     entity.AisleNotFound,
		Matched:   false,
	}
}

func TestNewReconciliationSessionPartitioning(t *testing.T) {
	session := NewReconciliationSession([]entity.MatchResult{
		matched("Dairy", "Milk", "A1"),
		unmatched("Snacks", "Chips"),
		matched("Produce", "Apples", "B2"),
		matched("Cheese", "Cheddar", "A1"),
		unmatched("Exotic", "Durian"),
	})

	assert.NotEmpty(t, session.ID)

	// Groups appear in first-seen aisle order.
	if assert.Len(t, session.Groups, 2) {
		assert.Equal(t, "A1", session.Groups[0].Aisle)
		assert.Equal(t, "B2", session.Groups[1].Aisle)
	}

	// Items within a group keep input order.
	if assert.Len(t, session.Groups[0].Items, 2) {
		assert.Equal(t, "Milk", session.Groups[0].Items[0].Name)
		assert.Equal(t, "Cheddar", session.Groups[0].Items[1].Name)
	}

	if assert.Len(t, session.Unmatched, 2) {
		assert.Equal(t, "Chips", session.Unmatched[0].Name)
		assert.Equal(t, "Durian", session.Unmatched[1].Name)
	}

	// Every row got a distinct id.
	seen := map[string]bool{}
	for _, g := range session.Groups {
		for _, item := range g.Items {
			assert.False(t, seen[item.ID])
			seen[item.ID] = true
		}
	}
	for _, e := range session.Unmatched {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}

func TestNewReconciliationSessionEmpty(t *testing.T) {
	session := NewReconciliationSession(nil)

	assert.NotNil(t, session.Groups)
	assert.NotNil(t, session.Unmatched)
	assert.Empty(t, session.Groups)
	assert.Empty(t, session.Unmatched)
}

func TestBeginEdit(t *testing.T) {
	session := NewReconciliationSession([]entity.MatchResult{
		matched("Dairy", "Milk", "A1"),
		unmatched("Snacks", "Chips"),
	})
	item := session.Groups[0].Items[0]
	entry := session.Unmatched[0]

	assert.True(t, session.BeginEdit(item.ID))
	assert.True(t, item.Editing)

	// Second call is a no-op, not an error.
	assert.True(t, session.BeginEdit(item.ID))
	assert.True(t, item.Editing)

	// Unmatched entries have no editing mode to enter.
	assert.False(t, session.BeginEdit(entry.ID))
	assert.False(t, session.BeginEdit("no-such-id"))
}

func TestSetProposedAisleTrimming(t *testing.T) {
	session := NewReconciliationSession([]entity.MatchResult{
		matched("Dairy", "Milk", "A1"),
		unmatched("Snacks", "Chips"),
	})
	item := session.Groups[0].Items[0]
	entry := session.Unmatched[0]

	// Matched rows keep the text exactly as typed.
	assert.True(t, session.SetProposedAisle(item.ID, "  B4 "))
	assert.Equal(t, "  B4 ", item.ProposedAisle)

	// Unmatched rows lose leading spaces and tabs only.
	assert.True(t, session.SetProposedAisle(entry.ID, " \tC7 "))
	assert.Equal(t, "C7 ", entry.ProposedAisle)

	assert.False(t, session.SetProposedAisle("no-such-id", "X"))
}

func TestSetProposedAisleClearsInvalid(t *testing.T) {
	session := NewReconciliationSession([]entity.MatchResult{
		unmatched("Snacks", "Chips"),
	})
	entry := session.Unmatched[0]

	assert.True(t, session.MarkInvalid(entry.ID))
	assert.True(t, entry.Invalid)

	assert.True(t, session.SetProposedAisle(entry.ID, "D1"))
	assert.False(t, entry.Invalid)
}

func TestRemoveKeepsEmptyGroups(t *testing.T) {
	session := NewReconciliationSession([]entity.MatchResult{
		matched("Dairy", "Milk", "A1"),
		unmatched("Snacks", "Chips"),
	})
	item := session.Groups[0].Items[0]
	entry := session.Unmatched[0]

	assert.True(t, session.Remove(item.ID))
	if assert.Len(t, session.Groups, 1) {
		assert.Empty(t, session.Groups[0].Items)
	}

	assert.True(t, session.Remove(entry.ID))
	assert.Empty(t, session.Unmatched)

	assert.False(t, session.Remove(item.ID))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	session := NewReconciliationSession([]entity.MatchResult{
		matched("Dairy", "Milk", "A1"),
		unmatched("Snacks", "Chips"),
	})

	snap := session.Snapshot()
	assert.Equal(t, session.ID, snap.ID)

	session.BeginEdit(session.Groups[0].Items[0].ID)
	session.SetProposedAisle(session.Unmatched[0].ID, "Z9")

	assert.False(t, snap.Groups[0].Items[0].Editing)
	assert.Empty(t, snap.Unmatched[0].ProposedAisle)
}

func TestFindItemReturnsStableCopy(t *testing.T) {
	session := NewReconciliationSession([]entity.MatchResult{
		matched("Dairy", "Milk", "A1"),
		unmatched("Snacks", "Chips"),
	})
	itemID := session.Groups[0].Items[0].ID
	entryID := session.Unmatched[0].ID

	session.BeginEdit(itemID)
	item := session.FindItem(itemID)
	entry := session.FindUnmatched(entryID)

	// An edit landing after the read must not show through the copy.
	session.SetProposedAisle(itemID, "B9")
	session.SetProposedAisle(entryID, "C7")

	assert.True(t, item.Editing)
	assert.Empty(t, item.ProposedAisle)
	assert.Empty(t, entry.ProposedAisle)

	assert.Equal(t, "B9", session.FindItem(itemID).ProposedAisle)
	assert.Equal(t, "C7", session.FindUnmatched(entryID).ProposedAisle)
}
