package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusName(t *testing.T) {
	assert.Equal(t, "Open", StatusName(2))
	assert.Equal(t, "New", StatusName(6))
	assert.Equal(t, "Service request triage", StatusName(12))
	assert.Equal(t, "Duplicate", StatusName(14))
	assert.Equal(t, UnknownStatus, StatusName(1))
	assert.Equal(t, UnknownStatus, StatusName(99))
}

func TestPriorityName(t *testing.T) {
	assert.Equal(t, "Low", PriorityName(1))
	assert.Equal(t, "Urgent", PriorityName(4))
	assert.Equal(t, UnknownPriority, PriorityName(0))
	assert.Equal(t, UnknownPriority, PriorityName(5))
}

func TestSortKeyLess(t *testing.T) {
	higher := SortKey{NegScore: -90, CreatedAt: "2024-02-01T00:00:00Z"}
	lower := SortKey{NegScore: -10, CreatedAt: "2024-01-01T00:00:00Z"}
	assert.True(t, higher.Less(lower), "higher score orders first regardless of age")

	older := SortKey{NegScore: -50, CreatedAt: "2024-01-01T00:00:00Z"}
	newer := SortKey{NegScore: -50, CreatedAt: "2024-02-01T00:00:00Z"}
	assert.True(t, older.Less(newer), "equal score falls back to creation time")
	assert.False(t, newer.Less(older))
	assert.False(t, older.Less(older))
}
