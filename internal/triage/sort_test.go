package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

func keyed(id int64, score int, createdAt string) domain.NormalizedTicket {
	return domain.NormalizedTicket{
		ID:        id,
		Score:     score,
		CreatedAt: createdAt,
		SortKey:   domain.SortKey{NegScore: -score, CreatedAt: createdAt},
	}
}

func ids(tickets []domain.NormalizedTicket) []int64 {
	out := make([]int64, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

func TestSort_HigherScoreFirst(t *testing.T) {
	tickets := []domain.NormalizedTicket{
		keyed(1, 10, "2024-01-01T00:00:00Z"),
		keyed(2, 90, "2024-12-01T00:00:00Z"),
		keyed(3, 50, "2024-01-01T00:00:00Z"),
	}

	Sort(tickets)
	assert.Equal(t, []int64{2, 3, 1}, ids(tickets), "score order beats creation time")
}

func TestSort_EqualScoreOldestFirst(t *testing.T) {
	tickets := []domain.NormalizedTicket{
		keyed(1, 50, "2024-02-01T00:00:00Z"),
		keyed(2, 50, "2024-01-01T00:00:00Z"),
	}

	Sort(tickets)
	assert.Equal(t, []int64{2, 1}, ids(tickets), "January ticket precedes February at equal score")
}

func TestSort_StableForIdenticalKeys(t *testing.T) {
	tickets := []domain.NormalizedTicket{
		keyed(7, 50, "2024-01-01T00:00:00Z"),
		keyed(8, 50, "2024-01-01T00:00:00Z"),
		keyed(9, 50, "2024-01-01T00:00:00Z"),
	}

	Sort(tickets)
	assert.Equal(t, []int64{7, 8, 9}, ids(tickets))
}

func TestSort_Idempotent(t *testing.T) {
	tickets := []domain.NormalizedTicket{
		keyed(1, 10, "2024-03-01T00:00:00Z"),
		keyed(2, 90, "2024-01-01T00:00:00Z"),
		keyed(3, 90, "2024-02-01T00:00:00Z"),
		keyed(4, 0, "2024-01-01T00:00:00Z"),
	}

	once := Sort(tickets)
	first := ids(once)
	twice := Sort(once)
	require.Equal(t, first, ids(twice))
}
