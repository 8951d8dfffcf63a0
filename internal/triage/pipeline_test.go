package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/observability"
)

func TestPipeline_EndToEnd(t *testing.T) {
	table := loadTable(t, scoreHeader+
		"A,Urgent,New,Production,Incident or Problem,False,False,76\n"+
		"A,Medium,Open,Production,Service request,False,False,30\n")

	metrics := observability.NewMetrics()
	pipeline := NewPipeline(
		NewNormalizer(zap.NewNop(), fixedClock("2024-06-01T00:00:00Z")),
		NewScorer(table),
		metrics,
		zap.NewNop(),
	)

	raw := []domain.RawTicket{
		{ID: 1, Status: 2, Priority: 2, CreatedAt: "2024-01-05T00:00:00Z",
			ResponderID: int64Ptr(10), DepartmentID: int64Ptr(20), GroupID: int64Ptr(30),
			CustomFields: domain.RawCustomFields{TicketType: strPtr("Service request")}},
		{ID: 2, Status: 6, Priority: 4, CreatedAt: "2024-01-03T00:00:00Z",
			DepartmentID: int64Ptr(20),
			CustomFields: domain.RawCustomFields{
				TicketType: strPtr("Incident or Problem"),
				Escalated:  boolPtr(false),
			}},
		// Missing due_by and all lookups: scores 0 but still appears.
		{ID: 3, Status: 3, Priority: 1, CreatedAt: "2024-01-01T00:00:00Z"},
	}

	tickets := pipeline.Run(raw, testLookups())
	require.Len(t, tickets, 3)

	assert.Equal(t, []int64{2, 1, 3}, ids(tickets))
	assert.Equal(t, 76, tickets[0].Score)
	assert.Equal(t, 30, tickets[1].Score)
	assert.Equal(t, 0, tickets[2].Score)
	assert.False(t, tickets[2].IsPastDue)
	assert.Equal(t, int64(3), metrics.TicketsScored())
}
