package triage

import (
	"sort"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// Sort orders tickets by sort key ascending: highest score first, then
// oldest created first within equal score. The sort is stable, so tickets
// with fully identical keys keep their relative input order. The input slice
// is ordered in place and returned.
func Sort(tickets []domain.NormalizedTicket) []domain.NormalizedTicket {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].SortKey.Less(tickets[j].SortKey)
	})
	return tickets
}
