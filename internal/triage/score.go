package triage

import (
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/rules"
)

// Last-resort defaults applied at scoring time when a partial record reaches
// the scorer. Normalization should already have filled these; the scorer
// must not fail if it hasn't.
const (
	fallbackTier       = "C"
	fallbackPriority   = "Urgent"
	fallbackStatus     = "New"
	fallbackTicketType = "Incident or Problem"
)

// waitingStatuses are scored as "Other". The display status keeps its real
// name; only the value fed into the rule lookup is collapsed.
var waitingStatuses = map[string]bool{
	"Pending access":          true,
	"Waiting for RnD":         true,
	"Pending other ticket":    true,
	"Waiting for maintenance": true,
	"Waiting for bugfix":      true,
}

// ScoringStatus maps a display status to the status dimension used for rule
// lookup.
func ScoringStatus(displayStatus string) string {
	if waitingStatuses[displayStatus] {
		return "Other"
	}
	return displayStatus
}

// Scorer computes scores and sort keys against a loaded rule table.
type Scorer struct {
	table *rules.Table
}

// NewScorer builds a Scorer over a read-only rule table.
func NewScorer(table *rules.Table) *Scorer {
	return &Scorer{table: table}
}

// Score annotates the ticket with its rule score and sort key and returns
// both. A combination absent from the table scores 0.
func (s *Scorer) Score(ticket *domain.NormalizedTicket) (int, domain.SortKey) {
	score := s.table.Score(s.key(ticket))
	ticket.Score = score
	ticket.SortKey = domain.SortKey{NegScore: -score, CreatedAt: ticket.CreatedAt}
	return score, ticket.SortKey
}

// ScoreAll annotates a batch in place.
func (s *Scorer) ScoreAll(tickets []domain.NormalizedTicket) {
	for i := range tickets {
		s.Score(&tickets[i])
	}
}

func (s *Scorer) key(ticket *domain.NormalizedTicket) rules.Key {
	return rules.Key{
		AccountTier: orDefault(ticket.AccountTier, fallbackTier),
		Priority:    orDefault(ticket.Priority, fallbackPriority),
		Status:      ScoringStatus(orDefault(ticket.Status, fallbackStatus)),
		Environment: orDefault(ticket.Environment, DefaultEnvironment),
		TicketType:  orDefault(ticket.TicketType, fallbackTicketType),
		Escalated:   boolString(ticket.Escalated != nil && *ticket.Escalated),
		PastDue:     boolString(ticket.IsPastDue),
	}
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
