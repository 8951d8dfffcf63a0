// Package triage turns raw helpdesk tickets into the scored, deterministically
// ordered list shown to support agents.
package triage

import (
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// Defaults applied during normalization when an optional attribute is null
// or absent upstream.
const (
	DefaultEnvironment = "Production"
	DefaultTicketType  = "Service request"
)

// Normalizer converts raw tickets plus lookup snapshots into normalized
// records. Per-ticket anomalies (missing due date, unparseable timestamp)
// resolve to stated defaults and a warning; they never abort the batch.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewNormalizer builds a Normalizer. now may be nil, in which case the wall
// clock is used; tests inject a fixed clock.
func NewNormalizer(logger *zap.Logger, now func() time.Time) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{logger: logger, now: now}
}

// Normalize denormalizes one raw ticket against the lookup tables. It never
// fails: every optional field has a stated default or sentinel.
func (n *Normalizer) Normalize(raw domain.RawTicket, lookups domain.Lookups) domain.NormalizedTicket {
	agent := lookups.Agent(raw.ResponderID)
	company := lookups.Company(raw.DepartmentID)

	environment := DefaultEnvironment
	if raw.CustomFields.Environment != nil {
		environment = *raw.CustomFields.Environment
	}
	ticketType := DefaultTicketType
	if raw.CustomFields.TicketType != nil {
		ticketType = *raw.CustomFields.TicketType
	}

	return domain.NormalizedTicket{
		ID:          raw.ID,
		Subject:     raw.Subject,
		Status:      domain.StatusName(raw.Status),
		Priority:    domain.PriorityName(raw.Priority),
		CompanyName: company.Name,
		TAMName:     company.TAMName,
		AccountTier: company.AccountTier,
		GroupName:   lookups.Group(raw.GroupID),
		AgentName:   agent.Name,
		AgentEmail:  agent.Email,
		Environment: environment,
		TicketType:  ticketType,
		Escalated:   raw.CustomFields.Escalated,
		IsPastDue:   n.isPastDue(raw),
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
		DueBy:       raw.DueBy,
		FRDueBy:     raw.FRDueBy,
	}
}

// NormalizeAll normalizes a batch, preserving input order.
func (n *Normalizer) NormalizeAll(raw []domain.RawTicket, lookups domain.Lookups) []domain.NormalizedTicket {
	tickets := make([]domain.NormalizedTicket, 0, len(raw))
	for _, r := range raw {
		tickets = append(tickets, n.Normalize(r, lookups))
	}
	return tickets
}

// isPastDue compares due_by against the current time in the timestamp's own
// offset. A missing or unparseable due date is reported and yields false.
func (n *Normalizer) isPastDue(raw domain.RawTicket) bool {
	if raw.DueBy == "" {
		n.logger.Warn("ticket has no due_by field", zap.Int64("ticket_id", raw.ID))
		return false
	}
	due, err := time.Parse(time.RFC3339, raw.DueBy)
	if err != nil {
		n.logger.Warn("unparseable due_by",
			zap.Int64("ticket_id", raw.ID),
			zap.String("due_by", raw.DueBy),
			zap.Error(err))
		return false
	}
	return due.Before(n.now())
}
