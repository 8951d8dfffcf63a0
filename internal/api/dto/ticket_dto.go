package dto

import (
	"time"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// TicketResponse is the wire shape of one triaged ticket, in display order.
type TicketResponse struct {
	ID          int64          `json:"id"`
	Subject     string         `json:"subject"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	CompanyName string         `json:"company_name"`
	TAMName     string         `json:"tam_name"`
	AccountTier string         `json:"account_tier"`
	GroupName   string         `json:"group_name"`
	AgentName   string         `json:"agent_name"`
	AgentEmail  string         `json:"agent_email"`
	Environment string         `json:"environment"`
	TicketType  string         `json:"ticket_type"`
	Escalated   *bool          `json:"escalated"`
	IsPastDue   bool           `json:"is_past_due"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	DueBy       string         `json:"due_by"`
	FRDueBy     string         `json:"fr_due_by"`
	Score       int            `json:"score"`
	SortKey     domain.SortKey `json:"sort_key"`
}

// TicketListMeta describes the snapshot behind a ticket listing.
type TicketListMeta struct {
	Count     int       `json:"count"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FromNormalized maps a core ticket onto its response shape.
func FromNormalized(t *domain.NormalizedTicket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Subject:     t.Subject,
		Status:      t.Status,
		Priority:    t.Priority,
		CompanyName: t.CompanyName,
		TAMName:     t.TAMName,
		AccountTier: t.AccountTier,
		GroupName:   t.GroupName,
		AgentName:   t.AgentName,
		AgentEmail:  t.AgentEmail,
		Environment: t.Environment,
		TicketType:  t.TicketType,
		Escalated:   t.Escalated,
		IsPastDue:   t.IsPastDue,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DueBy:       t.DueBy,
		FRDueBy:     t.FRDueBy,
		Score:       t.Score,
		SortKey:     t.SortKey,
	}
}
