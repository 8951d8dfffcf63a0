package domain

// RawCustomFields is the nested attribute set on a helpdesk ticket. Any
// field may be absent or null upstream.
type RawCustomFields struct {
	AccountTier *string `json:"account_tier"`
	Environment *string `json:"environment"`
	TicketType  *string `json:"ticket_type"`
	Escalated   *bool   `json:"escalated"`
}

// RawTicket is a ticket record as returned by the helpdesk API. Timestamps
// stay ISO-8601 strings end to end; they are never reformatted.
type RawTicket struct {
	ID           int64           `json:"id"`
	Subject      string          `json:"subject"`
	Priority     int             `json:"priority"`
	Status       int             `json:"status"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	DueBy        string          `json:"due_by"`
	FRDueBy      string          `json:"fr_due_by"`
	ResponderID  *int64          `json:"responder_id"`
	DepartmentID *int64          `json:"department_id"`
	GroupID      *int64          `json:"group_id"`
	CustomFields RawCustomFields `json:"custom_fields"`
}

// SortKey is the composite ordering value for the final display order:
// negated score first, then creation timestamp. Created-at strings compare
// lexically because the upstream format is zero-padded and uniformly zoned.
type SortKey struct {
	NegScore  int    `json:"neg_score"`
	CreatedAt string `json:"created_at"`
}

// Less reports whether k orders before other.
func (k SortKey) Less(other SortKey) bool {
	if k.NegScore != other.NegScore {
		return k.NegScore < other.NegScore
	}
	return k.CreatedAt < other.CreatedAt
}

// NormalizedTicket is the core entity: a raw ticket denormalized against the
// lookup tables, with display strings in place of integer codes. Score and
// SortKey are filled in by the scorer.
type NormalizedTicket struct {
	ID          int64  `json:"id"`
	Subject     string `json:"subject"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CompanyName string `json:"company_name"`
	TAMName     string `json:"tam_name"`
	AccountTier string `json:"account_tier"`
	GroupName   string `json:"group_name"`
	AgentName   string `json:"agent_name"`
	AgentEmail  string `json:"agent_email"`
	Environment string `json:"environment"`
	TicketType  string `json:"ticket_type"`
	// Escalated keeps the upstream tri-state: nil means the flag was never
	// set. Defaulting happens at scoring time, not here.
	Escalated *bool  `json:"escalated"`
	IsPastDue bool   `json:"is_past_due"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	DueBy     string `json:"due_by"`
	FRDueBy   string `json:"fr_due_by"`

	Score   int     `json:"score"`
	SortKey SortKey `json:"sort_key"`
}
