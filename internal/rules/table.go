// Package rules loads and serves the score rule table: a mapping from a
// combination of categorical ticket attributes to an integer priority score.
package rules

// Key identifies one rule: the seven categorical dimensions in their
// documented order. Boolean dimensions are carried as the literal strings
// "True"/"False" to match the table file format.
type Key struct {
	AccountTier string
	Priority    string
	Status      string
	Environment string
	TicketType  string
	Escalated   string
	PastDue     string
}

// Closed value sets for each dimension. The generator emits the full
// Cartesian product of these; the scorer only ever builds keys from them
// (plus sentinel values, which simply miss the table and score 0).
var (
	AccountTiers = []string{"A", "B", "C", "D", "E"}
	Priorities   = []string{"Urgent", "High", "Medium", "Low"}
	Statuses     = []string{"New", "Open", "Service request triage", "Other", "Pending"}
	Environments = []string{"Production", "Lab"}
	TicketTypes  = []string{"Incident or Problem", "Service request"}
	Booleans     = []string{"True", "False"}
)

// Table is the in-memory rule table. Read-only after load; safe for
// concurrent lookups.
type Table struct {
	scores map[Key]int
}

// Score returns the rule value for a combination, or 0 when no rule matches.
// An absent combination is the explicit default for unscored states, never
// an error.
func (t *Table) Score(key Key) int {
	if t == nil {
		return 0
	}
	return t.scores[key]
}

// Len reports how many rules the table holds.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.scores)
}
