package rules

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// The legacy reduced-key table predates the full 7-tuple format. It keys on
// (account_tier, priority-or-"escalated", environment) with an optional
// ticket_type column; the "escalated" bucket collapses priority and ticket
// type into one row. LoadLegacy expands each reduced row into the canonical
// keys it covers, so the scorer only ever sees the 7-tuple form. Reduced and
// full shapes never mix in one file: a full header fails this loader's
// validation and a reduced header fails Load's.

const legacyEscalatedBucket = "escalated"

var (
	legacyColumns      = []string{"account_tier", "priority", "environment", scoreColumn}
	legacyColumnsTyped = []string{"account_tier", "priority", "environment", "ticket_type", scoreColumn}
)

// LoadLegacy reads a reduced-key rule table and expands it into a canonical
// Table. Path handling and header strictness match Load.
func LoadLegacy(dir, fileName string) (*Table, error) {
	rows, header, err := readRuleFile(dir, fileName)
	if err != nil {
		return nil, err
	}

	expected := legacyColumns
	hasType := false
	for _, col := range header {
		if col == "ticket_type" {
			expected = legacyColumnsTyped
			hasType = true
			break
		}
	}
	cols, err := columnIndex(header, expected)
	if err != nil {
		return nil, err
	}

	scores := make(map[Key]int)
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, eris.Errorf("rules: row %d has %d fields, header has %d", i+2, len(row), len(header))
		}
		score, err := strconv.Atoi(strings.TrimSpace(row[cols[scoreColumn]]))
		if err != nil {
			return nil, eris.Wrapf(err, "rules: row %d: invalid score", i+2)
		}

		tier := strings.TrimSpace(row[cols["account_tier"]])
		priority := strings.TrimSpace(row[cols["priority"]])
		environment := strings.TrimSpace(row[cols["environment"]])

		ticketTypes := TicketTypes
		if hasType {
			ticketTypes = []string{strings.TrimSpace(row[cols["ticket_type"]])}
		}

		var expanded []Key
		if strings.EqualFold(priority, legacyEscalatedBucket) {
			// Escalated bucket: priority and ticket type are absorbed, so
			// the row covers every combination of both.
			expanded = expandLegacy(tier, Priorities, environment, TicketTypes, "True")
		} else {
			expanded = expandLegacy(tier, []string{priority}, environment, ticketTypes, "False")
		}

		for _, key := range expanded {
			if existing, ok := scores[key]; ok && existing != score {
				return nil, eris.Errorf("rules: row %d: conflicting expansions for %v", i+2, key)
			}
			scores[key] = score
		}
	}

	return &Table{scores: scores}, nil
}

func expandLegacy(tier string, priorities []string, environment string, ticketTypes []string, escalated string) []Key {
	keys := make([]Key, 0, len(priorities)*len(Statuses)*len(ticketTypes)*len(Booleans))
	for _, priority := range priorities {
		for _, status := range Statuses {
			for _, ticketType := range ticketTypes {
				for _, pastDue := range Booleans {
					keys = append(keys, Key{
						AccountTier: tier,
						Priority:    priority,
						Status:      status,
						Environment: environment,
						TicketType:  ticketType,
						Escalated:   escalated,
						PastDue:     pastDue,
					})
				}
			}
		}
	}
	return keys
}
