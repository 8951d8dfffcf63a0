package rules

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Canonical table columns: the seven dimensions plus the score.
const scoreColumn = "Score"

var canonicalColumns = []string{
	"account_tier", "priority", "status", "environment",
	"ticket_type", "escalated", "past_due", scoreColumn,
}

// Load reads the canonical 7-tuple rule table from a CSV file. The file is
// addressed by name only: any path-like input is reduced to its base name
// before resolution against dir, so callers cannot escape the rules
// directory. A header containing any column outside the expected set is a
// fatal configuration error; the table is rejected, never trimmed.
func Load(dir, fileName string) (*Table, error) {
	rows, header, err := readRuleFile(dir, fileName)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, canonicalColumns)
	if err != nil {
		return nil, err
	}

	scores := make(map[Key]int, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, eris.Errorf("rules: row %d has %d fields, header has %d", i+2, len(row), len(header))
		}
		score, err := strconv.Atoi(strings.TrimSpace(row[cols[scoreColumn]]))
		if err != nil {
			return nil, eris.Wrapf(err, "rules: row %d: invalid score", i+2)
		}
		key := Key{
			AccountTier: strings.TrimSpace(row[cols["account_tier"]]),
			Priority:    strings.TrimSpace(row[cols["priority"]]),
			Status:      strings.TrimSpace(row[cols["status"]]),
			Environment: strings.TrimSpace(row[cols["environment"]]),
			TicketType:  strings.TrimSpace(row[cols["ticket_type"]]),
			Escalated:   strings.TrimSpace(row[cols["escalated"]]),
			PastDue:     strings.TrimSpace(row[cols["past_due"]]),
		}
		if _, dup := scores[key]; dup {
			return nil, eris.Errorf("rules: row %d: duplicate rule for %v", i+2, key)
		}
		scores[key] = score
	}

	return &Table{scores: scores}, nil
}

func readRuleFile(dir, fileName string) ([][]string, []string, error) {
	safeName := filepath.Base(fileName)
	fullPath := filepath.Join(dir, safeName)

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "rules: open %s", safeName)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrapf(err, "rules: parse %s", safeName)
	}
	if len(records) == 0 {
		return nil, nil, eris.Errorf("rules: %s is empty", safeName)
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}
	return records[1:], header, nil
}

// columnIndex validates the header against the expected column set and maps
// column name to position. Unexpected columns are rejected outright; a
// missing required column is equally fatal.
func columnIndex(header, expected []string) (map[string]int, error) {
	allowed := make(map[string]bool, len(expected))
	for _, col := range expected {
		allowed[col] = true
	}

	cols := make(map[string]int, len(header))
	for i, col := range header {
		if !allowed[col] {
			return nil, eris.Errorf("rules: unexpected column %q", col)
		}
		if _, dup := cols[col]; dup {
			return nil, eris.Errorf("rules: duplicate column %q", col)
		}
		cols[col] = i
	}
	for _, col := range expected {
		if _, ok := cols[col]; !ok {
			return nil, eris.Errorf("rules: missing column %q", col)
		}
	}
	return cols, nil
}
