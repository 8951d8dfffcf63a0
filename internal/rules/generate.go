package rules

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
)

// Generate writes the full Cartesian product of the dimension enumerations
// as a canonical rule table CSV, every row carrying defaultScore. The output
// is a starting point for operators to hand-tune; generation is a one-time
// offline step, not part of the serving path.
func Generate(w io.Writer, defaultScore int) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(canonicalColumns); err != nil {
		return eris.Wrap(err, "rules: write header")
	}

	scoreField := strconv.Itoa(defaultScore)
	for _, tier := range AccountTiers {
		for _, priority := range Priorities {
			for _, status := range Statuses {
				for _, environment := range Environments {
					for _, ticketType := range TicketTypes {
						for _, escalated := range Booleans {
							for _, pastDue := range Booleans {
								row := []string{tier, priority, status, environment, ticketType, escalated, pastDue, scoreField}
								if err := writer.Write(row); err != nil {
									return eris.Wrap(err, "rules: write row")
								}
							}
						}
					}
				}
			}
		}
	}

	writer.Flush()
	return eris.Wrap(writer.Error(), "rules: flush")
}
