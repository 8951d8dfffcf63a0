package domain

import "time"

// Snapshot is one immutable capture of the upstream state: the raw ticket
// collection plus the lookup tables it will be denormalized against. The
// serving layer owns caching and refresh of snapshots; the triage core only
// ever reads them.
type Snapshot struct {
	Tickets   []RawTicket `json:"tickets"`
	Lookups   Lookups     `json:"lookups"`
	FetchedAt time.Time   `json:"fetched_at"`
}
