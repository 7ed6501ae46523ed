package domain

import "time"

// Entity is the accounting organization owning ledgers, units and a chart of accounts.
type Entity struct {
	EntityID  string `json:"entityID"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ChartSlug string `json:"chartSlug"`
	// LastClosingDate is the latest closed date; nothing may be posted on or before it.
	LastClosingDate *time.Time `json:"lastClosingDate,omitempty"`
	AuditFields
}

// IsClosedOn reports whether the given timestamp falls in a closed period.
func (e Entity) IsClosedOn(ts time.Time) bool {
	if e.LastClosingDate == nil {
		return false
	}
	return !DateOf(ts).After(DateOf(*e.LastClosingDate))
}

// Unit is a business unit used to tag journal entries inside an entity.
type Unit struct {
	UnitID   string `json:"unitID"`
	EntityID string `json:"entityID"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	AuditFields
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
