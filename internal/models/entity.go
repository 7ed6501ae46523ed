package models

import "time"

// Entity is the row of the entities table.
type Entity struct {
	EntityID        string     `db:"entity_id"`
	Name            string     `db:"name"`
	Slug            string     `db:"slug"`
	ChartSlug       string     `db:"chart_slug"`
	LastClosingDate *time.Time `db:"last_closing_date"` // Nullable
	AuditFields
}

// Unit is the row of the units table.
type Unit struct {
	UnitID   string `db:"unit_id"`
	EntityID string `db:"entity_id"`
	Name     string `db:"name"`
	Slug     string `db:"slug"`
	AuditFields
}
