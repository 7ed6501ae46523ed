package models

// Account represents a node of an entity's chart of accounts.
// Note: ParentAccountID is nullable in the database; empty string maps to NULL.
type Account struct {
	AccountID       string `db:"account_id"`
	EntityID        string `db:"entity_id"`
	ChartSlug       string `db:"chart_slug"`
	Code            string `db:"code"`
	Name            string `db:"name"`
	Role            string `db:"role"`
	BalanceType     string `db:"balance_type"`
	ParentAccountID string `db:"parent_account_id"` // Nullable
	Path            string `db:"path"`
	Depth           int    `db:"depth"`
	IsActive        bool   `db:"is_active"`
	IsLocked        bool   `db:"is_locked"`
	AuditFields
}
