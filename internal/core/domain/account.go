package domain

// TransactionType indicates whether a transaction line is a debit or a credit. It also
// expresses an account's natural balance side.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// IsValid reports whether t is debit or credit.
func (t TransactionType) IsValid() bool {
	return t == Debit || t == Credit
}

// Opposite returns the other side of the ledger.
func (t TransactionType) Opposite() TransactionType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// Account is a node in an entity's chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`
	EntityID        string          `json:"entityID"`
	ChartSlug       string          `json:"chartSlug"`
	Code            string          `json:"code"` // unique within the chart
	Name            string          `json:"name"`
	Role            Role            `json:"role"`
	BalanceType     TransactionType `json:"balanceType"`
	ParentAccountID string          `json:"parentAccountID"` // empty for roots
	Path            string          `json:"path"`            // codes from the root, "/" separated
	Depth           int             `json:"depth"`
	IsActive        bool            `json:"isActive"`
	IsLocked        bool            `json:"isLocked"`
	AuditFields
}

// CanTransact reports whether new lines may be posted against the account.
func (a Account) CanTransact() bool {
	return a.IsActive && !a.IsLocked
}

// RoleBS is the balance sheet section of the account's role.
func (a Account) RoleBS() RoleBS {
	return a.Role.Section()
}
