package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string                 `json:"accountID"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Role            domain.Role            `json:"role"`
	RoleBS          domain.RoleBS          `json:"roleBS"`
	BalanceType     domain.TransactionType `json:"balanceType"`
	ParentAccountID string                 `json:"parentAccountID,omitempty"` // Note: Empty string for roots
	Path            string                 `json:"path"`
	Depth           int                    `json:"depth"`
	IsActive        bool                   `json:"isActive"`
	IsLocked        bool                   `json:"isLocked"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		Role:            acc.Role,
		RoleBS:          acc.RoleBS(),
		BalanceType:     acc.BalanceType,
		ParentAccountID: acc.ParentAccountID,
		Path:            acc.Path,
		Depth:           acc.Depth,
		IsActive:        acc.IsActive,
		IsLocked:        acc.IsLocked,
	}
}

// ToListAccountResponse converts a slice of domain accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
