package domain

import (
	"fmt"
)

// ChartSeed is a chart of accounts definition, usually loaded from YAML.
type ChartSeed struct {
	Slug     string        `yaml:"slug" json:"slug" validate:"required"`
	Accounts []AccountSeed `yaml:"accounts" json:"accounts" validate:"required,min=1,dive"`
}

// AccountSeed is one account of a chart definition with its nested children.
type AccountSeed struct {
	Code        string          `yaml:"code" json:"code" validate:"required"`
	Name        string          `yaml:"name" json:"name" validate:"required"`
	Role        Role            `yaml:"role" json:"role" validate:"required"`
	BalanceType TransactionType `yaml:"balance_type" json:"balanceType" validate:"required,oneof=debit credit"`
	Locked      bool            `yaml:"locked" json:"locked"`
	Inactive    bool            `yaml:"inactive" json:"inactive"`
	Children    []AccountSeed   `yaml:"children" json:"children" validate:"dive"`
}

// RootFor returns the default root node of the role's category, or false for root roles
// and unknown roles.
func RootFor(role Role) (RootAccountMeta, bool) {
	var category RoleCategory
	for c, roles := range RolesDirectory {
		for _, r := range roles {
			if r == role {
				category = c
			}
		}
	}
	var rootRole Role
	switch category {
	case CategoryAsset:
		rootRole = RoleRootAssets
	case CategoryLiability:
		rootRole = RoleRootLiabilities
	case CategoryEquity:
		rootRole = RoleRootCapital
	case CategoryIncome:
		rootRole = RoleRootIncome
	case CategoryCOGS:
		rootRole = RoleRootCOGS
	case CategoryExpense:
		rootRole = RoleRootExpenses
	default:
		return RootAccountMeta{}, false
	}
	for _, meta := range RootAccounts {
		if meta.Role == rootRole {
			return meta, true
		}
	}
	return RootAccountMeta{}, false
}

// Validate checks roles, balance types and code uniqueness across the whole seed.
func (s ChartSeed) Validate() error {
	seen := make(map[string]bool)
	var check func(list []AccountSeed) error
	check = func(list []AccountSeed) error {
		for _, a := range list {
			if seen[a.Code] {
				return fmt.Errorf("%w: duplicate account code %s", ErrInvalidAccountTree, a.Code)
			}
			seen[a.Code] = true
			if !a.Role.IsValid() {
				return fmt.Errorf("%w: %q on account %s", ErrInvalidRole, a.Role, a.Code)
			}
			if a.Role.IsRoot() {
				return fmt.Errorf("%w: account %s uses root role %s", ErrInvalidAccountTree, a.Code, a.Role)
			}
			if !a.BalanceType.IsValid() {
				return fmt.Errorf("%w: balance type %q on account %s", ErrInvalidLine, a.BalanceType, a.Code)
			}
			if err := check(a.Children); err != nil {
				return err
			}
		}
		return nil
	}
	for _, meta := range RootAccounts {
		seen[meta.Code] = true
	}
	return check(s.Accounts)
}
