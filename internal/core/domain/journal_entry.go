package domain

import (
	"fmt"
	"sort"
	"time"
)

// Activity classifies a journal entry for the cash flow statement.
type Activity string

const (
	ActivityNone Activity = ""

	ActivityOperating Activity = "op"

	ActivityInvestingPPE        Activity = "inv_ppe"
	ActivityInvestingSecurities Activity = "inv_securities"
	ActivityInvestingOther      Activity = "inv"

	ActivityFinancingSTD       Activity = "fin_std"
	ActivityFinancingLTD       Activity = "fin_ltd"
	ActivityFinancingEquity    Activity = "fin_equity"
	ActivityFinancingDividends Activity = "fin_dividends"
	ActivityFinancingOther     Activity = "fin"
)

// ActivityCategory is the cash flow section an activity belongs to.
type ActivityCategory string

const (
	CategoryOperating ActivityCategory = "OPERATING"
	CategoryInvesting ActivityCategory = "INVESTING"
	CategoryFinancing ActivityCategory = "FINANCING"
)

// ValidActivities lists every activity in presentation order.
var ValidActivities = []Activity{
	ActivityOperating,
	ActivityInvestingPPE,
	ActivityInvestingSecurities,
	ActivityInvestingOther,
	ActivityFinancingSTD,
	ActivityFinancingLTD,
	ActivityFinancingEquity,
	ActivityFinancingDividends,
	ActivityFinancingOther,
}

var activityNames = map[Activity]string{
	ActivityOperating:           "Operating",
	ActivityInvestingPPE:        "Purchase/Disposition of PPE",
	ActivityInvestingSecurities: "Purchase/Disposition of Securities",
	ActivityInvestingOther:      "Investing Activity Other",
	ActivityFinancingSTD:        "Payoff of Short Term Debt",
	ActivityFinancingLTD:        "Payoff of Long Term Debt",
	ActivityFinancingEquity:     "Issuance of Common Stock, Preferred Stock or Capital Contribution",
	ActivityFinancingDividends:  "Dividends or Distributions to Shareholders",
	ActivityFinancingOther:      "Financing Activity Other",
}

// IsValid reports whether the activity is one of ValidActivities.
func (a Activity) IsValid() bool {
	_, ok := activityNames[a]
	return ok
}

// VerboseName returns the display name of the activity.
func (a Activity) VerboseName() string {
	if n, ok := activityNames[a]; ok {
		return n
	}
	return string(a)
}

// Category returns the cash flow section of the activity.
func (a Activity) Category() ActivityCategory {
	switch a {
	case ActivityOperating:
		return CategoryOperating
	case ActivityInvestingPPE, ActivityInvestingSecurities, ActivityInvestingOther:
		return CategoryInvesting
	case ActivityFinancingSTD, ActivityFinancingLTD, ActivityFinancingEquity,
		ActivityFinancingDividends, ActivityFinancingOther:
		return CategoryFinancing
	}
	return ""
}

// ValidateActivities de-duplicates the filter, failing on the first unknown activity.
func ValidateActivities(activities []Activity) ([]Activity, error) {
	seen := make(map[Activity]struct{}, len(activities))
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if !a.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidActivity, a)
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out, nil
}

// ActivityFromRoles derives the activity of an entry from the roles of its non-cash lines.
// An empty role set yields ActivityNone. Investing requires at least one purchased asset
// role so that a debt-only entry is classified as financing.
func ActivityFromRoles(roles []Role) (Activity, error) {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		if r == RoleAssetCash {
			continue
		}
		set[r] = struct{}{}
	}
	if len(set) == 0 {
		return ActivityNone, nil
	}

	all := func(group string) bool {
		g := MustRoleGroup(group)
		for r := range set {
			if !g.Contains(r) {
				return false
			}
		}
		return true
	}
	anyOf := func(group string) bool {
		g := MustRoleGroup(group)
		for r := range set {
			if g.Contains(r) {
				return true
			}
		}
		return false
	}

	matches := make([]Activity, 0, 2)
	if all(GroupCFSInvestingPPE) && anyOf(GroupCFSInvPurchaseOfPPE) {
		matches = append(matches, ActivityInvestingPPE)
	}
	if all(GroupCFSInvestingSecurities) && anyOf(GroupCFSInvPurchaseOfSecurities) {
		matches = append(matches, ActivityInvestingSecurities)
	}
	if all(GroupCFSFinSTDebtPayments) {
		matches = append(matches, ActivityFinancingSTD)
	}
	if all(GroupCFSFinLTDebtPayments) {
		matches = append(matches, ActivityFinancingLTD)
	}
	if all(GroupCFSFinIssuingEquity) {
		matches = append(matches, ActivityFinancingEquity)
	}
	if all(GroupCFSFinDividends) {
		matches = append(matches, ActivityFinancingDividends)
	}
	if !anyOf(GroupCFSInvestingAndFinancing) {
		matches = append(matches, ActivityOperating)
	}

	switch len(matches) {
	case 0:
		return ActivityNone, fmt.Errorf("%w: no activity matches roles %v, split the entry", ErrActivityUndetermined, sortedRoles(set))
	case 1:
		return matches[0], nil
	default:
		return ActivityNone, fmt.Errorf("%w: multiple activities %v for roles %v", ErrActivityUndetermined, matches, sortedRoles(set))
	}
}

func sortedRoles(set map[Role]struct{}) []Role {
	out := make([]Role, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// JournalEntry is an atomic, timestamped, balanced group of transactions on one ledger.
type JournalEntry struct {
	JournalEntryID string    `json:"journalEntryID"`
	LedgerID       string    `json:"ledgerID"`
	EntityID       string    `json:"entityID"`
	UnitID         string    `json:"unitID,omitempty"`
	ParentID       string    `json:"parentID,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Description    string    `json:"description"`
	Origin         string    `json:"origin,omitempty"` // free form source tag, e.g. "cursor"
	Activity       Activity  `json:"activity,omitempty"`
	IsPosted       bool      `json:"isPosted"`
	IsLocked       bool      `json:"isLocked"`
	AuditFields
}
