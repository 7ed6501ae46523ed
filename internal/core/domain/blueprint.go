package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBlueprintPrecision is the number of decimals blueprint amounts are rounded to.
const DefaultBlueprintPrecision int32 = 2

// DefaultBlueprintLedgerName names ledgers a cursor creates for dispatches without a
// ledger reference.
const DefaultBlueprintLedgerName = "Blueprint Commitment"

// TransactionInstruction is one line recorded by a blueprint.
type TransactionInstruction struct {
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	TxType      TransactionType `json:"txType"`
	Description string          `json:"description,omitempty"`
}

// Line converts the instruction into a commit line.
func (i TransactionInstruction) Line() TransactionLine {
	return TransactionLine{
		AccountCode: i.AccountCode,
		Amount:      i.Amount,
		TxType:      i.TxType,
		Description: i.Description,
	}
}

// Blueprint records debit and credit instructions against account codes. Amounts are
// rounded to Precision decimals when recorded.
type Blueprint struct {
	Name         string
	Precision    int32
	Instructions []TransactionInstruction
}

// NewBlueprint returns an empty blueprint.
func NewBlueprint(name string, precision int32) *Blueprint {
	return &Blueprint{Name: name, Precision: precision}
}

// Debit records a debit. Amounts must be positive.
func (b *Blueprint) Debit(code string, amount decimal.Decimal, description string) error {
	return b.add(code, amount, Debit, description)
}

// Credit records a credit. Amounts must be positive.
func (b *Blueprint) Credit(code string, amount decimal.Decimal, description string) error {
	return b.add(code, amount, Credit, description)
}

func (b *Blueprint) add(code string, amount decimal.Decimal, txType TransactionType, description string) error {
	if code == "" {
		return fmt.Errorf("%w: blueprint instruction has no account code", ErrInvalidLine)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: blueprint amount %s must be positive", ErrInvalidAmount, amount.String())
	}
	b.Instructions = append(b.Instructions, TransactionInstruction{
		AccountCode: code,
		Amount:      amount.Round(b.Precision),
		TxType:      txType,
		Description: description,
	})
	return nil
}

// BlueprintParams are the named arguments handed to a blueprint function.
type BlueprintParams map[string]any

// Decimal reads a numeric parameter given as a decimal, string or number.
func (p BlueprintParams) Decimal(key string) (decimal.Decimal, error) {
	v, ok := p[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: missing parameter %q", ErrInvalidAmount, key)
	}
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: parameter %q: %v", ErrInvalidAmount, key, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	}
	return decimal.Zero, fmt.Errorf("%w: parameter %q has unsupported type %T", ErrInvalidAmount, key, v)
}

// String reads a parameter as text.
func (p BlueprintParams) String(key string) string {
	switch x := p[key].(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// BlueprintFunc builds a blueprint from parameters.
type BlueprintFunc func(params BlueprintParams) (*Blueprint, error)

// LedgerRef names the ledger a dispatch writes to. LedgerID refers to an existing
// ledger; ExternalID refers to an existing ledger or one to create. The zero value asks
// for a new ledger.
type LedgerRef struct {
	LedgerID   string `json:"ledgerID,omitempty"`
	ExternalID string `json:"externalID,omitempty"`
}

// IsZero reports whether the reference names no ledger.
func (r LedgerRef) IsZero() bool {
	return r.LedgerID == "" && r.ExternalID == ""
}

func (r LedgerRef) String() string {
	switch {
	case r.LedgerID != "":
		return "id:" + r.LedgerID
	case r.ExternalID != "":
		return "xid:" + r.ExternalID
	}
	return "new"
}

// CursorMode controls whether a cursor may create ledgers.
type CursorMode string

const (
	CursorPermissive CursorMode = "permissive"
	CursorStrict     CursorMode = "strict"
)

// IsValid reports whether m is a known mode.
func (m CursorMode) IsValid() bool {
	return m == CursorPermissive || m == CursorStrict
}

// CursorCommitOptions configure Cursor.Commit. A zero Timestamp means now.
type CursorCommitOptions struct {
	Timestamp          time.Time
	Description        string
	PostNewLedgers     bool
	PostJournalEntries bool
}

// LedgerCommitResult is the outcome of one ledger in a cursor commit. Committed is false
// when Err is set.
type LedgerCommitResult struct {
	Ref          LedgerRef                `json:"ref"`
	Ledger       Ledger                   `json:"ledger"`
	JournalEntry *JournalEntry            `json:"journalEntry,omitempty"`
	Transactions []Transaction            `json:"transactions,omitempty"`
	Instructions []TransactionInstruction `json:"instructions"`
	Committed    bool                     `json:"committed"`
	Err          error                    `json:"-"`
}
