package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTolerance is the largest credit/debit difference accepted as balanced.
var DefaultTolerance = decimal.RequireFromString("0.02")

// SignedAmount applies the account's natural side to an amount: a line on the same side
// as the balance type increases the balance, a line on the opposite side reduces it.
func SignedAmount(amount decimal.Decimal, txType, balanceType domain.TransactionType) decimal.Decimal {
	if txType != balanceType {
		return amount.Neg()
	}
	return amount
}

// DiffLines sums credit and debit amounts of caller supplied lines. diff is credits
// minus debits.
func DiffLines(lines []domain.TransactionLine) (credits, debits, diff decimal.Decimal) {
	credits, debits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		switch l.TxType {
		case domain.Credit:
			credits = credits.Add(l.Amount)
		case domain.Debit:
			debits = debits.Add(l.Amount)
		}
	}
	return credits, debits, credits.Sub(debits)
}

// DiffTransactions is DiffLines for persisted transactions.
func DiffTransactions(txs []domain.Transaction) (credits, debits, diff decimal.Decimal) {
	credits, debits = decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.TxType {
		case domain.Credit:
			credits = credits.Add(t.Amount)
		case domain.Debit:
			debits = debits.Add(t.Amount)
		}
	}
	return credits, debits, credits.Sub(debits)
}

// WithinTolerance reports whether |diff| <= tolerance.
func WithinTolerance(diff, tolerance decimal.Decimal) bool {
	return diff.Abs().LessThanOrEqual(tolerance)
}

// ValidateLinesBalance checks that credits equal debits within tolerance.
func ValidateLinesBalance(lines []domain.TransactionLine, tolerance decimal.Decimal) error {
	credits, debits, diff := DiffLines(lines)
	if !WithinTolerance(diff, tolerance) {
		return fmt.Errorf("%w: credits %s, debits %s, tolerance %s",
			domain.ErrBalanceValidation, credits.String(), debits.String(), tolerance.String())
	}
	return nil
}

// ValidateJournalEntryBalance checks the balance invariant on persisted lines.
func ValidateJournalEntryBalance(txs []domain.Transaction, tolerance decimal.Decimal) error {
	credits, debits, diff := DiffTransactions(txs)
	if !WithinTolerance(diff, tolerance) {
		return fmt.Errorf("%w: credits %s, debits %s, tolerance %s",
			domain.ErrBalanceValidation, credits.String(), debits.String(), tolerance.String())
	}
	return nil
}
