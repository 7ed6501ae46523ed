// Package txbalancer nudges generated transaction lines until credits equal debits.
// It exists for fixtures and data generators; posting never corrects caller input.
package txbalancer

import (
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DefaultMaxIterations bounds the nudge loop.
const DefaultMaxIterations = 10

// ErrCannotBalance is returned when the short side has no line to adjust or the loop
// runs out of iterations.
var ErrCannotBalance = errors.New("txbalancer: unable to balance lines")

// Balancer rounds line amounts to Precision and adds any remaining difference to the
// largest line on the short side.
type Balancer struct {
	Precision     int32
	MaxIterations int
}

// New returns a Balancer with the given precision and the default iteration bound.
func New(precision int32) *Balancer {
	return &Balancer{Precision: precision, MaxIterations: DefaultMaxIterations}
}

// Balance returns a balanced copy of lines. The input slice is not modified.
func (b *Balancer) Balance(lines []domain.TransactionLine) ([]domain.TransactionLine, error) {
	out := make([]domain.TransactionLine, len(lines))
	for i, l := range lines {
		l.Amount = l.Amount.Round(b.Precision)
		out[i] = l
	}

	for i := 0; i < b.MaxIterations; i++ {
		_, _, diff := accounting.DiffLines(out)
		if diff.IsZero() {
			return out, nil
		}
		// credits above debits means the debit side is short
		short := domain.Debit
		if diff.IsNegative() {
			short = domain.Credit
		}
		idx := largest(out, short)
		if idx < 0 {
			return nil, fmt.Errorf("%w: no %s line to adjust", ErrCannotBalance, short)
		}
		out[idx].Amount = out[idx].Amount.Add(diff.Abs()).Round(b.Precision)
	}
	return nil, fmt.Errorf("%w: still unbalanced after %d iterations", ErrCannotBalance, b.MaxIterations)
}

func largest(lines []domain.TransactionLine, side domain.TransactionType) int {
	idx := -1
	best := decimal.Zero
	for i, l := range lines {
		if l.TxType != side {
			continue
		}
		if idx < 0 || l.Amount.GreaterThan(best) {
			idx, best = i, l.Amount
		}
	}
	return idx
}
