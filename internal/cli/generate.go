package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/timeutil"
	"github.com/SscSPs/ledger_engine/internal/utils/txbalancer"
	"github.com/shopspring/decimal"
)

// GenerateCmd writes synthetic journal entries. Amounts are drawn with four decimal
// places and split across lines, then rounded and balanced by txbalancer before they
// reach the posting service. Real postings never go through the balancer.
type GenerateCmd struct {
	Entity    string `required:"" help:"Entity ID."`
	Ledger    string `required:"" help:"Ledger receiving the entries."`
	From      string `required:"" help:"First day of the generated range (YYYY-MM-DD)."`
	Days      int    `default:"30" help:"Number of days the entries are spread over."`
	Count     int    `default:"10" help:"Number of journal entries."`
	Seed      uint64 `default:"1" help:"Random seed; the same seed yields the same entries."`
	Precision int32  `default:"2" help:"Decimal places of the committed amounts."`
	Post      bool   `help:"Post the generated journal entries."`
}

type generatedSummary struct {
	LedgerID       string   `json:"ledgerID"`
	JournalEntries []string `json:"journalEntries"`
}

func (cmd *GenerateCmd) Run(env *Env, globals *Globals) error {
	if cmd.Count < 1 || cmd.Days < 1 {
		return fmt.Errorf("%w: count and days must be positive", domain.ErrInvalidLine)
	}
	from, err := timeutil.ParseIOTimestamp(cmd.From)
	if err != nil {
		return err
	}
	svc, err := env.services()
	if err != nil {
		return err
	}

	accounts, err := svc.Account.ListAccounts(env.Ctx, cmd.Entity)
	if err != nil {
		return err
	}
	var cash, income, expense []domain.Account
	for _, acc := range accounts {
		if !acc.CanTransact() {
			continue
		}
		switch acc.Role {
		case domain.RoleAssetCash:
			cash = append(cash, acc)
		case domain.RoleIncomeOperational:
			income = append(income, acc)
		case domain.RoleExpenseOperational:
			expense = append(expense, acc)
		}
	}
	if len(cash) == 0 || len(income)+len(expense) == 0 {
		return fmt.Errorf("%w: the chart needs a cash account and an operational income or expense account", domain.ErrAccountNotFound)
	}

	r := rand.New(rand.NewPCG(cmd.Seed, cmd.Seed))
	balancer := txbalancer.New(cmd.Precision)
	summary := generatedSummary{LedgerID: cmd.Ledger}

	for i := 0; i < cmd.Count; i++ {
		ts := from.AddDate(0, 0, r.IntN(cmd.Days)).Add(time.Duration(r.IntN(24*60)) * time.Minute)
		total := decimal.New(int64(r.IntN(1_000_000)+1_000), -4)
		share := decimal.NewFromFloat(r.Float64()).Round(3)

		// a sale when there is an income account and the coin says so, else an expense
		sale := len(expense) == 0 || (len(income) > 0 && r.IntN(2) == 0)
		cashSide, otherSide, pool := domain.Debit, domain.Credit, income
		if !sale {
			cashSide, otherSide, pool = domain.Credit, domain.Debit, expense
		}
		other := pool[r.IntN(len(pool))]
		first := total.Mul(share)

		lines, err := balancer.Balance([]domain.TransactionLine{
			{AccountID: cash[r.IntN(len(cash))].AccountID, TxType: cashSide, Amount: total},
			{AccountID: other.AccountID, TxType: otherSide, Amount: first},
			{AccountID: other.AccountID, TxType: otherSide, Amount: total.Sub(first)},
		})
		if err != nil {
			return err
		}
		lines = dropZeroLines(lines)

		res, err := svc.Posting.CommitTxs(env.Ctx, domain.EntityScope{EntityID: cmd.Entity}, domain.CommitRequest{
			Timestamp:   ts,
			LedgerID:    cmd.Ledger,
			Lines:       lines,
			Description: fmt.Sprintf("generated entry %d", i+1),
			Origin:      Origin,
			Post:        cmd.Post,
			Actor:       globals.Actor,
		})
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		summary.JournalEntries = append(summary.JournalEntries, res.JournalEntry.JournalEntryID)
	}
	return writeJSON(env.Out, summary, globals.Pretty)
}

// dropZeroLines removes lines a small share rounded down to nothing.
func dropZeroLines(lines []domain.TransactionLine) []domain.TransactionLine {
	out := lines[:0]
	for _, l := range lines {
		if !l.Amount.IsZero() {
			out = append(out, l)
		}
	}
	return out
}
