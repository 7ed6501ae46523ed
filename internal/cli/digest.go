package cli

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type DigestCmd struct {
	Entity string `required:"" help:"Entity ID."`
	Ledger string `xor:"scope" help:"Restrict the digest to one ledger."`
	Unit   string `xor:"scope" help:"Restrict the digest to one business unit."`
	From   string `help:"First day included (YYYY-MM-DD)."`
	To     string `help:"Last day included (YYYY-MM-DD)."`

	BalanceSheet    bool `help:"Build the balance sheet."`
	IncomeStatement bool `help:"Build the income statement."`
	CashFlow        bool `help:"Build the cash flow statement."`
	Ratios          bool `help:"Compute financial ratios."`
	IncludeUnposted bool `help:"Include unposted journal entries."`
}

func (cmd *DigestCmd) Run(env *Env, globals *Globals) error {
	svc, err := env.services()
	if err != nil {
		return err
	}
	q, err := dto.DigestRequest{
		From:              cmd.From,
		To:                cmd.To,
		IncludeUnposted:   cmd.IncludeUnposted,
		BalanceSheet:      cmd.BalanceSheet,
		IncomeStatement:   cmd.IncomeStatement,
		CashFlowStatement: cmd.CashFlow,
		ProcessRatios:     cmd.Ratios,
	}.ToQuery()
	if err != nil {
		return err
	}

	var scope domain.Scope = domain.EntityScope{EntityID: cmd.Entity}
	switch {
	case cmd.Ledger != "":
		ledger, err := svc.Ledger.GetLedger(env.Ctx, cmd.Ledger)
		if err != nil {
			return err
		}
		if ledger.EntityID != cmd.Entity {
			return fmt.Errorf("%w: ledger %s", domain.ErrCrossEntityReference, cmd.Ledger)
		}
		scope = domain.LedgerScope{EntityID: cmd.Entity, LedgerID: ledger.LedgerID}
	case cmd.Unit != "":
		unit, err := svc.Entity.GetUnit(env.Ctx, cmd.Unit)
		if err != nil {
			return err
		}
		if unit.EntityID != cmd.Entity {
			return fmt.Errorf("%w: unit %s", domain.ErrCrossEntityReference, cmd.Unit)
		}
		scope = domain.UnitScope{EntityID: cmd.Entity, UnitID: unit.UnitID}
	}

	res, err := svc.Digest.Digest(env.Ctx, scope, q)
	if err != nil {
		return err
	}
	return writeJSON(env.Out, res, globals.Pretty)
}
