package cli

import (
	"github.com/SscSPs/ledger_engine/internal/utils/timeutil"
)

type ClosePeriodCmd struct {
	Entity string `required:"" help:"Entity ID."`
	Date   string `required:"" help:"Closing date (YYYY-MM-DD), inclusive."`
}

func (cmd *ClosePeriodCmd) Run(env *Env, globals *Globals) error {
	date, err := timeutil.ParseIOTimestamp(cmd.Date)
	if err != nil {
		return err
	}
	svc, err := env.services()
	if err != nil {
		return err
	}
	entry, err := svc.Closing.ClosePeriod(env.Ctx, cmd.Entity, date, globals.Actor)
	if err != nil {
		return err
	}
	return writeJSON(env.Out, entry, globals.Pretty)
}
