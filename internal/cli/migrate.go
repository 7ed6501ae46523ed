package cli

import (
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/pkg/database"
)

type MigrateCmd struct {
	Direction string `arg:"" enum:"up,down" help:"Migration direction (up or down)."`
}

func (cmd *MigrateCmd) Run(env *Env) error {
	if env.Migrate == nil {
		return errors.New("migrations need the postgres store")
	}
	if err := env.Migrate(database.Direction(cmd.Direction)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(env.Out, "migrations applied (%s)\n", cmd.Direction)
	return nil
}
