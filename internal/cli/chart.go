package cli

import (
	"errors"

	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type SeedChartCmd struct {
	Entity string `required:"" help:"Entity ID."`
	File   string `type:"path" help:"Chart definition (YAML). Defaults to CHART_SEED_PATH."`
}

func (cmd *SeedChartCmd) Run(env *Env, globals *Globals) error {
	svc, err := env.services()
	if err != nil {
		return err
	}
	path := cmd.File
	if path == "" {
		path = env.ChartSeedPath
	}
	if path == "" {
		return errors.New("no chart file given and CHART_SEED_PATH is empty")
	}
	seed, err := services.LoadChartSeed(path)
	if err != nil {
		return err
	}
	accounts, err := svc.Account.SeedChart(env.Ctx, cmd.Entity, seed, globals.Actor)
	if err != nil {
		return err
	}
	return writeJSON(env.Out, dto.ToListAccountResponse(accounts), globals.Pretty)
}
