// Package cli implements ledgerctl, the operator command line of the ledger engine.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/alecthomas/kong"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Origin tags every journal entry written from the command line.
const Origin = "cli"

// Globals defines global flags available to all commands.
type Globals struct {
	Actor  string `help:"Actor recorded on audit fields." default:"cli" env:"LEDGER_ACTOR"`
	Pretty bool   `help:"Indent JSON output."`
}

type Commands struct {
	Globals

	Migrate     MigrateCmd     `cmd:"" help:"Apply or revert the database schema."`
	SeedChart   SeedChartCmd   `cmd:"" name:"seed-chart" help:"Seed the chart of accounts of an entity."`
	Digest      DigestCmd      `cmd:"" help:"Print balances and statements as JSON."`
	ClosePeriod ClosePeriodCmd `cmd:"" name:"close-period" help:"Close the books of an entity through a date."`
	Commit      CommitCmd      `cmd:"" help:"Dispatch the blueprints of a cursor plan and commit them."`
	Post        PostCmd        `cmd:"" help:"Commit raw transaction lines."`
	Generate    GenerateCmd    `cmd:"" help:"Commit random balanced journal entries for demos and load tests."`
}

// Env is what commands need at run time. Services is opened lazily so migrate can run
// against an empty database.
type Env struct {
	Ctx        context.Context
	Out        io.Writer
	CursorMode domain.CursorMode
	// ChartSeedPath is the chart seed-chart loads when no file is given.
	ChartSeedPath string
	Services      func() (*portssvc.ServiceContainer, error)
	Migrate       func(dir database.Direction) error
}

// New builds the kong parser for cmds with env bound for every command.
func New(cmds *Commands, env *Env, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("ledgerctl"),
		kong.Description("Operate a ledger engine store: migrations, charts, digests, closings and commits."),
		kong.UsageOnError(),
		kong.Bind(env, &cmds.Globals),
	}
	return kong.New(cmds, append(opts, options...)...)
}

func (e *Env) services() (*portssvc.ServiceContainer, error) {
	if e.Services == nil {
		return nil, errors.New("no store configured")
	}
	return e.Services()
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

var planValidator = newPlanValidator()

// newPlanValidator checks plan files with the same tags gin checks request bodies with.
func newPlanValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// readPlan decodes a YAML (or JSON) file into v. Keys follow the JSON field names of the
// HTTP API, so a request body saved to disk is a valid plan.
func readPlan(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plan %s: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: plan %s: %v", domain.ErrInvalidLine, path, err)
	}
	// round trip through JSON so amounts decode the way request bodies do
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: plan %s: %v", domain.ErrInvalidLine, path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: plan %s: %v", domain.ErrInvalidLine, path, err)
	}
	if err := planValidator.Struct(v); err != nil {
		return fmt.Errorf("%w: plan %s: %v", domain.ErrInvalidLine, path, err)
	}
	return nil
}
