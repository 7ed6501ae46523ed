package cli

import (
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type CommitCmd struct {
	Entity string `required:"" help:"Entity ID."`
	File   string `required:"" type:"existingfile" help:"Cursor plan (YAML or JSON)."`
	Strict bool   `help:"Refuse to create ledgers that do not exist yet."`
}

func (cmd *CommitCmd) Run(env *Env, globals *Globals) error {
	var plan dto.CursorCommitRequest
	if err := readPlan(cmd.File, &plan); err != nil {
		return err
	}
	opts, err := plan.CommitOptions()
	if err != nil {
		return err
	}
	mode := plan.CursorMode(env.CursorMode)
	if cmd.Strict {
		mode = domain.CursorStrict
	}

	svc, err := env.services()
	if err != nil {
		return err
	}
	cur := svc.Library.GetCursor(cmd.Entity, globals.Actor, mode)
	for i, d := range plan.Dispatches {
		if err := cur.Dispatch(d.Blueprint, d.Ref(), domain.BlueprintParams(d.Params)); err != nil {
			return fmt.Errorf("dispatch %d (%s): %w", i, d.Blueprint, err)
		}
	}

	results, err := cur.Commit(env.Ctx, opts)
	if err != nil && !errors.Is(err, domain.ErrPartialCommit) {
		return err
	}
	if werr := writeJSON(env.Out, dto.ToCursorCommitResponse(results), globals.Pretty); werr != nil {
		return werr
	}
	return err
}

// PostCmd commits the lines exactly as written; unbalanced input is rejected.
type PostCmd struct {
	Entity string `required:"" help:"Entity ID."`
	File   string `required:"" type:"existingfile" help:"Transaction lines (YAML or JSON)."`
}

func (cmd *PostCmd) Run(env *Env, globals *Globals) error {
	var body dto.CommitTxsRequest
	if err := readPlan(cmd.File, &body); err != nil {
		return err
	}
	req, err := body.ToCommitRequest(globals.Actor)
	if err != nil {
		return err
	}
	req.Origin = Origin

	svc, err := env.services()
	if err != nil {
		return err
	}
	res, err := svc.Posting.CommitTxs(env.Ctx, domain.EntityScope{EntityID: cmd.Entity}, req)
	if err != nil {
		return err
	}
	return writeJSON(env.Out, dto.GetJournalEntryResponse{
		JournalEntry: dto.ToJournalEntryResponse(&res.JournalEntry),
		Transactions: dto.ToTransactionResponses(res.Transactions),
	}, globals.Pretty)
}
