package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CursorOrigin tags journal entries written by cursors.
const CursorOrigin = "cursor"

// dispatch holds the instructions a blueprint produced for one ledger reference.
type dispatch struct {
	name         string
	ref          domain.LedgerRef
	instructions []domain.TransactionInstruction
}

// ledgerPlan is everything one ledger of a cursor commit needs before writing.
type ledgerPlan struct {
	ref          domain.LedgerRef
	ledger       domain.Ledger
	create       bool
	instructions []domain.TransactionInstruction
}

// cursor accumulates dispatches and commits them ledger by ledger.
type cursor struct {
	lib      *ioLibrary
	entityID string
	actor    string
	mode     domain.CursorMode

	mu         sync.Mutex
	dispatches []dispatch
	committed  bool
}

// Dispatch runs the blueprint right away, so bad parameters fail here. Ledger and
// account resolution wait for Commit.
func (c *cursor) Dispatch(name string, ref domain.LedgerRef, params domain.BlueprintParams) error {
	fn, ok := c.lib.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrBlueprintNotFound, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committed {
		return domain.ErrAlreadyCommitted
	}
	bp, err := fn(params)
	if err != nil {
		return fmt.Errorf("blueprint %s: %w", name, err)
	}
	d := dispatch{name: name, ref: ref}
	if bp != nil {
		d.instructions = bp.Instructions
	}
	c.dispatches = append(c.dispatches, d)
	return nil
}

func (c *cursor) Committed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

// Commit validates every ledger and only then writes. Each
// ledger is its own atomic unit; when some ledgers fail the results of all of them are
// returned together with an error wrapping ErrPartialCommit.
func (c *cursor) Commit(ctx context.Context, opts domain.CursorCommitOptions) ([]domain.LedgerCommitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.committed {
		return nil, domain.ErrAlreadyCommitted
	}
	if len(c.dispatches) == 0 {
		return nil, fmt.Errorf("%w: nothing was dispatched", apperrors.ErrValidation)
	}

	plans, err := c.plan(ctx)
	if err != nil {
		c.lib.LogError(ctx, err, "Cursor validation failed",
			slog.String("entity_id", c.entityID),
			slog.Int("dispatches", len(c.dispatches)))
		return nil, err
	}

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = now()
	}
	c.committed = true

	results := make([]domain.LedgerCommitResult, len(plans))
	failed := 0
	for i, p := range plans {
		results[i] = c.commitLedger(ctx, p, ts, opts)
		status := metrics.StatusSuccess
		if !results[i].Committed {
			failed++
			status = metrics.StatusError
		}
		if c.lib.metrics != nil {
			c.lib.metrics.IncrCursorLedger(status)
		}
	}

	if failed > 0 {
		err := fmt.Errorf("%w: %d of %d ledgers failed", domain.ErrPartialCommit, failed, len(plans))
		c.lib.LogError(ctx, err, "Cursor commit incomplete", slog.String("entity_id", c.entityID))
		return results, err
	}
	c.lib.LogInfo(ctx, "Cursor committed",
		slog.String("entity_id", c.entityID),
		slog.Int("ledgers", len(plans)))
	return results, nil
}

func (c *cursor) commitLedger(ctx context.Context, p ledgerPlan, ts time.Time, opts domain.CursorCommitOptions) domain.LedgerCommitResult {
	res := domain.LedgerCommitResult{Ref: p.ref, Ledger: p.ledger, Instructions: p.instructions}

	if p.create {
		p.ledger.IsPosted = opts.PostNewLedgers
		p.ledger.AuditFields = domain.NewAuditFields(c.actor, now())
		if err := c.lib.ledgerRepo.SaveLedger(ctx, p.ledger); err != nil {
			res.Err = err
			return res
		}
		res.Ledger = p.ledger
	}

	lines := make([]domain.TransactionLine, len(p.instructions))
	for i, ins := range p.instructions {
		lines[i] = ins.Line()
	}
	out, err := c.lib.posting.CommitTxs(ctx,
		domain.LedgerScope{EntityID: c.entityID, LedgerID: p.ledger.LedgerID},
		domain.CommitRequest{
			Timestamp:   ts,
			Lines:       lines,
			LedgerID:    p.ledger.LedgerID,
			Description: opts.Description,
			Origin:      CursorOrigin,
			Post:        opts.PostJournalEntries,
			Actor:       c.actor,
		})
	if err != nil {
		res.Err = err
		return res
	}
	res.JournalEntry = &out.JournalEntry
	res.Transactions = out.Transactions
	res.Committed = true
	return res
}

// plan groups the dispatched instructions per ledger and resolves ledgers and
// accounts. Nothing is written.
func (c *cursor) plan(ctx context.Context) ([]ledgerPlan, error) {
	var plans []*ledgerPlan
	index := make(map[string]*ledgerPlan)
	for _, d := range c.dispatches {
		if len(d.instructions) == 0 {
			continue
		}
		key := d.ref.String()
		p, ok := index[key]
		if !ok {
			p = &ledgerPlan{ref: d.ref}
			index[key] = p
			plans = append(plans, p)
		}
		p.instructions = append(p.instructions, d.instructions...)
	}

	for _, p := range plans {
		lines := make([]domain.TransactionLine, len(p.instructions))
		for i, ins := range p.instructions {
			lines[i] = ins.Line()
		}
		credits, debits, _ := accounting.DiffLines(lines)
		if len(lines) == 0 || !credits.Equal(debits) {
			return nil, fmt.Errorf("%w: ledger %s has debits %s and credits %s",
				domain.ErrUnbalancedPlan, p.ref, debits.String(), credits.String())
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, p := range plans {
		g.Go(func() error {
			return c.resolveLedger(gCtx, p)
		})
	}
	g.Go(func() error {
		return c.checkAccounts(gCtx, plans)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]ledgerPlan, len(plans))
	for i, p := range plans {
		out[i] = *p
	}
	return out, nil
}

func (c *cursor) resolveLedger(ctx context.Context, p *ledgerPlan) error {
	ref := p.ref
	switch {
	case ref.LedgerID != "":
		ledger, err := c.lib.ledgerRepo.FindLedgerByID(ctx, ref.LedgerID)
		if err != nil {
			return err
		}
		p.ledger = *ledger
	case ref.ExternalID != "":
		ledger, err := c.lib.ledgerRepo.FindLedgerByExternalID(ctx, c.entityID, ref.ExternalID)
		if err == nil {
			p.ledger = *ledger
			break
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if c.mode == domain.CursorStrict {
			return fmt.Errorf("%w: xid %s (strict cursor cannot create ledgers)", domain.ErrLedgerNotFound, ref.ExternalID)
		}
		p.create = true
		p.ledger = c.newLedger(strings.Join([]string{domain.DefaultBlueprintLedgerName, ref.ExternalID}, " "), ref.ExternalID)
		return nil
	default:
		if c.mode == domain.CursorStrict {
			return fmt.Errorf("%w: strict cursor cannot create ledgers", domain.ErrLedgerNotFound)
		}
		p.create = true
		p.ledger = c.newLedger(domain.DefaultBlueprintLedgerName, "")
		return nil
	}

	if p.ledger.EntityID != c.entityID {
		return fmt.Errorf("%w: ledger %s", domain.ErrCrossEntityReference, p.ledger.LedgerID)
	}
	if p.ledger.IsLocked {
		return fmt.Errorf("%w: %s", domain.ErrLockedLedger, p.ledger.LedgerID)
	}
	return nil
}

func (c *cursor) newLedger(name, externalID string) domain.Ledger {
	return domain.Ledger{
		LedgerID:   uuid.NewString(),
		EntityID:   c.entityID,
		Name:       name,
		ExternalID: externalID,
	}
}

// checkAccounts resolves every account code of the commit in one batch.
func (c *cursor) checkAccounts(ctx context.Context, plans []*ledgerPlan) error {
	seen := make(map[string]bool)
	var codes []string
	for _, p := range plans {
		for _, ins := range p.instructions {
			if !seen[ins.AccountCode] {
				seen[ins.AccountCode] = true
				codes = append(codes, ins.AccountCode)
			}
		}
	}
	accounts, err := c.lib.accountRepo.FindAccountsByCodes(ctx, c.entityID, codes)
	if err != nil {
		return err
	}
	for _, code := range codes {
		acc, ok := accounts[code]
		if !ok {
			return fmt.Errorf("%w: code %s", domain.ErrAccountNotFound, code)
		}
		if !acc.CanTransact() {
			return fmt.Errorf("%w: %s", domain.ErrAccountCannotPost, code)
		}
	}
	return nil
}
