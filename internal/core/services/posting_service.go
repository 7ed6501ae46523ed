package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/timeutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// postingService implements the CommitTxs protocol.
type postingService struct {
	BaseService
	entityRepo  portsrepo.EntityUnitReader
	ledgerRepo  portsrepo.LedgerReader
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
	tolerance   decimal.Decimal
	metrics     *metrics.Metrics
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithTolerance sets the largest credit/debit difference accepted as balanced.
func WithTolerance(tolerance decimal.Decimal) PostingServiceOption {
	return func(s *postingService) {
		s.tolerance = tolerance
	}
}

// WithPostingMetrics records commit counters.
func WithPostingMetrics(m *metrics.Metrics) PostingServiceOption {
	return func(s *postingService) {
		s.metrics = m
	}
}

// NewPostingService creates a new posting service with the provided options
func NewPostingService(
	entityRepo portsrepo.EntityUnitReader,
	ledgerRepo portsrepo.LedgerReader,
	accountRepo portsrepo.AccountReader,
	journalRepo portsrepo.JournalRepositoryFacade,
	options ...PostingServiceOption,
) portssvc.PostingSvc {
	svc := &postingService{
		entityRepo:  entityRepo,
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		tolerance:   accounting.DefaultTolerance,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure postingService implements the PostingSvc interface
var _ portssvc.PostingSvc = (*postingService)(nil)

// CommitTxs validates the request against the scope and writes one journal entry.
func (s *postingService) CommitTxs(ctx context.Context, scope domain.Scope, req domain.CommitRequest) (*domain.CommitResult, error) {
	res, err := s.commit(ctx, scope, req)
	if s.metrics != nil {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
		}
		s.metrics.IncrCommit(originLabel(req.Origin), status)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to commit transactions",
			slog.String("scope", scope.Kind()),
			slog.String("entity_id", scope.Entity()),
			slog.Int("lines", len(req.Lines)))
		return nil, err
	}

	s.LogInfo(ctx, "Transactions committed",
		slog.String("journal_entry_id", res.JournalEntry.JournalEntryID),
		slog.String("ledger_id", res.JournalEntry.LedgerID),
		slog.Int("lines", len(res.Transactions)),
		slog.Bool("posted", res.JournalEntry.IsPosted))
	return res, nil
}

func (s *postingService) commit(ctx context.Context, scope domain.Scope, req domain.CommitRequest) (*domain.CommitResult, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", domain.ErrInvalidLine)
	}
	for i, line := range req.Lines {
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}
	if err := accounting.ValidateLinesBalance(req.Lines, s.tolerance); err != nil {
		return nil, err
	}

	ts, err := timeutil.NormalizeTimestamp(req.Timestamp)
	if err != nil {
		return nil, err
	}

	entity, err := s.entityRepo.FindEntityByID(ctx, scope.Entity())
	if err != nil {
		return nil, err
	}
	if entity.IsClosedOn(ts) {
		return nil, fmt.Errorf("%w: %s is on or before %s", domain.ErrClosedPeriod,
			ts.Format(time.DateOnly), entity.LastClosingDate.Format(time.DateOnly))
	}

	ledgerID, unitID, err := scope.PostingTarget(req)
	if err != nil {
		return nil, err
	}
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if ledger.EntityID != entity.EntityID {
		return nil, fmt.Errorf("%w: ledger %s", domain.ErrCrossEntityReference, ledgerID)
	}
	if ledger.IsLocked {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockedLedger, ledgerID)
	}
	if unitID != "" {
		unit, err := s.entityRepo.FindUnitByID(ctx, unitID)
		if err != nil {
			return nil, err
		}
		if unit.EntityID != entity.EntityID {
			return nil, fmt.Errorf("%w: unit %s", domain.ErrCrossEntityReference, unitID)
		}
	}

	accounts, err := s.resolveAccounts(ctx, entity.EntityID, req.Lines)
	if err != nil {
		return nil, err
	}

	roles := make([]domain.Role, 0, len(req.Lines))
	for _, acc := range accounts {
		roles = append(roles, acc.Role)
	}

	at := now()
	je := domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		LedgerID:       ledger.LedgerID,
		EntityID:       entity.EntityID,
		UnitID:         unitID,
		ParentID:       req.ParentID,
		Timestamp:      ts,
		Description:    req.Description,
		Origin:         req.Origin,
		AuditFields:    domain.NewAuditFields(req.Actor, at),
	}

	if req.ForceRetrieval {
		existing, err := s.journalRepo.FindJournalEntryByTimestamp(ctx, ledger.LedgerID, ts)
		if err != nil {
			return nil, err
		}
		if existing.IsLocked {
			return nil, fmt.Errorf("%w: %s", domain.ErrLockedJournalEntry, existing.JournalEntryID)
		}
		existingRoles, err := s.rolesOf(ctx, existing.JournalEntryID)
		if err != nil {
			return nil, err
		}
		roles = append(roles, existingRoles...)
		je.JournalEntryID = existing.JournalEntryID
	}

	je.Activity, err = activityFor(roles)
	if err != nil {
		return nil, err
	}

	txs := make([]domain.Transaction, len(req.Lines))
	for i, line := range req.Lines {
		txs[i] = domain.Transaction{
			TransactionID:  uuid.NewString(),
			JournalEntryID: je.JournalEntryID,
			AccountID:      accounts[i].AccountID,
			TxType:         line.TxType,
			Amount:         line.Amount,
			Description:    line.Description,
			AuditFields:    domain.NewAuditFields(req.Actor, at),
		}
	}

	saved, savedTxs, err := s.journalRepo.CommitJournalEntry(ctx, domain.PostingPlan{
		EntityID:       entity.EntityID,
		LedgerID:       ledger.LedgerID,
		JournalEntry:   je,
		ForceRetrieval: req.ForceRetrieval,
		Transactions:   txs,
		Post:           req.Post,
		Tolerance:      s.tolerance,
	})
	if err != nil {
		return nil, err
	}
	return &domain.CommitResult{JournalEntry: saved, Transactions: savedTxs}, nil
}

// resolveAccounts returns the account of every line, in line order.
func (s *postingService) resolveAccounts(ctx context.Context, entityID string, lines []domain.TransactionLine) ([]domain.Account, error) {
	var ids, codes []string
	for _, l := range lines {
		if l.AccountID != "" {
			ids = append(ids, l.AccountID)
		} else {
			codes = append(codes, l.AccountCode)
		}
	}

	byID := map[string]domain.Account{}
	byCode := map[string]domain.Account{}
	var err error
	if len(ids) > 0 {
		if byID, err = s.accountRepo.FindAccountsByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}
	if len(codes) > 0 {
		if byCode, err = s.accountRepo.FindAccountsByCodes(ctx, entityID, codes); err != nil {
			return nil, err
		}
	}

	out := make([]domain.Account, len(lines))
	for i, l := range lines {
		acc, ok := byID[l.AccountID]
		ref := l.AccountID
		if l.AccountID == "" {
			acc, ok = byCode[l.AccountCode]
			ref = l.AccountCode
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, ref)
		}
		if acc.EntityID != entityID {
			return nil, fmt.Errorf("%w: account %s", domain.ErrCrossEntityReference, ref)
		}
		if !acc.CanTransact() {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountCannotPost, acc.Code)
		}
		out[i] = acc
	}
	return out, nil
}

// rolesOf returns the roles of the accounts already posted on a journal entry.
func (s *postingService) rolesOf(ctx context.Context, journalEntryID string) ([]domain.Role, error) {
	txs, err := s.journalRepo.FindTransactionsByJournalEntryID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(accounts))
	for _, acc := range accounts {
		roles = append(roles, acc.Role)
	}
	return roles, nil
}

// activityFor derives the journal entry activity. Entries that do not move cash carry
// no activity.
func activityFor(roles []domain.Role) (domain.Activity, error) {
	for _, r := range roles {
		if r == domain.RoleAssetCash {
			return domain.ActivityFromRoles(roles)
		}
	}
	return domain.ActivityNone, nil
}

func originLabel(origin string) string {
	if origin == "" {
		return "unknown"
	}
	return origin
}
