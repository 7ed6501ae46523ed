package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/digest"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// closingService produces closing entry checkpoints.
type closingService struct {
	BaseService
	entityRepo  portsrepo.EntityReader
	accountRepo portsrepo.AccountReader
	closingRepo portsrepo.ClosingEntryRepositoryFacade
	dates       *ClosingDateCache
}

// ClosingServiceOption is a functional option for configuring the closing service
type ClosingServiceOption func(*closingService)

// WithClosingCache invalidates the shared closing date cache after each close.
func WithClosingCache(c *ClosingDateCache) ClosingServiceOption {
	return func(s *closingService) {
		s.dates = c
	}
}

// NewClosingService creates a new closing service with the provided options
func NewClosingService(
	entityRepo portsrepo.EntityReader,
	accountRepo portsrepo.AccountReader,
	closingRepo portsrepo.ClosingEntryRepositoryFacade,
	options ...ClosingServiceOption,
) portssvc.ClosingSvcFacade {
	svc := &closingService{
		entityRepo:  entityRepo,
		accountRepo: accountRepo,
		closingRepo: closingRepo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure closingService implements the ClosingSvcFacade interface
var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// ListClosingEntries returns the closing entries of an entity.
func (s *closingService) ListClosingEntries(ctx context.Context, entityID string) ([]domain.ClosingEntry, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	entries, err := s.closingRepo.ListClosingEntries(ctx, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list closing entries", slog.String("entity_id", entityID))
		return nil, err
	}
	return entries, nil
}

// ClosePeriod checkpoints the cumulative posted balances through date, broken down by
// account, unit, activity and tx type, and closes every period up to date.
func (s *closingService) ClosePeriod(ctx context.Context, entityID string, date time.Time, actor string) (*domain.ClosingEntry, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: closing date is required", domain.ErrInvalidTimestamp)
	}
	date = domain.DateOf(date)

	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.IsClosedOn(date) {
		return nil, fmt.Errorf("%w: %s is on or before %s", domain.ErrClosedPeriod,
			date.Format(time.DateOnly), entity.LastClosingDate.Format(time.DateOnly))
	}

	chart, err := s.accountRepo.ListAccounts(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	accounts := make(map[string]domain.Account, len(chart))
	for _, acc := range chart {
		accounts[acc.AccountID] = acc
	}

	at := now()
	entry, err := s.closingRepo.CloseEntityPeriod(ctx, entityID, func(r portsrepo.DigestReader) (domain.ClosingEntry, error) {
		rows, err := closingBalances(ctx, r, entityID, date, accounts)
		if err != nil {
			return domain.ClosingEntry{}, err
		}
		return domain.ClosingEntry{
			ClosingEntryID: uuid.NewString(),
			EntityID:       entityID,
			FiscalYear:     date.Year(),
			ClosingDate:    date,
			IsPosted:       true,
			Lines:          closingLines(rows),
			AuditFields:    domain.NewAuditFields(actor, at),
		}, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to close period",
			slog.String("entity_id", entityID),
			slog.String("closing_date", date.Format(time.DateOnly)))
		return nil, err
	}
	if s.dates != nil {
		s.dates.Delete(entityID)
	}

	s.LogInfo(ctx, "Period closed",
		slog.String("entity_id", entityID),
		slog.String("closing_date", date.Format(time.DateOnly)),
		slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// closingBalances returns the cumulative posted rows through date, starting from the
// latest earlier checkpoint when there is one.
func closingBalances(ctx context.Context, r portsrepo.DigestReader, entityID string, date time.Time, accounts map[string]domain.Account) ([]domain.AggregateRow, error) {
	dates, err := r.ClosingEntryDates(ctx, entityID)
	if err != nil {
		return nil, err
	}
	var rows []domain.AggregateRow
	plan := digest.PlanCheckpoint(dates, nil, &date)
	if plan.AddDate != nil {
		lines, err := r.ClosingEntryLines(ctx, entityID, *plan.AddDate)
		if err != nil {
			return nil, err
		}
		rows = append(rows, digest.FilterCheckpointLines(lines, accounts,
			digest.CheckpointFilter{ByUnit: true, ByActivity: true})...)
	}
	if plan.Aggregate {
		agg, err := r.AggregateTransactions(ctx, domain.AggregateQuery{
			Scope:      domain.EntityScope{EntityID: entityID}.Filter(),
			From:       plan.AggregateFrom,
			To:         plan.AggregateTo,
			PostedOnly: true,
			ByUnit:     true,
			ByActivity: true,
		})
		if err != nil {
			return nil, err
		}
		rows = append(rows, agg...)
	}
	return rows, nil
}

type closingKey struct {
	accountID string
	unitID    string
	activity  domain.Activity
	txType    domain.TransactionType
}

// closingLines sums rows per key and drops zero sums.
func closingLines(rows []domain.AggregateRow) []domain.ClosingEntryLine {
	sums := make(map[closingKey]decimal.Decimal, len(rows))
	for _, r := range rows {
		k := closingKey{r.AccountID, r.UnitID, r.Activity, r.TxType}
		sums[k] = sums[k].Add(r.Balance)
	}

	lines := make([]domain.ClosingEntryLine, 0, len(sums))
	for k, bal := range sums {
		if bal.IsZero() {
			continue
		}
		lines = append(lines, domain.ClosingEntryLine{
			AccountID: k.accountID,
			UnitID:    k.unitID,
			Activity:  k.activity,
			TxType:    k.txType,
			Balance:   bal,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		if a.UnitID != b.UnitID {
			return a.UnitID < b.UnitID
		}
		if a.Activity != b.Activity {
			return a.Activity < b.Activity
		}
		return a.TxType < b.TxType
	})
	return lines
}
