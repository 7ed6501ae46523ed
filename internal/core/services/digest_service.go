package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/digest"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/cache"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
)

// ClosingDateCache caches the closing entry dates of an entity, keyed by entity id.
type ClosingDateCache = cache.InMemory[[]time.Time]

// digestService runs the two-phase aggregation pipeline and the statement stages.
type digestService struct {
	BaseService
	entityRepo        portsrepo.EntityUnitReader
	ledgerRepo        portsrepo.LedgerReader
	accountRepo       portsrepo.AccountReader
	digestRepo        portsrepo.DigestRepository
	useClosingEntries bool
	dates             *ClosingDateCache
	metrics           *metrics.Metrics
}

// DigestServiceOption is a functional option for configuring the digest service
type DigestServiceOption func(*digestService)

// WithClosingEntries enables or disables closing entry checkpoints.
func WithClosingEntries(enabled bool) DigestServiceOption {
	return func(s *digestService) {
		s.useClosingEntries = enabled
	}
}

// WithClosingDateCache shares a closing date cache with the closing service.
func WithClosingDateCache(c *ClosingDateCache) DigestServiceOption {
	return func(s *digestService) {
		s.dates = c
	}
}

// WithDigestMetrics records digest durations, checkpoint states and cache usage.
func WithDigestMetrics(m *metrics.Metrics) DigestServiceOption {
	return func(s *digestService) {
		s.metrics = m
	}
}

// NewDigestService creates a new digest service with the provided options
func NewDigestService(
	entityRepo portsrepo.EntityUnitReader,
	ledgerRepo portsrepo.LedgerReader,
	accountRepo portsrepo.AccountReader,
	digestRepo portsrepo.DigestRepository,
	options ...DigestServiceOption,
) portssvc.DigestSvc {
	svc := &digestService{
		entityRepo:        entityRepo,
		ledgerRepo:        ledgerRepo,
		accountRepo:       accountRepo,
		digestRepo:        digestRepo,
		useClosingEntries: true,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure digestService implements the DigestSvc interface
var _ portssvc.DigestSvc = (*digestService)(nil)

// Digest aggregates the scope's transactions and runs the requested stages.
func (s *digestService) Digest(ctx context.Context, scope domain.Scope, q domain.DigestQuery) (*domain.DigestResult, error) {
	start := time.Now()
	q, err := q.Normalize()
	if err != nil {
		s.LogError(ctx, err, "Invalid digest query", slog.String("entity_id", scope.Entity()))
		return nil, err
	}

	entity, err := s.entityRepo.FindEntityByID(ctx, scope.Entity())
	if err != nil {
		return nil, err
	}
	if err := s.checkScope(ctx, scope); err != nil {
		return nil, err
	}

	chart, err := s.accountRepo.ListAccounts(ctx, entity.EntityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	accounts := make(map[string]domain.Account, len(chart))
	byCode := make(map[string]string, len(chart))
	for _, acc := range chart {
		accounts[acc.AccountID] = acc
		byCode[acc.Code] = acc.AccountID
	}

	var accountIDs []string
	for _, code := range q.Accounts {
		id, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: code %s", domain.ErrAccountNotFound, code)
		}
		accountIDs = append(accountIDs, id)
	}

	plan := domain.CheckpointPlan{State: domain.CheckpointDirect}
	var rows []domain.AggregateRow
	if !q.MatchesNothing() {
		err = s.digestRepo.ReadSnapshot(ctx, func(r portsrepo.DigestReader) error {
			plan = domain.CheckpointPlan{State: domain.CheckpointDirect, Aggregate: true, AggregateFrom: q.From, AggregateTo: q.To}
			if s.useClosingEntries && q.CheckpointsUsable(scope) {
				dates, err := s.closingDates(ctx, r, entity.EntityID)
				if err != nil {
					return err
				}
				plan = digest.PlanCheckpoint(dates, q.From, q.To)
			}

			filter := digest.CheckpointFilter{
				UnitID:     scope.Filter().UnitID,
				AccountIDs: accountIDs,
				Activities: q.Activities,
				Roles:      q.Roles,
				ByUnit:     q.ByUnit,
				ByActivity: q.ByActivity,
			}
			if plan.AddDate != nil {
				lines, err := r.ClosingEntryLines(ctx, entity.EntityID, *plan.AddDate)
				if err != nil {
					return err
				}
				rows = append(rows, digest.FilterCheckpointLines(lines, accounts, filter)...)
			}
			if plan.SubtractDate != nil {
				lines, err := r.ClosingEntryLines(ctx, entity.EntityID, *plan.SubtractDate)
				if err != nil {
					return err
				}
				rows = append(rows, digest.Negate(digest.FilterCheckpointLines(lines, accounts, filter))...)
			}
			if plan.Aggregate {
				agg, err := r.AggregateTransactions(ctx, domain.AggregateQuery{
					Scope:      scope.Filter(),
					From:       plan.AggregateFrom,
					To:         plan.AggregateTo,
					PostedOnly: !q.IncludeUnposted,
					AccountIDs: accountIDs,
					Activities: q.Activities,
					Roles:      q.Roles,
					Cleared:    q.Cleared,
					Reconciled: q.Reconciled,
					ByUnit:     q.ByUnit,
					ByPeriod:   q.ByPeriod,
					ByActivity: q.ByActivity,
				})
				if err != nil {
					return err
				}
				rows = append(rows, agg...)
			}
			return nil
		})
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate transactions",
			slog.String("entity_id", entity.EntityID),
			slog.String("scope", scope.Kind()))
		return nil, err
	}

	res := &domain.DigestResult{
		EntityID:   entity.EntityID,
		Scope:      scope.Kind(),
		From:       q.From,
		To:         q.To,
		Checkpoint: plan.State,
		Rows:       digest.Normalize(rows, accounts, digest.OptionsFor(q)),
	}
	digest.SortRows(res.Rows)
	digest.Apply(q, res)

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordDigest(scope.Kind(), string(plan.State), elapsed)
	}
	s.LogDebug(ctx, "Digest computed",
		slog.String("entity_id", entity.EntityID),
		slog.String("scope", scope.Kind()),
		slog.String("checkpoint", string(plan.State)),
		slog.Int("rows", len(res.Rows)),
		slog.Duration("elapsed", elapsed))
	return res, nil
}

// checkScope verifies that the ledger or unit of a scope belongs to its entity.
func (s *digestService) checkScope(ctx context.Context, scope domain.Scope) error {
	switch sc := scope.(type) {
	case domain.LedgerScope:
		ledger, err := s.ledgerRepo.FindLedgerByID(ctx, sc.LedgerID)
		if err != nil {
			return err
		}
		if ledger.EntityID != sc.EntityID {
			return fmt.Errorf("%w: ledger %s", domain.ErrCrossEntityReference, sc.LedgerID)
		}
	case domain.UnitScope:
		unit, err := s.entityRepo.FindUnitByID(ctx, sc.UnitID)
		if err != nil {
			return err
		}
		if unit.EntityID != sc.EntityID {
			return fmt.Errorf("%w: unit %s", domain.ErrCrossEntityReference, sc.UnitID)
		}
	}
	return nil
}

func (s *digestService) closingDates(ctx context.Context, r portsrepo.DigestReader, entityID string) ([]time.Time, error) {
	if s.dates != nil {
		if dates, ok := s.dates.Get(entityID); ok {
			if s.metrics != nil {
				s.metrics.IncrCacheHit(metrics.CacheClosingDates)
			}
			return dates, nil
		}
		if s.metrics != nil {
			s.metrics.IncrCacheMiss(metrics.CacheClosingDates)
		}
	}
	dates, err := r.ClosingEntryDates(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if s.dates != nil {
		s.dates.Set(entityID, dates)
	}
	return dates, nil
}
