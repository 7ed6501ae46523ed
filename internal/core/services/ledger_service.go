package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ledgerService manages ledgers, their lifecycle and read access to their entries.
type ledgerService struct {
	BaseService
	entityRepo  portsrepo.EntityReader
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	entityRepo portsrepo.EntityReader,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		entityRepo:  entityRepo,
		ledgerRepo:  ledgerRepo,
		journalRepo: journalRepo,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateLedger(ctx context.Context, entityID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, err
	}

	ledger := domain.Ledger{
		LedgerID:    uuid.NewString(),
		EntityID:    entityID,
		Name:        req.Name,
		ExternalID:  req.ExternalID,
		IsPosted:    req.Posted,
		AuditFields: domain.NewAuditFields(actor, now()),
	}
	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		s.LogError(ctx, err, "Failed to save ledger",
			slog.String("entity_id", entityID),
			slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger created",
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("entity_id", entityID))
	return &ledger, nil
}

func (s *ledgerService) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	return s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
}

func (s *ledgerService) ListLedgers(ctx context.Context, entityID string) ([]domain.Ledger, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListLedgers(ctx, entityID)
}

func (s *ledgerService) PostLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error) {
	return s.transition(ctx, ledgerID, domain.LedgerPost, actor)
}

// LockLedger locks a posted ledger; unposted ledgers cannot be locked.
func (s *ledgerService) LockLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error) {
	return s.transition(ctx, ledgerID, domain.LedgerLock, actor)
}

func (s *ledgerService) UnlockLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error) {
	return s.transition(ctx, ledgerID, domain.LedgerUnlock, actor)
}

func (s *ledgerService) transition(ctx context.Context, ledgerID string, state domain.LedgerState, actor string) (*domain.Ledger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	updated, err := ledger.Apply(state)
	if err != nil {
		s.LogError(ctx, err, "Ledger transition rejected",
			slog.String("ledger_id", ledgerID),
			slog.String("transition", string(state)))
		return nil, err
	}
	updated.LastUpdatedAt = now()
	updated.LastUpdatedBy = actor
	if err := s.ledgerRepo.UpdateLedgerState(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update ledger state", slog.String("ledger_id", ledgerID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger state updated",
		slog.String("ledger_id", ledgerID),
		slog.String("transition", string(state)),
		slog.Bool("posted", updated.IsPosted),
		slog.Bool("locked", updated.IsLocked))
	return &updated, nil
}

func (s *ledgerService) ListJournalEntries(ctx context.Context, ledgerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if _, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, next, err := s.journalRepo.ListJournalEntries(ctx, ledgerID, limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("ledger_id", ledgerID))
		return nil, err
	}
	return &dto.ListJournalEntriesResponse{
		JournalEntries: dto.ToJournalEntryResponses(entries),
		NextToken:      next,
	}, nil
}

func (s *ledgerService) GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, []domain.Transaction, error) {
	je, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.journalRepo.FindTransactionsByJournalEntryID(ctx, journalEntryID)
	if err != nil {
		return nil, nil, err
	}
	return je, txs, nil
}

func (s *ledgerService) DeleteJournalEntry(ctx context.Context, journalEntryID string, actor string) error {
	if err := s.journalRepo.DeleteJournalEntry(ctx, journalEntryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry",
			slog.String("journal_entry_id", journalEntryID),
			slog.String("actor", actor))
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("actor", actor))
	return nil
}
