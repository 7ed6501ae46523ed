package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

// accountService manages an entity's chart of accounts.
type accountService struct {
	BaseService
	entityRepo  portsrepo.EntityReader
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(entityRepo portsrepo.EntityReader, accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		entityRepo:  entityRepo,
		accountRepo: accountRepo,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListAccounts returns the entity chart in depth-first code order.
func (s *accountService) ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error) {
	tree, err := s.GetAccountTree(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return tree.Flatten(), nil
}

func (s *accountService) ListSubAccounts(ctx context.Context, entityID, code string) ([]domain.Account, error) {
	tree, err := s.GetAccountTree(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if _, ok := tree.FindByCode(code); !ok {
		return nil, fmt.Errorf("%w: code %s", domain.ErrAccountNotFound, code)
	}
	return tree.Descendants(code), nil
}

func (s *accountService) GetAccountTree(ctx context.Context, entityID string) (*domain.AccountTree, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("entity_id", entityID))
		return nil, err
	}
	return domain.BuildAccountTree(accounts)
}

// SeedChart adds the accounts of a chart definition to the entity. Top level accounts
// attach to the root node of their role category; the root nodes are created when the
// chart has none yet.
func (s *accountService) SeedChart(ctx context.Context, entityID string, seed domain.ChartSeed, actor string) ([]domain.Account, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if err := validateChartSeed(seed); err != nil {
		return nil, err
	}
	if seed.Slug != entity.ChartSlug {
		return nil, fmt.Errorf("%w: chart %q does not match entity chart %q", apperrors.ErrValidation, seed.Slug, entity.ChartSlug)
	}

	existing, err := s.accountRepo.ListAccounts(ctx, entityID)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]domain.Account, len(existing))
	roots := make(map[domain.Role]domain.Account)
	for _, acc := range existing {
		byCode[acc.Code] = acc
		if acc.Role.IsRoot() {
			roots[acc.Role] = acc
		}
	}

	audit := domain.NewAuditFields(actor, now())
	newAccount := func(code, name string, role domain.Role, balanceType domain.TransactionType, parentID string) domain.Account {
		return domain.Account{
			AccountID:       uuid.NewString(),
			EntityID:        entityID,
			ChartSlug:       entity.ChartSlug,
			Code:            code,
			Name:            name,
			Role:            role,
			BalanceType:     balanceType,
			ParentAccountID: parentID,
			IsActive:        true,
			IsLocked:        false,
			AuditFields:     audit,
		}
	}

	var created []domain.Account
	if _, ok := roots[domain.RoleRootCOA]; !ok {
		var coaID string
		for _, meta := range domain.RootAccounts {
			if _, taken := byCode[meta.Code]; taken {
				return nil, fmt.Errorf("%w: root code %s is already used", domain.ErrInvalidAccountTree, meta.Code)
			}
			acc := newAccount(meta.Code, meta.Name, meta.Role, meta.BalanceType, coaID)
			if meta.Role == domain.RoleRootCOA {
				coaID = acc.AccountID
			}
			roots[meta.Role] = acc
			created = append(created, acc)
		}
	}

	var add func(list []domain.AccountSeed, parentID string) error
	add = func(list []domain.AccountSeed, parentID string) error {
		for _, a := range list {
			if _, taken := byCode[a.Code]; taken {
				return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, a.Code)
			}
			pid := parentID
			if pid == "" {
				meta, ok := domain.RootFor(a.Role)
				if !ok {
					return fmt.Errorf("%w: no root for role %s", domain.ErrInvalidRole, a.Role)
				}
				pid = roots[meta.Role].AccountID
			}
			acc := newAccount(a.Code, a.Name, a.Role, a.BalanceType, pid)
			acc.IsLocked = a.Locked
			acc.IsActive = !a.Inactive
			created = append(created, acc)
			if err := add(a.Children, acc.AccountID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(seed.Accounts, ""); err != nil {
		return nil, err
	}

	tree, err := domain.BuildAccountTree(append(append([]domain.Account(nil), existing...), created...))
	if err != nil {
		return nil, err
	}
	isNew := make(map[string]bool, len(created))
	for _, acc := range created {
		isNew[acc.AccountID] = true
	}
	toSave := make([]domain.Account, 0, len(created))
	for _, acc := range tree.Flatten() {
		if isNew[acc.AccountID] {
			toSave = append(toSave, acc)
		}
	}

	if err := s.accountRepo.SaveAccounts(ctx, toSave); err != nil {
		s.LogError(ctx, err, "Failed to save chart accounts",
			slog.String("entity_id", entityID),
			slog.Int("accounts", len(toSave)))
		return nil, err
	}
	s.LogInfo(ctx, "Chart of accounts seeded",
		slog.String("entity_id", entityID),
		slog.String("chart", seed.Slug),
		slog.Int("accounts", len(toSave)))
	return toSave, nil
}
