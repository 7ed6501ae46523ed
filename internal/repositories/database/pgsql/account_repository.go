package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, entity_id, chart_slug, code, name, role, balance_type,
	COALESCE(parent_account_id, ''), path, depth, is_active, is_locked,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository stores the chart of accounts.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccounts inserts a batch of accounts in one transaction. Parents precede their
// children in the batch, so the parent foreign key holds row by row.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	query := `
		INSERT INTO accounts (
			account_id, entity_id, chart_slug, code, name, role, balance_type,
			parent_account_id, path, depth, is_active, is_locked,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15, $16);
	`
	return r.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, acc := range accounts {
			m := mapping.ToModelAccount(acc)
			batch.Queue(query,
				m.AccountID, m.EntityID, m.ChartSlug, m.Code, m.Name, m.Role, m.BalanceType,
				m.ParentAccountID, m.Path, m.Depth, m.IsActive, m.IsLocked,
				m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for _, acc := range accounts {
			if _, err := br.Exec(); err != nil {
				br.Close()
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, acc.Code)
				}
				if isForeignKeyViolation(err) {
					return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, acc.EntityID)
				}
				return apperrors.NewAppError(500, "failed to insert account "+acc.Code, err)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close account batch", err)
		}
		return nil
	})
}

// FindAccountByID retrieves a specific account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves the known accounts among ids, keyed by id.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	accounts, err := r.queryAccounts(ctx, query, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out, nil
}

// FindAccountsByCodes resolves codes within the chart of an entity, keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, entityID string, codes []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND code = ANY($2);`
	accounts, err := r.queryAccounts(ctx, query, entityID, codes)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		out[a.Code] = a
	}
	return out, nil
}

// ListAccounts retrieves the chart of an entity ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 ORDER BY code;`
	return r.queryAccounts(ctx, query, entityID)
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.EntityID, &m.ChartSlug, &m.Code, &m.Name, &m.Role, &m.BalanceType,
		&m.ParentAccountID, &m.Path, &m.Depth, &m.IsActive, &m.IsLocked,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}
