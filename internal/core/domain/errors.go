package domain

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// Ledger domain errors. Each wraps one of the apperrors kinds so callers can branch on
// either the specific error or its kind with errors.Is.
var (
	ErrBalanceValidation    = fmt.Errorf("%w: credits and debits are not balanced", apperrors.ErrValidation)
	ErrInvalidAmount        = fmt.Errorf("%w: invalid amount", apperrors.ErrValidation)
	ErrInvalidTimestamp     = fmt.Errorf("%w: invalid timestamp", apperrors.ErrValidation)
	ErrInvalidDateRange     = fmt.Errorf("%w: invalid date range", apperrors.ErrValidation)
	ErrUnbalancedPlan       = fmt.Errorf("%w: blueprint plan is not balanced", apperrors.ErrValidation)
	ErrActivityUndetermined = fmt.Errorf("%w: unable to determine journal entry activity", apperrors.ErrValidation)
	ErrAccountCannotPost    = fmt.Errorf("%w: account is inactive or locked", apperrors.ErrValidation)
	ErrInvalidAccountTree   = fmt.Errorf("%w: invalid account hierarchy", apperrors.ErrValidation)
	ErrInvalidLine          = fmt.Errorf("%w: invalid transaction line", apperrors.ErrValidation)
	ErrMissingLedger        = fmt.Errorf("%w: a ledger is required", apperrors.ErrValidation)

	ErrClosedPeriod         = fmt.Errorf("%w: period is closed", apperrors.ErrConflict)
	ErrLockedLedger         = fmt.Errorf("%w: ledger is locked", apperrors.ErrConflict)
	ErrLockedJournalEntry   = fmt.Errorf("%w: journal entry is locked", apperrors.ErrConflict)
	ErrLedgerNotPosted      = fmt.Errorf("%w: ledger is not posted", apperrors.ErrConflict)
	ErrCrossEntityReference = fmt.Errorf("%w: reference does not belong to entity", apperrors.ErrConflict)
	ErrAlreadyCommitted     = fmt.Errorf("%w: cursor already committed", apperrors.ErrConflict)
	ErrPartialCommit        = fmt.Errorf("%w: one or more ledgers failed to commit", apperrors.ErrConflict)
	ErrJournalEntryInUse    = fmt.Errorf("%w: journal entry is referenced by another entry", apperrors.ErrConflict)

	ErrEntityNotFound       = fmt.Errorf("%w: entity", apperrors.ErrNotFound)
	ErrLedgerNotFound       = fmt.Errorf("%w: ledger", apperrors.ErrNotFound)
	ErrUnitNotFound         = fmt.Errorf("%w: unit", apperrors.ErrNotFound)
	ErrAccountNotFound      = fmt.Errorf("%w: account", apperrors.ErrNotFound)
	ErrJournalEntryNotFound = fmt.Errorf("%w: journal entry", apperrors.ErrNotFound)
	ErrBlueprintNotFound    = fmt.Errorf("%w: blueprint", apperrors.ErrNotFound)
	ErrClosingEntryNotFound = fmt.Errorf("%w: closing entry", apperrors.ErrNotFound)

	ErrInvalidRole     = fmt.Errorf("%w: invalid role", apperrors.ErrConfiguration)
	ErrInvalidActivity = fmt.Errorf("%w: invalid activity", apperrors.ErrConfiguration)
)
