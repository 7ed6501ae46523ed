package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/timeutil"
)

// DispatchRequest queues one registered blueprint on a cursor.
type DispatchRequest struct {
	Blueprint  string         `json:"blueprint" binding:"required"`
	LedgerID   string         `json:"ledgerID"`
	ExternalID string         `json:"externalID"`
	Params     map[string]any `json:"params"`
}

// Ref returns the ledger reference of the dispatch.
func (d DispatchRequest) Ref() domain.LedgerRef {
	return domain.LedgerRef{LedgerID: d.LedgerID, ExternalID: d.ExternalID}
}

// CursorCommitRequest dispatches blueprints and commits them in one call.
type CursorCommitRequest struct {
	Mode               string            `json:"mode" binding:"omitempty,oneof=permissive strict"`
	Timestamp          string            `json:"timestamp"` // defaults to now
	Description        string            `json:"description"`
	PostNewLedgers     bool              `json:"postNewLedgers"`
	PostJournalEntries bool              `json:"postJournalEntries"`
	Dispatches         []DispatchRequest `json:"dispatches" binding:"required,min=1,dive"`
}

// CommitOptions converts the commit fields into domain options.
func (r CursorCommitRequest) CommitOptions() (domain.CursorCommitOptions, error) {
	opts := domain.CursorCommitOptions{
		Description:        r.Description,
		PostNewLedgers:     r.PostNewLedgers,
		PostJournalEntries: r.PostJournalEntries,
	}
	if r.Timestamp != "" {
		ts, err := timeutil.ParseIOTimestamp(r.Timestamp)
		if err != nil {
			return opts, err
		}
		opts.Timestamp = ts
	}
	return opts, nil
}

// CursorMode returns the requested mode, falling back to def.
func (r CursorCommitRequest) CursorMode(def domain.CursorMode) domain.CursorMode {
	if r.Mode == "" {
		return def
	}
	return domain.CursorMode(r.Mode)
}

// LedgerCommitResponse reports the outcome of one ledger of a cursor commit.
type LedgerCommitResponse struct {
	Ref            domain.LedgerRef      `json:"ref"`
	LedgerID       string                `json:"ledgerID,omitempty"`
	LedgerName     string                `json:"ledgerName,omitempty"`
	JournalEntryID string                `json:"journalEntryID,omitempty"`
	Timestamp      *time.Time            `json:"timestamp,omitempty"`
	Committed      bool                  `json:"committed"`
	Error          string                `json:"error,omitempty"`
	Transactions   []TransactionResponse `json:"transactions,omitempty"`
}

// CursorCommitResponse is the per ledger result of a cursor commit.
type CursorCommitResponse struct {
	Committed bool                   `json:"committed"`
	Ledgers   []LedgerCommitResponse `json:"ledgers"`
}

// ToCursorCommitResponse converts ledger results into the response DTO.
func ToCursorCommitResponse(results []domain.LedgerCommitResult) CursorCommitResponse {
	resp := CursorCommitResponse{Committed: true, Ledgers: make([]LedgerCommitResponse, len(results))}
	for i, r := range results {
		lr := LedgerCommitResponse{
			Ref:        r.Ref,
			LedgerID:   r.Ledger.LedgerID,
			LedgerName: r.Ledger.Name,
			Committed:  r.Committed,
		}
		if r.JournalEntry != nil {
			lr.JournalEntryID = r.JournalEntry.JournalEntryID
			ts := r.JournalEntry.Timestamp
			lr.Timestamp = &ts
		}
		if r.Err != nil {
			lr.Error = r.Err.Error()
		}
		if len(r.Transactions) > 0 {
			lr.Transactions = ToTransactionResponses(r.Transactions)
		}
		if !r.Committed {
			resp.Committed = false
		}
		resp.Ledgers[i] = lr
	}
	return resp
}
