package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/timeutil"
	"github.com/shopspring/decimal"
)

// TransactionLineRequest is one line of a commit request. Either accountID or
// accountCode identifies the account.
type TransactionLineRequest struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	TxType      string          `json:"txType" binding:"required,oneof=debit credit"`
	Description string          `json:"description"`
}

// CommitTxsRequest defines the data needed to commit transactions as a journal entry.
type CommitTxsRequest struct {
	Timestamp      string                   `json:"timestamp" binding:"required"` // date or RFC3339 date-time
	LedgerID       string                   `json:"ledgerID"`                     // required for entity and unit scope
	UnitID         string                   `json:"unitID"`
	ParentID       string                   `json:"parentID"`
	Description    string                   `json:"description"`
	Post           bool                     `json:"post"`
	ForceRetrieval bool                     `json:"forceRetrieval"`
	Lines          []TransactionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToCommitRequest converts the DTO into a domain.CommitRequest.
func (r CommitTxsRequest) ToCommitRequest(actor string) (domain.CommitRequest, error) {
	ts, err := timeutil.ParseIOTimestamp(r.Timestamp)
	if err != nil {
		return domain.CommitRequest{}, err
	}
	lines := make([]domain.TransactionLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.TransactionLine{
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Amount:      l.Amount,
			TxType:      domain.TransactionType(l.TxType),
			Description: l.Description,
		}
	}
	return domain.CommitRequest{
		Timestamp:      ts,
		Lines:          lines,
		LedgerID:       r.LedgerID,
		UnitID:         r.UnitID,
		ParentID:       r.ParentID,
		Description:    r.Description,
		Origin:         "api",
		Post:           r.Post,
		ForceRetrieval: r.ForceRetrieval,
		Actor:          actor,
	}, nil
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	TxType        string          `json:"txType"` // debit or credit
	Description   string          `json:"description,omitempty"`
	Cleared       bool            `json:"cleared"`
	Reconciled    bool            `json:"reconciled"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string    `json:"journalEntryID"`
	LedgerID       string    `json:"ledgerID"`
	UnitID         string    `json:"unitID,omitempty"`
	ParentID       string    `json:"parentID,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Description    string    `json:"description"`
	Activity       string    `json:"activity,omitempty"`
	IsPosted       bool      `json:"isPosted"`
	IsLocked       bool      `json:"isLocked"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// GetJournalEntryResponse defines the combined response for a journal entry and its transactions.
type GetJournalEntryResponse struct {
	JournalEntry JournalEntryResponse  `json:"journalEntry"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ListJournalEntriesParams defines the query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListJournalEntriesResponse is a page of journal entries.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Amount:        txn.Amount,
		TxType:        string(txn.TxType),
		Description:   txn.Description,
		Cleared:       txn.Cleared,
		Reconciled:    txn.Reconciled,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(je *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		JournalEntryID: je.JournalEntryID,
		LedgerID:       je.LedgerID,
		UnitID:         je.UnitID,
		ParentID:       je.ParentID,
		Timestamp:      je.Timestamp,
		Description:    je.Description,
		Activity:       string(je.Activity),
		IsPosted:       je.IsPosted,
		IsLocked:       je.IsLocked,
		CreatedAt:      je.CreatedAt,
		CreatedBy:      je.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of journal entries.
func ToJournalEntryResponses(jes []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(jes))
	for i := range jes {
		out[i] = ToJournalEntryResponse(&jes[i])
	}
	return out
}
