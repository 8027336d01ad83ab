package domain

import (
	"github.com/shopspring/decimal"
)

// SettlementResult is the remote system's confirmation that funds moved.
// Deposit settlements populate NewBalance; transfer settlements populate
// NewSourceBalance and NewDestinationBalance.
type SettlementResult struct {
	Message               string           `json:"message"`
	TransactionRef        string           `json:"transactionRef"`
	NewBalance            *decimal.Decimal `json:"newBalance,omitempty"`
	NewSourceBalance      *decimal.Decimal `json:"newSourceBalance,omitempty"`
	NewDestinationBalance *decimal.Decimal `json:"newDestinationBalance,omitempty"`
}

// Account is a customer account as reported by the Account Directory
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// Session is the read-only authenticated-user context for a workflow.
// TransactionLimit, when present, is advisory only; the $100,000 cap in
// validation is the limit actually enforced client-side.
type Session struct {
	UserID           int64
	Username         string
	TransactionLimit *decimal.Decimal
}
