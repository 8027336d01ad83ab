package domain

import "context"

// TransferGateway executes a validated transfer draft against the
// remote banking API
type TransferGateway interface {
	// ExecuteTransfer submits the draft and returns the settlement,
	// or an error (typically a *SubmissionError) on failure.
	// The call is opaque: no partial results, no automatic retry.
	ExecuteTransfer(ctx context.Context, draft TransferDraft) (*SettlementResult, error)
}

// DepositGateway executes a validated deposit draft against the
// remote banking API
type DepositGateway interface {
	// ExecuteDeposit submits the draft and returns the settlement,
	// or an error (typically a *SubmissionError) on failure.
	ExecuteDeposit(ctx context.Context, draft DepositDraft) (*SettlementResult, error)
}

// AccountDirectory lists a user's accounts for selector population and
// balance display
type AccountDirectory interface {
	// GetUserAccounts retrieves all accounts owned by the given user
	GetUserAccounts(ctx context.Context, userID int64) ([]*Account, error)
}
