package workflow

import (
	"context"
	"time"

	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/quanggiap2004/corebanking-portal/internal/logger"
	"github.com/quanggiap2004/corebanking-portal/internal/usecase/validation"
)

const depositFailureFallback = "Deposit failed. Please try again."

// DepositDeps wires a deposit workflow instance
type DepositDeps struct {
	Gateway domain.DepositGateway

	// Directory, when set, is refreshed after a successful deposit so
	// the account list shows the updated balance. Read-only side effect.
	Directory domain.AccountDirectory
	UserID    int64

	Timeout time.Duration
	Notify  func(Snapshot[domain.DepositDraft])
}

// NewDepositWorkflow creates a deposit workflow. Deposits skip the
// confirmation phase: a passing validation goes straight to SUBMITTING.
func NewDepositWorkflow(deps DepositDeps, initial domain.DepositDraft) *Engine[domain.DepositDraft] {
	if initial.Source == "" {
		initial.Source = domain.DepositSourceWellsFargo
	}
	return New(Config[domain.DepositDraft]{
		Validate:        validation.ValidateDeposit,
		Submit:          deps.Gateway.ExecuteDeposit,
		Timeout:         deps.Timeout,
		FailureFallback: depositFailureFallback,
		OnSuccess:       refreshAccounts(deps.Directory, deps.UserID),
		Notify:          deps.Notify,
	}, initial)
}

func refreshAccounts(directory domain.AccountDirectory, userID int64) func(context.Context, *domain.SettlementResult) {
	if directory == nil {
		return nil
	}
	return func(ctx context.Context, _ *domain.SettlementResult) {
		if _, err := directory.GetUserAccounts(ctx, userID); err != nil {
			logger.Error("deposit workflow account refresh failed", err, logger.Fields{
				"userId": userID,
			})
		}
	}
}
