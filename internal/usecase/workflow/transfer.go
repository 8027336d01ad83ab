package workflow

import (
	"time"

	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/quanggiap2004/corebanking-portal/internal/usecase/validation"
)

const transferFailureFallback = "Transfer failed. Please try again."

// TransferDeps wires a transfer workflow instance
type TransferDeps struct {
	Gateway domain.TransferGateway
	Timeout time.Duration
	Notify  func(Snapshot[domain.TransferDraft])
}

// NewTransferWorkflow creates a transfer workflow: EDITING -> CONFIRMING
// -> SUBMITTING. The confirmation phase lets the user review the draft
// before any funds move; cancelling returns to EDITING with the draft
// preserved. The initial draft may pre-seed the source account from
// navigation context.
func NewTransferWorkflow(deps TransferDeps, initial domain.TransferDraft) *Engine[domain.TransferDraft] {
	if initial.TransferType == "" {
		initial.TransferType = domain.TransferTypeInternal
	}
	return New(Config[domain.TransferDraft]{
		Validate:            validation.ValidateTransfer,
		Submit:              deps.Gateway.ExecuteTransfer,
		RequireConfirmation: true,
		Timeout:             deps.Timeout,
		FailureFallback:     transferFailureFallback,
		Notify:              deps.Notify,
	}, initial)
}
