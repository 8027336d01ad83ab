package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/quanggiap2004/corebanking-portal/internal/logger"
	"github.com/quanggiap2004/corebanking-portal/internal/usecase/workflow"
)

// Handlers exposes the transaction workflows to the UI layer
type Handlers struct {
	Transfers      domain.TransferGateway
	Deposits       domain.DepositGateway
	Directory      domain.AccountDirectory
	GatewayTimeout time.Duration
}

func NewHandlers(
	transfers domain.TransferGateway,
	deposits domain.DepositGateway,
	directory domain.AccountDirectory,
	gatewayTimeout time.Duration,
) *Handlers {
	return &Handlers{
		Transfers:      transfers,
		Deposits:       deposits,
		Directory:      directory,
		GatewayTimeout: gatewayTimeout,
	}
}

// transferPayload is the transfer draft as posted by the UI, plus the
// confirmed flag — the stateless rendition of the confirmation step.
// Amount is captured raw so non-numeric input reaches validation intact.
type transferPayload struct {
	SourceAccountNumber      string          `json:"sourceAccountNumber"`
	DestinationAccountNumber string          `json:"destinationAccountNumber"`
	Amount                   json.RawMessage `json:"amount"`
	TransferType             string          `json:"transferType"`
	Description              string          `json:"description"`
	Confirmed                bool            `json:"confirmed"`
}

type depositPayload struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        json.RawMessage `json:"amount"`
	Source        string          `json:"source"`
	Description   string          `json:"description"`
}

// ExecuteTransfer drives one transfer workflow instance end to end.
// Without confirmed=true the request stops at the CONFIRMING snapshot so
// the UI can render the review step; a second request with
// confirmed=true completes the submission.
func (h *Handlers) ExecuteTransfer(w http.ResponseWriter, r *http.Request) {
	var payload transferPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft := domain.TransferDraft{
		SourceAccountNumber:      payload.SourceAccountNumber,
		DestinationAccountNumber: payload.DestinationAccountNumber,
		Amount:                   rawFieldToString(payload.Amount),
		TransferType:             domain.TransferType(payload.TransferType),
		Description:              payload.Description,
	}

	wf := workflow.NewTransferWorkflow(workflow.TransferDeps{
		Gateway: h.Transfers,
		Timeout: h.GatewayTimeout,
		Notify:  logTransition[domain.TransferDraft]("transfer"),
	}, draft)

	snap, err := wf.Submit(r.Context())
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if snap.Phase == workflow.PhaseConfirming && payload.Confirmed {
		snap, err = wf.Confirm(r.Context())
		if err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}

	writeSnapshot(w, snap)
}

// ExecuteDeposit drives one deposit workflow instance. No confirmation
// step: a valid draft submits immediately, and success triggers a
// read-only refresh of the account list.
func (h *Handlers) ExecuteDeposit(w http.ResponseWriter, r *http.Request) {
	var payload depositPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, _ := domain.SessionFromContext(r.Context())

	draft := domain.DepositDraft{
		AccountNumber: payload.AccountNumber,
		Amount:        rawFieldToString(payload.Amount),
		Source:        domain.DepositSource(payload.Source),
		Description:   payload.Description,
	}

	wf := workflow.NewDepositWorkflow(workflow.DepositDeps{
		Gateway:   h.Deposits,
		Directory: h.Directory,
		UserID:    session.UserID,
		Timeout:   h.GatewayTimeout,
		Notify:    logTransition[domain.DepositDraft]("deposit"),
	}, draft)

	snap, err := wf.Submit(r.Context())
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeSnapshot(w, snap)
}

// ListAccounts returns the authenticated user's accounts for the
// source/destination selectors
func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	session, ok := domain.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	accounts, err := h.Directory.GetUserAccounts(r.Context(), session.UserID)
	if err != nil {
		writeError(w, http.StatusBadGateway, domain.SubmissionMessage(err, "Failed to load accounts. Please try again."))
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// writeSnapshot maps the workflow's terminal snapshot onto an HTTP
// status: field errors are the client's to fix, submission failures are
// upstream faults, everything else rides a 200.
func writeSnapshot[D any](w http.ResponseWriter, snap workflow.Snapshot[D]) {
	switch {
	case snap.Phase == workflow.PhaseEditing && !snap.Errors.Empty():
		writeJSON(w, http.StatusUnprocessableEntity, snap)
	case snap.Phase == workflow.PhaseFailed:
		writeJSON(w, http.StatusBadGateway, snap)
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

// rawFieldToString turns a raw JSON value into the form-input string the
// validation rules expect. Both `"500.00"` and `500.00` are accepted;
// anything else is passed through verbatim so validation can report it.
func rawFieldToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// logTransition records every phase transition of a workflow instance
func logTransition[D any](variant string) func(workflow.Snapshot[D]) {
	return func(snap workflow.Snapshot[D]) {
		logger.Info("workflow phase transition", logger.Fields{
			"variant":    variant,
			"workflowId": snap.WorkflowID,
			"phase":      snap.Phase,
		})
	}
}
