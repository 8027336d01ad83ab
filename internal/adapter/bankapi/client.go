package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/quanggiap2004/corebanking-portal/internal/logger"
	"github.com/shopspring/decimal"
)

const (
	transfersPath = "/transfers"
	depositsPath  = "/deposits"
)

// Client is the HTTP/JSON client for the remote banking API. It
// implements the TransferGateway, DepositGateway and AccountDirectory
// contracts. The caller's bearer token is passed through per request
// from the context; the client never stores or refreshes tokens, and it
// never retries a failed call on its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a banking API client. baseURL must not end with a
// slash. timeout is the transport-level bound; the workflow applies its
// own per-call deadline on top of it.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// transferRequest is the wire form of a transfer submission. Amounts are
// sent as decimal strings; the banking API accepts both forms.
type transferRequest struct {
	SourceAccountNumber      string          `json:"sourceAccountNumber"`
	DestinationAccountNumber string          `json:"destinationAccountNumber"`
	Amount                   decimal.Decimal `json:"amount"`
	TransferType             string          `json:"transferType"`
	Description              string          `json:"description,omitempty"`
}

type depositRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Source        string          `json:"source"`
	Description   string          `json:"description,omitempty"`
}

// apiError is the failure body the banking API returns on non-2xx
type apiError struct {
	Message string `json:"message"`
}

// ExecuteTransfer submits a validated transfer draft
func (c *Client) ExecuteTransfer(ctx context.Context, draft domain.TransferDraft) (*domain.SettlementResult, error) {
	amount, err := decimal.NewFromString(draft.Amount)
	if err != nil {
		// Validation guarantees a numeric amount before submission;
		// fail closed if a draft slips through unvalidated.
		return nil, domain.NewSubmissionError("Transfer failed. Please try again.")
	}

	payload := transferRequest{
		SourceAccountNumber:      draft.SourceAccountNumber,
		DestinationAccountNumber: draft.DestinationAccountNumber,
		Amount:                   amount,
		TransferType:             string(draft.TransferType),
		Description:              draft.Description,
	}

	return c.postSettlement(ctx, transfersPath, payload, "Transfer failed. Please try again.")
}

// ExecuteDeposit submits a validated deposit draft
func (c *Client) ExecuteDeposit(ctx context.Context, draft domain.DepositDraft) (*domain.SettlementResult, error) {
	amount, err := decimal.NewFromString(draft.Amount)
	if err != nil {
		return nil, domain.NewSubmissionError("Deposit failed. Please try again.")
	}

	payload := depositRequest{
		AccountNumber: draft.AccountNumber,
		Amount:        amount,
		Source:        string(draft.Source),
		Description:   draft.Description,
	}

	return c.postSettlement(ctx, depositsPath, payload, "Deposit failed. Please try again.")
}

// GetUserAccounts retrieves the accounts owned by the given user
func (c *Client) GetUserAccounts(ctx context.Context, userID int64) ([]*domain.Account, error) {
	url := fmt.Sprintf("%s/users/%d/accounts", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req, "Failed to load accounts. Please try again.")
	if err != nil {
		return nil, err
	}

	var accounts []*domain.Account
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, domain.NewSubmissionError("Failed to load accounts. Please try again.")
	}
	return accounts, nil
}

// postSettlement issues one POST and decodes the settlement response.
// Any failure — transport error, non-2xx status, malformed body — comes
// back as a *domain.SubmissionError carrying a display message.
func (c *Client) postSettlement(ctx context.Context, path string, payload any, fallback string) (*domain.SettlementResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.NewSubmissionError(fallback)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, domain.NewSubmissionError(fallback)
	}

	body, err := c.do(req, fallback)
	if err != nil {
		return nil, err
	}

	var result domain.SettlementResult
	if err := json.Unmarshal(body, &result); err != nil || result.TransactionRef == "" {
		logger.Error("bank api returned malformed settlement body", err, logger.Fields{
			"path": path,
		})
		return nil, domain.NewSubmissionError(fallback)
	}
	return &result, nil
}

// do executes the request with auth and tracing headers and returns the
// response body on 2xx. Non-2xx responses are converted to a
// SubmissionError with the server's message when one is present.
func (c *Client) do(req *http.Request, fallback string) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := domain.AuthTokenFromContext(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("bank api request failed", err, logger.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
		})
		return nil, domain.NewSubmissionError(fallback)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewSubmissionError(fallback)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fallback
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			message = apiErr.Message
		}
		logger.Info("bank api rejected request", logger.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"status": resp.StatusCode,
		})
		return nil, domain.NewSubmissionError(message)
	}

	return body, nil
}
