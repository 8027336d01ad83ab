package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/quanggiap2004/corebanking-portal/internal/usecase/validation"
	"github.com/quanggiap2004/corebanking-portal/internal/usecase/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTransferGateway is a mock implementation of TransferGateway for testing
type MockTransferGateway struct {
	mock.Mock
}

func (m *MockTransferGateway) ExecuteTransfer(ctx context.Context, draft domain.TransferDraft) (*domain.SettlementResult, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

// MockDepositGateway is a mock implementation of DepositGateway for testing
type MockDepositGateway struct {
	mock.Mock
}

func (m *MockDepositGateway) ExecuteDeposit(ctx context.Context, draft domain.DepositDraft) (*domain.SettlementResult, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

// MockAccountDirectory is a mock implementation of AccountDirectory for testing
type MockAccountDirectory struct {
	mock.Mock
}

func (m *MockAccountDirectory) GetUserAccounts(ctx context.Context, userID int64) ([]*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

type fixture struct {
	transfers *MockTransferGateway
	deposits  *MockDepositGateway
	directory *MockAccountDirectory
	router    http.Handler
	token     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	transfers := new(MockTransferGateway)
	deposits := new(MockDepositGateway)
	directory := new(MockAccountDirectory)

	handlers := NewHandlers(transfers, deposits, directory, time.Second)
	router := NewRouter(handlers, testSecret)

	return &fixture{
		transfers: transfers,
		deposits:  deposits,
		directory: directory,
		router:    router,
		token:     signedToken(t, sessionClaims(), testSecret),
	}
}

func (f *fixture) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot[D any](t *testing.T, rec *httptest.ResponseRecorder) workflow.Snapshot[D] {
	t.Helper()
	var snap workflow.Snapshot[D]
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func TestExecuteTransfer_ValidationFailureReturns422(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/transfers", map[string]any{
		"sourceAccountNumber":      "ACC1",
		"destinationAccountNumber": "ACC1",
		"amount":                   250.00,
		"transferType":             "INTERNAL",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	snap := decodeSnapshot[domain.TransferDraft](t, rec)
	assert.Equal(t, workflow.PhaseEditing, snap.Phase)
	assert.Equal(t, validation.MsgSameAccount, snap.Errors.Message(validation.FieldSourceAccountNumber))
	assert.Equal(t, validation.MsgSameAccount, snap.Errors.Message(validation.FieldDestinationAccountNumber))
	f.transfers.AssertNotCalled(t, "ExecuteTransfer", mock.Anything, mock.Anything)
}

func TestExecuteTransfer_NonNumericAmountReturns422(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/transfers", map[string]any{
		"sourceAccountNumber":      "ACC1001",
		"destinationAccountNumber": "ACC2002",
		"amount":                   "lots",
		"transferType":             "INTERNAL",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	snap := decodeSnapshot[domain.TransferDraft](t, rec)
	assert.Equal(t, validation.MsgAmountNotNumeric, snap.Errors.Message(validation.FieldAmount))
}

func TestExecuteTransfer_UnconfirmedStopsAtConfirming(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/transfers", map[string]any{
		"sourceAccountNumber":      "ACC1001",
		"destinationAccountNumber": "ACC2002",
		"amount":                   250.00,
		"transferType":             "INTERNAL",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot[domain.TransferDraft](t, rec)
	assert.Equal(t, workflow.PhaseConfirming, snap.Phase)
	assert.Equal(t, "ACC1001", snap.Draft.SourceAccountNumber)
	f.transfers.AssertNotCalled(t, "ExecuteTransfer", mock.Anything, mock.Anything)
}

func TestExecuteTransfer_ConfirmedSubmits(t *testing.T) {
	f := newFixture(t)

	newSource := decimal.RequireFromString("750.00")
	newDestination := decimal.RequireFromString("1250.00")
	f.transfers.On("ExecuteTransfer", mock.Anything, mock.MatchedBy(func(d domain.TransferDraft) bool {
		return d.SourceAccountNumber == "ACC1001" && d.Amount == "250"
	})).Return(&domain.SettlementResult{
		Message:               "Transfer completed",
		TransactionRef:        "TXN100",
		NewSourceBalance:      &newSource,
		NewDestinationBalance: &newDestination,
	}, nil).Once()

	rec := f.post(t, "/api/transfers", map[string]any{
		"sourceAccountNumber":      "ACC1001",
		"destinationAccountNumber": "ACC2002",
		"amount":                   250,
		"transferType":             "INTERNAL",
		"confirmed":                true,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot[domain.TransferDraft](t, rec)
	assert.Equal(t, workflow.PhaseSucceeded, snap.Phase)
	assert.Equal(t, "TXN100", snap.Result.TransactionRef)
	f.transfers.AssertExpectations(t)
}

func TestExecuteTransfer_GatewayFailureReturns502(t *testing.T) {
	f := newFixture(t)

	f.transfers.On("ExecuteTransfer", mock.Anything, mock.Anything).
		Return(nil, domain.NewSubmissionError("Insufficient funds")).
		Once()

	rec := f.post(t, "/api/transfers", map[string]any{
		"sourceAccountNumber":      "ACC1001",
		"destinationAccountNumber": "ACC2002",
		"amount":                   "250.00",
		"transferType":             "INTERNAL",
		"confirmed":                true,
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	snap := decodeSnapshot[domain.TransferDraft](t, rec)
	assert.Equal(t, workflow.PhaseFailed, snap.Phase)
	assert.Equal(t, "Insufficient funds", snap.Failure)
	// Draft comes back so the client can retry with corrected values.
	assert.Equal(t, "ACC1001", snap.Draft.SourceAccountNumber)
}

func TestExecuteDeposit_Succeeds(t *testing.T) {
	f := newFixture(t)

	draft := domain.DepositDraft{
		AccountNumber: "ACC123",
		Amount:        "500.00",
		Source:        domain.DepositSourceCash,
	}
	newBalance := decimal.RequireFromString("1500.00")
	f.deposits.On("ExecuteDeposit", mock.Anything, draft).Return(&domain.SettlementResult{
		Message:        "OK",
		TransactionRef: "TXN1",
		NewBalance:     &newBalance,
	}, nil).Once()
	f.directory.On("GetUserAccounts", mock.Anything, int64(7)).
		Return([]*domain.Account{}, nil).
		Once()

	rec := f.post(t, "/api/deposits", map[string]any{
		"accountNumber": "ACC123",
		"amount":        "500.00",
		"source":        "Cash Deposit",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot[domain.DepositDraft](t, rec)
	assert.Equal(t, workflow.PhaseSucceeded, snap.Phase)
	assert.Equal(t, "TXN1", snap.Result.TransactionRef)
	f.deposits.AssertExpectations(t)
	f.directory.AssertExpectations(t)
}

func TestExecuteDeposit_ValidationFailureReturns422(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/deposits", map[string]any{
		"accountNumber": "",
		"amount":        -10,
		"source":        "Cash Deposit",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	snap := decodeSnapshot[domain.DepositDraft](t, rec)
	assert.True(t, snap.Errors.Has(validation.FieldAccountNumber))
	assert.True(t, snap.Errors.Has(validation.FieldAmount))
	f.deposits.AssertNotCalled(t, "ExecuteDeposit", mock.Anything, mock.Anything)
}

func TestListAccounts_ReturnsDirectoryAccounts(t *testing.T) {
	f := newFixture(t)

	f.directory.On("GetUserAccounts", mock.Anything, int64(7)).
		Return([]*domain.Account{
			{ID: 1, AccountNumber: "ACC123", Balance: decimal.RequireFromString("1500.00")},
		}, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var accounts []*domain.Account
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 1)
	assert.Equal(t, "ACC123", accounts[0].AccountNumber)
}

func TestRoutes_RequireAuth(t *testing.T) {
	f := newFixture(t)

	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/accounts"},
		{http.MethodPost, "/api/transfers"},
		{http.MethodPost, "/api/deposits"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestHealth_Open(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
