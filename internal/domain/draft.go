package domain

// TransferType identifies how a transfer is routed
type TransferType string

const (
	TransferTypeInternal  TransferType = "INTERNAL"
	TransferTypeInterbank TransferType = "INTERBANK_MOCK"
)

// DepositSource identifies where deposited funds originate
type DepositSource string

const (
	DepositSourceWellsFargo DepositSource = "Wells Fargo Mock"
	DepositSourceChase      DepositSource = "Chase Mock"
	DepositSourceCash       DepositSource = "Cash Deposit"
)

// TransferDraft is the in-progress, not-yet-submitted transfer input.
// Amount is kept as the raw form input so validation can distinguish
// non-numeric input from out-of-range values.
type TransferDraft struct {
	SourceAccountNumber      string       `json:"sourceAccountNumber"`
	DestinationAccountNumber string       `json:"destinationAccountNumber"`
	Amount                   string       `json:"amount"`
	TransferType             TransferType `json:"transferType"`
	Description              string       `json:"description,omitempty"`
}

// DepositDraft is the in-progress, not-yet-submitted deposit input
type DepositDraft struct {
	AccountNumber string        `json:"accountNumber"`
	Amount        string        `json:"amount"`
	Source        DepositSource `json:"source"`
	Description   string        `json:"description,omitempty"`
}

// ValidTransferTypes lists the accepted transfer routing options
func ValidTransferTypes() []TransferType {
	return []TransferType{TransferTypeInternal, TransferTypeInterbank}
}

// ValidDepositSources lists the accepted deposit origins
func ValidDepositSources() []DepositSource {
	return []DepositSource{DepositSourceWellsFargo, DepositSourceChase, DepositSourceCash}
}
