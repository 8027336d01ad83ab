package validation

import (
	"strings"

	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/shopspring/decimal"
)

// Field names used as keys in the returned FieldErrors.
// They match the JSON names of the draft fields so the UI layer can map
// messages back onto inputs without translation.
const (
	FieldSourceAccountNumber      = "sourceAccountNumber"
	FieldDestinationAccountNumber = "destinationAccountNumber"
	FieldAmount                   = "amount"
	FieldTransferType             = "transferType"
	FieldDescription              = "description"
)

// Transfer validation messages
const (
	MsgSourceRequired      = "Please select a source account"
	MsgDestinationRequired = "Destination account number is required"
	MsgDestinationTooShort = "Invalid account number"
	MsgSameAccount         = "Source and destination accounts must be different"
	MsgAmountRequired      = "Amount is required"
	MsgAmountNotNumeric    = "Amount must be a number"
	MsgAmountNotPositive   = "Amount must be positive"
	MsgAmountBelowMinimum  = "Minimum transfer amount is $0.01"
	MsgAmountAboveMaximum  = "Maximum transfer amount is $100,000.00"
	MsgTransferTypeMissing = "Please select a transfer type"
	MsgTransferTypeInvalid = "Invalid transfer type"
	MsgDescriptionTooLong  = "Description must not exceed 255 characters"
)

const (
	minDestinationLength = 3
	maxDescriptionLength = 255
)

var (
	minTransferAmount = decimal.RequireFromString("0.01")
	maxTransferAmount = decimal.RequireFromString("100000.00")
)

// ValidateTransfer evaluates a transfer draft and returns the complete
// error set for it. Every field is checked independently; the cross-field
// same-account rule is evaluated symmetrically from both account fields.
// The function is pure and idempotent: the same draft always yields the
// same error set, and nothing is short-circuited on the first failure.
func ValidateTransfer(draft domain.TransferDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}

	source := strings.TrimSpace(draft.SourceAccountNumber)
	destination := strings.TrimSpace(draft.DestinationAccountNumber)

	if source == "" {
		errs.Set(FieldSourceAccountNumber, MsgSourceRequired)
	}

	if destination == "" {
		errs.Set(FieldDestinationAccountNumber, MsgDestinationRequired)
	} else if len(destination) < minDestinationLength {
		errs.Set(FieldDestinationAccountNumber, MsgDestinationTooShort)
	}

	// Cross-field rule: both account fields carry the same-account
	// message when two non-empty, equal numbers are entered.
	if source != "" && destination != "" && source == destination {
		errs.Set(FieldSourceAccountNumber, MsgSameAccount)
		errs.Set(FieldDestinationAccountNumber, MsgSameAccount)
	}

	validateTransferAmount(draft.Amount, errs)

	switch draft.TransferType {
	case "":
		errs.Set(FieldTransferType, MsgTransferTypeMissing)
	case domain.TransferTypeInternal, domain.TransferTypeInterbank:
		// valid
	default:
		errs.Set(FieldTransferType, MsgTransferTypeInvalid)
	}

	if len(draft.Description) > maxDescriptionLength {
		errs.Set(FieldDescription, MsgDescriptionTooLong)
	}

	return errs
}

// validateTransferAmount parses the raw amount input and applies the
// transfer bounds. Non-numeric input yields a type error distinct from
// the range errors.
func validateTransferAmount(raw string, errs domain.FieldErrors) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.Set(FieldAmount, MsgAmountRequired)
		return
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		errs.Set(FieldAmount, MsgAmountNotNumeric)
		return
	}

	switch {
	case amount.LessThanOrEqual(decimal.Zero):
		errs.Set(FieldAmount, MsgAmountNotPositive)
	case amount.LessThan(minTransferAmount):
		errs.Set(FieldAmount, MsgAmountBelowMinimum)
	case amount.GreaterThan(maxTransferAmount):
		errs.Set(FieldAmount, MsgAmountAboveMaximum)
	}
}
