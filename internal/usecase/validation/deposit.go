package validation

import (
	"strings"

	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/shopspring/decimal"
)

// Deposit-specific field names
const (
	FieldAccountNumber = "accountNumber"
	FieldSource        = "source"
)

// Deposit validation messages
const (
	MsgAccountRequired       = "Account is required"
	MsgDepositAmountPositive = "Amount must be greater than zero"
	MsgDepositSourceRequired = "Source is required"
	MsgDepositSourceInvalid  = "Invalid deposit source"
	MsgDepositDescTooLong    = "Description too long"
)

// ValidateDeposit evaluates a deposit draft and returns the complete
// error set for it. Deposits have no upper amount bound; the amount only
// has to be a positive number.
func ValidateDeposit(draft domain.DepositDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if strings.TrimSpace(draft.AccountNumber) == "" {
		errs.Set(FieldAccountNumber, MsgAccountRequired)
	}

	validateDepositAmount(draft.Amount, errs)

	if draft.Source == "" {
		errs.Set(FieldSource, MsgDepositSourceRequired)
	} else if !isValidDepositSource(draft.Source) {
		errs.Set(FieldSource, MsgDepositSourceInvalid)
	}

	if len(draft.Description) > maxDescriptionLength {
		errs.Set(FieldDescription, MsgDepositDescTooLong)
	}

	return errs
}

func validateDepositAmount(raw string, errs domain.FieldErrors) {
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

	if amount.LessThanOrEqual(decimal.Zero) {
		errs.Set(FieldAmount, MsgDepositAmountPositive)
	}
}

func isValidDepositSource(source domain.DepositSource) bool {
	for _, valid := range domain.ValidDepositSources() {
		if source == valid {
			return true
		}
	}
	return false
}
