package validation

import (
	"strings"
	"testing"

	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func validDepositDraft() domain.DepositDraft {
	return domain.DepositDraft{
		AccountNumber: "ACC123",
		Amount:        "500.00",
		Source:        domain.DepositSourceCash,
	}
}

func TestValidateDeposit_ValidDraft(t *testing.T) {
	errs := ValidateDeposit(validDepositDraft())
	assert.True(t, errs.Empty())
}

func TestValidateDeposit_MissingAccount(t *testing.T) {
	draft := validDepositDraft()
	draft.AccountNumber = "  "

	errs := ValidateDeposit(draft)
	assert.Equal(t, MsgAccountRequired, errs.Message(FieldAccountNumber))
}

func TestValidateDeposit_Amount(t *testing.T) {
	draft := validDepositDraft()

	draft.Amount = ""
	assert.Equal(t, MsgAmountRequired, ValidateDeposit(draft).Message(FieldAmount))

	draft.Amount = "not-a-number"
	assert.Equal(t, MsgAmountNotNumeric, ValidateDeposit(draft).Message(FieldAmount))

	draft.Amount = "0"
	assert.Equal(t, MsgDepositAmountPositive, ValidateDeposit(draft).Message(FieldAmount))

	// No upper bound on deposits.
	draft.Amount = "5000000.00"
	assert.False(t, ValidateDeposit(draft).Has(FieldAmount))
}

func TestValidateDeposit_Source(t *testing.T) {
	draft := validDepositDraft()

	draft.Source = ""
	assert.Equal(t, MsgDepositSourceRequired, ValidateDeposit(draft).Message(FieldSource))

	draft.Source = "Monopoly Bank"
	assert.Equal(t, MsgDepositSourceInvalid, ValidateDeposit(draft).Message(FieldSource))

	for _, source := range domain.ValidDepositSources() {
		draft.Source = source
		assert.False(t, ValidateDeposit(draft).Has(FieldSource))
	}
}

func TestValidateDeposit_DescriptionLength(t *testing.T) {
	draft := validDepositDraft()
	draft.Description = strings.Repeat("y", 256)

	errs := ValidateDeposit(draft)
	assert.Equal(t, MsgDepositDescTooLong, errs.Message(FieldDescription))
}

func TestValidateDeposit_Idempotent(t *testing.T) {
	draft := validDepositDraft()
	draft.Amount = "-3"
	draft.Source = "Monopoly Bank"

	assert.Equal(t, ValidateDeposit(draft), ValidateDeposit(draft))
}
