package models

import "errors"

type AccountType string

const (
	AccountTypeOperating AccountType = "operating"
	AccountTypeReserve   AccountType = "reserve"
	AccountTypeSpecial   AccountType = "special"
)

func (t *AccountType) UnmarshalText(b []byte) error {
	switch AccountType(b) {
	case AccountTypeOperating, AccountTypeReserve, AccountTypeSpecial:
		*t = AccountType(b)
		return nil
	}
	return errors.New("invalid account type")
}

// TransactionType carries the direction of a transaction; Amount is always a
// positive magnitude.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeFee         TransactionType = "fee"
)

func (t *TransactionType) UnmarshalText(b []byte) error {
	switch TransactionType(b) {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeTransferIn, TransactionTypeTransferOut, TransactionTypeFee:
		*t = TransactionType(b)
		return nil
	}
	return errors.New("invalid transaction type")
}

// IsInflow reports whether the type adds to the account balance.
func (t TransactionType) IsInflow() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeTransferIn
}

// IsOutflow reports whether the type draws down the account balance.
func (t TransactionType) IsOutflow() bool {
	return t == TransactionTypeWithdrawal || t == TransactionTypeTransferOut || t == TransactionTypeFee
}

type ViolationType string

const (
	ViolationTypeFundMixing           ViolationType = "fund_mixing"
	ViolationTypeUnauthorizedExpense  ViolationType = "unauthorized_expense"
	ViolationTypeMissingDocumentation ViolationType = "missing_documentation"
)
