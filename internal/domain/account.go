package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind identifies which of the two tracked accounts an entry or
// engine refers to. The string form is the label written to the statement.
type AccountKind int

const (
	KindMain AccountKind = iota
	KindSavings
)

const (
	mainLabel    = "Main Account"
	savingsLabel = "Savings Account"
)

func (k AccountKind) String() string {
	switch k {
	case KindMain:
		return mainLabel
	case KindSavings:
		return savingsLabel
	default:
		return "Unknown Account"
	}
}

// ParseAccountKind maps a statement label back to its kind.
func ParseAccountKind(s string) (AccountKind, error) {
	switch s {
	case mainLabel:
		return KindMain, nil
	case savingsLabel:
		return KindSavings, nil
	default:
		return 0, ErrUnknownAccountKind
	}
}

// SavingsRate is the fixed interest rate folded into the savings balance
// after every deposit.
var SavingsRate = decimal.RequireFromString("0.02")

// SavingsOpeningBalance seeds every new savings account.
var SavingsOpeningBalance = decimal.RequireFromString("100.00")

// Account holds the in-memory balance for one holder. Only deposits and
// withdrawals mutate the balance; the statement file is the durable record.
type Account struct {
	ID         string
	HolderName string
	Kind       AccountKind
	Balance    decimal.Decimal
}

// NewMainAccount creates a checking-style account with the given opening
// balance. A negative opening balance is rejected up front, since no later
// operation is allowed to drive the balance below zero either.
func NewMainAccount(id, name string, opening decimal.Decimal) (*Account, error) {
	if err := ValidateHolderName(name); err != nil {
		return nil, err
	}
	if opening.IsNegative() {
		return nil, ErrNegativeOpeningBalance
	}
	return &Account{
		ID:         id,
		HolderName: name,
		Kind:       KindMain,
		Balance:    opening,
	}, nil
}

// NewSavingsAccount creates a savings account. The opening balance is always
// 100.00; there is deliberately no parameter for it.
func NewSavingsAccount(id, name string) (*Account, error) {
	if err := ValidateHolderName(name); err != nil {
		return nil, err
	}
	return &Account{
		ID:         id,
		HolderName: name,
		Kind:       KindSavings,
		Balance:    SavingsOpeningBalance,
	}, nil
}

// ValidateDeposit checks whether amount can be deposited.
func (a *Account) ValidateDeposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateWithdraw checks whether amount can be withdrawn without driving
// the balance negative.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDeposit returns the balance after depositing amount. Savings accounts
// earn interest on the post-deposit balance, so the returned value already
// includes it. The receiver is not mutated.
func (a *Account) ApplyDeposit(amount decimal.Decimal) decimal.Decimal {
	next := a.Balance.Add(amount)
	if a.Kind == KindSavings {
		next = next.Add(next.Mul(SavingsRate))
	}
	return next
}

// ApplyWithdraw returns the balance after withdrawing amount. Withdrawals
// never accrue interest, for either kind.
func (a *Account) ApplyWithdraw(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}
