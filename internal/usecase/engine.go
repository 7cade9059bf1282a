package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bankbook/internal/domain"
	"bankbook/internal/infrastructure/metrics"
)

// AccountEngine validates operations, mutates the in-memory balance and
// drives statement appends for a single account. There is no pending state:
// each call validates, persists, then commits the balance, synchronously.
//
// Results follow the two-axis contract: (false, nil) is a validation
// rejection — nothing written, nothing mutated; (false, err) is a
// persistence failure — nothing mutated either, since success requires the
// durable append.
type AccountEngine struct {
	account    *domain.Account
	statements StatementRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewAccountEngine creates an engine for one account. metrics may be nil.
func NewAccountEngine(
	account *domain.Account,
	statements StatementRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	log zerolog.Logger,
) *AccountEngine {
	return &AccountEngine{
		account:    account,
		statements: statements,
		idGen:      idGen,
		metrics:    m,
		log: log.With().
			Str("account_id", account.ID).
			Str("account", account.Kind.String()).
			Logger(),
	}
}

// Deposit credits amount to the account. For savings accounts the recorded
// updated balance includes the interest folded in after the deposit.
func (e *AccountEngine) Deposit(ctx context.Context, amount decimal.Decimal) (bool, error) {
	if err := e.account.ValidateDeposit(amount); err != nil {
		e.reject(domain.TxDeposit, amount, err)
		return false, nil
	}

	updated := e.account.ApplyDeposit(amount)
	if err := e.record(ctx, domain.TxDeposit, amount, updated); err != nil {
		return false, err
	}

	e.account.Balance = updated
	return true, nil
}

// Withdraw debits amount from the account. Withdrawals never accrue
// interest.
func (e *AccountEngine) Withdraw(ctx context.Context, amount decimal.Decimal) (bool, error) {
	if err := e.account.ValidateWithdraw(amount); err != nil {
		e.reject(domain.TxWithdrawal, amount, err)
		return false, nil
	}

	updated := e.account.ApplyWithdraw(amount)
	if err := e.record(ctx, domain.TxWithdrawal, amount, updated); err != nil {
		return false, err
	}

	e.account.Balance = updated
	return true, nil
}

// Balance returns the current in-memory balance.
func (e *AccountEngine) Balance() decimal.Decimal {
	return e.account.Balance
}

// HolderName returns the immutable holder name.
func (e *AccountEngine) HolderName() string {
	return e.account.HolderName
}

// Kind returns the account kind.
func (e *AccountEngine) Kind() domain.AccountKind {
	return e.account.Kind
}

func (e *AccountEngine) record(ctx context.Context, txType domain.TxType, amount, updated decimal.Decimal) error {
	opID := e.idGen.Generate()
	entry := &domain.Entry{
		Kind:            e.account.Kind,
		Type:            txType,
		Amount:          amount,
		PreviousBalance: e.account.Balance,
		UpdatedBalance:  updated,
	}

	if err := e.statements.Append(ctx, entry); err != nil {
		e.log.Error().
			Err(err).
			Str("operation_id", opID).
			Str("type", txType.String()).
			Str("amount", amount.String()).
			Msg("statement append failed, balance unchanged")
		return fmt.Errorf("recording %s: %w", txType, err)
	}

	e.metrics.ObserveTransaction(e.account.Kind.String(), txType.String())
	e.log.Info().
		Str("operation_id", opID).
		Str("type", txType.String()).
		Str("amount", amount.String()).
		Str("balance", updated.String()).
		Msg("operation committed")

	return nil
}

func (e *AccountEngine) reject(txType domain.TxType, amount decimal.Decimal, err error) {
	reason := "invalid_amount"
	if errors.Is(err, domain.ErrInsufficientFunds) {
		reason = "insufficient_funds"
	}

	e.metrics.ObserveRejection(e.account.Kind.String(), reason)
	e.log.Debug().
		Str("type", txType.String()).
		Str("amount", amount.String()).
		Str("reason", reason).
		Msg("operation rejected")
}
