package domain

import (
	"github.com/shopspring/decimal"
)

// TxType is the direction of a statement entry.
type TxType int

const (
	TxDeposit TxType = iota
	TxWithdrawal
)

const (
	depositLabel    = "Deposit"
	withdrawalLabel = "Withdrawal"
)

func (t TxType) String() string {
	switch t {
	case TxDeposit:
		return depositLabel
	case TxWithdrawal:
		return withdrawalLabel
	default:
		return "Unknown"
	}
}

// ParseTxType maps a statement label back to its transaction type.
func ParseTxType(s string) (TxType, error) {
	switch s {
	case depositLabel:
		return TxDeposit, nil
	case withdrawalLabel:
		return TxWithdrawal, nil
	default:
		return 0, ErrUnknownTxType
	}
}

// Entry is a single statement record. Entries are immutable once appended;
// the statement is the ordered sequence of them.
type Entry struct {
	Kind            AccountKind
	Type            TxType
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	UpdatedBalance  decimal.Decimal
}

// Validate checks that the entry's balances reconcile with its amount.
// Savings deposits record the balance after interest, so their updated
// balance may exceed previous+amount but never fall below it.
func (e *Entry) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	switch e.Type {
	case TxDeposit:
		floor := e.PreviousBalance.Add(e.Amount)
		if e.Kind == KindSavings {
			if e.UpdatedBalance.LessThan(floor) {
				return ErrEntryMismatch
			}
			return nil
		}
		if !e.UpdatedBalance.Equal(floor) {
			return ErrEntryMismatch
		}
	case TxWithdrawal:
		if !e.UpdatedBalance.Equal(e.PreviousBalance.Sub(e.Amount)) {
			return ErrEntryMismatch
		}
	default:
		return ErrUnknownTxType
	}
	return nil
}

// Totals are the per-kind net amounts derived by replaying the statement.
type Totals struct {
	Main    decimal.Decimal
	Savings decimal.Decimal
}

// ContinuityBreak reports an entry whose previous balance does not match the
// updated balance of the prior entry for the same kind.
type ContinuityBreak struct {
	Kind     AccountKind
	Index    int
	Expected decimal.Decimal
	Got      decimal.Decimal
}

// CheckContinuity replays entries in order and verifies per-kind balance
// continuity. The first entry of each kind anchors the chain.
func CheckContinuity(entries []*Entry) []ContinuityBreak {
	last := make(map[AccountKind]decimal.Decimal)
	seen := make(map[AccountKind]bool)

	var breaks []ContinuityBreak
	for i, e := range entries {
		if seen[e.Kind] && !e.PreviousBalance.Equal(last[e.Kind]) {
			breaks = append(breaks, ContinuityBreak{
				Kind:     e.Kind,
				Index:    i,
				Expected: last[e.Kind],
				Got:      e.PreviousBalance,
			})
		}
		last[e.Kind] = e.UpdatedBalance
		seen[e.Kind] = true
	}
	return breaks
}
