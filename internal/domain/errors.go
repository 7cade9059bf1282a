package domain

import "errors"

var (
	// Account errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInsufficientFunds      = errors.New("amount exceeds available balance")
	ErrNegativeOpeningBalance = errors.New("opening balance cannot be negative")
	ErrInvalidHolderName      = errors.New("invalid holder name")

	// Entry errors
	ErrUnknownAccountKind = errors.New("unknown account kind")
	ErrUnknownTxType      = errors.New("unknown transaction type")
	ErrEntryMismatch      = errors.New("entry balances do not reconcile with amount")

	// Statement store errors
	ErrStorageUnavailable = errors.New("statement storage unavailable")
	ErrWriteFailure       = errors.New("statement append failed")
)
