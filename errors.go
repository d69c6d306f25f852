package payproc

import "errors"

// Domain errors returned by Ledger.Apply when a record is discarded.
// None of them is fatal to a run: the streaming driver observes the error,
// leaves state untouched and moves on to the next record.
var (
	// ErrDuplicateTransaction reports a deposit or withdrawal reusing a
	// transaction id already present in the store.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	// ErrNegativeAmount reports a deposit or withdrawal carrying a
	// negative amount.
	ErrNegativeAmount = errors.New("negative amount")

	// ErrInsufficientFunds reports a debit or hold that would push the
	// available balance below zero under the strict policy.
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrUnknownReference reports a record pointing at a client or
	// transaction that does not exist, belongs to another client, or is
	// not in the dispute status the record requires.
	ErrUnknownReference = errors.New("unknown or mismatched reference")

	// ErrAccountLocked reports any record aimed at a locked account.
	ErrAccountLocked = errors.New("account locked")

	// ErrNotDisputable reports a dispute refused by the legality predicate.
	ErrNotDisputable = errors.New("transaction not disputable")

	// ErrPrecisionTooHigh reports amount text with more than four
	// fractional digits.
	ErrPrecisionTooHigh = errors.New("amount precision exceeds 4 fractional digits")
)
