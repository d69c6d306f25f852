package payproc

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// NegativePolicy defines whether a debit or a hold may drive the available
// balance below zero.
type NegativePolicy int

const (
	// StrictReject refuses any debit or hold that would overdraw the
	// available balance. This is the default.
	StrictReject NegativePolicy = iota
	// PermitNegative lets the available balance go negative.
	PermitNegative
)

func (p NegativePolicy) String() string {
	switch p {
	case StrictReject:
		return "strict"
	case PermitNegative:
		return "permit"
	default:
		return "unknown"
	}
}

// ParseNegativePolicy parses a string into a NegativePolicy.
func ParseNegativePolicy(s string) (NegativePolicy, error) {
	switch s {
	case "strict":
		return StrictReject, nil
	case "permit":
		return PermitNegative, nil
	default:
		return 0, fmt.Errorf("unknown negative balance policy: %q", s)
	}
}

// DisputeAll is the default dispute legality predicate: every retained
// transaction kind may be disputed.
func DisputeAll(StoredTransaction) bool { return true }

// DisputeDepositsOnly restricts disputes to deposits.
func DisputeDepositsOnly(st StoredTransaction) bool { return st.Kind == KindDeposit }

// RecordSource yields transaction records one at a time. Next returns
// io.EOF when the stream is exhausted. A *RowError signals one malformed
// record that can be skipped; any other error is an input failure that
// ends the run.
type RecordSource interface {
	Next() (Record, error)
}

// Ledger is the transaction application engine. It owns the client account
// map and the transaction record store, and applies each incoming record
// against current state: validation, lazy account creation, dispute
// bookkeeping. Application is synchronous and single-threaded; a Ledger is
// not safe for concurrent use.
type Ledger struct {
	// Disputable decides which stored transactions a dispute may target.
	// Defaults to DisputeAll.
	Disputable func(StoredTransaction) bool

	// Hook, when set, observes every record the ledger sees together with
	// the error that discarded it (nil when the record applied). It must
	// not mutate ledger state.
	Hook func(Record, error)

	policy     NegativePolicy
	accounts   map[uint16]*Account
	store      *TransactionStore
	applied    int
	rejections map[string]int
}

// NewLedger creates an empty ledger applying the given negative balance
// policy.
func NewLedger(policy NegativePolicy) *Ledger {
	return &Ledger{
		Disputable: DisputeAll,
		policy:     policy,
		accounts:   make(map[uint16]*Account),
		store:      NewTransactionStore(),
		rejections: make(map[string]int),
	}
}

// Apply applies one transaction record against current state. The record
// either takes full effect or none: a non-nil error means it was discarded
// without any mutation. Errors are informational, they never poison the
// ledger, and callers streaming many records are expected to keep going.
func (l *Ledger) Apply(rec Record) error {
	var err error
	switch rec.Kind {
	case KindDeposit:
		err = l.deposit(rec)
	case KindWithdrawal:
		err = l.withdrawal(rec)
	case KindDispute:
		err = l.dispute(rec)
	case KindResolve:
		err = l.resolve(rec)
	case KindChargeback:
		err = l.chargeback(rec)
	default:
		err = fmt.Errorf("unknown transaction kind: %q", rec.Kind)
	}
	l.observe(rec, err)
	return err
}

func (l *Ledger) deposit(rec Record) error {
	if rec.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if _, exists := l.store.Get(rec.Tx); exists {
		return ErrDuplicateTransaction
	}
	acct, exists := l.accounts[rec.Client]
	if !exists {
		acct = newAccount(rec.Client)
	}
	if err := acct.credit(rec.Amount); err != nil {
		return err
	}
	// The account joins the map only now: a rejected first transaction
	// must not materialize a client.
	l.accounts[rec.Client] = acct
	return l.store.Insert(StoredTransaction{
		Tx: rec.Tx, Client: rec.Client, Kind: KindDeposit, Amount: rec.Amount,
	})
}

func (l *Ledger) withdrawal(rec Record) error {
	if rec.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if _, exists := l.store.Get(rec.Tx); exists {
		return ErrDuplicateTransaction
	}
	acct, exists := l.accounts[rec.Client]
	if !exists {
		return ErrUnknownReference
	}
	if err := acct.debit(rec.Amount, l.policy); err != nil {
		return err
	}
	return l.store.Insert(StoredTransaction{
		Tx: rec.Tx, Client: rec.Client, Kind: KindWithdrawal, Amount: rec.Amount,
	})
}

// reference resolves a dispute-kind record to its target transaction and
// account, enforcing the gates shared by dispute, resolve and chargeback:
// the reference must exist, belong to the claiming client, be in the
// wanted dispute status, and its account must not be locked.
func (l *Ledger) reference(rec Record, want DisputeStatus) (StoredTransaction, *Account, error) {
	st, ok := l.store.Get(rec.Tx)
	if !ok || st.Client != rec.Client || st.Status != want {
		return StoredTransaction{}, nil, ErrUnknownReference
	}
	acct, ok := l.accounts[st.Client]
	if !ok {
		return StoredTransaction{}, nil, ErrUnknownReference
	}
	if acct.Locked() {
		return StoredTransaction{}, nil, ErrAccountLocked
	}
	return st, acct, nil
}

func (l *Ledger) dispute(rec Record) error {
	st, acct, err := l.reference(rec, Clean)
	if err != nil {
		return err
	}
	if !l.Disputable(st) {
		return ErrNotDisputable
	}
	if err := acct.hold(st.Amount, l.policy); err != nil {
		return err
	}
	return l.store.MarkDisputed(st.Tx)
}

func (l *Ledger) resolve(rec Record) error {
	st, acct, err := l.reference(rec, Disputed)
	if err != nil {
		return err
	}
	if err := acct.release(st.Amount); err != nil {
		return err
	}
	return l.store.MarkResolved(st.Tx)
}

func (l *Ledger) chargeback(rec Record) error {
	st, acct, err := l.reference(rec, Disputed)
	if err != nil {
		return err
	}
	if err := acct.forfeitAndLock(st.Amount); err != nil {
		return err
	}
	return l.store.MarkChargedBack(st.Tx)
}

func (l *Ledger) observe(rec Record, err error) {
	if err == nil {
		l.applied++
	} else {
		l.rejections[reason(err)]++
	}
	if l.Hook != nil {
		l.Hook(rec, err)
	}
}

// reason buckets a discard error for the rejection counters.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate id"
	case errors.Is(err, ErrNegativeAmount):
		return "negative amount"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient funds"
	case errors.Is(err, ErrUnknownReference):
		return "unknown reference"
	case errors.Is(err, ErrAccountLocked):
		return "account locked"
	case errors.Is(err, ErrNotDisputable):
		return "not disputable"
	case errors.Is(err, ErrPrecisionTooHigh):
		return "precision"
	default:
		return "malformed"
	}
}

// Process drains a record source into the ledger. Per-record discards
// (including malformed rows, reported by the source as *RowError) are
// counted and observed through the Hook but never stop the stream; only a
// source-level input failure is returned.
func (l *Ledger) Process(src RecordSource) error {
	for {
		rec, err := src.Next()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				return err
			}
			l.rejections[reason(err)]++
			if l.Hook != nil {
				l.Hook(rec, err)
			}
		default:
			l.Apply(rec)
		}
	}
}

// Account returns the account of one client, if any transaction for it was
// ever successfully applied.
func (l *Ledger) Account(client uint16) (*Account, bool) {
	acct, ok := l.accounts[client]
	return acct, ok
}

// Accounts returns every client account in ascending client id order, so
// projected output is deterministic.
func (l *Ledger) Accounts() []*Account {
	ids := slices.Sorted(maps.Keys(l.accounts))
	out := make([]*Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.accounts[id])
	}
	return out
}

// Store exposes the retained transactions for enumeration and debugging.
func (l *Ledger) Store() *TransactionStore { return l.store }

// Applied returns the number of records that took effect.
func (l *Ledger) Applied() int { return l.applied }

// Rejected returns the total number of discarded records.
func (l *Ledger) Rejected() int {
	n := 0
	for _, c := range l.rejections {
		n += c
	}
	return n
}

// Rejections returns the discard counts bucketed by reason.
func (l *Ledger) Rejections() map[string]int {
	return maps.Clone(l.rejections)
}
