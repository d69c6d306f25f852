package payproc

import "fmt"

// Kind is a typed string identifying a transaction record kind.
type Kind string

// Record kinds appearing in a transaction stream.
const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Monetary reports whether records of this kind carry an amount of their
// own. Dispute, resolve and chargeback reference the amount of a prior
// transaction instead.
func (k Kind) Monetary() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Record is one parsed transaction record, the unit the Ledger applies.
// Tx is unique across a whole stream for deposits and withdrawals, and a
// back-reference to a prior one for the dispute kinds. Amount is only
// meaningful when Kind.Monetary() is true.
type Record struct {
	Kind   Kind
	Tx     uint32
	Client uint16
	Amount Amount
}

func (r Record) String() string {
	if r.Kind.Monetary() {
		return fmt.Sprintf("%s tx=%d client=%d amount=%s", r.Kind, r.Tx, r.Client, r.Amount)
	}
	return fmt.Sprintf("%s tx=%d client=%d", r.Kind, r.Tx, r.Client)
}

// DisputeStatus is the dispute lifecycle state of a stored transaction.
type DisputeStatus int

const (
	// Clean means the transaction is not under dispute. Resolving a
	// dispute returns the transaction to Clean.
	Clean DisputeStatus = iota
	// Disputed means a dispute holds the transaction amount.
	Disputed
	// ChargedBack is terminal: the dispute was finalized against the
	// client and the transaction takes part in no further mutation.
	ChargedBack
)

func (s DisputeStatus) String() string {
	switch s {
	case Clean:
		return "clean"
	case Disputed:
		return "disputed"
	case ChargedBack:
		return "charged back"
	default:
		return "unknown"
	}
}

// StoredTransaction is the retained subset of a deposit or withdrawal
// record, kept for the whole run so later dispute actions can be resolved
// against it. Status is its only mutable field.
type StoredTransaction struct {
	Tx     uint32
	Client uint16
	Kind   Kind
	Amount Amount
	Status DisputeStatus
}
