package payproc

// TransactionStore retains deposit and withdrawal transactions for the
// duration of a run, keyed by transaction id, so dispute, resolve and
// chargeback records can be resolved against them. Insertion order is
// preserved for enumeration. It is not safe for concurrent use.
type TransactionStore struct {
	byID  map[uint32]*StoredTransaction
	order []uint32
}

// NewTransactionStore creates an empty store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{byID: make(map[uint32]*StoredTransaction)}
}

// Insert adds a stored transaction. It fails with ErrDuplicateTransaction
// when the id already exists: transaction ids are unique across the whole
// stream.
func (s *TransactionStore) Insert(st StoredTransaction) error {
	if _, exists := s.byID[st.Tx]; exists {
		return ErrDuplicateTransaction
	}
	s.byID[st.Tx] = &st
	s.order = append(s.order, st.Tx)
	return nil
}

// Get returns a copy of the stored transaction with this id.
func (s *TransactionStore) Get(id uint32) (StoredTransaction, bool) {
	st, ok := s.byID[id]
	if !ok {
		return StoredTransaction{}, false
	}
	return *st, true
}

// MarkDisputed flips the stored status to Disputed.
func (s *TransactionStore) MarkDisputed(id uint32) error { return s.mark(id, Disputed) }

// MarkResolved flips the stored status back to Clean.
func (s *TransactionStore) MarkResolved(id uint32) error { return s.mark(id, Clean) }

// MarkChargedBack flips the stored status to the terminal ChargedBack.
func (s *TransactionStore) MarkChargedBack(id uint32) error { return s.mark(id, ChargedBack) }

func (s *TransactionStore) mark(id uint32, status DisputeStatus) error {
	st, ok := s.byID[id]
	if !ok {
		return ErrUnknownReference
	}
	st.Status = status
	return nil
}

// All returns copies of every stored transaction in insertion order.
func (s *TransactionStore) All() []StoredTransaction {
	out := make([]StoredTransaction, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// Len returns the number of retained transactions.
func (s *TransactionStore) Len() int { return len(s.order) }
