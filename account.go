package payproc

// Account is the per-client mutable state derived from a run: the funds a
// client may move (available), the funds frozen by active disputes (held),
// and whether a chargeback locked the account. The total balance is always
// derived as available+held, never stored.
//
// Accounts are created lazily by the Ledger on a client's first successful
// transaction and mutated in place for the rest of the run.
type Account struct {
	id        uint16
	available Amount
	held      Amount
	locked    bool
}

func newAccount(id uint16) *Account {
	return &Account{id: id}
}

// ID returns the client id this account belongs to.
func (a *Account) ID() uint16 { return a.id }

// Available returns the funds the client may withdraw.
func (a *Account) Available() Amount { return a.available }

// Held returns the funds frozen by active disputes.
func (a *Account) Held() Amount { return a.held }

// Total returns available plus held.
func (a *Account) Total() Amount { return a.available.Add(a.held) }

// Locked reports whether a chargeback locked this account. Once locked,
// every mutation refuses to act for the rest of the run.
func (a *Account) Locked() bool { return a.locked }

// credit adds a deposit amount to the available balance.
func (a *Account) credit(amount Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.available = a.available.Add(amount)
	return nil
}

// debit removes a withdrawal amount from the available balance. Under
// StrictReject the debit fails with ErrInsufficientFunds rather than
// overdraw; PermitNegative lets the balance go below zero.
func (a *Account) debit(amount Amount, policy NegativePolicy) error {
	if a.locked {
		return ErrAccountLocked
	}
	if policy == StrictReject && a.available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(amount)
	return nil
}

// hold freezes a disputed amount, moving it from available to held. The
// policy decides whether available may go negative, exactly as for debit.
func (a *Account) hold(amount Amount, policy NegativePolicy) error {
	if a.locked {
		return ErrAccountLocked
	}
	if policy == StrictReject && a.available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(amount)
	a.held = a.held.Add(amount)
	return nil
}

// release reverses a hold, returning the amount from held to available.
func (a *Account) release(amount Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.held = a.held.Sub(amount)
	a.available = a.available.Add(amount)
	return nil
}

// forfeitAndLock finalizes a chargeback: the held amount is forfeited, not
// returned to available, and the account is locked permanently.
func (a *Account) forfeitAndLock(amount Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.held = a.held.Sub(amount)
	a.locked = true
	return nil
}
