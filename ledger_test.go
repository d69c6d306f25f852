package payproc

import (
	"errors"
	"testing"
)

// record builders keep the test tables readable.

func deposit(t *testing.T, tx uint32, client uint16, amount string) Record {
	t.Helper()
	return Record{Kind: KindDeposit, Tx: tx, Client: client, Amount: mustAmount(t, amount)}
}

func withdrawal(t *testing.T, tx uint32, client uint16, amount string) Record {
	t.Helper()
	return Record{Kind: KindWithdrawal, Tx: tx, Client: client, Amount: mustAmount(t, amount)}
}

func dispute(tx uint32, client uint16) Record {
	return Record{Kind: KindDispute, Tx: tx, Client: client}
}

func resolve(tx uint32, client uint16) Record {
	return Record{Kind: KindResolve, Tx: tx, Client: client}
}

func chargeback(tx uint32, client uint16) Record {
	return Record{Kind: KindChargeback, Tx: tx, Client: client}
}

// applyAll feeds records to the ledger, ignoring per-record errors the way
// a streaming run does.
func applyAll(l *Ledger, recs ...Record) {
	for _, rec := range recs {
		l.Apply(rec)
	}
}

func checkAccount(t *testing.T, l *Ledger, client uint16, available, held string, locked bool) {
	t.Helper()
	acct, ok := l.Account(client)
	if !ok {
		t.Fatalf("account %d not found", client)
	}
	if got := acct.Available().String(); got != available {
		t.Errorf("client %d available = %s, want %s", client, got, available)
	}
	if got := acct.Held().String(); got != held {
		t.Errorf("client %d held = %s, want %s", client, got, held)
	}
	if acct.Locked() != locked {
		t.Errorf("client %d locked = %v, want %v", client, acct.Locked(), locked)
	}
}

func TestLedger_depositsAndWithdrawals(t *testing.T) {
	l := NewLedger(StrictReject)
	applyAll(l,
		deposit(t, 1, 1, "10.5"),
		deposit(t, 2, 1, "4.5"),
		withdrawal(t, 3, 1, "5"),
		withdrawal(t, 4, 1, "100"), // over-draw: skipped, not clamped
		withdrawal(t, 5, 1, "2.25"),
	)
	// available = deposits - successfully applied withdrawals.
	checkAccount(t, l, 1, "7.75", "0", false)
	if got := l.Applied(); got != 4 {
		t.Errorf("Applied() = %d, want 4", got)
	}
	if got := l.Rejections()["insufficient funds"]; got != 1 {
		t.Errorf("insufficient funds rejections = %d, want 1", got)
	}
}

func TestLedger_rejectsInvalidRecords(t *testing.T) {
	testCases := []struct {
		name    string
		recs    func(t *testing.T) []Record
		wantErr error
	}{
		{
			name: "negative deposit",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "-1")}
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "negative withdrawal",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), withdrawal(t, 2, 1, "-1")}
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "duplicate deposit id",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), deposit(t, 1, 1, "5")}
			},
			wantErr: ErrDuplicateTransaction,
		},
		{
			name: "withdrawal id reusing deposit id",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), withdrawal(t, 1, 1, "1")}
			},
			wantErr: ErrDuplicateTransaction,
		},
		{
			name: "withdrawal for unknown client",
			recs: func(t *testing.T) []Record {
				return []Record{withdrawal(t, 1, 42, "1")}
			},
			wantErr: ErrUnknownReference,
		},
		{
			name: "dispute of unknown transaction",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), dispute(99, 1)}
			},
			wantErr: ErrUnknownReference,
		},
		{
			name: "dispute with client mismatch",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), dispute(1, 2)}
			},
			wantErr: ErrUnknownReference,
		},
		{
			name: "double dispute",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), dispute(1, 1), dispute(1, 1)}
			},
			wantErr: ErrUnknownReference,
		},
		{
			name: "resolve of undisputed transaction",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), resolve(1, 1)}
			},
			wantErr: ErrUnknownReference,
		},
		{
			name: "chargeback of undisputed transaction",
			recs: func(t *testing.T) []Record {
				return []Record{deposit(t, 1, 1, "5"), chargeback(1, 1)}
			},
			wantErr: ErrUnknownReference,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(StrictReject)
			var last error
			for _, rec := range tc.recs(t) {
				last = l.Apply(rec)
			}
			if !errors.Is(last, tc.wantErr) {
				t.Errorf("last Apply = %v, want %v", last, tc.wantErr)
			}
		})
	}
}

func TestLedger_rejectedClientNeverMaterializes(t *testing.T) {
	l := NewLedger(StrictReject)
	applyAll(l,
		deposit(t, 1, 7, "-3"),
		deposit(t, 2, 7, "-1"),
		withdrawal(t, 3, 7, "1"),
	)
	if _, ok := l.Account(7); ok {
		t.Error("client 7 materialized although all of its records were rejected")
	}
	if got := len(l.Accounts()); got != 0 {
		t.Errorf("Accounts() returned %d accounts, want 0", got)
	}
}

func TestLedger_disputeResolveRoundTrip(t *testing.T) {
	l := NewLedger(StrictReject)
	applyAll(l, deposit(t, 1, 1, "3.3"), deposit(t, 2, 1, "1.7"))
	checkAccount(t, l, 1, "5", "0", false)

	applyAll(l, dispute(1, 1))
	checkAccount(t, l, 1, "1.7", "3.3", false)

	// Resolve restores the pre-dispute balances exactly.
	applyAll(l, resolve(1, 1))
	checkAccount(t, l, 1, "5", "0", false)

	// The transaction is clean again, so it may be disputed anew.
	if err := l.Apply(dispute(1, 1)); err != nil {
		t.Errorf("re-dispute after resolve: %v", err)
	}
}

func TestLedger_chargebackLocksForever(t *testing.T) {
	l := NewLedger(StrictReject)
	applyAll(l,
		deposit(t, 1, 1, "2"),
		deposit(t, 2, 1, "8"),
		dispute(2, 1),
	)
	checkAccount(t, l, 1, "2", "8", false)

	applyAll(l, chargeback(2, 1))
	// Held drops by the disputed amount, available is unchanged, locked.
	checkAccount(t, l, 1, "2", "0", true)

	if st, _ := l.Store().Get(2); st.Status != ChargedBack {
		t.Errorf("stored status = %v, want charged back", st.Status)
	}

	// Every subsequent record for the client is a silent no-op.
	subsequent := []Record{
		deposit(t, 3, 1, "100"),
		withdrawal(t, 4, 1, "1"),
		dispute(1, 1),
		resolve(2, 1),
		chargeback(2, 1),
	}
	for _, rec := range subsequent {
		if err := l.Apply(rec); err == nil {
			t.Errorf("Apply(%s) on locked account succeeded", rec)
		}
	}
	checkAccount(t, l, 1, "2", "0", true)
}

// TestLedger_scenario walks the documented five-record run to its final
// state: available 0.5, held 0, total 0.5, locked.
func TestLedger_scenario(t *testing.T) {
	l := NewLedger(StrictReject)
	applyAll(l,
		deposit(t, 1, 1, "1.0"),
		deposit(t, 2, 1, "2.0"),
		withdrawal(t, 3, 1, "1.5"),
		dispute(1, 1),
		chargeback(1, 1),
	)
	checkAccount(t, l, 1, "0.5", "0", true)
	acct, _ := l.Account(1)
	if got, want := acct.Total().String(), "0.5"; got != want {
		t.Errorf("Total() = %s, want %s", got, want)
	}
}

func TestLedger_strictRejectsUnderfundedDispute(t *testing.T) {
	// The disputed deposit was already withdrawn, so holding it would
	// overdraw available. The strict default refuses the dispute.
	l := NewLedger(StrictReject)
	applyAll(l,
		deposit(t, 1, 1, "5"),
		withdrawal(t, 2, 1, "4"),
	)
	if err := l.Apply(dispute(1, 1)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("underfunded dispute = %v, want ErrInsufficientFunds", err)
	}
	checkAccount(t, l, 1, "1", "0", false)
	if st, _ := l.Store().Get(1); st.Status != Clean {
		t.Errorf("refused dispute left status %v, want clean", st.Status)
	}

	// The permissive policy takes the hold and lets available go negative.
	l = NewLedger(PermitNegative)
	applyAll(l,
		deposit(t, 1, 1, "5"),
		withdrawal(t, 2, 1, "4"),
		dispute(1, 1),
	)
	checkAccount(t, l, 1, "-4", "5", false)
}

func TestLedger_disputePredicate(t *testing.T) {
	l := NewLedger(PermitNegative)
	l.Disputable = DisputeDepositsOnly
	applyAll(l,
		deposit(t, 1, 1, "10"),
		withdrawal(t, 2, 1, "4"),
	)
	if err := l.Apply(dispute(2, 1)); !errors.Is(err, ErrNotDisputable) {
		t.Errorf("withdrawal dispute = %v, want ErrNotDisputable", err)
	}
	if err := l.Apply(dispute(1, 1)); err != nil {
		t.Errorf("deposit dispute: %v", err)
	}
	checkAccount(t, l, 1, "-4", "10", false)
}

func TestLedger_disputedWithdrawal(t *testing.T) {
	// Disputing a withdrawal holds the withdrawn amount under the
	// default predicate.
	l := NewLedger(StrictReject)
	applyAll(l,
		deposit(t, 1, 1, "10"),
		withdrawal(t, 2, 1, "4"),
		dispute(2, 1),
	)
	checkAccount(t, l, 1, "2", "4", false)
	applyAll(l, resolve(2, 1))
	checkAccount(t, l, 1, "6", "0", false)
}

func TestLedger_hookObservesEveryRecord(t *testing.T) {
	l := NewLedger(StrictReject)
	var seen, discarded int
	l.Hook = func(rec Record, err error) {
		seen++
		if err != nil {
			discarded++
		}
	}
	applyAll(l,
		deposit(t, 1, 1, "5"),
		deposit(t, 1, 1, "5"), // duplicate
		withdrawal(t, 2, 1, "9"),
	)
	if seen != 3 {
		t.Errorf("hook saw %d records, want 3", seen)
	}
	if discarded != 2 {
		t.Errorf("hook saw %d discards, want 2", discarded)
	}
	if got := l.Rejected(); got != 2 {
		t.Errorf("Rejected() = %d, want 2", got)
	}
}

func TestLedger_accountsSortedByClient(t *testing.T) {
	l := NewLedger(StrictReject)
	applyAll(l,
		deposit(t, 1, 30, "1"),
		deposit(t, 2, 10, "1"),
		deposit(t, 3, 20, "1"),
	)
	accounts := l.Accounts()
	want := []uint16{10, 20, 30}
	if len(accounts) != len(want) {
		t.Fatalf("Accounts() returned %d accounts, want %d", len(accounts), len(want))
	}
	for i, acct := range accounts {
		if acct.ID() != want[i] {
			t.Errorf("Accounts()[%d].ID() = %d, want %d", i, acct.ID(), want[i])
		}
	}
}
