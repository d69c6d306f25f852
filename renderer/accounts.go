// Package renderer converts final account reports into markdown documents
// suitable for terminal rendering.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/Rhymond/go-money"
	md "github.com/nao1215/markdown"

	"payproc"
)

// Accounts renders report rows as a markdown document with one table row
// per client account. When currency is a non-empty ISO code, amounts are
// formatted with that currency's symbol and fraction; otherwise they keep
// the full four fractional digits.
func Accounts(rows []payproc.ReportRow, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Client Accounts")
	doc.PlainText(fmt.Sprintf("%d account(s)", len(rows)))

	format := func(a payproc.Amount) string { return a.StringFixed4() }
	if currency != "" {
		format = func(a payproc.Amount) string { return formatMoney(a, currency) }
	}

	table := md.TableSet{
		Header: []string{"Client", "Available", "Held", "Total", "Locked"},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatUint(uint64(row.Client), 10),
			format(row.Available),
			format(row.Held),
			format(row.Total),
			strconv.FormatBool(row.Locked),
		})
	}
	doc.Table(table)

	return doc.String()
}

// Journal renders the retained transactions with their dispute status, in
// insertion order.
func Journal(txs []payproc.StoredTransaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Retained Transactions")

	table := md.TableSet{
		Header: []string{"Tx", "Client", "Kind", "Amount", "Status"},
	}
	for _, st := range txs {
		table.Rows = append(table.Rows, []string{
			strconv.FormatUint(uint64(st.Tx), 10),
			strconv.FormatUint(uint64(st.Client), 10),
			string(st.Kind),
			st.Amount.StringFixed4(),
			st.Status.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// formatMoney formats an amount in a display currency. Sub-minor-unit
// precision beyond the currency's fraction is rounded for display only.
func formatMoney(a payproc.Amount, code string) string {
	cur := money.New(0, code).Currency()
	minor := a.Decimal().Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
