package payproc

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ReportRow is the projection of one final client account: client id,
// available, held, the derived total, and the locked flag.
type ReportRow struct {
	Client    uint16
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// BuildReport projects every client account of the ledger into report
// rows, in ascending client id order.
func BuildReport(l *Ledger) []ReportRow {
	accounts := l.Accounts()
	rows := make([]ReportRow, 0, len(accounts))
	for _, acct := range accounts {
		rows = append(rows, ReportRow{
			Client:    acct.ID(),
			Available: acct.Available(),
			Held:      acct.Held(),
			Total:     acct.Total(),
			Locked:    acct.Locked(),
		})
	}
	return rows
}

// WriteCSV writes report rows as `client,available,held,total,locked` CSV
// with a header, amounts in full four-digit form.
func WriteCSV(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, row := range rows {
		err := cw.Write([]string{
			strconv.FormatUint(uint64(row.Client), 10),
			row.Available.StringFixed4(),
			row.Held.StringFixed4(),
			row.Total.StringFixed4(),
			strconv.FormatBool(row.Locked),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
