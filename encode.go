package payproc

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// This file contains the input collaborators feeding the Ledger: a CSV
// decoder for the classic `type, client, tx, amount` stream and a JSONL
// journal codec. Both yield Records one at a time through the RecordSource
// interface, and report malformed rows as *RowError so the driver can
// discard the row and keep streaming.

// RowError reports one malformed input row. It wraps the underlying cause
// (for example ErrPrecisionTooHigh) and carries the line number for
// diagnostics.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// CSVDecoder reads transaction records from a CSV stream of the form
//
//	type, client, tx, amount
//	deposit, 1, 1, 1.0
//	dispute, 1, 1,
//
// Whitespace around fields is ignored, rows may omit trailing fields
// (dispute, resolve and chargeback carry no amount), and a leading header
// row is skipped.
type CSVDecoder struct {
	r    *csv.Reader
	line int
}

// NewCSVDecoder creates a decoder reading CSV records from r.
func NewCSVDecoder(r io.Reader) *CSVDecoder {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // rows without an amount are legal
	return &CSVDecoder{r: cr}
}

// Next returns the next record, a *RowError for a malformed row, or io.EOF.
func (d *CSVDecoder) Next() (Record, error) {
	for {
		fields, err := d.r.Read()
		if err == io.EOF {
			return Record{}, io.EOF
		}
		d.line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return Record{}, &RowError{Line: d.line, Err: err}
			}
			return Record{}, err
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if d.line == 1 && len(fields) > 0 && fields[0] == "type" {
			continue // header row
		}
		rec, err := recordFromFields(fields)
		if err != nil {
			return Record{}, &RowError{Line: d.line, Err: err}
		}
		return rec, nil
	}
}

func recordFromFields(fields []string) (Record, error) {
	if len(fields) < 3 {
		return Record{}, fmt.Errorf("want at least 3 fields, got %d", len(fields))
	}
	kind, err := ParseKind(fields[0])
	if err != nil {
		return Record{}, err
	}
	client, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return Record{}, fmt.Errorf("client id %q: %w", fields[1], err)
	}
	tx, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("transaction id %q: %w", fields[2], err)
	}
	rec := Record{Kind: kind, Tx: uint32(tx), Client: uint16(client)}
	if kind.Monetary() {
		if len(fields) < 4 || fields[3] == "" {
			return Record{}, fmt.Errorf("%s without an amount", kind)
		}
		rec.Amount, err = ParseAmount(fields[3])
		if err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// jrecord is the JSONL journal form of a Record.
type jrecord struct {
	Type   string  `json:"type"`
	Client uint16  `json:"client"`
	Tx     uint32  `json:"tx"`
	Amount *Amount `json:"amount,omitempty"`
}

// JournalDecoder reads transaction records from a JSONL journal, one JSON
// object per line:
//
//	{"type":"deposit","client":1,"tx":1,"amount":1.0}
type JournalDecoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewJournalDecoder creates a decoder reading JSONL records from r.
func NewJournalDecoder(r io.Reader) *JournalDecoder {
	return &JournalDecoder{scanner: bufio.NewScanner(r)}
}

// Next returns the next record, a *RowError for a malformed line, or io.EOF.
func (d *JournalDecoder) Next() (Record, error) {
	for d.scanner.Scan() {
		d.line++
		lineBytes := d.scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // skip empty lines
		}
		var j jrecord
		if err := json.Unmarshal(lineBytes, &j); err != nil {
			return Record{}, &RowError{Line: d.line, Err: err}
		}
		kind, err := ParseKind(j.Type)
		if err != nil {
			return Record{}, &RowError{Line: d.line, Err: err}
		}
		rec := Record{Kind: kind, Tx: j.Tx, Client: j.Client}
		if kind.Monetary() {
			if j.Amount == nil {
				return Record{}, &RowError{Line: d.line, Err: fmt.Errorf("%s without an amount", kind)}
			}
			rec.Amount = *j.Amount
		}
		return rec, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

// EncodeRecord appends the JSONL journal form of a single record to w.
func EncodeRecord(w io.Writer, rec Record) error {
	j := jrecord{Type: string(rec.Kind), Client: rec.Client, Tx: rec.Tx}
	if rec.Kind.Monetary() {
		amount := rec.Amount
		j.Amount = &amount
	}
	data, err := json.Marshal(j)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
