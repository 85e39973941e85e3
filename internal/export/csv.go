// Package export writes a passbook to CSV as a local spreadsheet backup.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pointbank/passbook/internal/model"
)

// Header is the CSV header for an exported passbook.
const Header = "id,datetime,memo,deposit,withdraw,net,balance"

const (
	numFields   = 7
	timeFormat  = "2006-01-02 15:04:05"
	colID       = 0
	colDatetime = 1
	colMemo     = 2
	colDeposit  = 3
	colWithdraw = 4
	colNet      = 5
	colBalance  = 6
)

// Write writes rows to w, including the header. Timestamps are written in loc.
func Write(w io.Writer, rows []model.LedgerRow, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row, loc)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes rows to path, replacing any existing file.
func WriteFile(path string, rows []model.LedgerRow, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, rows, loc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}

// Read reads an exported passbook. Timestamps are parsed in loc.
func Read(r io.Reader, loc *time.Location) ([]model.LedgerRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var rows []model.LedgerRow
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MarshalRow converts a LedgerRow to a CSV row. Zero amounts and unknown
// timestamps are left blank.
func MarshalRow(row model.LedgerRow, loc *time.Location) []string {
	rec := make([]string, numFields)
	rec[colID] = row.ID
	if row.HasTimestamp() {
		rec[colDatetime] = row.Timestamp.In(loc).Format(timeFormat)
	}
	rec[colMemo] = row.Memo
	if row.Deposit != 0 {
		rec[colDeposit] = strconv.FormatInt(row.Deposit, 10)
	}
	if row.Withdraw != 0 {
		rec[colWithdraw] = strconv.FormatInt(row.Withdraw, 10)
	}
	rec[colNet] = strconv.FormatInt(row.Net, 10)
	rec[colBalance] = strconv.FormatInt(row.Balance, 10)
	return rec
}

// UnmarshalRow converts a CSV row to a LedgerRow.
func UnmarshalRow(rec []string, loc *time.Location) (model.LedgerRow, error) {
	if len(rec) != numFields {
		return model.LedgerRow{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	var ts time.Time
	if rec[colDatetime] != "" {
		var err error
		ts, err = time.ParseInLocation(timeFormat, rec[colDatetime], loc)
		if err != nil {
			return model.LedgerRow{}, fmt.Errorf("parsing datetime %q: %w", rec[colDatetime], err)
		}
	}

	ints := make([]int64, numFields)
	for _, col := range []int{colDeposit, colWithdraw, colNet, colBalance} {
		if rec[col] == "" {
			continue
		}
		v, err := strconv.ParseInt(rec[col], 10, 64)
		if err != nil {
			return model.LedgerRow{}, fmt.Errorf("parsing column %d %q: %w", col+1, rec[col], err)
		}
		ints[col] = v
	}

	return model.LedgerRow{
		Transaction: model.Transaction{
			ID:        rec[colID],
			Timestamp: ts,
			Memo:      rec[colMemo],
			Deposit:   ints[colDeposit],
			Withdraw:  ints[colWithdraw],
		},
		Net:     ints[colNet],
		Balance: ints[colBalance],
	}, nil
}
