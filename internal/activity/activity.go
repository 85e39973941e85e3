// Package activity keeps a local CSV log of actions submitted to the ledger
// service, so a classroom admin can see what was entered from this machine.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Result values recorded for an action.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Entry is one row in the activity log. It never holds a PIN.
type Entry struct {
	Timestamp time.Time
	Account   string
	Action    string
	Details   string
	Result    string
}

// Header is the CSV header for passbook-log.csv.
const Header = "timestamp,account,action,details,result"

// FileName is the log file inside the configured log directory.
const FileName = "passbook-log.csv"

const (
	numFields    = 5
	colTimestamp = 0
	colAccount   = 1
	colAction    = 2
	colDetails   = 3
	colResult    = 4
)

// Outcome maps an action error to a Result value.
func Outcome(err error) string {
	if err != nil {
		return ResultFailed
	}
	return ResultOK
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAccount] = e.Account
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colResult] = e.Result
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Account:   record[colAccount],
		Action:    record[colAction],
		Details:   record[colDetails],
		Result:    record[colResult],
	}, nil
}

// Append writes entries to <dir>/passbook-log.csv, creating the directory,
// file and header as needed.
func Append(dir string, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dir>/passbook-log.csv, or nil if there is no log yet.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ForAccount filters entries to one account.
func ForAccount(entries []Entry, account string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Account == account {
			out = append(out, e)
		}
	}
	return out
}
