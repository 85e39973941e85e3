package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// table is the tabular payload the spreadsheet service returns: a header row
// plus rows that are either positional arrays or objects keyed by header.
type table struct {
	Headers []string          `json:"headers"`
	Rows    []json.RawMessage `json:"rows"`
}

// record is a decoded row addressed by canonical column name.
type record map[string]any

// aliases map spreadsheet header spellings onto canonical column names.
var aliases = map[string]string{
	"datetime":      "datetime",
	"timestamp":     "datetime",
	"date":          "datetime",
	"날짜-시간":         "datetime",
	"날짜":            "datetime",
	"memo":          "memo",
	"내역":            "memo",
	"deposit":       "deposit",
	"입금":            "deposit",
	"withdraw":      "withdraw",
	"출금":            "withdraw",
	"maturity":      "maturity",
	"maturity_date": "maturity",
	"만기":            "maturity",
	"label":         "label",
	"name":          "label",
	"type":          "kind",
	"kind":          "kind",
}

func canonical(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if c, ok := aliases[h]; ok {
		return c
	}
	return h
}

// records decodes rows. fallback picks default headers from the width of the
// first positional row when the service sent none.
func (t table) records(fallback func(width int) []string) ([]record, error) {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = canonical(h)
	}

	out := make([]record, 0, len(t.Rows))
	for i, raw := range t.Rows {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		switch raw[0] {
		case '[':
			var cells []any
			if err := dec.Decode(&cells); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if len(headers) == 0 && fallback != nil {
				headers = fallback(len(cells))
			}
			rec := record{}
			for j, cell := range cells {
				if j < len(headers) {
					rec[headers[j]] = cell
				}
			}
			out = append(out, rec)
		case '{':
			var obj map[string]any
			if err := dec.Decode(&obj); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rec := record{}
			for k, v := range obj {
				rec[canonical(k)] = v
			}
			out = append(out, rec)
		default:
			return nil, fmt.Errorf("row %d: expected array or object", i+1)
		}
	}
	return out, nil
}

func (r record) str(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func (r record) has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func transactionHeaders(width int) []string {
	if width == 4 {
		return []string{"datetime", "memo", "deposit", "withdraw"}
	}
	return []string{"id", "datetime", "memo", "deposit", "withdraw"}
}

func savingsHeaders(int) []string {
	return []string{"id", "principal", "weeks", "interest", "maturity", "status"}
}

func templateHeaders(int) []string {
	return []string{"id", "label", "kind", "amount"}
}
