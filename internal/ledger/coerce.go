package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// CoerceInt converts a loosely typed payload value into whole points.
// Fractions are truncated toward zero; anything non-numeric is 0.
func CoerceInt(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return clampUint(uint64(n))
	case uint32:
		return int64(n)
	case uint64:
		return clampUint(n)
	case float32:
		return truncFloat(float64(n))
	case float64:
		return truncFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return truncFloat(f)
		}
		return 0
	case string:
		return parseIntString(n)
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return 0
}

func parseIntString(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncFloat(f)
	}
	return 0
}

func truncFloat(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0
	}
	return int64(math.Trunc(f))
}

func clampUint(u uint64) int64 {
	if u > math.MaxInt64 {
		return 0
	}
	return int64(u)
}

// Layouts accepted for timestamps coming from the spreadsheet service.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006. 1. 2.",
}

// ParseTimestamp is ParseTimestampIn with UTC for zoneless values.
func ParseTimestamp(v any) (time.Time, bool) {
	return ParseTimestampIn(v, time.UTC)
}

// ParseTimestampIn parses a loosely typed timestamp. Strings without a zone
// are read in loc; numbers are epoch milliseconds. Unparsable input returns
// the zero time and false.
func ParseTimestampIn(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	case json.Number, float64, int64, int:
		ms := CoerceInt(t)
		if ms <= 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).In(loc), true
	}
	return time.Time{}, false
}
