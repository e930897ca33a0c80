// Package coerce converts raw string rows into typed records according to
// column decisions. Coercion is total: malformed input yields sentinel
// values, never errors.
package coerce

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/leapstack-labs/leapseed/pkg/core"
)

// Row coerces raw against decisions. Fields follow decision order. Keys of
// raw without a decision are dropped; decisions whose key is absent from raw
// are omitted.
func Row(raw core.RawRow, decisions []core.ColumnDecision) core.Record {
	rec := make(core.Record, 0, len(decisions))
	for _, d := range decisions {
		s, ok := raw[d.Name]
		if !ok {
			continue
		}
		rec = append(rec, core.Field{Name: d.Name, Value: Value(s, d.Type)})
	}
	return rec
}

// Rows coerces every row in raws.
func Rows(raws []core.RawRow, decisions []core.ColumnDecision) []core.Record {
	records := make([]core.Record, len(raws))
	for i, raw := range raws {
		records[i] = Row(raw, decisions)
	}
	return records
}

// Value coerces a single raw string to t.
func Value(s string, t core.PrimitiveType) core.Value {
	switch t {
	case core.TypeInt:
		return Int(s)
	case core.TypeBool:
		return Bool(s)
	default:
		return core.StringValue(s)
	}
}

// Bool is true for any non-empty string, including "false" and "0".
func Bool(s string) core.Value {
	return core.BoolValue(s != "")
}

// Int parses the leading base-10 integer of s. Leading whitespace and an
// optional sign are accepted and trailing characters are ignored, so "12abc"
// is 12 and "3.9" is 3. Input with no digits, or digits outside the int64
// range, yields the NaN sentinel.
func Int(s string) core.Value {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return core.NaNValue()
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return core.NaNValue()
	}
	return core.IntValue(n)
}
