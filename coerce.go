package fileconf

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Coerce parses raw into a value of the same kind as the node held by slot
// and stores it there. It reports whether the slot was written.
//
//   - number: base-10 int64 first, then a finite decimal; the decimal's exact
//     text is stored so values beyond float64 precision survive
//   - string: always written as is
//   - bool: the literals "true" and "false", case-sensitive
//   - object, array, null: never written
func Coerce(slot Slot, raw string) bool {
	switch slot.Value().(type) {
	case string:
		slot.Set(raw)
		return true
	case bool:
		// exact literals only; "1" and "TRUE" are mismatches
		switch raw {
		case "true":
			slot.Set(true)
		case "false":
			slot.Set(false)
		default:
			return false
		}
		return true
	case json.Number:
		n, ok := parseNumber(raw)
		if !ok {
			return false
		}
		slot.Set(n)
		return true
	case float64:
		n, ok := parseNumber(raw)
		if !ok {
			return false
		}
		f, err := n.Float64()
		if err != nil {
			return false
		}
		slot.Set(f)
		return true
	default:
		return false
	}
}

// parseNumber returns raw as a canonical JSON number.
func parseNumber(raw string) (json.Number, bool) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return json.Number(strconv.FormatInt(i, 10)), true
	}
	// ParseFloat rejects out-of-range input, decimal rejects NaN, Inf and hex
	// floats that are not valid JSON.
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return "", false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", false
	}
	return json.Number(d.String()), true
}
