package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NormalizeAnswer converts a payload answer value to its canonical string
// form. The same function is used by payload filter matching and by
// answer-value counting so the two paths can never disagree about what
// counts as "the same value".
//
// nil normalizes to the literal "null"; strings pass through; numbers and
// booleans use their natural textual form; any other structured value
// serializes to compact JSON.
func NormalizeAnswer(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// JSON numbers decode as float64; -1 precision drops the
		// trailing zeros so 3.0 normalizes to "3".
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
