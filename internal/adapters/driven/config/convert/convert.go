// Package convert coerces stored config values to the types settings
// need. Values may come from TOML (int64, float64), from `sift config set`
// (always strings) or from code (native types), so each reader accepts
// all three.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// String formats scalars. Other types give "".
func String(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case time.Duration:
		return v.String()
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// Int accepts integers, floats and numeric strings. Other values give 0.
func Int(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Bool accepts booleans and the strings strconv.ParseBool understands.
func Bool(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	default:
		return false
	}
}
