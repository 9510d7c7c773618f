// pkg/model/values.go
package model

import (
	"fmt"
	"strconv"
)

// CellToString coerces a cell value to its string form.
// nil becomes "", float64 values are rendered without a trailing ".0" when
// they are integral (JSON numbers decode as float64).
func CellToString(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// CellsEqual reports whether two cell values are identical after string
// coercion. Label preservation checks compare through this so that the
// float64 a JSON decoder produces matches the int a test fixture uses.
func CellsEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	return CellToString(a) == CellToString(b)
}
