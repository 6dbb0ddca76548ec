package typeutils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/datazip-inc/cityfilter/types"
)

var ErrNullValue = errors.New("null value")

// ReformatInt64 coerces v into an int64. Strings are trimmed; integral
// decimal text such as "110100.0" is accepted, fractional values are not.
func ReformatInt64(v any) (int64, error) {
	switch v := v.(type) {
	case nil:
		return 0, ErrNullValue
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return floatToInt64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, ErrNullValue
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse[%s] as int64: %s", s, err)
		}
		return floatToInt64(f)
	}

	return 0, fmt.Errorf("failed to change %v (type:%T) to int64", v, v)
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integral value", f)
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%v overflows int64", f)
	}
	return int64(f), nil
}

// NormalizeCode derives the string and numeric forms of a raw code cell.
// Both forms see the cell with surrounding whitespace trimmed. It never
// fails; a code that does not coerce gets a nil Int.
func NormalizeCode(raw string) types.ADCode {
	code := types.ADCode{Str: strings.TrimSpace(raw)}
	if i, err := ReformatInt64(raw); err == nil {
		code.Int = &i
	}
	return code
}
