package curriculum

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// InvalidSemesterMessage is the user-facing text for any rejected semester.
const InvalidSemesterMessage = "Digite um semestre válido (número positivo)."

var (
	ErrSemesterMissing     = errors.New("semester is required")
	ErrSemesterInvalid     = errors.New("semester must be an integer")
	ErrSemesterNotPositive = errors.New("semester must be a positive integer")
)

// ParseSemester validates user input and returns the semester as an int.
// Strings must hold a base-10 integer after trimming; numbers must be integral.
func ParseSemester(raw any) (int, error) {
	var n int64
	switch v := raw.(type) {
	case nil:
		return 0, ErrSemesterMissing
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, ErrSemesterMissing
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, ErrSemesterInvalid
		}
		n = parsed
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n = i
			break
		}
		f, err := v.Float64()
		if err != nil {
			return 0, ErrSemesterInvalid
		}
		return ParseSemester(f)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0, ErrSemesterInvalid
		}
		n = int64(v)
	case int:
		n = int64(v)
	case int64:
		n = v
	default:
		return 0, ErrSemesterInvalid
	}
	if n < 1 {
		return 0, ErrSemesterNotPositive
	}
	if n > math.MaxInt32 {
		return 0, ErrSemesterInvalid
	}
	return int(n), nil
}
