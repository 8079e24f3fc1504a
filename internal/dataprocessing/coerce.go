package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

// CoerceFloats rewrites the named fields of every record to float64 in place.
// Values that are already float64 are left alone, so applying it twice is a no-op.
// Records before the failing one stay converted when an error is returned.
func CoerceFloats(table domain.Table, fields ...string) error {
	for i, rec := range table {
		for _, field := range fields {
			f, err := toFloat(rec[field])
			if err != nil {
				return apperrors.NewParsingError(
					fmt.Sprintf("row %d: field %s is not a decimal number", i+1, field), err).
					WithContext("row", i+1).
					WithContext("field", field)
			}
			rec[field] = f
		}
	}
	return nil
}

// toFloat converts a raw or already-coerced value to float64
func toFloat(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		return ParseDecimal(val)
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

// ParseDecimal parses a plain decimal numeral such as "7.25", "-3" or "1e4".
// Surrounding spaces are ignored; hex literals, Inf and NaN are rejected.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return 0, fmt.Errorf("invalid decimal %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid decimal %q", s)
	}
	return f, nil
}

// ToInt converts a raw or coerced value to an int; floats must be integral
func ToInt(v any) (int, error) {
	switch val := v.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(val))
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("%v is not an integer", val)
		}
		return int(val), nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
