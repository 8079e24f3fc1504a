package exporter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

// FormatTable lays out a table as fixed-width text: a header line of field names
// followed by one line per record. Every cell is cut to width characters, centered
// in width columns and followed by a single space. Fields missing from a record
// print as empty cells.
func FormatTable(table domain.Table, fields domain.FieldList, width int) []string {
	lines := make([]string, 0, len(table)+1)

	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(cell(f, width))
	}
	lines = append(lines, sb.String())

	for _, rec := range table {
		sb.Reset()
		for _, f := range fields {
			sb.WriteString(cell(FormatValue(rec[f]), width))
		}
		lines = append(lines, sb.String())
	}

	return lines
}

// PrintTable writes FormatTable's lines to w, one per line.
func PrintTable(w io.Writer, table domain.Table, fields domain.FieldList, width int) error {
	if width <= 0 {
		return apperrors.NewAppValidationError(fmt.Sprintf("column width must be positive, got %d", width))
	}
	for _, line := range FormatTable(table, fields, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return apperrors.NewRenderError("failed to write table", err)
		}
	}
	return nil
}

// FormatValue renders a record value as text. Floats keep a decimal point
// ("45000.0", "7.25") so coerced fields read as numbers.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatFloat(val)
	case int:
		return formatInt(int64(val))
	case int64:
		return formatInt(val)
	case bool:
		return formatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func cell(s string, width int) string {
	return center(truncate(s, width), width) + " "
}

// truncate keeps the first width characters of s
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	i := 0
	for pos := range s {
		if i == width {
			return s[:pos]
		}
		i++
	}
	return s
}

// center pads s with spaces to width characters. When the padding is odd the
// extra space goes left only if width is odd as well.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	margin := width - n
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}

// formatFloat prints the shortest representation that round-trips, always with
// a fractional part or an exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
