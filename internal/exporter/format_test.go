package exporter

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

func TestCenter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "odd margin odd width", input: "CA", width: 15, expected: "       CA      "},
		{name: "even margin", input: "ABC", width: 15, expected: "      ABC      "},
		{name: "odd margin even width", input: "abc", width: 6, expected: " abc  "},
		{name: "exact width", input: "abcd", width: 4, expected: "abcd"},
		{name: "empty", input: "", width: 3, expected: "   "},
		{name: "multibyte", input: "é", width: 3, expected: " é "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, center(tt.input, tt.width))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "text", input: "Arkansas", expected: "Arkansas"},
		{name: "nil", input: nil, expected: ""},
		{name: "whole float", input: 45000.0, expected: "45000.0"},
		{name: "fractional float", input: 7.25, expected: "7.25"},
		{name: "zero", input: 0.0, expected: "0.0"},
		{name: "negative", input: -3.5, expected: "-3.5"},
		{name: "large float", input: 1e16, expected: "1e+16"},
		{name: "tiny float", input: 0.00001, expected: "1e-05"},
		{name: "int", input: 42, expected: "42"},
		{name: "bool", input: true, expected: "True"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.input))
		})
	}
}

func TestFormatTable(t *testing.T) {
	table := domain.Table{
		{"State": "AR", "HourlyMinimumWage": 7.25, "AnnualLivingWage": 45000.0},
	}
	fields := domain.FieldList{"State", "HourlyMinimumWage", "AnnualLivingWage"}

	lines := FormatTable(table, fields, 10)
	require.Len(t, lines, 2)

	assert.Equal(t, "  State    HourlyMini AnnualLivi ", lines[0])
	assert.Equal(t, "    AR        7.25     45000.0   ", lines[1])
}

func TestFormatTable_Truncation(t *testing.T) {
	table := domain.Table{
		{"Name": "Friedman, Maryam", "Building": "Campus Center"},
		{"Name": "Li, Elena", "Building": "Olin-Rice"},
		{"Name": "Glover, Stephanie"},
	}
	fields := domain.FieldList{"Name", "Building"}

	for _, width := range []int{1, 4, 8, 15, 30} {
		lines := FormatTable(table, fields, width)
		require.Len(t, lines, len(table)+1)

		for _, line := range lines {
			// Each cell is width characters plus one separator
			assert.Equal(t, len(fields)*(width+1), utf8.RuneCountInString(line), "width %d: %q", width, line)
			for i := 0; i < len(fields); i++ {
				segment := []rune(line)[i*(width+1) : (i+1)*(width+1)]
				assert.Equal(t, ' ', segment[width], "width %d", width)
				assert.LessOrEqual(t, len(strings.TrimSpace(string(segment))), width)
			}
		}
	}

	lines := FormatTable(table, fields, 8)
	assert.Equal(t, "Friedman", strings.TrimSpace(lines[1][:9]), "cut to the first 8 characters")
}

func TestFormatTable_Empty(t *testing.T) {
	lines := FormatTable(nil, domain.FieldList{"A", "B"}, 3)
	assert.Equal(t, []string{" A   B  "}, lines)
}

func TestPrintTable(t *testing.T) {
	table := domain.Table{{"Name": "Fox, Susan", "Phone": "6553"}}
	fields := domain.FieldList{"Name", "Phone"}

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table, fields, 12))

	expected := strings.Join(FormatTable(table, fields, 12), "\n") + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintTable_InvalidWidth(t *testing.T) {
	var buf bytes.Buffer
	err := PrintTable(&buf, domain.Table{}, domain.FieldList{"A"}, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.Empty(t, buf.String())
}
