package dataprocessing

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "livingwage/internal/errors"
	"livingwage/internal/validation"
	"livingwage/pkg/contracts/domain"
)

var recordValidator = validation.NewStructValidator()

// ParseWageRecords converts a living wage table into validated typed records.
// Numeric fields may hold text or already-coerced floats. When the file has no
// abbreviation column the abbreviation is derived from the state name.
func ParseWageRecords(table domain.Table) ([]domain.WageRecord, error) {
	records := make([]domain.WageRecord, 0, len(table))

	for i, rec := range table {
		label := fmt.Sprintf("row %d", i+1)

		state, err := textField(rec, domain.FieldState)
		if err != nil {
			return nil, rowError(label, domain.FieldState, err)
		}
		hourly, err := toFloat(rec[domain.FieldHourlyMinimumWage])
		if err != nil {
			return nil, rowError(label, domain.FieldHourlyMinimumWage, err)
		}
		annual, err := toFloat(rec[domain.FieldAnnualLivingWage])
		if err != nil {
			return nil, rowError(label, domain.FieldAnnualLivingWage, err)
		}

		wr := domain.WageRecord{
			State:             strings.TrimSpace(state),
			Abbrev:            abbrevFor(rec, state),
			HourlyMinimumWage: hourly,
			AnnualLivingWage:  annual,
			Row:               rec,
		}
		if err := recordValidator.Validate(label, wr); err != nil {
			return nil, err
		}
		records = append(records, wr)
	}

	return records, nil
}

// ParseSunRecords converts a sunrise/sunset table into validated typed records.
func ParseSunRecords(table domain.Table) ([]domain.SunRecord, error) {
	records := make([]domain.SunRecord, 0, len(table))

	intFields := []string{
		domain.FieldDay,
		domain.FieldSunRiseHour,
		domain.FieldSunRiseMinute,
		domain.FieldSunSetHour,
		domain.FieldSunSetMinute,
	}

	for i, rec := range table {
		label := fmt.Sprintf("row %d", i+1)

		month, err := textField(rec, domain.FieldMonth)
		if err != nil {
			return nil, rowError(label, domain.FieldMonth, err)
		}

		values := make(map[string]int, len(intFields))
		for _, field := range intFields {
			n, err := ToInt(rec[field])
			if err != nil {
				return nil, rowError(label, field, err)
			}
			values[field] = n
		}

		sr := domain.SunRecord{
			Month:         strings.TrimSpace(month),
			Day:           values[domain.FieldDay],
			SunRiseHour:   values[domain.FieldSunRiseHour],
			SunRiseMinute: values[domain.FieldSunRiseMinute],
			SunSetHour:    values[domain.FieldSunSetHour],
			SunSetMinute:  values[domain.FieldSunSetMinute],
			Row:           rec,
		}
		if err := recordValidator.Validate(label, sr); err != nil {
			return nil, err
		}
		records = append(records, sr)
	}

	return records, nil
}

func textField(rec domain.Record, field string) (string, error) {
	v, ok := rec[field]
	if !ok {
		return "", fmt.Errorf("missing field")
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected text, got %T", v)
	}
	return s, nil
}

func rowError(label, field string, cause error) error {
	return apperrors.NewParsingError(fmt.Sprintf("%s: field %s", label, field), cause).
		WithContext("field", field)
}

// abbrevFor prefers an abbreviation column, then the built-in state table.
// Column values keep only their letters, so "D.C." becomes "DC".
func abbrevFor(rec domain.Record, state string) string {
	for _, field := range domain.AbbrevFields {
		v, ok := rec[field].(string)
		if !ok {
			continue
		}
		if abbr := strings.ToUpper(strings.Map(lettersOnly, v)); abbr != "" {
			return abbr
		}
	}
	if abbr, ok := domain.StateAbbrev(state); ok {
		return abbr
	}
	return ""
}

func lettersOnly(r rune) rune {
	if unicode.IsLetter(r) {
		return r
	}
	return -1
}
