package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

func TestParseWageRecords(t *testing.T) {
	table := domain.Table{
		{"State": "Arkansas", "HourlyMinimumWage": 7.25, "AnnualLivingWage": 45000.0},
		{"State": "CA", "HourlyMinimumWage": "15.00", "AnnualLivingWage": "90000"},
		{"State": "Guam", "HourlyMinimumWage": 9.25, "AnnualLivingWage": 41000.0},
	}

	records, err := ParseWageRecords(table)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Arkansas", records[0].State)
	assert.Equal(t, "AR", records[0].Abbrev)
	assert.Equal(t, 7.25, records[0].HourlyMinimumWage)

	assert.Equal(t, "CA", records[1].Abbrev)
	assert.Equal(t, 15.0, records[1].HourlyMinimumWage)
	assert.Equal(t, 90000.0, records[1].AnnualLivingWage)

	assert.Equal(t, "", records[2].Abbrev, "unknown state has no abbreviation")
	assert.Equal(t, "Guam", records[2].Row["State"], "source row is kept")
}

func TestParseWageRecords_AbbrevColumn(t *testing.T) {
	table := domain.Table{
		{"State": "Texas", "Abbrev": "tx", "HourlyMinimumWage": 7.25, "AnnualLivingWage": 48000.0},
	}

	records, err := ParseWageRecords(table)
	require.NoError(t, err)
	assert.Equal(t, "TX", records[0].Abbrev)
}

func TestParseWageRecords_PunctuatedAbbrev(t *testing.T) {
	table := domain.Table{
		{"State": "District of Columbia", "Abbrev": "D.C.", "HourlyMinimumWage": 17.0, "AnnualLivingWage": 70000.0},
		{"State": "Texas", "Abbreviation": " t.x ", "HourlyMinimumWage": 7.25, "AnnualLivingWage": 48000.0},
		{"State": "Arkansas", "Abbrev": "..", "HourlyMinimumWage": 7.25, "AnnualLivingWage": 45000.0},
	}

	records, err := ParseWageRecords(table)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "DC", records[0].Abbrev)
	assert.Equal(t, "TX", records[1].Abbrev)
	assert.Equal(t, "AR", records[2].Abbrev, "punctuation-only column falls back to the state table")
}

func TestParseWageRecords_Errors(t *testing.T) {
	tests := []struct {
		name     string
		record   domain.Record
		wantType apperrors.ErrorType
	}{
		{
			name:     "missing state",
			record:   domain.Record{"HourlyMinimumWage": 7.25, "AnnualLivingWage": 45000.0},
			wantType: apperrors.ErrTypeParsing,
		},
		{
			name:     "blank state",
			record:   domain.Record{"State": "  ", "HourlyMinimumWage": 7.25, "AnnualLivingWage": 45000.0},
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name:     "negative wage",
			record:   domain.Record{"State": "AR", "HourlyMinimumWage": -1.0, "AnnualLivingWage": 45000.0},
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name:     "text wage",
			record:   domain.Record{"State": "AR", "HourlyMinimumWage": "low", "AnnualLivingWage": 45000.0},
			wantType: apperrors.ErrTypeParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWageRecords(domain.Table{tt.record})
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType))
		})
	}
}

func TestParseSunRecords(t *testing.T) {
	table := domain.Table{
		{"Month": "January", "Day": "1", "SunRiseHour": "7", "SunRiseMinute": "21",
			"SunSetHour": "16", "SunSetMinute": "45"},
		{"Month": "June", "Day": 21.0, "SunRiseHour": 5.0, "SunRiseMinute": 31.0,
			"SunSetHour": 20.0, "SunSetMinute": 26.0},
	}

	records, err := ParseSunRecords(table)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.SunRecord{
		Month: "January", Day: 1, SunRiseHour: 7, SunRiseMinute: 21,
		SunSetHour: 16, SunSetMinute: 45, Row: table[0],
	}, records[0])
	assert.Equal(t, 20, records[1].SunSetHour)
}

func TestParseSunRecords_Errors(t *testing.T) {
	base := func() domain.Record {
		return domain.Record{"Month": "May", "Day": "3", "SunRiseHour": "6", "SunRiseMinute": "0",
			"SunSetHour": "19", "SunSetMinute": "58"}
	}

	tests := []struct {
		name     string
		mutate   func(domain.Record)
		wantType apperrors.ErrorType
	}{
		{"hour out of range", func(r domain.Record) { r["SunSetHour"] = "25" }, apperrors.ErrTypeValidation},
		{"minute out of range", func(r domain.Record) { r["SunRiseMinute"] = "60" }, apperrors.ErrTypeValidation},
		{"fractional day", func(r domain.Record) { r["Day"] = 3.5 }, apperrors.ErrTypeParsing},
		{"non numeric", func(r domain.Record) { r["Day"] = "third" }, apperrors.ErrTypeParsing},
		{"missing month", func(r domain.Record) { delete(r, "Month") }, apperrors.ErrTypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := base()
			tt.mutate(rec)
			_, err := ParseSunRecords(domain.Table{rec})
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType))
		})
	}
}
