package tabledata

import (
	"fmt"
	"strconv"
	"strings"

	"livingwage/internal/dataprocessing"
	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

// CountSunsetsBefore counts rows whose SunSetHour is earlier than hour (24-hour clock).
// It works on the raw table, so a SunSetHour that is not an integer is a PARSING error.
func CountSunsetsBefore(hour int, table domain.Table) (int, error) {
	count := 0
	for i, row := range table {
		h, err := dataprocessing.ToInt(row[domain.FieldSunSetHour])
		if err != nil {
			return 0, apperrors.NewParsingError(
				fmt.Sprintf("row %d: field %s is not an integer", i+1, domain.FieldSunSetHour), err).
				WithContext("row", i+1).
				WithContext("field", domain.FieldSunSetHour)
		}
		if h < hour {
			count++
		}
	}
	return count, nil
}

// DaylightHours returns the hours between sunrise and sunset as a fraction
func DaylightHours(riseHour, riseMin, setHour, setMin int) float64 {
	rise := 60*riseHour + riseMin
	set := 60*setHour + setMin
	return float64(set-rise) / 60
}

// Daylight is DaylightHours for one record
func Daylight(rec domain.SunRecord) float64 {
	return DaylightHours(rec.SunRiseHour, rec.SunRiseMinute, rec.SunSetHour, rec.SunSetMinute)
}

// LookupByDate returns the record for the given month and day. Month matching
// ignores case.
func LookupByDate(month string, day int, records []domain.SunRecord) (domain.SunRecord, error) {
	for _, rec := range records {
		if strings.EqualFold(rec.Month, strings.TrimSpace(month)) && rec.Day == day {
			return rec, nil
		}
	}
	return domain.SunRecord{}, apperrors.NewNotFoundError(fmt.Sprintf("date %s %d", month, day), nil).
		WithContext("month", month).
		WithContext("day", day)
}

// SelectByMonth returns the records for month in table order
func SelectByMonth(month string, records []domain.SunRecord) []domain.SunRecord {
	out := []domain.SunRecord{}
	for _, rec := range records {
		if strings.EqualFold(rec.Month, strings.TrimSpace(month)) {
			out = append(out, rec)
		}
	}
	return out
}

// SunRows converts records back to their source rows for printing
func SunRows(records []domain.SunRecord) domain.Table {
	table := make(domain.Table, 0, len(records))
	for _, rec := range records {
		if rec.Row != nil {
			table = append(table, rec.Row)
			continue
		}
		table = append(table, domain.Record{
			domain.FieldMonth:         rec.Month,
			domain.FieldDay:           strconv.Itoa(rec.Day),
			domain.FieldSunRiseHour:   strconv.Itoa(rec.SunRiseHour),
			domain.FieldSunRiseMinute: strconv.Itoa(rec.SunRiseMinute),
			domain.FieldSunSetHour:    strconv.Itoa(rec.SunSetHour),
			domain.FieldSunSetMinute:  strconv.Itoa(rec.SunSetMinute),
		})
	}
	return table
}
