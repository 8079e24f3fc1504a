// Package dataprocessing reads the coursework datasets into tables and typed records.
//
// # Reading
//
// ReadCSV and ReadXLSX produce a FieldList (header order) and a Table (file order)
// of string values. Load picks the reader from the file extension.
//
//	fields, table, err := dataprocessing.ReadCSV("DataFiles/wages.csv")
//
// # Coercion
//
// CoerceFloats converts named fields to float64 in place; ReadLivingWageData does
// this for HourlyMinimumWage and AnnualLivingWage.
//
// # Typed records
//
// ParseWageRecords and ParseSunRecords are the validation boundary: they convert a
// table into domain.WageRecord / domain.SunRecord values and check them with
// struct tags. Loader combines reading, coercion and parsing with logging and metrics.
//
// # Error Handling
//
// Errors are *errors.AppError values: STORAGE for file access (wrapping the fs error),
// PARSING for malformed rows and bad numbers, VALIDATION for records failing their tags.
package dataprocessing
