package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

// utf8BOM is written by the exporter for Excel and stripped again on read
const utf8BOM = "\uFEFF"

// ReadCSV opens a CSV file and reads it into a table, using the first row as the
// field names. The whole file is materialized in memory.
func ReadCSV(path string) (domain.FieldList, domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	fields, table, err := ReadCSVFrom(f)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("file", path)
		}
		return nil, nil, err
	}
	return fields, table, nil
}

// ReadCSVFrom reads CSV data from r. Every record must have as many fields as
// the header; a mismatch is reported as a PARSING error wrapping *csv.ParseError.
// An empty input yields no fields and an empty table.
func ReadCSVFrom(r io.Reader) (domain.FieldList, domain.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.Table{}, nil
	}
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to read CSV header", err)
	}

	fields := headerFields(header)

	table := domain.Table{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperrors.NewParsingError("malformed CSV row", err).
				WithContext("row", len(table)+1)
		}
		table = append(table, makeRecord(fields, row))
	}

	return fields, table, nil
}

// ReadXLSX reads a worksheet into a table the same way ReadCSV reads a file.
// An empty sheet name selects the first sheet. Blank rows are skipped.
func ReadXLSX(path, sheet string) (domain.FieldList, domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, domain.Table{}, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("file", path)
	}

	// Drop leading blank rows so the header is the first populated row
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, domain.Table{}, nil
	}

	fields := headerFields(rows[0])

	table := domain.Table{}
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		// GetRows trims trailing empty cells
		if len(row) > len(fields) {
			return nil, nil, apperrors.NewParsingError(
				fmt.Sprintf("sheet %q row %d has %d cells, header has %d", sheet, i+2, len(row), len(fields)), nil).
				WithContext("file", path)
		}
		for len(row) < len(fields) {
			row = append(row, "")
		}
		table = append(table, makeRecord(fields, row))
	}

	return fields, table, nil
}

// Load reads a CSV or XLSX file, chosen by extension
func Load(path string) (domain.FieldList, domain.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, "")
	default:
		return ReadCSV(path)
	}
}

// ReadLivingWageData reads the living wage file and converts HourlyMinimumWage
// and AnnualLivingWage to float64 in every record.
func ReadLivingWageData(path string) (domain.FieldList, domain.Table, error) {
	fields, table, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := CoerceFloats(table, domain.FieldHourlyMinimumWage, domain.FieldAnnualLivingWage); err != nil {
		return nil, nil, err
	}
	return fields, table, nil
}

func headerFields(header []string) domain.FieldList {
	fields := make(domain.FieldList, len(header))
	copy(fields, header)
	if len(fields) > 0 {
		fields[0] = strings.TrimPrefix(fields[0], utf8BOM)
	}
	return fields
}

func makeRecord(fields domain.FieldList, row []string) domain.Record {
	rec := make(domain.Record, len(fields))
	for i, name := range fields {
		rec[name] = row[i]
	}
	return rec
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
