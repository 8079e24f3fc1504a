package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

// DefaultSheet is the worksheet name used by WriteWorkbook when none is given
const DefaultSheet = "Data"

// WriteWorkbook saves the given fields of a table as an XLSX workbook with a
// bold header row. Coerced numbers are stored as numeric cells.
func WriteWorkbook(path, sheet string, table domain.Table, fields domain.FieldList) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return apperrors.NewRenderError("failed to name worksheet", err)
	}

	if err := fillSheet(f, sheet, table, fields); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save %s", path), err)
	}
	return nil
}

func fillSheet(f *excelize.File, sheet string, table domain.Table, fields domain.FieldList) error {
	header := make([]interface{}, len(fields))
	for i, name := range fields {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewRenderError("failed to write header row", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewRenderError("failed to create header style", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return apperrors.NewRenderError("failed to style header row", err)
	}

	for i, rec := range table {
		row := make([]interface{}, len(fields))
		for j, name := range fields {
			if v, ok := rec[name].(float64); ok {
				row[j] = v
				continue
			}
			row[j] = FormatValue(rec[name])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewRenderError("invalid cell reference", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.NewRenderError(fmt.Sprintf("failed to write row %d", i+1), err)
		}
	}

	if len(fields) > 0 {
		last, err := excelize.ColumnNumberToName(len(fields))
		if err != nil {
			return apperrors.NewRenderError("invalid column", err)
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return apperrors.NewRenderError("failed to set column width", err)
		}
	}
	return nil
}
