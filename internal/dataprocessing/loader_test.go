package dataprocessing

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "livingwage/internal/errors"
	"livingwage/pkg/contracts/domain"
)

const wagesCSV = "State,HourlyMinimumWage,AnnualLivingWage\n" +
	"AR,7.25,45000\n" +
	"CA,15.00,90000\n" +
	"TX,7.25,48000\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSVFrom(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFields domain.FieldList
		wantRows   int
		wantErr    bool
	}{
		{
			name:       "header and three rows",
			input:      wagesCSV,
			wantFields: domain.FieldList{"State", "HourlyMinimumWage", "AnnualLivingWage"},
			wantRows:   3,
		},
		{
			name:       "header only",
			input:      "a,b,c\n",
			wantFields: domain.FieldList{"a", "b", "c"},
			wantRows:   0,
		},
		{
			name:     "empty input",
			input:    "",
			wantRows: 0,
		},
		{
			name:       "byte order mark stripped",
			input:      utf8BOM + "Name,Phone\nAnn,555\n",
			wantFields: domain.FieldList{"Name", "Phone"},
			wantRows:   1,
		},
		{
			name:       "quoted field with comma",
			input:      "Name,Office\n\"Smith, J\",101\n",
			wantFields: domain.FieldList{"Name", "Office"},
			wantRows:   1,
		},
		{
			name:    "row with too few fields",
			input:   "a,b,c\n1,2\n",
			wantErr: true,
		},
		{
			name:    "row with too many fields",
			input:   "a,b\n1,2,3\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, table, err := ReadCSVFrom(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
				var parseErr *csv.ParseError
				assert.True(t, errors.As(err, &parseErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFields, fields)
			assert.Len(t, table, tt.wantRows)
			for _, rec := range table {
				assert.Len(t, rec, len(fields))
			}
		})
	}
}

func TestReadCSVFrom_KeepsOrderAndText(t *testing.T) {
	fields, table, err := ReadCSVFrom(strings.NewReader(wagesCSV))
	require.NoError(t, err)

	require.Len(t, table, 3)
	assert.Equal(t, "AR", table[0][domain.FieldState])
	assert.Equal(t, "CA", table[1][domain.FieldState])
	assert.Equal(t, "TX", table[2][domain.FieldState])

	// Values stay text until coerced
	assert.Equal(t, "15.00", table[1][domain.FieldHourlyMinimumWage])
	assert.Equal(t, domain.FieldState, fields[0])
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, _, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestReadCSV_MismatchReportsFile(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1\n")

	_, _, err := ReadCSV(path)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, path, appErr.Context["file"])
	assert.Equal(t, 1, appErr.Context["row"])
}

func TestReadLivingWageData(t *testing.T) {
	path := writeFile(t, "wages.csv", wagesCSV)

	fields, table, err := ReadLivingWageData(path)
	require.NoError(t, err)

	assert.Equal(t, domain.FieldList{"State", "HourlyMinimumWage", "AnnualLivingWage"}, fields)
	require.Len(t, table, 3)
	assert.Equal(t, 7.25, table[0][domain.FieldHourlyMinimumWage])
	assert.Equal(t, 45000.0, table[0][domain.FieldAnnualLivingWage])
	assert.Equal(t, 15.0, table[1][domain.FieldHourlyMinimumWage])
	assert.Equal(t, "TX", table[2][domain.FieldState])
}

func TestReadLivingWageData_BadNumber(t *testing.T) {
	path := writeFile(t, "wages.csv", "State,HourlyMinimumWage,AnnualLivingWage\nAR,seven,45000\n")

	_, _, err := ReadLivingWageData(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wages.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"State", "HourlyMinimumWage", "AnnualLivingWage"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"AR", "7.25", "45000"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"CA", "15.00", "90000"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	fields, table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.FieldList{"State", "HourlyMinimumWage", "AnnualLivingWage"}, fields)
	require.Len(t, table, 2, "blank row 3 is skipped")
	assert.Equal(t, "AR", table[0][domain.FieldState])
	assert.Equal(t, "CA", table[1][domain.FieldState])
}

func TestReadXLSX_ShortRowPadded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Phone", "Building"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Ann", "555"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, table, err := ReadXLSX(path, "")
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "", table[0]["Building"])
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, _, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
