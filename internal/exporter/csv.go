package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"livingwage/internal/config"
	apperrors "livingwage/internal/errors"
	"livingwage/internal/validation"
	"livingwage/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
	dirs   *validation.FileValidator
}

// NewCSVWriter creates a new CSV writer. Relative file paths resolve under the
// reports directory.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "csv_writer"))
	return &CSVWriter{paths: paths, logger: logger, dirs: validation.NewFileValidator(logger)}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // UTF-8 BOM so Excel detects the encoding
}

// WriteCSV writes data to a CSV file with the given options and returns the
// path written.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := w.dirs.ValidateOutputDirectory(filepath.Dir(fullPath)); err != nil {
		return "", err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to open %s", fullPath), err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.WriteString("\uFEFF"); err != nil {
			return "", apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", apperrors.NewStorageError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", apperrors.NewStorageError("failed to flush CSV", err)
	}
	return fullPath, nil
}

// WriteTable exports the given fields of a table, in field order, with a BOM
func (w *CSVWriter) WriteTable(filePath string, table domain.Table, fields domain.FieldList) (string, error) {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   fields,
		Records:   tableRows(table, fields),
		BOMPrefix: true,
	})
}

// AppendTable appends table rows to an existing export without a header
func (w *CSVWriter) AppendTable(filePath string, table domain.Table, fields domain.FieldList) (string, error) {
	return w.WriteCSV(filePath, WriteOptions{
		Records: tableRows(table, fields),
		Append:  true,
	})
}

func tableRows(table domain.Table, fields domain.FieldList) [][]string {
	rows := make([][]string, 0, len(table))
	for _, rec := range table {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = FormatValue(rec[f])
		}
		rows = append(rows, row)
	}
	return rows
}

// resolvePath places relative paths in the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}
