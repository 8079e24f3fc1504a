// Package exporter turns tables into output: fixed-width text for the terminal,
// CSV files and XLSX workbooks.
//
// FormatTable is pure and returns the printed lines; PrintTable writes them to
// any io.Writer.
//
//	exporter.PrintTable(os.Stdout, table, fields, 15)
//
// CSVWriter resolves relative paths under the reports directory and prefixes
// files with a UTF-8 BOM for Excel.
package exporter
