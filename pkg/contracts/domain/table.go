package domain

// Record is one row of tabular data keyed by field name.
// Values are string as loaded from a file, or float64 once a field has been coerced.
type Record map[string]any

// Table is an ordered collection of records sharing a field set.
// Row order follows file order; no field is required to be unique.
type Table []Record

// FieldList is the ordered list of column names used for parsing and printing.
type FieldList []string
