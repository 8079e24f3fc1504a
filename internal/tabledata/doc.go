// Package tabledata holds the worked examples for list-of-records tables: an
// office directory and the sunrise/sunset dataset.
package tabledata
