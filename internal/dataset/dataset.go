// Package dataset carries the bundled default registry extract so the
// dashboard renders something useful before any remote sheet is connected.
package dataset

import (
	_ "embed"
)

//go:embed default_data.csv
var defaultCSV string

// DefaultCSV returns the bundled registry snapshot as raw tabular text. It
// goes through the same parse path as remote data; only acquisition differs.
func DefaultCSV() string {
	return defaultCSV
}
