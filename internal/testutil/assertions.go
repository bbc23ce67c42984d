package testutil

import (
	"testing"

	"github.com/leengari/labdb/internal/domain/data"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnValues checks the raw values of column across rows, in order
func AssertColumnValues(t *testing.T, rows []data.Record, column string, expected ...string) {
	t.Helper()
	if len(rows) != len(expected) {
		t.Fatalf("column %s: expected %d rows, got %d", column, len(expected), len(rows))
	}
	for i, row := range rows {
		got, ok := row.Raw(column)
		if !ok {
			t.Errorf("row %d: expected column '%s' to exist", i, column)
			continue
		}
		if got != expected[i] {
			t.Errorf("row %d: expected %s=%q, got %q", i, column, expected[i], got)
		}
	}
}

// AssertColumnNotExists checks that no row has column
func AssertColumnNotExists(t *testing.T, rows []data.Record, column string) {
	t.Helper()
	for i, row := range rows {
		if _, ok := row.Get(column); ok {
			t.Errorf("row %d: did not expect column '%s' to exist", i, column)
		}
	}
}
