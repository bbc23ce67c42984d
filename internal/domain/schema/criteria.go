package schema

import (
	"fmt"
	"strconv"

	"github.com/leengari/labdb/internal/domain/errors"
)

// Criteria is a table-specific selection predicate. Each table variant
// accepts its own criteria type plus All.
type Criteria interface {
	criteria()
}

// All selects every record
type All struct{}

// IDRange selects employees with From <= e_id <= To
type IDRange struct {
	From int64
	To   int64
}

// NameEquals selects departments whose department_name equals Name exactly
type NameEquals struct {
	Name string
}

// BudgetAbove selects projects whose budget is strictly greater than Threshold
type BudgetAbove struct {
	Threshold float64
}

func (All) criteria()         {}
func (IDRange) criteria()     {}
func (NameEquals) criteria()  {}
func (BudgetAbove) criteria() {}

func unsupportedCriteria(table string, c Criteria) error {
	return &errors.ArgumentError{
		Op:     "select " + table,
		Reason: fmt.Sprintf("unsupported selection %T", c),
	}
}

func argCount(table string, want int, args []string) error {
	if len(args) != want {
		return &errors.ArgumentError{
			Op:     "select " + table,
			Reason: fmt.Sprintf("expected %d arguments, got %d", want, len(args)),
		}
	}
	return nil
}

func parseIntArg(table, name, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &errors.ArgumentError{
			Op:     "select " + table,
			Reason: fmt.Sprintf("%s must be an integer, got %q", name, raw),
		}
	}
	return n, nil
}

func parseFloatArg(table, name, raw string) (float64, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &errors.ArgumentError{
			Op:     "select " + table,
			Reason: fmt.Sprintf("%s must be a number, got %q", name, raw),
		}
	}
	return n, nil
}
