package engine

import (
	"fmt"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
)

// Aggregate methods
const (
	MethodAvg   = "avg"
	MethodMax   = "max"
	MethodMin   = "min"
	MethodCount = "count"
)

// Aggregate computes method over the numeric column of the named table
func (db *Database) Aggregate(name, method, column string) (float64, error) {
	t, err := db.lookup(name)
	if err != nil {
		return 0, err
	}
	return db.AggregateRecords(t.Records(), method, column)
}

// AggregateRecords computes method over column for records that have the
// column, e.g. the output of a join
func (db *Database) AggregateRecords(records []data.Record, method, column string) (float64, error) {
	op := db.begin("aggregate", map[string]interface{}{
		"method": method,
		"column": column,
		"rows":   len(records),
	})

	result, err := aggregate(records, method, column)
	if err != nil {
		return 0, op.fail(err)
	}

	op.end(map[string]interface{}{"result": result})
	return result, nil
}

func aggregate(records []data.Record, method, column string) (float64, error) {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		v, ok := r.Get(column)
		if !ok {
			continue
		}
		n, err := v.Float()
		if err != nil {
			return 0, fmt.Errorf("column %s value %q is not numeric: %w", column, v.Raw, errors.ErrMalformedRecord)
		}
		values = append(values, n)
	}

	if len(values) == 0 {
		return 0, &errors.NoValidDataError{Column: column}
	}

	switch method {
	case MethodAvg:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values)), nil
	case MethodMax:
		m := values[0]
		for _, v := range values[1:] {
			m = max(m, v)
		}
		return m, nil
	case MethodMin:
		m := values[0]
		for _, v := range values[1:] {
			m = min(m, v)
		}
		return m, nil
	case MethodCount:
		return float64(len(values)), nil
	}
	return 0, &errors.UnknownMethodError{Method: method}
}
