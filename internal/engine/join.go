package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
	"github.com/leengari/labdb/internal/domain/schema"
)

// joinTablePrefix prefixes the generated names of intermediate join results
const joinTablePrefix = "__join_"

// Join performs an equality join of two registered tables: every pair
// (r1, r2) with r1[leftAttr] == r2[rightAttr] yields r1 overlaid by r2.
// Results are ordered by left record, then right record.
func (db *Database) Join(leftName, rightName, leftAttr, rightAttr string) ([]data.Record, error) {
	op := db.begin("join", map[string]interface{}{
		"left":       leftName,
		"right":      rightName,
		"left_attr":  leftAttr,
		"right_attr": rightAttr,
	})

	left, okLeft := db.tables[leftName]
	right, okRight := db.tables[rightName]
	if !okLeft || !okRight {
		return nil, op.fail(&errors.TablesMissingError{Left: leftName, Right: rightName})
	}

	results := nestedLoopJoin(left, right, leftAttr, rightAttr)

	op.end(map[string]interface{}{"rows_returned": len(results)})
	return results, nil
}

// nestedLoopJoin compares join values as raw strings. Records missing the
// join attribute never match.
func nestedLoopJoin(left, right schema.Table, leftAttr, rightAttr string) []data.Record {
	leftRows := left.Records()
	rightRows := right.Records()

	results := make([]data.Record, 0)
	for _, r1 := range leftRows {
		v1, ok := r1.Raw(leftAttr)
		if !ok {
			continue
		}
		for _, r2 := range rightRows {
			v2, ok := r2.Raw(rightAttr)
			if !ok || v1 != v2 {
				continue
			}
			results = append(results, r1.Merge(r2))
		}
	}

	slog.Debug("join completed",
		slog.String("left_table", left.Name()),
		slog.String("right_table", right.Name()),
		slog.Int("left_rows", len(leftRows)),
		slog.Int("right_rows", len(rightRows)),
		slog.Int("result_rows", len(results)),
	)
	return results
}

// MultiJoin joins first with second on firstAttrs, then joins that result
// with third on secondAttrs. Each attribute pair must have exactly two
// elements. The intermediate result is registered under a generated
// name for the duration of the call only.
func (db *Database) MultiJoin(first, second, third string, firstAttrs, secondAttrs []string) ([]data.Record, error) {
	op := db.begin("multi_join", map[string]interface{}{
		"tables":       []string{first, second, third},
		"first_attrs":  firstAttrs,
		"second_attrs": secondAttrs,
	})

	if len(firstAttrs) != 2 || len(secondAttrs) != 2 {
		return nil, op.fail(&errors.ArgumentError{
			Reason: "Each join_attrs parameter must contain exactly two attributes.",
		})
	}

	intermediate, err := db.Join(first, second, firstAttrs[0], firstAttrs[1])
	if err != nil {
		return nil, op.fail(err)
	}

	tempName := joinTablePrefix + uuid.NewString()
	db.RegisterTable(tempName, schema.NewJoinResult(tempName, intermediate))
	defer db.unregisterTable(tempName)

	results, err := db.Join(tempName, third, secondAttrs[0], secondAttrs[1])
	if err != nil {
		return nil, op.fail(err)
	}

	op.end(map[string]interface{}{
		"intermediate_rows": len(intermediate),
		"rows_returned":     len(results),
	})
	return results, nil
}
