package schema

import (
	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
)

// JoinResult is an in-memory, schema-less table wrapping the output of a
// join so it can be fed into another join. It is never persisted.
type JoinResult struct {
	name    string
	schema  *TableSchema
	records []data.Record
}

// NewJoinResult wraps merged records. The schema is the union of the
// attribute names in first-seen order, all typed as TEXT.
func NewJoinResult(name string, records []data.Record) *JoinResult {
	s := &TableSchema{TableName: name}
	seen := make(map[string]bool)
	cp := make([]data.Record, len(records))
	for i, r := range records {
		cp[i] = r.Copy()
		for _, n := range r.Names() {
			if !seen[n] {
				seen[n] = true
				s.Columns = append(s.Columns, Column{Name: n, Type: ColumnTypeText})
			}
		}
	}
	return &JoinResult{name: name, schema: s, records: cp}
}

func (j *JoinResult) Name() string {
	return j.name
}

func (j *JoinResult) Schema() *TableSchema {
	return j.schema
}

func (j *JoinResult) Len() int {
	return len(j.records)
}

func (j *JoinResult) Records() []data.Record {
	out := make([]data.Record, len(j.records))
	for i, r := range j.records {
		out[i] = r.Copy()
	}
	return out
}

// Insert is not supported on join results
func (j *JoinResult) Insert(string) error {
	return &errors.ArgumentError{
		Op:     "insert " + j.name,
		Reason: "join results are read-only",
	}
}

func (j *JoinResult) Select(c Criteria) ([]data.Record, error) {
	if _, ok := c.(All); !ok {
		return nil, unsupportedCriteria(j.name, c)
	}
	return j.Records(), nil
}

func (j *JoinResult) ParseCriteria(args []string) (Criteria, error) {
	if err := argCount(j.name, 0, args); err != nil {
		return nil, err
	}
	return All{}, nil
}
