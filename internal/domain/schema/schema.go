package schema

import (
	"strings"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
)

// TableSchema describes the fixed attribute list of a table and its
// uniqueness key
type TableSchema struct {
	TableName string
	Columns   []Column

	// Key lists the attributes whose combined values must be unique.
	// Empty means no uniqueness constraint.
	Key []string

	// DuplicateReason is the message reported on a key collision
	DuplicateReason string

	// DefaultFile is the storage file name used when no location is given
	DefaultFile string
}

var EmployeeSchema = &TableSchema{
	TableName: "employees",
	Columns: []Column{
		{Name: "e_id", Type: ColumnTypeInt},
		{Name: "department_id", Type: ColumnTypeInt},
		{Name: "name", Type: ColumnTypeText},
		{Name: "age", Type: ColumnTypeInt},
		{Name: "salary", Type: ColumnTypeFloat},
	},
	Key:             []string{"e_id", "department_id"},
	DuplicateReason: "Duplicate e_id and department_id pair is not allowed.",
	DefaultFile:     "employee_table.csv",
}

var DepartmentSchema = &TableSchema{
	TableName: "departments",
	Columns: []Column{
		{Name: "d_id", Type: ColumnTypeInt},
		{Name: "department_name", Type: ColumnTypeText},
	},
	Key:             []string{"d_id"},
	DuplicateReason: "Duplicate d_id is not allowed.",
	DefaultFile:     "department_table.csv",
}

var ProjectSchema = &TableSchema{
	TableName: "projects",
	Columns: []Column{
		{Name: "p_id", Type: ColumnTypeInt},
		{Name: "project_name", Type: ColumnTypeText},
		{Name: "budget", Type: ColumnTypeFloat},
		{Name: "manager_id", Type: ColumnTypeInt},
	},
	Key:             []string{"p_id"},
	DuplicateReason: "Duplicate p_id is not allowed.",
	DefaultFile:     "project_table.csv",
}

// Header returns the column names in declared order
func (s *TableSchema) Header() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// GetColumn finds a column by name
func (s *TableSchema) GetColumn(name string) (*Column, bool) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i], true
		}
	}
	return nil, false
}

// ParseRaw splits a whitespace-delimited raw record and maps the tokens
// positionally onto the schema
func (s *TableSchema) ParseRaw(raw string) (data.Record, error) {
	return s.FromValues(strings.Fields(raw))
}

// FromValues builds a typed record from positional values. The number of
// values must match the number of columns exactly.
func (s *TableSchema) FromValues(values []string) (data.Record, error) {
	if len(values) != len(s.Columns) {
		return data.Record{}, errors.NewFieldCountMismatch(s.TableName, len(s.Columns), len(values))
	}

	fields := make([]data.Field, len(s.Columns))
	for i, col := range s.Columns {
		v, err := col.parseValue(s.TableName, values[i])
		if err != nil {
			return data.Record{}, err
		}
		fields[i] = data.Field{Name: col.Name, Value: v}
	}
	return data.NewRecord(fields...), nil
}

// sameKey reports whether two records collide on the uniqueness key
func (s *TableSchema) sameKey(a, b data.Record) bool {
	if len(s.Key) == 0 {
		return false
	}
	for _, name := range s.Key {
		av, _ := a.Raw(name)
		bv, _ := b.Raw(name)
		if av != bv {
			return false
		}
	}
	return true
}

// keyValues returns the raw key values of a record, parallel to Key
func (s *TableSchema) keyValues(r data.Record) []string {
	vals := make([]string, len(s.Key))
	for i, name := range s.Key {
		vals[i], _ = r.Raw(name)
	}
	return vals
}
