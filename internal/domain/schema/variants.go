package schema

import (
	"github.com/leengari/labdb/internal/domain/data"
)

// EmployeeTable holds (e_id, department_id, name, age, salary) records,
// unique on the (e_id, department_id) pair
type EmployeeTable struct {
	*recordTable
}

// NewEmployeeTable loads an employee table from store
func NewEmployeeTable(store RecordStore) (*EmployeeTable, error) {
	base, err := newRecordTable(EmployeeSchema, store)
	if err != nil {
		return nil, err
	}
	return &EmployeeTable{base}, nil
}

// Select accepts IDRange (inclusive on both bounds) or All
func (t *EmployeeTable) Select(c Criteria) ([]data.Record, error) {
	switch c := c.(type) {
	case All:
		return t.filter(func(data.Record) bool { return true }), nil
	case IDRange:
		return t.filter(func(r data.Record) bool {
			id := numeric(r, "e_id")
			return float64(c.From) <= id && id <= float64(c.To)
		}), nil
	}
	return nil, unsupportedCriteria(t.Name(), c)
}

// ParseCriteria expects "<from> <to>", or nothing for all records
func (t *EmployeeTable) ParseCriteria(args []string) (Criteria, error) {
	if len(args) == 0 {
		return All{}, nil
	}
	if err := argCount(t.Name(), 2, args); err != nil {
		return nil, err
	}
	from, err := parseIntArg(t.Name(), "from", args[0])
	if err != nil {
		return nil, err
	}
	to, err := parseIntArg(t.Name(), "to", args[1])
	if err != nil {
		return nil, err
	}
	return IDRange{From: from, To: to}, nil
}

// DepartmentTable holds (d_id, department_name) records, unique on d_id
type DepartmentTable struct {
	*recordTable
}

func NewDepartmentTable(store RecordStore) (*DepartmentTable, error) {
	base, err := newRecordTable(DepartmentSchema, store)
	if err != nil {
		return nil, err
	}
	return &DepartmentTable{base}, nil
}

func (t *DepartmentTable) Select(c Criteria) ([]data.Record, error) {
	switch c := c.(type) {
	case All:
		return t.filter(func(data.Record) bool { return true }), nil
	case NameEquals:
		return t.filter(func(r data.Record) bool {
			name, _ := r.Raw("department_name")
			return name == c.Name
		}), nil
	}
	return nil, unsupportedCriteria(t.Name(), c)
}

func (t *DepartmentTable) ParseCriteria(args []string) (Criteria, error) {
	if len(args) == 0 {
		return All{}, nil
	}
	if err := argCount(t.Name(), 1, args); err != nil {
		return nil, err
	}
	return NameEquals{Name: args[0]}, nil
}

// ProjectTable holds (p_id, project_name, budget, manager_id) records,
// unique on p_id
type ProjectTable struct {
	*recordTable
}

func NewProjectTable(store RecordStore) (*ProjectTable, error) {
	base, err := newRecordTable(ProjectSchema, store)
	if err != nil {
		return nil, err
	}
	return &ProjectTable{base}, nil
}

func (t *ProjectTable) Select(c Criteria) ([]data.Record, error) {
	switch c := c.(type) {
	case All:
		return t.filter(func(data.Record) bool { return true }), nil
	case BudgetAbove:
		return t.filter(func(r data.Record) bool {
			return numeric(r, "budget") > c.Threshold
		}), nil
	}
	return nil, unsupportedCriteria(t.Name(), c)
}

func (t *ProjectTable) ParseCriteria(args []string) (Criteria, error) {
	if len(args) == 0 {
		return All{}, nil
	}
	if err := argCount(t.Name(), 1, args); err != nil {
		return nil, err
	}
	threshold, err := parseFloatArg(t.Name(), "threshold", args[0])
	if err != nil {
		return nil, err
	}
	return BudgetAbove{Threshold: threshold}, nil
}
