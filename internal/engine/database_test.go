package engine_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
	"github.com/leengari/labdb/internal/domain/schema"
	"github.com/leengari/labdb/internal/engine"
	"github.com/leengari/labdb/internal/testutil"
)

// setupTestDB registers the sample tables in a fresh database
func setupTestDB(t *testing.T, opts ...engine.Option) *engine.Database {
	t.Helper()
	tables, _ := testutil.LoadSampleTables(t)
	db := engine.New(opts...)
	for name, table := range tables {
		db.RegisterTable(name, table)
	}
	return db
}

func TestInsertAndSelect(t *testing.T) {
	db := setupTestDB(t)

	t.Run("Employees", func(t *testing.T) {
		assert.NilError(t, db.Insert("employees", "3 103 Justin 35 70000"))
		rows, err := db.Select("employees", schema.IDRange{From: 1, To: 3})
		assert.NilError(t, err)
		testutil.AssertColumnValues(t, rows, "name", "John", "Jane", "Justin")
	})

	t.Run("Departments", func(t *testing.T) {
		assert.NilError(t, db.Insert("departments", "103 SMM"))
		rows, err := db.SelectArgs("departments", "HR")
		assert.NilError(t, err)
		testutil.AssertColumnValues(t, rows, "department_name", "HR")
	})

	t.Run("Projects", func(t *testing.T) {
		assert.NilError(t, db.Insert("projects", "3 Charlie 20000 1"))
		rows, err := db.SelectArgs("projects", "60000")
		assert.NilError(t, err)
		testutil.AssertColumnValues(t, rows, "project_name", "Alpha")
	})
}

func TestDuplicateInserts(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		table   string
		raw     string
		message string
	}{
		{"employees", "1 101 John 30 50000", "Duplicate e_id and department_id pair is not allowed."},
		{"departments", "101 HR", "Duplicate d_id is not allowed."},
		{"projects", "1 Alpha 100000 1", "Duplicate p_id is not allowed."},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			table, ok := db.Table(tt.table)
			assert.Assert(t, ok)
			before := table.Len()

			err := db.Insert(tt.table, tt.raw)
			assert.Assert(t, stderrors.Is(err, errors.ErrDuplicateKey))
			assert.ErrorContains(t, err, tt.message)
			assert.Equal(t, table.Len(), before)
		})
	}
}

func TestMissingTable(t *testing.T) {
	db := setupTestDB(t)

	err := db.Insert("unknown", "1 101 John 30 50000")
	assert.Assert(t, stderrors.Is(err, errors.ErrTableNotFound))
	assert.Error(t, err, "Table unknown does not exist.")

	_, err = db.Select("unknown", schema.All{})
	assert.Assert(t, stderrors.Is(err, errors.ErrTableNotFound))

	_, err = db.SelectArgs("unknown")
	assert.Assert(t, stderrors.Is(err, errors.ErrTableNotFound))

	_, err = db.Aggregate("unknown", engine.MethodAvg, "salary")
	assert.Assert(t, stderrors.Is(err, errors.ErrTableNotFound))
}

func TestRegisterTableLastWriteWins(t *testing.T) {
	db := setupTestDB(t)
	depts, _ := db.Table("departments")

	db.RegisterTable("employees", depts)
	table, ok := db.Table("employees")
	assert.Assert(t, ok)
	assert.Equal(t, table.Name(), "departments")
	assert.DeepEqual(t, db.Tables(), []string{"departments", "employees", "projects"})
}

func TestJoinTwoTables(t *testing.T) {
	db := setupTestDB(t)

	joined, err := db.Join("employees", "departments", "department_id", "d_id")
	assert.NilError(t, err)
	testutil.AssertRowCount(t, len(joined), 2, "employees ⋈ departments")
	testutil.AssertColumnValues(t, joined, "department_name", "HR", "IT")
	testutil.AssertColumnValues(t, joined, "name", "John", "Jane")
	assert.DeepEqual(t, joined[0].Names(),
		[]string{"e_id", "department_id", "name", "age", "salary", "d_id", "department_name"})
}

func TestJoinOrderIsNested(t *testing.T) {
	db := setupTestDB(t)
	assert.NilError(t, db.Insert("projects", "3 Gamma 75000 1"))

	joined, err := db.Join("employees", "projects", "e_id", "manager_id")
	assert.NilError(t, err)
	testutil.AssertColumnValues(t, joined, "name", "John", "John", "Jane")
	testutil.AssertColumnValues(t, joined, "project_name", "Alpha", "Gamma", "Beta")
}

func TestJoinRightOverridesCollisions(t *testing.T) {
	db := setupTestDB(t)

	// every attribute collides in a self join, so no fields are added
	joined, err := db.Join("employees", "employees", "age", "age")
	assert.NilError(t, err)
	testutil.AssertRowCount(t, len(joined), 2, "self join")
	assert.Equal(t, joined[0].Len(), 5)

	alias := data.NewRecord(
		data.Field{Name: "e_id", Value: data.Text("1")},
		data.Field{Name: "name", Value: data.Text("Johnny")},
	)
	db.RegisterTable("aliases", schema.NewJoinResult("aliases", []data.Record{alias}))

	joined, err = db.Join("employees", "aliases", "e_id", "e_id")
	assert.NilError(t, err)
	testutil.AssertColumnValues(t, joined, "name", "Johnny")
	assert.DeepEqual(t, joined[0].Names(), []string{"e_id", "department_id", "name", "age", "salary"})
}

func TestJoinUnknownAttributeYieldsNothing(t *testing.T) {
	db := setupTestDB(t)

	joined, err := db.Join("employees", "departments", "department_id", "missing")
	assert.NilError(t, err)
	assert.Equal(t, len(joined), 0)
}

func TestJoinMissingTable(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Join("employees", "unknown", "department_id", "u_id")
	assert.Assert(t, stderrors.Is(err, errors.ErrTablesMissing))
	assert.Error(t, err, "One or both tables do not exist.")
}

func TestMultiJoin(t *testing.T) {
	db := setupTestDB(t)

	joined, err := db.MultiJoin("employees", "departments", "projects",
		[]string{"department_id", "d_id"},
		[]string{"e_id", "manager_id"},
	)
	assert.NilError(t, err)
	testutil.AssertRowCount(t, len(joined), 2, "multi join")
	testutil.AssertColumnValues(t, joined, "project_name", "Alpha", "Beta")
	testutil.AssertColumnValues(t, joined, "department_name", "HR", "IT")

	// intermediate result is not left behind
	assert.DeepEqual(t, db.Tables(), []string{"departments", "employees", "projects"})
}

func TestMultiJoinEqualsChainedJoin(t *testing.T) {
	db := setupTestDB(t)

	first, err := db.Join("employees", "departments", "department_id", "d_id")
	assert.NilError(t, err)
	db.RegisterTable("staged", schema.NewJoinResult("staged", first))
	chained, err := db.Join("staged", "projects", "e_id", "manager_id")
	assert.NilError(t, err)

	multi, err := db.MultiJoin("employees", "departments", "projects",
		[]string{"department_id", "d_id"},
		[]string{"e_id", "manager_id"},
	)
	assert.NilError(t, err)

	assert.Equal(t, len(multi), len(chained))
	for i := range multi {
		assert.DeepEqual(t, multi[i].Names(), chained[i].Names())
		assert.DeepEqual(t, multi[i].Values(), chained[i].Values())
	}
}

func TestMultiJoinKeepsUserTables(t *testing.T) {
	db := setupTestDB(t)
	depts, _ := db.Table("departments")
	db.RegisterTable("temp_join", depts)

	_, err := db.MultiJoin("employees", "departments", "projects",
		[]string{"department_id", "d_id"},
		[]string{"e_id", "manager_id"},
	)
	assert.NilError(t, err)

	table, ok := db.Table("temp_join")
	assert.Assert(t, ok)
	assert.Equal(t, table.Name(), "departments")
}

func TestMultiJoinInvalidArguments(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.MultiJoin("employees", "departments", "projects",
		[]string{"department_id"},
		[]string{"e_id", "manager_id"},
	)
	assert.Assert(t, stderrors.Is(err, errors.ErrInvalidArguments))
	assert.ErrorContains(t, err, "Each join_attrs parameter must contain exactly two attributes.")

	_, err = db.MultiJoin("employees", "departments", "projects",
		[]string{"department_id", "d_id"},
		[]string{"e_id", "manager_id", "extra"},
	)
	assert.Assert(t, stderrors.Is(err, errors.ErrInvalidArguments))
}

func TestMultiJoinMissingTable(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.MultiJoin("employees", "departments", "unknown",
		[]string{"department_id", "d_id"},
		[]string{"e_id", "manager_id"},
	)
	assert.Assert(t, stderrors.Is(err, errors.ErrTablesMissing))
	for _, name := range db.Tables() {
		assert.Assert(t, !strings.HasPrefix(name, "__join_"), "leftover table %s", name)
	}
}

func TestAggregate(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		method string
		want   float64
	}{
		{engine.MethodAvg, 55000},
		{engine.MethodMax, 60000},
		{engine.MethodMin, 50000},
		{engine.MethodCount, 2},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := db.Aggregate("employees", tt.method, "salary")
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}

	_, err := db.Aggregate("employees", "sum", "salary")
	assert.Assert(t, stderrors.Is(err, errors.ErrUnknownMethod))
	assert.Error(t, err, "Unknown aggregate method: sum")
}

func TestAggregateJoinResult(t *testing.T) {
	db := setupTestDB(t)

	joined, err := db.MultiJoin("employees", "departments", "projects",
		[]string{"department_id", "d_id"},
		[]string{"e_id", "manager_id"},
	)
	assert.NilError(t, err)

	maxBudget, err := db.AggregateRecords(joined, engine.MethodMax, "budget")
	assert.NilError(t, err)
	assert.Equal(t, maxBudget, 100000.0)

	count, err := db.AggregateRecords(joined, engine.MethodCount, "p_id")
	assert.NilError(t, err)
	assert.Equal(t, count, 2.0)
}

func TestAggregateNoValidData(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Aggregate("employees", engine.MethodAvg, "personal_project_count")
	assert.Assert(t, stderrors.Is(err, errors.ErrNoValidData))
	assert.Error(t, err, "Column personal_project_count does not contain valid data.")

	_, err = db.AggregateRecords(nil, engine.MethodCount, "salary")
	assert.Assert(t, stderrors.Is(err, errors.ErrNoValidData))
}

func TestAggregateNonNumericColumn(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Aggregate("employees", engine.MethodMax, "name")
	assert.Assert(t, stderrors.Is(err, errors.ErrMalformedRecord))
}
