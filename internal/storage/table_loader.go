package storage

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"

	"github.com/leengari/labdb/internal/domain/schema"
)

// OpenDataDir ensures dir exists and returns a filesystem rooted at it
func OpenDataDir(dir string) (billy.Filesystem, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return osfs.New(dir), nil
}

func storeFor(fs billy.Filesystem, s *schema.TableSchema, path string) *RecordStore {
	if path == "" {
		path = s.DefaultFile
	}
	return NewRecordStore(fs, path, s.Header())
}

// LoadEmployeeTable loads the employee table from path, or from the
// default location when path is empty
func LoadEmployeeTable(fs billy.Filesystem, path string) (*schema.EmployeeTable, error) {
	return schema.NewEmployeeTable(storeFor(fs, schema.EmployeeSchema, path))
}

func LoadDepartmentTable(fs billy.Filesystem, path string) (*schema.DepartmentTable, error) {
	return schema.NewDepartmentTable(storeFor(fs, schema.DepartmentSchema, path))
}

func LoadProjectTable(fs billy.Filesystem, path string) (*schema.ProjectTable, error) {
	return schema.NewProjectTable(storeFor(fs, schema.ProjectSchema, path))
}

// LoadTables loads the three standard tables from their default
// locations on fs, keyed by table name
func LoadTables(fs billy.Filesystem) (map[string]schema.Table, error) {
	employees, err := LoadEmployeeTable(fs, "")
	if err != nil {
		return nil, err
	}
	departments, err := LoadDepartmentTable(fs, "")
	if err != nil {
		return nil, err
	}
	projects, err := LoadProjectTable(fs, "")
	if err != nil {
		return nil, err
	}

	tables := map[string]schema.Table{
		employees.Name():   employees,
		departments.Name(): departments,
		projects.Name():    projects,
	}

	for name, t := range tables {
		slog.Info("table loaded",
			slog.String("table", name),
			slog.String("path", t.Schema().DefaultFile),
			slog.Int("rows", t.Len()),
		)
	}
	return tables, nil
}
