package testutil

import (
	"io"
	"testing"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/util"

	"github.com/leengari/labdb/internal/domain/schema"
	"github.com/leengari/labdb/internal/storage"
)

// Sample table files used across package tests
const (
	EmployeesCSV   = "e_id,department_id,name,age,salary\n1,101,John,30,50000\n2,102,Jane,25,60000\n"
	DepartmentsCSV = "d_id,department_name\n101,HR\n102,IT\n"
	ProjectsCSV    = "p_id,project_name,budget,manager_id\n1,Alpha,100000,1\n2,Beta,50000,2\n"
)

// SeedFS creates an in-memory filesystem holding the given files
func SeedFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for path, content := range files {
		if err := util.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to seed %s: %v", path, err)
		}
	}
	return fs
}

// SampleFS returns a filesystem with the three sample tables at their
// default locations
func SampleFS(t *testing.T) billy.Filesystem {
	t.Helper()
	return SeedFS(t, map[string]string{
		schema.EmployeeSchema.DefaultFile:   EmployeesCSV,
		schema.DepartmentSchema.DefaultFile: DepartmentsCSV,
		schema.ProjectSchema.DefaultFile:    ProjectsCSV,
	})
}

// LoadSampleTables loads the sample tables from a fresh in-memory filesystem
func LoadSampleTables(t *testing.T) (map[string]schema.Table, billy.Filesystem) {
	t.Helper()
	fs := SampleFS(t)
	tables, err := storage.LoadTables(fs)
	if err != nil {
		t.Fatalf("failed to load sample tables: %v", err)
	}
	return tables, fs
}

// ReadFile returns the content of path on fs
func ReadFile(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	f, err := fs.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(buf)
}
