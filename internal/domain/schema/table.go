package schema

import (
	"fmt"
	"log/slog"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
)

// Table is the capability shared by every table variant registered in a
// database
type Table interface {
	Name() string
	Schema() *TableSchema
	Len() int

	// Records returns a copy of all records in insertion order
	Records() []data.Record

	// Insert parses a whitespace-delimited raw record, enforces the
	// uniqueness key and persists the table
	Insert(raw string) error

	// Select returns the records matching c, preserving order
	Select(c Criteria) ([]data.Record, error)

	// ParseCriteria turns textual arguments into this table's criteria
	ParseCriteria(args []string) (Criteria, error)
}

// RecordStore persists the raw rows of one table
type RecordStore interface {
	Load() ([][]string, error)
	Save(rows [][]string) error
	// Path names the backing file in errors
	Path() string
}

// recordTable holds the storage and constraint logic shared by the
// file-backed variants
type recordTable struct {
	schema  *TableSchema
	store   RecordStore
	records []data.Record
}

func newRecordTable(s *TableSchema, store RecordStore) (*recordTable, error) {
	t := &recordTable{schema: s, store: store}
	if err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *recordTable) Name() string {
	return t.schema.TableName
}

func (t *recordTable) Schema() *TableSchema {
	return t.schema
}

func (t *recordTable) Len() int {
	return len(t.records)
}

func (t *recordTable) Records() []data.Record {
	out := make([]data.Record, len(t.records))
	for i, r := range t.records {
		out[i] = r.Copy()
	}
	return out
}

// load replaces the in-memory records with the persisted ones
func (t *recordTable) load() error {
	rows, err := t.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load table %s: %w", t.Name(), err)
	}

	records := make([]data.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := t.schema.FromValues(row)
		if err != nil {
			return &errors.StorageError{
				Path:   t.store.Path(),
				Line:   i + 2, // header is line 1
				Reason: err.Error(),
			}
		}
		records = append(records, rec)
	}
	t.records = records
	return nil
}

// save rewrites the whole table through the store
func (t *recordTable) save() error {
	rows := make([][]string, len(t.records))
	for i, r := range t.records {
		rows[i] = r.Values()
	}
	return t.store.Save(rows)
}

func (t *recordTable) Insert(raw string) error {
	row, err := t.schema.ParseRaw(raw)
	if err != nil {
		return err
	}

	for _, existing := range t.records {
		if t.schema.sameKey(existing, row) {
			return errors.NewUniqueViolation(
				t.Name(),
				t.schema.Key,
				t.schema.keyValues(row),
				t.schema.DuplicateReason,
			)
		}
	}

	t.records = append(t.records, row)
	if err := t.save(); err != nil {
		// keep memory and storage in step
		t.records = t.records[:len(t.records)-1]
		return fmt.Errorf("failed to persist table %s: %w", t.Name(), err)
	}

	slog.Debug("Insert operation",
		slog.String("table", t.Name()),
		slog.Int("rows", len(t.records)),
	)
	return nil
}

// filter returns copies of the records matching pred
func (t *recordTable) filter(pred func(data.Record) bool) []data.Record {
	result := make([]data.Record, 0)
	for _, r := range t.records {
		if pred(r) {
			result = append(result, r.Copy())
		}
	}
	return result
}

func numeric(r data.Record, name string) float64 {
	v, _ := r.Get(name)
	return v.Num
}
