package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/util"

	domainerrors "github.com/leengari/labdb/internal/domain/errors"
)

// RecordStore persists the rows of one table as a CSV file: a header row
// with the schema's attribute names followed by one row per record
type RecordStore struct {
	fs     billy.Filesystem
	path   string
	header []string
}

// NewRecordStore creates a store for path on fs. header is the expected
// first row of the file.
func NewRecordStore(fs billy.Filesystem, path string, header []string) *RecordStore {
	return &RecordStore{
		fs:     fs,
		path:   path,
		header: slices.Clone(header),
	}
}

// Path returns the file location relative to the filesystem root
func (s *RecordStore) Path() string {
	return s.path
}

// Load reads all persisted rows in file order. A missing file yields no
// rows and no error.
func (s *RecordStore) Load() ([][]string, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no stored records", slog.String("path", s.path))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &domainerrors.StorageError{Path: s.path, Line: line, Reason: err.Error()}
		}

		if line == 1 {
			if !slices.Equal(row, s.header) {
				return nil, &domainerrors.StorageError{
					Path:   s.path,
					Line:   line,
					Reason: fmt.Sprintf("header %v does not match schema %v", row, s.header),
				}
			}
			continue
		}

		if len(row) != len(s.header) {
			return nil, &domainerrors.StorageError{
				Path:   s.path,
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(s.header), len(row)),
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Save rewrites the whole file with the header and rows. The content is
// written to a temp file first and renamed over the target.
func (s *RecordStore) Save(rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(s.header); err != nil {
		return fmt.Errorf("failed to encode header for %s: %w", s.path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to encode rows for %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "/" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := util.WriteFile(s.fs, tmpPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", s.path, err)
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temp → %s: %w", s.path, err)
	}

	slog.Debug("records saved",
		slog.String("path", s.path),
		slog.Int("row_count", len(rows)),
	)
	return nil
}
