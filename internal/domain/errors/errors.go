package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks. The structured error types below match
// the sentinel of their category.
var (
	ErrTableNotFound    = stderrors.New("table not found")
	ErrTablesMissing    = stderrors.New("tables missing")
	ErrDuplicateKey     = stderrors.New("duplicate key")
	ErrInvalidArguments = stderrors.New("invalid arguments")
	ErrNoValidData      = stderrors.New("no valid data")
	ErrUnknownMethod    = stderrors.New("unknown aggregate method")
	ErrMalformedRecord  = stderrors.New("malformed record")
	ErrMalformedStorage = stderrors.New("malformed storage")
)

// TableNotFoundError is returned when an operation names a table that is not registered
type TableNotFoundError struct {
	TableName string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("Table %s does not exist.", e.TableName)
}

func (e *TableNotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}

// TablesMissingError is returned by joins when either side is not registered
type TablesMissingError struct {
	Left  string
	Right string
}

func (e *TablesMissingError) Error() string {
	return "One or both tables do not exist."
}

func (e *TablesMissingError) Is(target error) bool {
	return target == ErrTablesMissing
}

// Represents a violation of a table constraint
// (unique key, type mismatch, field count)
type ConstraintError struct {
	Table      string   // table name
	Columns    []string // columns involved (empty if record-level)
	Values     []string // offending values, parallel to Columns
	Constraint string   // "unique", "type_mismatch", "field_count"
	Reason     string   // human-readable explanation
}

func (e *ConstraintError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("constraint violation in %s", e.Table))
	if len(e.Columns) > 0 {
		parts[0] += "." + strings.Join(e.Columns, "+")
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if len(e.Values) > 0 {
		parts = append(parts, fmt.Sprintf("value=%s", strings.Join(e.Values, ",")))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func (e *ConstraintError) Is(target error) bool {
	switch e.Constraint {
	case "unique":
		return target == ErrDuplicateKey
	case "type_mismatch", "field_count":
		return target == ErrMalformedRecord
	}
	return false
}

// NewUniqueViolation builds a duplicate key error. reason carries the
// per-table message, e.g. "Duplicate d_id is not allowed."
func NewUniqueViolation(table string, columns, values []string, reason string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Columns:    columns,
		Values:     values,
		Constraint: "unique",
		Reason:     reason,
	}
}

func NewTypeMismatch(table, column, value, expectedType string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Columns:    []string{column},
		Values:     []string{value},
		Constraint: "type_mismatch",
		Reason:     fmt.Sprintf("expected %s", expectedType),
	}
}

func NewFieldCountMismatch(table string, expected, got int) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Constraint: "field_count",
		Reason:     fmt.Sprintf("expected %d fields, got %d", expected, got),
	}
}

// ArgumentError reports a call with the wrong shape of arguments
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArguments
}

// NoValidDataError is returned when an aggregate finds no values for its column
type NoValidDataError struct {
	Column string
}

func (e *NoValidDataError) Error() string {
	return fmt.Sprintf("Column %s does not contain valid data.", e.Column)
}

func (e *NoValidDataError) Is(target error) bool {
	return target == ErrNoValidData
}

type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("Unknown aggregate method: %s", e.Method)
}

func (e *UnknownMethodError) Is(target error) bool {
	return target == ErrUnknownMethod
}

// StorageError reports a record file that cannot be decoded against its schema
type StorageError struct {
	Path   string
	Line   int // 1-based, 0 if not tied to a line
	Reason string
}

func (e *StorageError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed storage %s at line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed storage %s: %s", e.Path, e.Reason)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrMalformedStorage
}
