package schema

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
)

type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
)

type Column struct {
	Name string
	Type ColumnType
}

var validate = validator.New()

// parseValue converts a raw token into a typed value for this column
func (c Column) parseValue(table, raw string) (data.Value, error) {
	switch c.Type {
	case ColumnTypeText:
		return data.Text(raw), nil
	case ColumnTypeInt:
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return data.Value{}, errors.NewTypeMismatch(table, c.Name, raw, "integer")
		}
	case ColumnTypeFloat:
		if err := validate.Var(raw, "required,numeric"); err != nil {
			return data.Value{}, errors.NewTypeMismatch(table, c.Name, raw, "number")
		}
	default:
		return data.Text(raw), nil
	}

	v, err := data.Number(raw)
	if err != nil {
		return data.Value{}, errors.NewTypeMismatch(table, c.Name, raw, string(c.Type))
	}
	return v, nil
}
