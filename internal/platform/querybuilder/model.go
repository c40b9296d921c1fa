package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel starts an insert whose columns and values come from the db tags
// of a row struct.
func InsertModel(table string, model any) (*InsertBuilder, error) {
	cols, vals, err := taggedFields(model, true)
	if err != nil {
		return nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...), nil
}

// Columns lists the db-tagged columns of a row struct in field order.
func Columns(model any) ([]string, error) {
	cols, _, err := taggedFields(model, false)
	return cols, err
}

// MustColumns is Columns for package-level column lists.
func MustColumns(model any) []string {
	cols, err := Columns(model)
	if err != nil {
		panic(fmt.Sprintf("querybuilder: %v", err))
	}
	return cols
}

func taggedFields(model any, withValues bool) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	var cols []string
	var vals []any
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		if withValues {
			vals = append(vals, value.Field(i).Interface())
		}
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("%s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
