// Package table materializes raw SPARQL bindings as typed tabular data.
// A TypedTable has one uniformly-typed column per projected variable, with
// explicit null markers for unbound values, in the row order returned by
// the store.
package table

import (
	"fmt"
	"strconv"
	"time"

	"github.com/statnett/cimsparql/pkg/rdf"
)

// Value is one cell of a typed column: either a null marker or a scalar of
// the column's semantic type.
type Value struct {
	null bool
	st   rdf.SemanticType

	b bool
	i int64
	f float64
	s string
	t time.Time
}

// Null returns the explicit null marker for a column of the given type.
func Null(st rdf.SemanticType) Value {
	return Value{null: true, st: st}
}

// BoolValue returns a Boolean cell.
func BoolValue(v bool) Value {
	return Value{st: rdf.TypeBoolean, b: v}
}

// IntValue returns an Integer cell.
func IntValue(v int64) Value {
	return Value{st: rdf.TypeInteger, i: v}
}

// FloatValue returns a cell of the given floating-point semantic type
// (Float or Double).
func FloatValue(st rdf.SemanticType, v float64) Value {
	return Value{st: st, f: v}
}

// StringValue returns a String or URIReference cell.
func StringValue(st rdf.SemanticType, v string) Value {
	return Value{st: st, s: v}
}

// TimeValue returns a DateTime cell.
func TimeValue(v time.Time) Value {
	return Value{st: rdf.TypeDateTime, t: v}
}

// IsNull reports whether the cell is the explicit null marker.
func (v Value) IsNull() bool { return v.null }

// Type returns the semantic type of the cell.
func (v Value) Type() rdf.SemanticType { return v.st }

// Bool returns the Boolean scalar. Valid only for non-null Boolean cells.
func (v Value) Bool() bool { return v.b }

// Int returns the Integer scalar.
func (v Value) Int() int64 { return v.i }

// Float returns the Float/Double scalar.
func (v Value) Float() float64 { return v.f }

// Str returns the String/URIReference scalar.
func (v Value) Str() string { return v.s }

// Time returns the DateTime scalar.
func (v Value) Time() time.Time { return v.t }

// Lexical re-serializes the cell to its RDF lexical form. Null cells render
// as the empty string.
func (v Value) Lexical() string {
	if v.null {
		return ""
	}
	switch v.st {
	case rdf.TypeBoolean:
		return strconv.FormatBool(v.b)
	case rdf.TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case rdf.TypeFloat, rdf.TypeDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case rdf.TypeDateTime:
		return v.t.Format(time.RFC3339)
	default:
		return v.s
	}
}

// Column is a named, uniformly-typed sequence of cells.
type Column struct {
	Name   string
	Type   rdf.SemanticType
	Values []Value
}

// TypedTable is the converter output: ordered columns of equal length, one
// row per binding row, same order. The caller owns the table after return.
type TypedTable struct {
	Columns []Column
}

// Len returns the row count.
func (t *TypedTable) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Column returns the named column, or an error if the table has no such
// column.
func (t *TypedTable) Column(name string) (*Column, error) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], nil
		}
	}
	return nil, fmt.Errorf("table has no column %q", name)
}

// Names returns the column names in projection order.
func (t *TypedTable) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
