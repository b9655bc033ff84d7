// Package export serializes typed tables to parquet, CSV and JSON records.
package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/statnett/cimsparql/pkg/rdf"
	"github.com/statnett/cimsparql/pkg/table"
)

// parquetNode maps a column's semantic type to a parquet leaf. Every column
// is optional since any binding can be absent.
func parquetNode(st rdf.SemanticType) parquet.Node {
	switch st {
	case rdf.TypeBoolean:
		return parquet.Optional(parquet.Leaf(parquet.BooleanType))
	case rdf.TypeInteger:
		return parquet.Optional(parquet.Int(64))
	case rdf.TypeFloat, rdf.TypeDouble:
		return parquet.Optional(parquet.Leaf(parquet.DoubleType))
	case rdf.TypeDateTime:
		return parquet.Optional(parquet.Timestamp(parquet.Millisecond))
	default:
		return parquet.Optional(parquet.String())
	}
}

// parquetValue converts one table value to the Go value the writer expects
// for its column node. Nulls become nil.
func parquetValue(v table.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Type() {
	case rdf.TypeBoolean:
		return v.Bool()
	case rdf.TypeInteger:
		return v.Int()
	case rdf.TypeFloat, rdf.TypeDouble:
		return v.Float()
	case rdf.TypeDateTime:
		return v.Time().UnixMilli()
	default:
		return v.Str()
	}
}

// WriteParquet writes the table to a parquet file at path.
func WriteParquet(path string, tbl *table.TypedTable) error {
	group := parquet.Group{}
	for _, col := range tbl.Columns {
		group[col.Name] = parquetNode(col.Type)
	}
	schema := parquet.NewSchema("table", group)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[map[string]any](f, schema)
	rows := make([]map[string]any, tbl.Len())
	for i := range rows {
		row := make(map[string]any, len(tbl.Columns))
		for _, col := range tbl.Columns {
			if v := parquetValue(col.Values[i]); v != nil {
				row[col.Name] = v
			}
		}
		rows[i] = row
	}
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
