package export

import (
	"github.com/statnett/cimsparql/pkg/rdf"
	"github.com/statnett/cimsparql/pkg/table"
)

// Records converts the table to one map per row for JSON serialization.
// Null values appear as explicit nulls so every row carries every column.
func Records(tbl *table.TypedTable) []map[string]any {
	records := make([]map[string]any, tbl.Len())
	for row := range records {
		record := make(map[string]any, len(tbl.Columns))
		for _, col := range tbl.Columns {
			record[col.Name] = jsonValue(col.Values[row])
		}
		records[row] = record
	}
	return records
}

func jsonValue(v table.Value) any {
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
		return v.Time()
	default:
		return v.Str()
	}
}
