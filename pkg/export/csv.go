package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/statnett/cimsparql/pkg/table"
)

// WriteCSV writes the table to w with a header row. Null values render as
// empty fields; everything else uses its lexical form.
func WriteCSV(w io.Writer, tbl *table.TypedTable) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(tbl.Columns))
	for i, col := range tbl.Columns {
		header[i] = col.Name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(tbl.Columns))
	for row := 0; row < tbl.Len(); row++ {
		for i, col := range tbl.Columns {
			v := col.Values[row]
			if v.IsNull() {
				record[i] = ""
			} else {
				record[i] = v.Lexical()
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
