package export

// Column is one display column of an exported entity.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Table is a flat tabular rendering of a row set, ready for a spreadsheet writer.
type Table struct {
	Headers []string
	Rows    [][]any
}

func Shape[T any](rows []T, columns []Column[T]) Table {
	table := Table{
		Headers: make([]string, len(columns)),
		Rows:    make([][]any, 0, len(rows)),
	}
	for i, c := range columns {
		table.Headers[i] = c.Header
	}
	for _, row := range rows {
		cells := make([]any, len(columns))
		for i, c := range columns {
			cells[i] = c.Value(row)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
