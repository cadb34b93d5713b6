package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout  = "2006-01-02 15:04:05"
)

// WriteXLSX encodes table as a single-sheet workbook.
func WriteXLSX(w io.Writer, sheetName string, table Table) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetName, err)
	}

	header := sheet.AddRow()
	for _, h := range table.Headers {
		header.AddCell().SetString(h)
	}

	for _, cells := range table.Rows {
		row := sheet.AddRow()
		for _, value := range cells {
			setCell(row.AddCell(), value)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setCell(cell *xlsx.Cell, value any) {
	switch v := value.(type) {
	case nil:
		cell.SetString("")
	case string:
		cell.SetString(v)
	case time.Time:
		cell.SetString(v.Format(timeLayout))
	case *time.Time:
		if v == nil {
			cell.SetString("")
			return
		}
		cell.SetString(v.Format(timeLayout))
	case bool:
		cell.SetBool(v)
	case int:
		cell.SetInt(v)
	case int64:
		cell.SetInt64(v)
	case uint:
		cell.SetInt64(int64(v))
	case float64:
		cell.SetFloat(v)
	case fmt.Stringer:
		cell.SetString(v.String())
	default:
		cell.SetValue(v)
	}
}
