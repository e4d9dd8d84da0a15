package assessment

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var sheetHeader = []string{"Student ID", "Name", "Test", "Seminar", "Assignment", "Attendance", "Total"}

// BuildMarkSheet renders a subject's internal assessment record as an .xlsx
// mark sheet, one row per enrolled student.
func BuildMarkSheet(in Internal, subjectName string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	if err := f.SetCellValue(sheet, "A1", subjectName); err != nil {
		return nil, err
	}
	for col, title := range sheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err = f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, mark := range in.Marks {
		row := []interface{}{
			mark.Student.Hex(),
			mark.Name,
			mark.Test,
			mark.Seminar,
			mark.Assignment,
			mark.Attendance,
			mark.Total,
		}
		cell := fmt.Sprintf("A%d", i+3)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
