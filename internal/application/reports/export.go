package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	monthlySheet = "Monthly kWh"
	stagesSheet  = "Stages"
)

// ExportFilename is the download name for a report workbook.
func ExportFilename(year int) string {
	return fmt.Sprintf("axiso-report-%d.xlsx", year)
}

// Workbook renders r as an xlsx file with one sheet per section.
func Workbook(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(stagesSheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#8CC63F"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	// summary
	f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Project report %d", r.Year))
	f.SetCellStyle(summarySheet, "A1", "A1", titleStyle)
	rows := [][]interface{}{
		{"Customers", r.Totals.Customers},
		{"Projects", r.Totals.Projects},
		{"Active projects", r.Totals.Active},
		{"Completed projects", r.Totals.Completed},
		{"Total kWh", r.Totals.Kwh},
	}
	if r.Totals.Revenue != nil {
		rev, _ := r.Totals.Revenue.Float64()
		rows = append(rows, []interface{}{"Revenue", rev})
	}
	for i, row := range rows {
		if err := setRow(f, summarySheet, i+3, row); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(summarySheet, "A", "A", 22)

	// monthly kWh
	if err := header(f, monthlySheet, headerStyle, "Month", "kWh"); err != nil {
		return nil, err
	}
	for i, m := range r.MonthlyKwh {
		if err := setRow(f, monthlySheet, i+2, []interface{}{m.Month, m.Kwh}); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(monthlySheet, "A", "A", 14)

	// stages
	if err := header(f, stagesSheet, headerStyle, "Stage", "Group", "Projects"); err != nil {
		return nil, err
	}
	for i, st := range r.Stages {
		if err := setRow(f, stagesSheet, i+2, []interface{}{st.Stage, st.Group, st.Count}); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(stagesSheet, "A", "A", 44)
	f.SetColWidth(stagesSheet, "B", "B", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func header(f *excelize.File, sheet string, style int, labels ...string) error {
	for i, l := range labels {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, l)
		f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
