package sink

import (
	"bytes"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Sheet names in the furniture schedule.
const (
	SheetLayout  = "Layout"
	SheetSummary = "Summary"
)

var layoutHeaders = []string{"Kind", "Index", "X (cm)", "Y (cm)", "Width (cm)", "Height (cm)", "Orientation"}

// RenderXLSX writes a furniture schedule: one row per desk, table and chair
// on the Layout sheet, and room totals on the Summary sheet.
func RenderXLSX(res floor.Result, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetLayout)
	if err != nil {
		return nil, wrapXLSX(err, "create sheet")
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, wrapXLSX(err, "create sheet")
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, wrapXLSX(err, "delete default sheet")
	}
	f.SetActiveSheet(index)

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, wrapXLSX(err, "create header style")
	}

	if err := writeRow(f, SheetLayout, 1, toAny(layoutHeaders)); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(layoutHeaders), 1)
	if err := f.SetCellStyle(SheetLayout, "A1", last, header); err != nil {
		return nil, wrapXLSX(err, "set header style")
	}
	if err := f.SetColWidth(SheetLayout, "A", "G", 14); err != nil {
		return nil, wrapXLSX(err, "set column width")
	}

	row := 2
	if res.Desk != nil {
		if err := writeRow(f, SheetLayout, row, entityRow(*res.Desk, 1, "")); err != nil {
			return nil, err
		}
		row++
	}
	for i, t := range res.Tables {
		orient := ""
		if i < len(res.Slots) {
			orient = res.Slots[i].Orientation.String()
		}
		if err := writeRow(f, SheetLayout, row, entityRow(t, i+1, orient)); err != nil {
			return nil, err
		}
		row++
	}
	for i, ch := range res.Chairs {
		if err := writeRow(f, SheetLayout, row, entityRow(ch, i+1, "")); err != nil {
			return nil, err
		}
		row++
	}

	if err := f.SetPanes(SheetLayout, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, wrapXLSX(err, "freeze panes")
	}

	summary := [][]any{
		{"Title", c.title},
		{"Room width (cm)", res.Room.Width},
		{"Room depth (cm)", res.Room.Height},
		{"Slots", len(res.Slots)},
		{"Tables", len(res.Tables)},
		{"Chairs", len(res.Chairs)},
		{"Dropped chairs", res.DroppedChairs()},
		{"Desk", res.Desk != nil},
	}
	for i, values := range summary {
		if err := writeRow(f, SheetSummary, i+1, values); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "A"+strconv.Itoa(len(summary)), header); err != nil {
		return nil, wrapXLSX(err, "set summary style")
	}
	if err := f.SetColWidth(SheetSummary, "A", "B", 20); err != nil {
		return nil, wrapXLSX(err, "set column width")
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, wrapXLSX(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func entityRow(e floor.Entity, index int, orientation string) []any {
	return []any{Label(e.Kind), index, e.X, e.Y, e.W, e.H, orientation}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return wrapXLSX(err, "row %d", row)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return wrapXLSX(err, "write row %d", row)
	}
	return nil
}

func wrapXLSX(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInternal, err, "xlsx: "+format, args...)
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
