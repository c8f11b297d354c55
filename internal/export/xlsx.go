package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/physlab/internal/demo"
)

const summarySheet = "summary"

// WriteXLSX writes a summary sheet with parameters and derived values, one
// sheet per curve panel with x/y column pairs, and a matrix sheet for a field.
func WriteXLSX(w io.Writer, f *demo.Frame) error {
	x := excelize.NewFile()
	defer x.Close()

	x.SetSheetName("Sheet1", summarySheet)
	x.SetCellValue(summarySheet, "A1", "demo")
	x.SetCellValue(summarySheet, "B1", f.Demo)

	row := 3
	x.SetCellValue(summarySheet, cell(1, row), "parameter")
	x.SetCellValue(summarySheet, cell(2, row), "value")
	for _, k := range sortedKeys(f.Params) {
		row++
		x.SetCellValue(summarySheet, cell(1, row), k)
		x.SetCellValue(summarySheet, cell(2, row), f.Params[k])
	}

	row += 2
	x.SetCellValue(summarySheet, cell(1, row), "derived")
	x.SetCellValue(summarySheet, cell(2, row), "value")
	x.SetCellValue(summarySheet, cell(3, row), "unit")
	for _, s := range f.Scalars {
		row++
		x.SetCellValue(summarySheet, cell(1, row), s.Name)
		if finite(s.Value) {
			x.SetCellValue(summarySheet, cell(2, row), s.Value)
		} else {
			x.SetCellValue(summarySheet, cell(2, row), formatFloat(s.Value))
		}
		x.SetCellValue(summarySheet, cell(3, row), s.Unit)
	}

	for _, p := range f.Panels {
		curves := f.CurvesIn(p.ID)
		if len(curves) == 0 {
			continue
		}
		if _, err := x.NewSheet(p.ID); err != nil {
			return err
		}
		for i, c := range curves {
			col := 2*i + 1
			x.SetCellValue(p.ID, cell(col, 1), c.Name+" "+p.XLabel)
			x.SetCellValue(p.ID, cell(col+1, 1), c.Name)
			for j := range c.X {
				x.SetCellValue(p.ID, cell(col, j+2), c.X[j])
				x.SetCellValue(p.ID, cell(col+1, j+2), c.Y[j])
			}
		}
	}

	if fl := f.Field; fl != nil {
		sheet := fl.Panel
		if _, err := x.NewSheet(sheet); err != nil {
			return err
		}
		x.SetCellValue(sheet, "A1", "y \\ x")
		for c, v := range fl.X {
			x.SetCellValue(sheet, cell(c+2, 1), v)
		}
		for r, zr := range fl.Z {
			x.SetCellValue(sheet, cell(1, r+2), fl.Y[r])
			for c, z := range zr {
				x.SetCellValue(sheet, cell(c+2, r+2), z)
			}
		}
	}

	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write xlsx: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
