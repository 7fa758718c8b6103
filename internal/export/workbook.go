package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fleetpack/truckload/internal/model"
)

// LoadSequenceWorkbook writes the loading sequence to an Excel workbook, one
// row per box in load-in order, so a dock crew can follow it without any
// other tooling.
func LoadSequenceWorkbook(path string, sequence []model.PlacedBox) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Loading Sequence"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Seq", "Box ID", "Label", "Destination", "Zone", "Fragile", "Weight (kg)", "X", "Y", "Z", "Orientation"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, p := range sequence {
		row := i + 2
		values := []interface{}{
			i + 1,
			p.Box.ID,
			p.Box.Label,
			p.Box.Destination.String(),
			p.Box.TemperatureZone.String(),
			p.Box.IsFragile,
			p.Box.Weight,
			p.Position.X,
			p.Position.Y,
			p.Position.Z,
			string(p.Orientation),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
