package cli

import (
	"fmt"

	"github.com/valeriy-chepelev/costsheet/internal/sheet"
	"github.com/xuri/excelize/v2"
)

// renderProjectXLSX writes the template fields of every participant of p as
// one workbook row, with the field names in the first row.
func renderProjectXLSX(p sheet.Project, outputPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := f.GetSheetName(0)
	names := sheet.FieldNames()

	header := make([]interface{}, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, pt := range p.Participants {
		fields := pt.Fields()
		row := make([]interface{}, len(names))
		for j, n := range names {
			row[j] = fields[n]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving %s: %w", outputPath, err)
	}
	return nil
}
