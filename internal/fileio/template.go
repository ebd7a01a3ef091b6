package fileio

import (
	"io"

	excelize "github.com/xuri/excelize/v2"
)

// TemplateHeaders is the header row of the downloadable workbook template.
var TemplateHeaders = []string{"CVE_MUN", "NOMBRE DEL MUNICIPIO", "MATRICULA"}

// WriteTemplate writes an .xlsx whose first sheet lists one row per region.
func WriteTemplate(w io.Writer, regions []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(TemplateHeaders))
	for i, h := range TemplateHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, id := range regions {
		cell, err := excelize.CoordinatesToCellName(2, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, id); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", "B", 32); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
