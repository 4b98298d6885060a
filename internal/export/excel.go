package export

import (
	"fmt"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary   = "Summary"
	SheetLayers    = "Layers"
	SheetSlots     = "Slots"
	SheetMaterials = "Materials"
)

// ExportExcel writes the loading plan to an xlsx workbook with one sheet
// each for the summary, layers, slots and material list.
func ExportExcel(path string, result model.CalculationResult, settings model.LoadSettings) error {
	if len(result.Layers) == 0 {
		return fmt.Errorf("no layers to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetLayers, SheetSlots, SheetMaterials} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	status := "OK"
	if !result.IsSafe() {
		status = "BLOCKED"
	}
	summary := [][]interface{}{
		{"Vehicle", string(settings.VehicleType)},
		{"Max Width (cm)", settings.MaxWidth},
		{"Fixed Gap (cm)", settings.FixedGap},
		{"Wood Height (cm)", settings.WoodHeight},
		{"Layers", len(result.Layers)},
		{"Slots", result.SlotCount()},
		{"Pieces", result.PieceCount()},
		{"Total Weight (t)", result.TotalWeight},
		{"Total Height (cm)", result.TotalHeight},
		{"Max Width Used (cm)", result.MaxWidthUsed},
		{"Utilization (%)", result.Utilization(settings.MaxWidth)},
		{"Status", status},
	}
	for _, e := range result.Errors {
		summary = append(summary, []interface{}{"Error", e})
	}
	for _, n := range result.EngineeringNotes {
		summary = append(summary, []interface{}{"Note", n})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return err
	}

	layerRows := [][]interface{}{{"Level", "Slots", "Total Width (cm)", "Max Height (cm)", "Min Height (cm)", "Height Diff (cm)", "Weight (t)", "Priority"}}
	for _, l := range result.Layers {
		layerRows = append(layerRows, []interface{}{
			l.Index + 1, len(l.Slots), l.TotalWidth, l.MaxHeight, l.MinHeight, l.HeightDiff, l.Weight(), l.Priority,
		})
	}
	if err := writeTable(f, SheetLayers, layerRows, bold); err != nil {
		return err
	}

	slotRows := [][]interface{}{{"Level", "Position", "Bitola", "Pieces", "Paired", "Width (cm)", "Height (cm)", "Weight (t)", "Priority"}}
	for _, l := range result.Layers {
		for i, s := range l.Slots {
			slotRows = append(slotRows, []interface{}{
				l.Index + 1, i + 1, s.Bitola(), pieceLengths(s), s.Paired, s.Width, s.Height, s.Weight, s.Priority,
			})
		}
	}
	if err := writeTable(f, SheetSlots, slotRows, bold); err != nil {
		return err
	}

	matRows := [][]interface{}{{"Bitola", "Pieces", "6m Pieces", "12m Pieces", "Meters", "Weight (t)"}}
	for _, s := range model.SummarizeByBitola(result) {
		matRows = append(matRows, []interface{}{s.Bitola, s.Pieces, s.ShortPieces, s.LongPieces, s.Meters, s.Weight})
	}
	if err := writeTable(f, SheetMaterials, matRows, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// writeTable writes rows and styles the first one as a header.
func writeTable(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
