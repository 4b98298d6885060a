package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BeamLoad/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a load plan report: a cross-section of the stacked
// layers on the vehicle followed by summary pages with the layer table,
// material list, engineering notes and any safety errors.
func ExportPDF(path string, result model.CalculationResult, settings model.LoadSettings) error {
	if len(result.Layers) == 0 {
		return fmt.Errorf("no layers to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderCrossSectionPage(pdf, result, settings)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderCrossSectionPage draws the front view of the load on the current page.
func renderCrossSectionPage(pdf *fpdf.Fpdf, result model.CalculationResult, settings model.LoadSettings) {
	contentW := pageWidth - marginLeft - marginRight

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Load Plan: %s (%.0f cm)", settings.VehicleType, settings.MaxWidth)
	pdf.CellFormat(contentW, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Layers: %d | Weight: %.2f t | Height: %.1f cm | Width used: %.0f cm (%.1f%%)",
		len(result.Layers), result.TotalWeight, result.TotalHeight, result.MaxWidthUsed,
		result.Utilization(settings.MaxWidth))
	pdf.CellFormat(contentW, 5, stats, "", 0, "L", false, 0, "")

	cs := LayoutCrossSection(result, settings)
	colors := colorIndex(result)

	drawWidth := contentW
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/cs.Width, drawHeight/math.Max(cs.Height, 1))

	canvasW := cs.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	floorY := drawAreaTop + drawHeight

	// toPage converts a cross-section rectangle to page coordinates.
	toPage := func(x, y, w, h float64) (float64, float64, float64, float64) {
		return offsetX + x*scale, floorY - (y+h)*scale, w * scale, h * scale
	}

	// Vehicle bed
	bedX := offsetX + (cs.Width-cs.MaxWidth)/2*scale
	pdf.SetFillColor(90, 90, 90)
	pdf.Rect(bedX, floorY, cs.MaxWidth*scale, 2, "F")

	// Timbers
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(140, 110, 70)
	pdf.SetLineWidth(0.2)
	for _, tb := range cs.Timbers {
		if tb.H <= 0 {
			continue
		}
		x, y, w, h := toPage(tb.X, tb.Y, tb.W, tb.H)
		pdf.Rect(x, y, w, h, "FD")
	}

	// Slots
	for _, ps := range cs.Slots {
		col := bitolaColors[colors[ps.Slot.Bitola()]%len(bitolaColors)]
		x, y, w, h := toPage(ps.X, ps.Y, ps.Slot.Width, ps.Slot.Height)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")

		// Paired slots carry two 6m pieces end to end; mark them with a diagonal.
		if ps.Slot.Paired {
			pdf.SetLineWidth(0.15)
			pdf.Line(x, y+h, x+w, y)
		}
	}

	// Vehicle width limits, drawn over the load so overruns are visible.
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	top := floorY - cs.Height*scale
	pdf.Line(bedX, top, bedX, floorY)
	pdf.Line(bedX+cs.MaxWidth*scale, top, bedX+cs.MaxWidth*scale, floorY)
	pdf.SetDashPattern([]float64{}, 0)

	// Layer numbers on the left
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	y := 0.0
	for _, layer := range result.Layers {
		mid := floorY - (y+settings.WoodHeight+layer.MaxHeight/2)*scale
		pdf.SetXY(marginLeft, mid-2)
		pdf.CellFormat(12, 4, fmt.Sprintf("L%d", layer.Index+1), "", 0, "L", false, 0, "")
		y += settings.WoodHeight + layer.MaxHeight
	}
	pdf.SetTextColor(0, 0, 0)

	drawBitolaLegend(pdf, colors, floorY+5)
}

// drawBitolaLegend renders the profile color legend below the drawing.
func drawBitolaLegend(pdf *fpdf.Fpdf, colors map[string]int, startY float64) {
	if len(colors) == 0 {
		return
	}

	ordered := make([]string, len(colors))
	for b, i := range colors {
		ordered[i] = b
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Profiles:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 22
	maxX := pageWidth - marginRight
	for i, b := range ordered {
		col := bitolaColors[i%len(bitolaColors)]
		labelW := pdf.GetStringWidth(b) + 6
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, b, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

// renderSummaryPage draws the layer table, material list, notes and settings.
// It continues on new pages when the content does not fit.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.CalculationResult, settings model.LoadSettings) {
	contentW := pageWidth - marginLeft - marginRight

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentW, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Safety status first, it decides whether the load may leave.
	if len(result.Errors) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		for _, e := range result.Errors {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(contentW, 7, e, "", 0, "L", false, 0, "")
			y += 7
		}
		pdf.SetTextColor(0, 0, 0)
		y += 3
	}

	y = sectionTitle(pdf, "Overall Statistics", y)
	stats := []struct {
		label string
		value string
	}{
		{"Layers", fmt.Sprintf("%d", len(result.Layers))},
		{"Slots / Pieces", fmt.Sprintf("%d / %d", result.SlotCount(), result.PieceCount())},
		{"Total Weight", fmt.Sprintf("%.3f t", result.TotalWeight)},
		{"Total Height", fmt.Sprintf("%.1f cm", result.TotalHeight)},
		{"Max Width Used", fmt.Sprintf("%.0f cm (%.1f%%)", result.MaxWidthUsed, result.Utilization(settings.MaxWidth))},
		{"Status", statusText(result)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range stats {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	// Layer breakdown, base first
	y = sectionTitle(pdf, "Layer Breakdown", y)
	colWidths := []float64{20, 25, 35, 35, 35, 30, 30}
	headers := []string{"Level", "Slots", "Width (cm)", "Max H (cm)", "Height Diff", "Weight (t)", "Priority"}
	y = tableHeader(pdf, colWidths, headers, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, layer := range result.Layers {
		if y+6 > pageHeight-marginBottom {
			pdf.AddPage()
			y = tableHeader(pdf, colWidths, headers, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		row := []string{
			fmt.Sprintf("%d", layer.Index+1),
			fmt.Sprintf("%d", len(layer.Slots)),
			fmt.Sprintf("%.0f", layer.TotalWidth),
			fmt.Sprintf("%.1f", layer.MaxHeight),
			fmt.Sprintf("%.1f", layer.HeightDiff),
			fmt.Sprintf("%.3f", layer.Weight()),
			fmt.Sprintf("%d", layer.Priority),
		}
		y = tableRow(pdf, colWidths, row, y, i%2 == 0)
	}
	y += 8

	// Material list
	summary := model.SummarizeByBitola(result)
	y = ensureSpace(pdf, y, 20)
	y = sectionTitle(pdf, "Material List", y)
	matWidths := []float64{55, 25, 25, 25, 30, 35}
	matHeaders := []string{"Bitola", "Pieces", "6m", "12m", "Meters", "Weight (t)"}
	y = tableHeader(pdf, matWidths, matHeaders, y)
	pdf.SetFont("Helvetica", "", 9)
	for i, s := range summary {
		if y+6 > pageHeight-marginBottom {
			pdf.AddPage()
			y = tableHeader(pdf, matWidths, matHeaders, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		row := []string{
			s.Bitola,
			fmt.Sprintf("%d", s.Pieces),
			fmt.Sprintf("%d", s.ShortPieces),
			fmt.Sprintf("%d", s.LongPieces),
			fmt.Sprintf("%.0f", s.Meters),
			fmt.Sprintf("%.3f", s.Weight),
		}
		y = tableRow(pdf, matWidths, row, y, i%2 == 0)
	}
	y += 8

	// Engineering notes
	if len(result.EngineeringNotes) > 0 {
		y = ensureSpace(pdf, y, 20)
		y = sectionTitle(pdf, "Engineering Notes", y)
		pdf.SetFont("Helvetica", "", 9)
		for _, note := range result.EngineeringNotes {
			y = ensureSpace(pdf, y, 5)
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(contentW-5, 5, "- "+note, "", 0, "L", false, 0, "")
			y += 5
		}
		y += 8
	}

	// Settings
	y = ensureSpace(pdf, y, 40)
	y = sectionTitle(pdf, "Load Settings", y)
	heightLimit := "disabled"
	if settings.EnableHeightLimit {
		heightLimit = fmt.Sprintf("%.0f cm", settings.MaxHeightLimit)
	}
	settingsItems := []struct {
		label string
		value string
	}{
		{"Vehicle", string(settings.VehicleType)},
		{"Max Width", fmt.Sprintf("%.0f cm", settings.MaxWidth)},
		{"Fixed Gap", fmt.Sprintf("%.1f cm", settings.FixedGap)},
		{"Wood Height", fmt.Sprintf("%.1f cm", settings.WoodHeight)},
		{"Height Limit", heightLimit},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentW, 4, "Generated by BeamLoad - Beam Truck Loading Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func sectionTitle(pdf *fpdf.Fpdf, title string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	return y + 9
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, headers []string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + 6
}

func tableRow(pdf *fpdf.Fpdf, widths []float64, cells []string, y float64, shaded bool) float64 {
	if shaded {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for i, c := range cells {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], 6, c, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + 6
}

// ensureSpace starts a new page when fewer than needed mm remain.
func ensureSpace(pdf *fpdf.Fpdf, y, needed float64) float64 {
	if y+needed > pageHeight-marginBottom {
		pdf.AddPage()
		return marginTop
	}
	return y
}

func statusText(result model.CalculationResult) string {
	if result.IsSafe() {
		return "OK"
	}
	return "BLOCKED"
}
