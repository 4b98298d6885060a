package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BeamLoad/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each bundle tag's QR code.
type LabelInfo struct {
	Bitola   string  `json:"bitola"`
	Layer    int     `json:"layer"`    // 1-based, 1 = base
	Position int     `json:"position"` // 1-based from the left
	Pieces   int     `json:"pieces"`
	Lengths  string  `json:"lengths"` // e.g. "6m+6m" or "12m"
	Weight   float64 `json:"weight_t"`
	Priority int     `json:"priority"`
	Paired   bool    `json:"paired"`
}

// Tag sheet geometry in mm: Letter stock with 3 x 10 tags of 66.7 x 25.4,
// the common address label size.
const (
	sheetTop      = 12.7
	sheetLeft     = 4.8
	tagWidth      = 66.7
	tagHeight     = 25.4
	tagColumns    = 3
	labelsPerPage = tagColumns * 10
	qrSide        = 20.0
	tagInset      = 2.0
)

// tagOrigin returns the top-left corner of the n-th tag on its page.
func tagOrigin(n int) (x, y float64) {
	slot := n % labelsPerPage
	return sheetLeft + float64(slot%tagColumns)*tagWidth, sheetTop + float64(slot/tagColumns)*tagHeight
}

// ExportLabels writes one QR-coded tag per slot so each bundle can be checked
// against its level and position while the truck is loaded.
func ExportLabels(path string, result model.CalculationResult) error {
	tags := CollectLabelInfos(result)
	if len(tags) == 0 {
		return fmt.Errorf("no slots to generate labels for")
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	for n, tag := range tags {
		if n%labelsPerPage == 0 {
			doc.AddPage()
		}
		x, y := tagOrigin(n)
		if err := drawTag(doc, x, y, tag); err != nil {
			return fmt.Errorf("label L%d-P%d: %w", tag.Layer, tag.Position, err)
		}
	}
	return doc.OutputFileAndClose(path)
}

// tagLine is one row of text on a tag, placed dy mm below the inset.
type tagLine struct {
	dy    float64
	h     float64
	style string
	size  float64
	grey  int
	text  string
}

func drawTag(doc *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}

	doc.SetDrawColor(200, 200, 200)
	doc.SetLineWidth(0.1)
	doc.Rect(x, y, tagWidth, tagHeight, "D")

	name := fmt.Sprintf("qr_%d_%d", info.Layer, info.Position)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	doc.ImageOptions(name, x+tagWidth-qrSide-tagInset, y+(tagHeight-qrSide)/2, qrSide, qrSide, false, opts, 0, "")

	textW := tagWidth - qrSide - 3*tagInset
	lines := []tagLine{
		{0, 4.5, "B", 9, 0, ""},
		{5, 3.5, "", 7, 0, fmt.Sprintf("%s | %.3f t", info.Lengths, info.Weight)},
		{9, 3, "", 6, 100, fmt.Sprintf("Level %d, position %d", info.Layer, info.Position)},
		{12.5, 3, "", 6, 100, fmt.Sprintf("Priority %d", info.Priority)},
	}
	for i, l := range lines {
		doc.SetFont("Helvetica", l.style, l.size)
		doc.SetTextColor(l.grey, l.grey, l.grey)
		if i == 0 {
			l.text = fitText(doc, info.Bitola, textW)
		}
		doc.SetXY(x+tagInset, y+tagInset+l.dy)
		doc.CellFormat(textW, l.h, l.text, "", 1, "L", false, 0, "")
	}
	doc.SetTextColor(0, 0, 0)
	return nil
}

// fitText shortens s with an ellipsis until it fits in width at the current font.
func fitText(doc *fpdf.Fpdf, s string, width float64) string {
	if doc.GetStringWidth(s) <= width {
		return s
	}
	for s != "" && doc.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos extracts one label per slot, base layer first and left
// to right inside each layer.
func CollectLabelInfos(result model.CalculationResult) []LabelInfo {
	var labels []LabelInfo
	for _, layer := range result.Layers {
		for i, s := range layer.Slots {
			labels = append(labels, LabelInfo{
				Bitola:   s.Bitola(),
				Layer:    layer.Index + 1,
				Position: i + 1,
				Pieces:   len(s.Pieces),
				Lengths:  pieceLengths(s),
				Weight:   s.Weight,
				Priority: s.Priority,
				Paired:   s.Paired,
			})
		}
	}
	return labels
}

// pieceLengths describes the pieces of a slot, e.g. "6m+6m".
func pieceLengths(s model.Slot) string {
	lengths := make([]string, len(s.Pieces))
	for i, p := range s.Pieces {
		lengths[i] = p.Length.String()
	}
	return strings.Join(lengths, "+")
}
