package export

import (
	"fmt"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// DXF layer names. Units are centimetres, origin at the left end of the
// vehicle bed.
const (
	DXFLayerVehicle = "VEHICLE"
	DXFLayerTimber  = "TIMBER"
	DXFLayerBeams   = "BEAMS"
	DXFLayerText    = "TEXT"
)

// ExportDXF writes the load cross-section as a DXF drawing for CAD review.
// Slots and timbers are closed rectangles of LINE entities; the vehicle bed
// and its width limits are drawn on their own layer.
func ExportDXF(path string, result model.CalculationResult, settings model.LoadSettings) error {
	if len(result.Layers) == 0 {
		return fmt.Errorf("no layers to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{DXFLayerVehicle, color.Red},
		{DXFLayerTimber, color.Yellow},
		{DXFLayerBeams, color.Cyan},
		{DXFLayerText, color.White},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	cs := LayoutCrossSection(result, settings)
	bedX := (cs.Width - cs.MaxWidth) / 2

	if err := d.ChangeLayer(DXFLayerVehicle); err != nil {
		return err
	}
	if _, err := d.Line(bedX, 0, 0, bedX+cs.MaxWidth, 0, 0); err != nil {
		return err
	}
	for _, x := range []float64{bedX, bedX + cs.MaxWidth} {
		if _, err := d.Line(x, 0, 0, x, cs.Height, 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(DXFLayerTimber); err != nil {
		return err
	}
	for _, tb := range cs.Timbers {
		if tb.H <= 0 {
			continue
		}
		if err := dxfRect(d, tb.X, tb.Y, tb.W, tb.H); err != nil {
			return fmt.Errorf("timber level %d: %w", tb.Layer+1, err)
		}
	}

	if err := d.ChangeLayer(DXFLayerBeams); err != nil {
		return err
	}
	for _, ps := range cs.Slots {
		if err := dxfRect(d, ps.X, ps.Y, ps.Slot.Width, ps.Slot.Height); err != nil {
			return fmt.Errorf("slot L%d-P%d: %w", ps.Layer+1, ps.Index+1, err)
		}
	}

	if err := d.ChangeLayer(DXFLayerText); err != nil {
		return err
	}
	for _, ps := range cs.Slots {
		h := min(ps.Slot.Width, ps.Slot.Height) / 6
		if _, err := d.Text(ps.Slot.Bitola(), ps.X+1, ps.Y+ps.Slot.Height/2, 0, h); err != nil {
			return err
		}
	}
	title := fmt.Sprintf("%s %.0fcm - %d levels, %.1fcm, %.2ft",
		settings.VehicleType, settings.MaxWidth, len(result.Layers), result.TotalHeight, result.TotalWeight)
	if _, err := d.Text(title, bedX, cs.Height+10, 0, 5); err != nil {
		return err
	}

	return d.SaveAs(path)
}

// dxfRect draws an axis-aligned rectangle as four lines.
func dxfRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
