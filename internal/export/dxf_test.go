package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_WritesReadableDrawing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	result, settings := twoLayerResult()

	if err := ExportDXF(path, result, settings); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot read back DXF: %v", err)
	}

	lines := 0
	maxY := 0.0
	for _, ent := range drawing.Entities() {
		if l, ok := ent.(*entity.Line); ok {
			lines++
			maxY = max(maxY, l.Start[1], l.End[1])
		}
	}

	// bed + 2 limits, 2 timbers and 3 slots as 4-line rectangles
	want := 3 + 4*2 + 4*3
	if lines != want {
		t.Errorf("expected %d lines, got %d", want, lines)
	}
	if maxY != result.TotalHeight {
		t.Errorf("expected drawing height %.1f, got %.1f", result.TotalHeight, maxY)
	}
}

func TestExportDXF_SkipsZeroHeightTimbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	result, settings := twoLayerResult()
	settings.WoodHeight = 0

	if err := ExportDXF(path, result, settings); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot read back DXF: %v", err)
	}
	lines := 0
	for _, ent := range drawing.Entities() {
		if _, ok := ent.(*entity.Line); ok {
			lines++
		}
	}
	if want := 3 + 4*3; lines != want {
		t.Errorf("expected %d lines, got %d", want, lines)
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := ExportDXF(path, model.CalculationResult{}, model.DefaultSettings()); err == nil {
		t.Fatal("expected error for empty result")
	}
}
