package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/BeamLoad/internal/model"
)

// RenderChart writes an HTML page with a bar chart of width and height per
// level, with the vehicle width marked on the width series.
func RenderChart(w io.Writer, result model.CalculationResult, settings model.LoadSettings) error {
	if len(result.Layers) == 0 {
		return fmt.Errorf("no layers to chart")
	}

	levels := make([]string, len(result.Layers))
	widths := make([]opts.BarData, len(result.Layers))
	heights := make([]opts.BarData, len(result.Layers))
	weights := make([]opts.BarData, len(result.Layers))
	for i, l := range result.Layers {
		levels[i] = fmt.Sprintf("Level %d", l.Index+1)
		widths[i] = opts.BarData{Value: l.TotalWidth}
		heights[i] = opts.BarData{Value: l.MaxHeight}
		weights[i] = opts.BarData{Value: l.Weight()}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "BeamLoad load plan"}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s (%.0f cm)", settings.VehicleType, settings.MaxWidth),
			Subtitle: fmt.Sprintf("%d levels | %.2f t | %.1f cm high | %.1f%% width used",
				len(result.Layers), result.TotalWeight, result.TotalHeight, result.Utilization(settings.MaxWidth)),
		}),
	)

	bar.SetXAxis(levels).
		AddSeries("Width (cm)", widths,
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
				Name:  "Vehicle width",
				YAxis: settings.MaxWidth,
			})).
		AddSeries("Max height (cm)", heights).
		AddSeries("Weight (t)", weights)

	return bar.Render(w)
}

// ExportChart writes the chart page to path.
func ExportChart(path string, result model.CalculationResult, settings model.LoadSettings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := RenderChart(f, result, settings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
