package export

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/physlab/internal/demo"
)

// WriteHTML renders f as a page of interactive ECharts figures, one chart
// per panel.
func WriteHTML(w io.Writer, f *demo.Frame) error {
	page := components.NewPage()
	page.PageTitle = f.Demo

	for _, p := range f.Panels {
		if f.Field != nil && f.Field.Panel == p.ID {
			page.AddCharts(fieldChart(f, p))
			continue
		}
		page.AddCharts(lineChart(f, p))
	}
	return page.Render(w)
}

func axisType(isLog bool) string {
	if isLog {
		return "log"
	}
	return "value"
}

func lineChart(f *demo.Frame, p demo.Panel) *charts.Line {
	line := charts.NewLine()
	x0, x1, y0, y1 := f.Bounds(p.ID)

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "900px",
			Height:          "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Title,
			Subtitle: scalarLine(f),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:  opts.Bool(true),
			Right: "5%",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: p.XLabel,
			Type: axisType(p.LogX),
			Min:  x0,
			Max:  x1,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: p.YLabel,
			Type: axisType(p.LogY),
			Min:  y0,
			Max:  y1,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	for _, c := range f.CurvesIn(p.ID) {
		style := opts.LineStyle{Width: 1.5}
		if c.Dashed {
			style.Type = "dashed"
		}
		line.AddSeries(c.Name, pairs(c.X, c.Y),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(style),
		)
	}
	for i, m := range f.MarkersIn(p.ID) {
		name := "guide"
		if i > 0 {
			name = ""
		}
		line.AddSeries(name, pairs([]float64{m.X0, m.X1}, []float64{m.Y0, m.Y1}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dotted", Color: "#888888"}),
		)
	}
	return line
}

func pairs(x, y []float64) []opts.LineData {
	data := make([]opts.LineData, len(x))
	for i := range x {
		data[i] = opts.LineData{Value: []interface{}{x[i], y[i]}}
	}
	return data
}

func fieldChart(f *demo.Frame, p demo.Panel) *charts.HeatMap {
	fl := f.Field
	hm := charts.NewHeatMap()

	xs := make([]string, len(fl.X))
	for i, v := range fl.X {
		xs[i] = tickLabel(v, false)
	}
	ys := make([]string, len(fl.Y))
	for i, v := range fl.Y {
		ys[i] = tickLabel(v, false)
	}

	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "640px",
			Height:          "640px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Title,
			Subtitle: scalarLine(f),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: p.XLabel, Type: "category", Data: xs}),
		charts.WithYAxisOpts(opts.YAxis{Name: p.YLabel, Type: "category", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(fl.Min),
			Max:        float32(fl.Max),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#000000", "#ffffff"},
			},
		}),
	)

	data := make([]opts.HeatMapData, 0, len(fl.X)*len(fl.Y))
	for r, row := range fl.Z {
		for c, z := range row {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, z}})
		}
	}
	hm.SetXAxis(xs).AddSeries("intensity", data)
	return hm
}
