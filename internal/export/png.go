package export

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/physlab/internal/demo"
)

const (
	pngWidth       = 8 * vg.Inch
	pngPanelHeight = 3 * vg.Inch
	pngDPI         = 150
)

// WritePNG renders every panel of f into one image, stacked vertically.
func WritePNG(w io.Writer, f *demo.Frame) error {
	if len(f.Panels) == 0 {
		return fmt.Errorf("export: frame %s has no panels", f.Demo)
	}
	rows := make([][]*plot.Plot, len(f.Panels))
	for i, p := range f.Panels {
		pl, err := panelPlot(f, p)
		if err != nil {
			return fmt.Errorf("panel %s: %w", p.ID, err)
		}
		rows[i] = []*plot.Plot{pl}
	}

	c := vgimg.NewWith(
		vgimg.UseWH(pngWidth, pngPanelHeight*vg.Length(len(rows))),
		vgimg.UseDPI(pngDPI),
	)
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows: len(rows),
		Cols: 1,
		PadX: vg.Points(8),
		PadY: vg.Points(8),
	}
	canvases := plot.Align(rows, tiles, dc)
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}

func panelPlot(f *demo.Frame, p demo.Panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	if p.LogX {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if p.LogY {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	x0, x1, y0, y1 := f.Bounds(p.ID)
	pl.X.Min, pl.X.Max = x0, x1
	pl.Y.Min, pl.Y.Max = y0, y1

	if f.Field != nil && f.Field.Panel == p.ID {
		hm := plotter.NewHeatMap(fieldGrid{f.Field}, palette.Heat(16, 1))
		hm.Min, hm.Max = f.Field.Min, f.Field.Max
		pl.Add(hm)
	}

	for i, c := range f.CurvesIn(p.ID) {
		pts := make(plotter.XYs, len(c.X))
		for j := range c.X {
			pts[j].X, pts[j].Y = c.X[j], c.Y[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		if c.Dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		pl.Add(line)
		pl.Legend.Add(c.Name, line)
	}

	for _, m := range f.MarkersIn(p.ID) {
		line, err := plotter.NewLine(plotter.XYs{{X: m.X0, Y: m.Y0}, {X: m.X1, Y: m.Y1}})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = color.Gray{Y: 128}
		line.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		pl.Add(line)
	}
	pl.Legend.Top = true
	return pl, nil
}

// fieldGrid adapts a demo.Field to plotter.GridXYZ.
type fieldGrid struct {
	f *demo.Field
}

func (g fieldGrid) Dims() (c, r int)   { return len(g.f.X), len(g.f.Y) }
func (g fieldGrid) Z(c, r int) float64 { return g.f.Z[r][c] }
func (g fieldGrid) X(c int) float64    { return g.f.X[c] }
func (g fieldGrid) Y(r int) float64    { return g.f.Y[r] }
