package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/physlab/internal/demo"
)

const (
	svgWidth  = 720
	svgPanelH = 260
	svgMargin = 56
)

var svgPalette = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd"}

// svgAxes maps data coordinates of one panel into its pixel box.
type svgAxes struct {
	left, top, width, height float64
	x0, x1, y0, y1           float64
	logX, logY               bool
}

func newSVGAxes(f *demo.Frame, p demo.Panel, top float64) svgAxes {
	x0, x1, y0, y1 := f.Bounds(p.ID)
	a := svgAxes{
		left:   svgMargin,
		top:    top + svgMargin/2,
		width:  svgWidth - 1.5*svgMargin,
		height: svgPanelH - svgMargin,
		logX:   p.LogX,
		logY:   p.LogY,
	}
	a.x0, a.x1 = a.scaleX(x0), a.scaleX(x1)
	a.y0, a.y1 = a.scaleY(y0), a.scaleY(y1)
	if a.x1 == a.x0 {
		a.x1 = a.x0 + 1
	}
	if a.y1 == a.y0 {
		a.y1 = a.y0 + 1
	}
	return a
}

func (a svgAxes) scaleX(v float64) float64 {
	if a.logX {
		return math.Log10(v)
	}
	return v
}

func (a svgAxes) scaleY(v float64) float64 {
	if a.logY {
		return math.Log10(v)
	}
	return v
}

func (a svgAxes) point(x, y float64) (float64, float64) {
	px := a.left + (a.scaleX(x)-a.x0)/(a.x1-a.x0)*a.width
	py := a.top + a.height - (a.scaleY(y)-a.y0)/(a.y1-a.y0)*a.height
	return px, py
}

// WriteSVG draws every panel of f stacked vertically.
func WriteSVG(w io.Writer, f *demo.Frame) error {
	height := float64(len(f.Panels))*svgPanelH + svgMargin
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%.0f" viewBox="0 0 %d %.0f" font-family="sans-serif" font-size="11">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, svgWidth, height, svgWidth, height))

	for i, p := range f.Panels {
		a := newSVGAxes(f, p, float64(i)*svgPanelH)
		sb.WriteString(fmt.Sprintf(`<g id="%s">
<clipPath id="clip-%s"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath>
`, p.ID, p.ID, a.left, a.top, a.width, a.height))

		if f.Field != nil && f.Field.Panel == p.ID {
			writeSVGField(&sb, a, f.Field)
		}

		sb.WriteString(fmt.Sprintf(`<g clip-path="url(#clip-%s)" fill="none" stroke-width="1.5">
`, p.ID))
		for j, c := range f.CurvesIn(p.ID) {
			writeSVGCurve(&sb, a, c, svgPalette[j%len(svgPalette)])
		}
		for _, m := range f.MarkersIn(p.ID) {
			x0, y0 := a.point(m.X0, m.Y0)
			x1, y1 := a.point(m.X1, m.Y1)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888888" stroke-dasharray="4 3"/>
`, x0, y0, x1, y1))
		}
		sb.WriteString("</g>\n")

		writeSVGFrame(&sb, a, p)
		sb.WriteString("</g>\n")
	}

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.0f" fill="#444444">%s</text>
`, svgMargin, height-svgMargin/4, svgEscape(scalarLine(f))))
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSVGCurve(sb *strings.Builder, a svgAxes, c demo.Curve, color string) {
	if len(c.X) < 2 {
		return
	}
	dash := ""
	if c.Dashed {
		dash = ` stroke-dasharray="6 4"`
	}
	sb.WriteString(fmt.Sprintf(`<path stroke="%s"%s d="M`, color, dash))
	for i := range c.X {
		x, y := a.point(c.X[i], c.Y[i])
		if i > 0 {
			sb.WriteString(" L")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString(`"/>
`)
}

func writeSVGField(sb *strings.Builder, a svgAxes, fl *demo.Field) {
	rows := len(fl.Z)
	if rows == 0 {
		return
	}
	cols := len(fl.Z[0])
	cw, ch := a.width/float64(cols), a.height/float64(rows)
	span := fl.Max - fl.Min
	if span == 0 {
		span = 1
	}
	sb.WriteString("<g shape-rendering=\"crispEdges\">\n")
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			level := int(math.Round(255 * (fl.Z[r][c] - fl.Min) / span))
			level = max(0, min(255, level))
			// row 0 is the lowest y
			y := a.top + a.height - float64(r+1)*ch
			sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#%02x%02x%02x"/>
`, a.left+float64(c)*cw, y, cw+0.05, ch+0.05, level, level, level))
		}
	}
	sb.WriteString("</g>\n")
}

func writeSVGFrame(sb *strings.Builder, a svgAxes, p demo.Panel) {
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#333333"/>
<text x="%.1f" y="%.1f" font-size="13" font-weight="bold">%s</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
<text x="%.1f" y="%.1f">%s</text>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
`,
		a.left, a.top, a.width, a.height,
		a.left, a.top-6, svgEscape(p.Title),
		a.left+a.width/2, a.top+a.height+28, svgEscape(p.XLabel),
		a.left-4, a.top+10, tickLabel(a.y1, a.logY),
		a.left-4, a.top+a.height, tickLabel(a.y0, a.logY),
		a.left, a.top+a.height+14, tickLabel(a.x0, a.logX),
		a.left+a.width, a.top+a.height+14, tickLabel(a.x1, a.logX),
	))
}

// tickLabel formats an axis end; log axes hold exponents.
func tickLabel(v float64, isLog bool) string {
	if isLog {
		return fmt.Sprintf("1e%.0f", v)
	}
	return fmt.Sprintf("%.3g", v)
}

func scalarLine(f *demo.Frame) string {
	parts := make([]string, 0, len(f.Scalars))
	for _, s := range f.Scalars {
		text := fmt.Sprintf("%s = %.4g", s.Name, s.Value)
		if s.Unit != "" {
			text += " " + s.Unit
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "   ")
}

var svgReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func svgEscape(s string) string { return svgReplacer.Replace(s) }
