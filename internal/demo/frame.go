package demo

// Panel is one set of axes of a demo figure.
type Panel struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	LogX   bool   `json:"log_x"`
	LogY   bool   `json:"log_y"`
	// YMin/YMax fix the vertical range; equal values mean autoscale.
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Curve is a sampled sequence drawn in a panel; X and Y have equal length.
type Curve struct {
	Name   string    `json:"name"`
	Panel  string    `json:"panel"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Dashed bool      `json:"dashed,omitempty"`
}

// Marker is a straight reference segment, e.g. a half-life guide line.
type Marker struct {
	Panel string  `json:"panel"`
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
}

// Scalar is a value derived from the parameters alone.
type Scalar struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Field is a 2-D scalar field, Z[row][col] at (X[col], Y[row]).
type Field struct {
	Panel string      `json:"panel"`
	X     []float64   `json:"x"`
	Y     []float64   `json:"y"`
	Z     [][]float64 `json:"z"`
	Min   float64     `json:"min"`
	Max   float64     `json:"max"`
}

// Frame is everything a display needs to redraw a demo after a change.
type Frame struct {
	Demo    string             `json:"demo"`
	Params  map[string]float64 `json:"params"`
	Panels  []Panel            `json:"panels"`
	Curves  []Curve            `json:"curves"`
	Markers []Marker           `json:"markers,omitempty"`
	Field   *Field             `json:"field,omitempty"`
	Scalars []Scalar           `json:"scalars"`
}

func (f *Frame) Panel(id string) (Panel, bool) {
	for _, p := range f.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

func (f *Frame) Curve(name string) (Curve, bool) {
	for _, c := range f.Curves {
		if c.Name == name {
			return c, true
		}
	}
	return Curve{}, false
}

// CurvesIn returns the curves drawn in panel id, in frame order.
func (f *Frame) CurvesIn(id string) []Curve {
	var out []Curve
	for _, c := range f.Curves {
		if c.Panel == id {
			out = append(out, c)
		}
	}
	return out
}

func (f *Frame) MarkersIn(id string) []Marker {
	var out []Marker
	for _, m := range f.Markers {
		if m.Panel == id {
			out = append(out, m)
		}
	}
	return out
}

func (f *Frame) Scalar(name string) (Scalar, bool) {
	for _, s := range f.Scalars {
		if s.Name == name {
			return s, true
		}
	}
	return Scalar{}, false
}

// Bounds returns the data extent of panel id along x and the display range
// along y. An unset y range falls back to the data extent.
func (f *Frame) Bounds(id string) (x0, x1, y0, y1 float64) {
	p, _ := f.Panel(id)
	first := true
	grow := func(xs, ys []float64) {
		for i := range xs {
			if first {
				x0, x1, y0, y1 = xs[i], xs[i], ys[i], ys[i]
				first = false
				continue
			}
			x0, x1 = min(x0, xs[i]), max(x1, xs[i])
			y0, y1 = min(y0, ys[i]), max(y1, ys[i])
		}
	}
	for _, c := range f.CurvesIn(id) {
		grow(c.X, c.Y)
	}
	if f.Field != nil && f.Field.Panel == id {
		fx, fy := f.Field.X, f.Field.Y
		if len(fx) > 0 && len(fy) > 0 {
			grow([]float64{fx[0], fx[len(fx)-1]}, []float64{fy[0], fy[len(fy)-1]})
		}
	}
	if p.YMax > p.YMin {
		y0, y1 = p.YMin, p.YMax
	}
	return x0, x1, y0, y1
}
