package viz

import (
	"strings"

	"github.com/san-kum/physlab/internal/demo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		b.WriteString(string(row))
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FieldMode selects how a 2-D field is drawn in the terminal.
type FieldMode int

const (
	FieldShade FieldMode = iota
	FieldBraille
)

func (m FieldMode) String() string {
	if m == FieldBraille {
		return "braille"
	}
	return "shade"
}

var shadeRamp = []rune(" .:-=+*#%@")

// RenderField draws fl into a cols x rows character block. Shade mode maps
// intensity to a character ramp; braille mode lights every sub-pixel whose
// intensity is above the midpoint of the field range.
func RenderField(fl *demo.Field, cols, rows int, mode FieldMode) string {
	if fl == nil || len(fl.Z) == 0 || cols < 1 || rows < 1 {
		return ""
	}
	span := fl.Max - fl.Min
	if span == 0 {
		span = 1
	}
	// sample maps a screen position in [0, 1)² onto the field; screen
	// row 0 is the top, field row 0 the lowest y.
	sample := func(u, v float64) float64 {
		r := len(fl.Z) - 1 - int(v*float64(len(fl.Z)))
		c := int(u * float64(len(fl.Z[0])))
		r = max(0, min(len(fl.Z)-1, r))
		c = max(0, min(len(fl.Z[0])-1, c))
		return (fl.Z[r][c] - fl.Min) / span
	}

	if mode == FieldBraille {
		canvas := NewCanvas(cols, rows)
		w, h := cols*2, rows*4
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if sample(float64(x)/float64(w), float64(y)/float64(h)) > 0.5 {
					canvas.Set(x, y)
				}
			}
		}
		canvas.DrawLine(0, 0, w-1, 0)
		canvas.DrawLine(w-1, 0, w-1, h-1)
		canvas.DrawLine(w-1, h-1, 0, h-1)
		canvas.DrawLine(0, h-1, 0, 0)
		return canvas.String()
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			level := sample(float64(x)/float64(cols), float64(y)/float64(rows))
			i := int(level * float64(len(shadeRamp)-1))
			b.WriteRune(shadeRamp[max(0, min(len(shadeRamp)-1, i))])
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
