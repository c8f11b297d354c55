package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/physlab/internal/demo"
)

var csvHeader = []string{"panel", "series", "x", "y", "z"}

// WriteCSV writes one row per sample: curve samples leave z empty, field
// samples fill it.
func WriteCSV(w io.Writer, f *demo.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range f.Curves {
		for i := range c.X {
			if err := cw.Write([]string{c.Panel, c.Name, formatFloat(c.X[i]), formatFloat(c.Y[i]), ""}); err != nil {
				return err
			}
		}
	}
	if fl := f.Field; fl != nil {
		for r, row := range fl.Z {
			for c, z := range row {
				rec := []string{fl.Panel, "field", formatFloat(fl.X[c]), formatFloat(fl.Y[r]), formatFloat(z)}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type jsonScalar struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
	Unit  string   `json:"unit,omitempty"`
}

type jsonFrame struct {
	*demo.Frame
	Scalars []jsonScalar `json:"scalars"`
}

// WriteJSON writes the frame as indented JSON. Non-finite scalars, such as
// the beat period of equal frequencies, are written as null.
func WriteJSON(w io.Writer, f *demo.Frame) error {
	out := jsonFrame{Frame: f, Scalars: make([]jsonScalar, len(f.Scalars))}
	for i, s := range f.Scalars {
		out.Scalars[i] = jsonScalar{Name: s.Name, Unit: s.Unit}
		if finite(s.Value) {
			v := s.Value
			out.Scalars[i].Value = &v
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
