package automation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/physlab/internal/export"
)

// SweepTable is a sweep result laid out for writing: one row per point,
// columns in Scalars order.
type SweepTable struct {
	Demo    string      `json:"demo"`
	Param   string      `json:"param"`
	Scalars []string    `json:"scalars"`
	Values  []float64   `json:"values"`
	Rows    [][]float64 `json:"rows"`
}

// NewSweepTable orders the derived values of results by names. Values
// missing from a point are NaN.
func NewSweepTable(sweep *ParameterSweep, names []string, results []SweepResult) *SweepTable {
	t := &SweepTable{
		Demo:    sweep.Demo,
		Param:   sweep.Param,
		Scalars: names,
		Values:  make([]float64, len(results)),
		Rows:    make([][]float64, len(results)),
	}
	for i, r := range results {
		t.Values[i] = r.ParamValue
		row := make([]float64, len(names))
		for j, name := range names {
			v, ok := r.Scalars[name]
			if !ok {
				v = math.NaN()
			}
			row[j] = v
		}
		t.Rows[i] = row
	}
	return t
}

func (t *SweepTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{t.Param}, t.Scalars...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(t.Values[i], 'g', -1, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the table with non-finite values as null.
func (t *SweepTable) WriteJSON(w io.Writer) error {
	out := struct {
		*SweepTable
		Rows [][]*float64 `json:"rows"`
	}{SweepTable: t, Rows: make([][]*float64, len(t.Rows))}
	for i, row := range t.Rows {
		out.Rows[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) && !math.IsInf(row[j], 0) {
				out.Rows[i][j] = &row[j]
			}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// WriteFile picks CSV or JSON from the file extension.
func (t *SweepTable) WriteFile(path string) error {
	format, err := export.FormatFromPath(path)
	if err != nil {
		return err
	}
	var write func(io.Writer) error
	switch format {
	case export.CSV:
		write = t.WriteCSV
	case export.JSON:
		write = t.WriteJSON
	default:
		return fmt.Errorf("%w: sweep tables are csv or json, not %s", export.ErrUnknownFormat, format)
	}

	return export.CreateFile(path, write)
}
