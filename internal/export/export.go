// Package export writes computed frames to files: vector and raster figures,
// interactive HTML charts, and tabular data.
package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/san-kum/physlab/internal/demo"
)

// Write encodes f to w in the given format.
func Write(w io.Writer, f *demo.Frame, format Format) error {
	switch format {
	case SVG:
		return WriteSVG(w, f)
	case HTML:
		return WriteHTML(w, f)
	case PNG:
		return WritePNG(w, f)
	case CSV:
		return WriteCSV(w, f)
	case JSON:
		return WriteJSON(w, f)
	case XLSX:
		return WriteXLSX(w, f)
	}
	return fmt.Errorf("%w: %d", ErrUnknownFormat, format)
}

func WriteFile(path string, f *demo.Frame, format Format) error {
	err := CreateFile(path, func(w io.Writer) error {
		if err := Write(w, f, format); err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"demo":   f.Demo,
		"format": format.String(),
		"path":   path,
	}).Info("frame exported")
	return nil
}

// CreateFile writes path through a buffer filled by write. The file is
// removed again when write, the flush or the close fails.
func CreateFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(file)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// finite reports whether v can be written as a plain number.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
