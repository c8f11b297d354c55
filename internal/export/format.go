package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format int8

const (
	SVG Format = iota
	HTML
	PNG
	CSV
	JSON
	XLSX
)

var formatNames = [...]string{"svg", "html", "png", "csv", "json", "xlsx"}

func Formats() []Format {
	return []Format{SVG, HTML, PNG, CSV, JSON, XLSX}
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

func (f Format) Ext() string { return "." + f.String() }

func ParseFormat(text string) (Format, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for i, name := range formatNames {
		if name == text {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, text)
}

// FormatFromPath picks the format matching the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
