package main

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/params"
)

func resetFlags(t *testing.T) {
	t.Helper()
	cfg = config.DefaultConfig()
	preset, setValues = "", nil
	exportFormat, outPath = "", ""
}

func TestDemoParams(t *testing.T) {
	resetFlags(t)
	cfg.Preset = "audio"
	setValues = []string{"C=1e-9"}

	_, f, err := loadFrame("rc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Params["R"] != 1e3 {
		t.Errorf("expected preset R=1000, got %v", f.Params["R"])
	}
	if f.Params["C"] != 1e-9 {
		t.Errorf("expected --set C=1e-9, got %v", f.Params["C"])
	}
}

func TestDemoParamsPresetFlagIsStrict(t *testing.T) {
	resetFlags(t)
	cfg.Preset = "slow"
	if _, _, err := loadFrame("kinetics"); err != nil {
		t.Fatalf("shared config preset should not block kinetics: %v", err)
	}

	preset = "slow"
	if _, _, err := loadFrame("kinetics"); !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	_, f, err := loadFrame("beat")
	if err != nil {
		t.Fatal(err)
	}
	if f.Params["f2"] != 442 {
		t.Errorf("expected slow preset f2=442, got %v", f.Params["f2"])
	}
}

func TestDemoParamsRejectsOutOfRange(t *testing.T) {
	resetFlags(t)
	setValues = []string{"f1=1000"}
	if _, _, err := loadFrame("beat"); !errors.Is(err, params.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestLoadFrameUnknownDemo(t *testing.T) {
	resetFlags(t)
	if _, _, err := loadFrame("laser"); err == nil {
		t.Error("expected error for unknown demo")
	}
}

func TestExportDemoFormatFromPath(t *testing.T) {
	resetFlags(t)
	outPath = filepath.Join(t.TempDir(), "kinetics.csv")

	if err := exportDemo(nil, []string{"kinetics"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	file, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if records[0][0] != "panel" {
		t.Errorf("expected csv header, got %v", records[0])
	}
}

func TestSpecRange(t *testing.T) {
	tests := []struct {
		spec params.Spec
		want string
	}{
		{params.Spec{Min: 240, Max: 640}, "[240, 640]"},
		{params.Spec{Scale: params.Choice, Choices: []float64{0, 1}, Names: []string{"a", "b"}}, "{a, b}"},
	}
	for _, tt := range tests {
		if got := specRange(tt.spec); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
	if scaleName(params.Log) != "log" || scaleName(params.Linear) != "linear" {
		t.Error("unexpected scale names")
	}
}

func TestCloseLogSink(t *testing.T) {
	resetFlags(t)
	f, err := os.CreateTemp(t.TempDir(), "physlab-*.log")
	if err != nil {
		t.Fatal(err)
	}
	logSink = f

	closeLogSink()
	if logSink != nil {
		t.Error("log sink should be cleared")
	}
	if _, err := f.WriteString("x"); err == nil {
		t.Error("log file should be closed")
	}
	closeLogSink()
}
