package monitor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/fieldmap/internal/field"
	"github.com/banshee-data/fieldmap/internal/unwrap"
)

func TestPlotSlice_WritesPNG(t *testing.T) {
	v, _ := field.New(8, 8, 4)
	for i := range v.Data {
		v.Data[i] = float64(i%7) - 3
	}
	path := filepath.Join(t.TempDir(), "plots", "slice.png")
	if err := PlotSlice(v, 2, "test slice", path); err != nil {
		t.Fatalf("PlotSlice: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("heatmap PNG is empty")
	}
}

func TestPlotSlice_BadSlice(t *testing.T) {
	v, _ := field.New(4, 4, 4)
	if err := PlotSlice(v, 4, "oob", filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("out-of-range slice accepted")
	}
	if err := PlotSlice(nil, 0, "nil", filepath.Join(t.TempDir(), "y.png")); err == nil {
		t.Error("nil volume accepted")
	}
}

func TestPlotCentreSlices(t *testing.T) {
	w, _ := field.New(4, 4, 4)
	u, _ := field.New(4, 4, 4)
	dir := t.TempDir()
	if err := PlotCentreSlices(w, u, dir); err != nil {
		t.Fatalf("PlotCentreSlices: %v", err)
	}
	for _, name := range []string{"wrapped.png", "unwrapped.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRenderBinReport(t *testing.T) {
	stats := unwrap.Stats{
		Seed:     [3]int{1, 2, 3},
		Bins:     []unwrap.BinStats{{Expanded: 10, Deferred: 2}, {Expanded: 4}, {}, {}},
		Expanded: 14,
		Deferred: 2,
	}
	var buf bytes.Buffer
	if err := RenderBinReport(&buf, stats); err != nil {
		t.Fatalf("RenderBinReport: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "Voxels per risk bin") {
		t.Error("report missing title")
	}
	if !strings.Contains(html, "expanded") || !strings.Contains(html, "deferred") {
		t.Error("report missing series")
	}
}

func TestWriteBinReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	stats := unwrap.Stats{Bins: []unwrap.BinStats{{Expanded: 1}}}
	if err := WriteBinReport(dir, stats); err != nil {
		t.Fatalf("WriteBinReport: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bins.html")); err != nil {
		t.Errorf("missing bins.html: %v", err)
	}
}
