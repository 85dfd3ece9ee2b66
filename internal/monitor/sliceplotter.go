// Package monitor renders diagnostic output for unwrap runs: z-slice
// heatmaps of the phase volumes and an HTML report of per-bin work.
package monitor

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/fieldmap/internal/field"
)

// sliceGrid adapts one z-slice of a Volume to plotter.GridXYZ.
type sliceGrid struct {
	v *field.Volume
	z int
}

func (g sliceGrid) Dims() (c, r int)   { return g.v.Nx, g.v.Ny }
func (g sliceGrid) Z(c, r int) float64 { return g.v.At(c, r, g.z) }
func (g sliceGrid) X(c int) float64    { return float64(c) }
func (g sliceGrid) Y(r int) float64    { return float64(r) }

// PlotSlice renders the z-slice of a volume as a heatmap PNG.
func PlotSlice(v *field.Volume, z int, title, path string) error {
	if v == nil {
		return fmt.Errorf("monitor: nil volume")
	}
	if z < 0 || z >= v.Nz {
		return fmt.Errorf("monitor: slice %d outside volume depth %d", z, v.Nz)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("monitor: create plot dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (voxels)"
	p.Y.Label.Text = "y (voxels)"

	pal := moreland.SmoothBlueRed().Palette(255)
	p.Add(plotter.NewHeatMap(sliceGrid{v: v, z: z}, pal))

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("monitor: save heatmap: %w", err)
	}
	return nil
}

// PlotCentreSlices writes wrapped and unwrapped heatmaps of the middle
// z-slice side by side in dir. Used by the CLI after a run.
func PlotCentreSlices(wrapped, unwrapped *field.Volume, dir string) error {
	z := wrapped.Nz / 2
	if err := PlotSlice(wrapped, z, fmt.Sprintf("wrapped phase, z=%d", z),
		filepath.Join(dir, "wrapped.png")); err != nil {
		return err
	}
	return PlotSlice(unwrapped, z, fmt.Sprintf("unwrapped phase, z=%d", z),
		filepath.Join(dir, "unwrapped.png"))
}
