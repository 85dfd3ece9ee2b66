package monitor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/fieldmap/internal/unwrap"
)

// RenderBinReport writes an HTML bar chart of per-bin expanded and
// deferred voxel counts. Empty trailing bins are trimmed to keep the
// chart readable when most of the risk range saw no work.
func RenderBinReport(w io.Writer, stats unwrap.Stats) error {
	bins := stats.Bins
	last := len(bins) - 1
	for last > 0 && bins[last].Expanded == 0 && bins[last].Deferred == 0 {
		last--
	}
	bins = bins[:last+1]

	labels := make([]string, len(bins))
	expanded := make([]opts.BarData, len(bins))
	deferred := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%d", i)
		expanded[i] = opts.BarData{Value: b.Expanded}
		deferred[i] = opts.BarData{Value: b.Deferred}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Unwrap bin report"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Voxels per risk bin",
			Subtitle: fmt.Sprintf("seed=(%d,%d,%d) expanded=%d deferred=%d growths=%d",
				stats.Seed[0], stats.Seed[1], stats.Seed[2],
				stats.Expanded, stats.Deferred, stats.QueueGrowths),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "bin"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "voxels"}),
	)
	bar.SetXAxis(labels).
		AddSeries("expanded", expanded).
		AddSeries("deferred", deferred)

	return bar.Render(w)
}

// WriteBinReport renders the bin report into dir/bins.html.
func WriteBinReport(dir string, stats unwrap.Stats) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("monitor: create report dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "bins.html"))
	if err != nil {
		return fmt.Errorf("monitor: create report: %w", err)
	}
	defer f.Close()
	return RenderBinReport(f, stats)
}
