// Command unwrap resolves a wrapped 3-D phase volume against its
// magnitude volume and writes the continuous result.
//
// Volumes are raw little-endian float32 files; dimensions are supplied
// with -dims. Optionally records the run in a SQLite store and emits
// diagnostic plots.
//
// Usage:
//
//	unwrap -dims 64,64,32 -phase phase.f32 -mag mag.f32 -out unwrapped.f32 \
//	       [-bins 256] [-seed x,y,z] [-config tuning.json] \
//	       [-db runs.db] [-plot-dir plots/scan-017]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/fieldmap/internal/config"
	"github.com/banshee-data/fieldmap/internal/field"
	"github.com/banshee-data/fieldmap/internal/monitor"
	"github.com/banshee-data/fieldmap/internal/unwrap"
	"github.com/banshee-data/fieldmap/internal/unwrapdb"
)

// parseCSVIntSlice parses a comma-separated list of ints
func parseCSVIntSlice(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid int '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	var (
		dimsFlag   = flag.String("dims", "", "volume dimensions as nx,ny,nz (required)")
		phasePath  = flag.String("phase", "", "wrapped phase volume, raw float32 (required)")
		magPath    = flag.String("mag", "", "magnitude volume, raw float32 (required)")
		outPath    = flag.String("out", "", "output path for the unwrapped volume (required)")
		bins       = flag.Int("bins", 0, "risk bin count (default from tuning)")
		seedFlag   = flag.String("seed", "", "seed voxel as x,y,z (default: grid centre)")
		configPath = flag.String("config", "", "optional tuning JSON file")
		dbPath     = flag.String("db", "", "optional SQLite run store")
		plotDir    = flag.String("plot-dir", "", "optional directory for diagnostic plots")
	)
	flag.Parse()

	if *dimsFlag == "" || *phasePath == "" || *magPath == "" || *outPath == "" {
		flag.Usage()
		log.Fatal("dims, phase, mag and out are required")
	}

	dims, err := parseCSVIntSlice(*dimsFlag)
	if err != nil || len(dims) != 3 {
		log.Fatalf("invalid -dims %q: want nx,ny,nz", *dimsFlag)
	}

	params := unwrap.DefaultParams()
	if *configPath != "" {
		cfg, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("load tuning config: %v", err)
		}
		params = cfg.Apply(params)
	}
	if *bins > 0 {
		params.Bins = *bins
	}
	if *seedFlag != "" {
		seed, err := parseCSVIntSlice(*seedFlag)
		if err != nil || len(seed) != 3 {
			log.Fatalf("invalid -seed %q: want x,y,z", *seedFlag)
		}
		params.Seed = &[3]int{seed[0], seed[1], seed[2]}
	}

	phase, err := field.ReadRaw(*phasePath, dims[0], dims[1], dims[2])
	if err != nil {
		log.Fatalf("load phase volume: %v", err)
	}
	mag, err := field.ReadRaw(*magPath, dims[0], dims[1], dims[2])
	if err != nil {
		log.Fatalf("load magnitude volume: %v", err)
	}

	start := time.Now()
	res, runErr := unwrap.Unwrap(phase, mag, params)
	elapsed := time.Since(start)

	if *dbPath != "" {
		db, err := unwrapdb.NewUnwrapDB(*dbPath)
		if err != nil {
			log.Fatalf("open run store: %v", err)
		}
		defer db.Close()

		errText := ""
		if runErr != nil {
			errText = runErr.Error()
		}
		stats := unwrap.Stats{}
		if res != nil {
			stats = res.Stats
		}
		runID, err := db.RecordRun(*phasePath, [3]int{dims[0], dims[1], dims[2]}, stats, elapsed, errText)
		if err != nil {
			log.Fatalf("record run: %v", err)
		}
		log.Printf("recorded run %s", runID)
	}

	if runErr != nil {
		var se *unwrap.SeedError
		if errors.As(runErr, &se) {
			log.Fatalf("unwrap refused to start: %v", runErr)
		}
		if res != nil && errors.Is(runErr, unwrap.ErrQueueLimit) {
			// Partial result: report but do not write a broken volume.
			log.Fatalf("unwrap aborted after %d voxels: %v", res.Stats.Expanded, runErr)
		}
		log.Fatalf("unwrap failed: %v", runErr)
	}

	if err := field.WriteRaw(*outPath, res.Unwrapped); err != nil {
		log.Fatalf("write output volume: %v", err)
	}
	log.Printf("unwrapped %d voxels in %s (deferred %d, queue growths %d)",
		res.Stats.Expanded, elapsed.Round(time.Millisecond),
		res.Stats.Deferred, res.Stats.QueueGrowths)

	if *plotDir != "" {
		if err := monitor.PlotCentreSlices(phase, res.Unwrapped, *plotDir); err != nil {
			log.Fatalf("write plots: %v", err)
		}
		if err := monitor.WriteBinReport(*plotDir, res.Stats); err != nil {
			log.Fatalf("write bin report: %v", err)
		}
		log.Printf("diagnostics written to %s", *plotDir)
	}
}
