package unwrap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/fieldmap/internal/field"
	"github.com/banshee-data/fieldmap/internal/monitoring"
)

const twoPi = 2 * math.Pi

// Stats summarises one unwrap run.
type Stats struct {
	Seed         [3]int     `json:"seed"`
	Bins         []BinStats `json:"bins"`
	Expanded     int        `json:"expanded"`
	Deferred     int        `json:"deferred"`
	QueueGrowths int        `json:"queue_growths"`
}

// Result holds the unwrapped volume and run statistics. When Unwrap
// returns an error mid-run the volume is partially filled: voxels never
// reached keep their zero value.
type Result struct {
	Unwrapped *field.Volume
	Stats     Stats
}

// run owns all mutable state of one unwrap invocation. Nothing here
// outlives the call, so independent invocations are safe to run
// concurrently from separate goroutines.
type run struct {
	nx, ny, nz int
	sx, sy, sz int
	phase      []float64
	risk       []float64
	out        []float64
	visited    []bool
	sched      *binScheduler
}

// Unwrap resolves the wrapped phase volume into a continuous one by
// magnitude-ordered region growing. mag gives per-voxel signal
// magnitude; high-magnitude voxels (far from phase poles) are expanded
// first, so the lowest-magnitude voxels are reached last, after their
// surroundings have settled.
//
// The fill starts at the rounded grid centre unless p.Seed overrides
// it; an out-of-grid seed returns a *SeedError before anything runs.
// If a bin queue hits p.MaxQueueRecords the run aborts with
// ErrQueueLimit and the partial result is returned alongside the error.
func Unwrap(phase, mag *field.Volume, p Params) (*Result, error) {
	if phase == nil || mag == nil {
		return nil, fmt.Errorf("unwrap: nil input volume")
	}
	if !phase.SameShape(mag) {
		return nil, fmt.Errorf("unwrap: phase %dx%dx%d and magnitude %dx%dx%d dimensions differ",
			phase.Nx, phase.Ny, phase.Nz, mag.Nx, mag.Ny, mag.Nz)
	}
	p = p.withDefaults()

	seed := defaultSeed(phase.Nx, phase.Ny, phase.Nz)
	if p.Seed != nil {
		seed = *p.Seed
	}
	if !phase.In(seed[0], seed[1], seed[2]) {
		return nil, &SeedError{Seed: seed, Dims: [3]int{phase.Nx, phase.Ny, phase.Nz}}
	}

	// Negate the magnitude so that ascending bin order expands
	// high-magnitude voxels first.
	risk := make([]float64, phase.Len())
	for i, m := range mag.Data {
		risk[i] = -m
	}
	min, max := floats.Min(risk), floats.Max(risk)

	out, err := field.New(phase.Nx, phase.Ny, phase.Nz)
	if err != nil {
		return nil, err
	}
	sx, sy, sz := phase.Strides()
	r := &run{
		nx: phase.Nx, ny: phase.Ny, nz: phase.Nz,
		sx: sx, sy: sy, sz: sz,
		phase:   phase.Data,
		risk:    risk,
		out:     out.Data,
		visited: make([]bool, phase.Len()),
		sched:   newBinScheduler(p.Bins, min, max, p),
	}

	runErr := r.fill(seed)

	stats := Stats{
		Seed:         seed,
		Bins:         r.sched.stats,
		QueueGrowths: r.sched.growths(),
	}
	for _, b := range r.sched.stats {
		stats.Expanded += b.Expanded
		stats.Deferred += b.Deferred
	}
	res := &Result{Unwrapped: out, Stats: stats}
	if runErr != nil {
		return res, runErr
	}
	monitoring.Logf("[unwrap] %dx%dx%d bins=%d seed=(%d,%d,%d) expanded=%d deferred=%d growths=%d",
		r.nx, r.ny, r.nz, r.sched.bins(), seed[0], seed[1], seed[2],
		stats.Expanded, stats.Deferred, stats.QueueGrowths)
	return res, nil
}

// defaultSeed is the rounded grid centre, round(dim/2)-1 per axis.
func defaultSeed(nx, ny, nz int) [3]int {
	return [3]int{
		int(math.Round(float64(nx)/2)) - 1,
		int(math.Round(float64(ny)/2)) - 1,
		int(math.Round(float64(nz)/2)) - 1,
	}
}

// fill seeds bin 0 and drains bins in ascending order. A popped voxel
// whose risk exceeds the current threshold is re-pushed unmodified onto
// the first later bin that admits it; an accepted voxel has its six
// neighbours checked. Each bin's queue is released once drained.
func (r *run) fill(seed [3]int) error {
	seedIdx := seed[0]*r.sx + seed[1]*r.sy + seed[2]*r.sz
	r.out[seedIdx] = r.phase[seedIdx]
	r.visited[seedIdx] = true
	if err := r.sched.queues[0].push(pointRecord{
		x: seed[0], y: seed[1], z: seed[2],
		idx: seedIdx, v: r.phase[seedIdx],
	}); err != nil {
		return err
	}

	for i := range r.sched.queues {
		q := r.sched.queues[i]
		for {
			rec, ok := q.pop()
			if !ok {
				break
			}
			if !r.sched.admits(i, r.risk[rec.idx]) {
				// Too close to a pole for this bin; defer forward.
				j := r.sched.deferTo(i, r.risk[rec.idx])
				if err := r.sched.queues[j].push(rec); err != nil {
					return err
				}
				r.sched.stats[i].Deferred++
				continue
			}
			if err := r.expand(i, rec); err != nil {
				return err
			}
			r.sched.stats[i].Expanded++
		}
		q.release()
	}
	return nil
}

// expand checks the six axis neighbours of an accepted voxel in the
// fixed order +z, -z, +y, -y, +x, -x. The order is part of the
// deterministic first-writer-wins contract.
func (r *run) expand(bin int, rec pointRecord) error {
	if err := r.check(bin, rec, r.sz, 0, 0, 1); err != nil {
		return err
	}
	if err := r.check(bin, rec, -r.sz, 0, 0, -1); err != nil {
		return err
	}
	if err := r.check(bin, rec, r.sy, 0, 1, 0); err != nil {
		return err
	}
	if err := r.check(bin, rec, -r.sy, 0, -1, 0); err != nil {
		return err
	}
	if err := r.check(bin, rec, r.sx, 1, 0, 0); err != nil {
		return err
	}
	return r.check(bin, rec, -r.sx, -1, 0, 0)
}

// check resolves one neighbour of rec: bounds- and visited-checks it,
// applies the half-cycle correction relative to rec's resolved value,
// then marks it visited and pushes it onto the bin currently draining.
// Its bin reassignment, if any, happens when it is popped.
func (r *run) check(bin int, rec pointRecord, offIdx, offX, offY, offZ int) error {
	n := pointRecord{x: rec.x + offX, y: rec.y + offY, z: rec.z + offZ}
	if n.x < 0 || n.x >= r.nx {
		return nil
	}
	if n.y < 0 || n.y >= r.ny {
		return nil
	}
	if n.z < 0 || n.z >= r.nz {
		return nil
	}
	n.idx = rec.idx + offIdx
	if r.visited[n.idx] {
		return nil
	}

	// Truncation towards zero is intentional: the correction only has
	// to distinguish "within one half-cycle" from "outside".
	wholepis := int((r.phase[n.idx] - rec.v) / math.Pi)
	switch {
	case wholepis >= 1:
		n.v = r.phase[n.idx] - twoPi*float64((wholepis+1)/2)
	case wholepis <= -1:
		n.v = r.phase[n.idx] + twoPi*float64((1-wholepis)/2)
	default:
		n.v = r.phase[n.idx]
	}

	r.out[n.idx] = n.v
	r.visited[n.idx] = true
	return r.sched.queues[bin].push(n)
}
