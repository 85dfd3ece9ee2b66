package unwrap

import (
	"errors"
	"fmt"
)

// ErrQueueLimit is returned when a bin queue would exceed its configured
// record ceiling (Params.MaxQueueRecords). It aborts the remaining bin
// loop; voxels not yet reached stay at their initial value.
var ErrQueueLimit = errors.New("unwrap: point queue exceeded its record ceiling")

// SeedError reports a seed voxel outside the grid. It is returned before
// any state is touched; no output is produced.
type SeedError struct {
	Seed [3]int
	Dims [3]int
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("unwrap: seed (%d,%d,%d) outside grid %dx%dx%d",
		e.Seed[0], e.Seed[1], e.Seed[2], e.Dims[0], e.Dims[1], e.Dims[2])
}
