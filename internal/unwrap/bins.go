package unwrap

// binScheduler sequences voxel expansion by ascending risk. Each bin
// owns one lazily-allocated FIFO queue; bins are drained in ascending
// index order and a drained bin is never revisited, so low-risk regions
// fully resolve before pole-adjacent voxels are attempted.
type binScheduler struct {
	thresholds []float64
	queues     []*recordQueue
	stats      []BinStats
}

// BinStats counts the work done while draining one risk bin.
type BinStats struct {
	Expanded int `json:"expanded"`
	Deferred int `json:"deferred"`
}

// newBinScheduler discretises [min, min + thresholdSpan*(max-min)] into
// n linearly spaced thresholds. min and max must come from the same risk
// field the run pops values from; the inflated top threshold then admits
// every value in the field.
func newBinScheduler(n int, min, max float64, p Params) *binScheduler {
	if n < MinUnwrapBins {
		n = MinUnwrapBins
	}
	s := &binScheduler{
		thresholds: make([]float64, n),
		queues:     make([]*recordQueue, n),
		stats:      make([]BinStats, n),
	}
	span := thresholdSpan * (max - min)
	for i := range s.thresholds {
		s.thresholds[i] = min + span*float64(i)/float64(n-1)
	}
	for i := range s.queues {
		s.queues[i] = newRecordQueue(p.QueueCapacity, p.QueueGrowth, p.MaxQueueRecords)
	}
	return s
}

func (s *binScheduler) bins() int { return len(s.thresholds) }

// admits reports whether bin i may expand a voxel with the given risk.
// A voxel is deferred only when its risk strictly exceeds the bin
// threshold, so NaN risk (NaN magnitude voxels are common in scanner
// output) is admitted in place rather than deferred forever.
func (s *binScheduler) admits(i int, risk float64) bool {
	return !(risk > s.thresholds[i])
}

// deferTo returns the first bin past i whose threshold admits risk. The
// inflated top threshold guarantees termination for any value drawn from
// the surveyed field; the clamp covers values outside it, including a
// re-pop from the last bin.
func (s *binScheduler) deferTo(i int, risk float64) int {
	last := len(s.thresholds) - 1
	j := i + 1
	if j > last {
		return last
	}
	for j < last && risk > s.thresholds[j] {
		j++
	}
	return j
}

// growths sums queue growth events across all bins.
func (s *binScheduler) growths() int {
	n := 0
	for _, q := range s.queues {
		n += q.growths
	}
	return n
}
