package unwrap

// Constants for unwrap configuration
const (
	// DefaultUnwrapBins is the default risk bin count for Unwrap
	DefaultUnwrapBins = 256
	// MinUnwrapBins is the minimum usable bin count; fewer than two
	// bins cannot express a risk ordering
	MinUnwrapBins = 2
	// DefaultQueueCapacity is the initial record capacity of a bin queue
	DefaultQueueCapacity = 100
	// DefaultQueueGrowth is the capacity added on each queue growth
	DefaultQueueGrowth = 500

	// thresholdSpan inflates the top bin threshold just past the field
	// maximum so every in-range risk value falls strictly under it
	thresholdSpan = 1.00001
)

// Params contains parameters for a single unwrap run.
type Params struct {
	// Bins is the number of risk bins; values below MinUnwrapBins are
	// raised to it.
	Bins int
	// QueueCapacity is the initial record capacity of each bin queue.
	QueueCapacity int
	// QueueGrowth is the capacity increment applied when a bin queue
	// fills.
	QueueGrowth int
	// MaxQueueRecords caps the records held by any single bin queue;
	// exceeding it aborts the run with ErrQueueLimit. Zero means
	// unlimited.
	MaxQueueRecords int
	// Seed overrides the default seed voxel (the rounded grid centre).
	Seed *[3]int
}

// DefaultParams returns parameters suitable for typical field maps.
func DefaultParams() Params {
	return Params{
		Bins:          DefaultUnwrapBins,
		QueueCapacity: DefaultQueueCapacity,
		QueueGrowth:   DefaultQueueGrowth,
	}
}

// withDefaults fills zero-valued fields from DefaultParams and applies
// the bin-count floor.
func (p Params) withDefaults() Params {
	if p.Bins < MinUnwrapBins {
		if p.Bins == 0 {
			p.Bins = DefaultUnwrapBins
		} else {
			p.Bins = MinUnwrapBins
		}
	}
	if p.QueueCapacity <= 0 {
		p.QueueCapacity = DefaultQueueCapacity
	}
	if p.QueueGrowth <= 0 {
		p.QueueGrowth = DefaultQueueGrowth
	}
	return p
}
