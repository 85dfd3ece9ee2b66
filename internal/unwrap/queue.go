package unwrap

// pointRecord is the unit moved through bin queues: a voxel coordinate,
// its flat index, and its resolved phase value.
type pointRecord struct {
	x, y, z int
	idx     int
	v       float64
}

// recordQueue is a FIFO of pointRecords over a circular buffer. The
// backing slice is allocated on first push and grows by a fixed
// increment when head meets tail, re-originating the live records at
// offset zero. One queue exists per risk bin; the scheduler releases it
// once its bin drains.
type recordQueue struct {
	buf      []pointRecord
	bot, top int
	count    int

	initCap int
	growth  int
	limit   int // max records held at once; 0 = unlimited
	growths int
}

func newRecordQueue(capacity, growth, limit int) *recordQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	if growth <= 0 {
		growth = DefaultQueueGrowth
	}
	return &recordQueue{initCap: capacity, growth: growth, limit: limit}
}

// push appends a record, growing the buffer if it fills. Returns
// ErrQueueLimit when the configured record ceiling would be exceeded.
func (q *recordQueue) push(r pointRecord) error {
	if q.limit > 0 && q.count >= q.limit {
		return ErrQueueLimit
	}
	if q.buf == nil {
		q.buf = make([]pointRecord, q.initCap)
	}
	q.buf[q.top] = r
	q.top++
	q.count++
	if q.top == len(q.buf) {
		q.top = 0
	}
	if q.top == q.bot {
		// Full. Grow and re-origin so the oldest record sits at zero:
		// the segment from bot to the buffer end, then start to top.
		grown := make([]pointRecord, len(q.buf)+q.growth)
		n := copy(grown, q.buf[q.bot:])
		copy(grown[n:], q.buf[:q.top])
		q.bot = 0
		q.top = len(q.buf)
		q.buf = grown
		q.growths++
	}
	return nil
}

// pop removes and returns the oldest record. ok is false when empty.
func (q *recordQueue) pop() (r pointRecord, ok bool) {
	if q.bot == q.top {
		return pointRecord{}, false
	}
	r = q.buf[q.bot]
	q.bot++
	q.count--
	if q.bot == len(q.buf) {
		q.bot = 0
	}
	return r, true
}

func (q *recordQueue) len() int { return q.count }

// capacity reports the current backing-buffer size; zero before the
// first push.
func (q *recordQueue) capacity() int { return len(q.buf) }

// release drops the backing buffer. The queue must not be reused.
func (q *recordQueue) release() {
	q.buf = nil
	q.bot, q.top, q.count = 0, 0, 0
}
