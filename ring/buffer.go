package ring

import "sync/atomic"

// counters groups the four monotonic position counters. They are not fused
// into a single word: the coalescing replace needs to compare-and-swap only
// the value cell, never a shared index, so each counter is independent. The
// two producer-owned counters are padded away from the two consumer-owned
// ones to avoid false sharing between the two goroutines that spin on this
// struct, the same concern rawring.RingBuffer's head/tail padding addresses.
type counters struct {
	nextWrite   atomic.Uint64
	lastCleaned atomic.Uint64
	_           [48]byte
	firstWrite  atomic.Uint64
	lastRead    atomic.Uint64
	_           [48]byte
}

// CoalescingRingBuffer is the shared storage backing a Producer/Consumer
// pair created by New. It is never constructed or used directly outside
// this package; external code only ever sees the two handles.
type CoalescingRingBuffer[K comparable, V any] struct {
	counters
	slots          []slot[K, V]
	mask           uint64
	capacity       uint64
	rejectionCount atomic.Uint64
}

// New creates a ring buffer of the given capacity (rounded up to the next
// power of two, minimum 2) and returns the Producer/Consumer pair that
// share it. Dropping both handles drops the ring.
func New[K comparable, V any](capacity uint64) (*Producer[K, V], *Consumer[K, V]) {
	size := nextPowerOfTwo(capacity)
	if size < 2 {
		size = 2
	}

	buf := &CoalescingRingBuffer[K, V]{
		slots:    make([]slot[K, V], size),
		mask:     size - 1,
		capacity: size,
	}
	buf.nextWrite.Store(1)
	buf.firstWrite.Store(1)

	return &Producer[K, V]{buf: buf}, &Consumer[K, V]{buf: buf}
}

func nextPowerOfTwo(v uint64) uint64 {
	if v < 1 {
		v = 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}

func (b *CoalescingRingBuffer[K, V]) idx(position uint64) uint64 {
	return position & b.mask
}

// size re-reads lastRead before and after next_write to get a consistent
// snapshot while the other side is racing; it retries if the two lastRead
// reads disagree. Removing this double read admits a transient negative
// size when called concurrently with a poll.
func (b *CoalescingRingBuffer[K, V]) size() uint64 {
	for {
		lastReadBefore := b.lastRead.Load()
		nextWrite := b.nextWrite.Load()
		lastReadAfter := b.lastRead.Load()
		if lastReadBefore == lastReadAfter {
			return nextWrite - lastReadBefore - 1
		}
	}
}

func (b *CoalescingRingBuffer[K, V]) isEmpty() bool {
	return b.firstWrite.Load() == b.nextWrite.Load()
}

func (b *CoalescingRingBuffer[K, V]) isFull() bool {
	return b.size() == b.capacity
}
