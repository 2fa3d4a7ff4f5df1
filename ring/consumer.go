package ring

// Consumer is the single consumer-side handle of a CoalescingRingBuffer,
// created only by New alongside its paired Producer.
type Consumer[K comparable, V any] struct {
	buf *CoalescingRingBuffer[K, V]
}

// Poll drains and returns at most max values, in ascending position order.
// Claiming the range [firstWrite, claim) — published before any slot is
// read — is what closes the coalescing window for those positions: an
// Offer that reads the new firstWrite no longer coalesces into them. An
// Offer that matched one of them just before the claim puts the prior value
// back, or, if Poll has already drained that slot, Poll returns the Offer's
// newer value instead; either way that Offer then appends to a fresh slot.
func (c *Consumer[K, V]) Poll(max uint64) []V {
	nextWrite := c.buf.nextWrite.Load()
	claim := c.buf.firstWrite.Load() + max
	if claim > nextWrite {
		claim = nextWrite
	}
	return c.buf.fill(claim)
}

// PollAll drains every value published so far, equivalent to Poll with an
// unbounded max clamped to the currently published range.
func (c *Consumer[K, V]) PollAll() []V {
	return c.buf.fill(c.buf.nextWrite.Load())
}

// Size returns the current number of values held in the buffer.
func (c *Consumer[K, V]) Size() uint64 { return c.buf.size() }

// IsEmpty reports whether the buffer currently holds no values.
func (c *Consumer[K, V]) IsEmpty() bool { return c.buf.isEmpty() }

func (b *CoalescingRingBuffer[K, V]) fill(claimUpTo uint64) []V {
	b.firstWrite.Store(claimUpTo)

	lastRead := b.lastRead.Load()

	var drained []V
	if claimUpTo > lastRead+1 {
		drained = make([]V, 0, claimUpTo-lastRead-1)
	}

	for p := lastRead + 1; p < claimUpTo; p++ {
		s := &b.slots[b.idx(p)]
		valPtr := s.value.Swap(nil)
		if valPtr == nil {
			fault("poll", p, "slot expected populated, found absent (firstWrite=%d lastRead=%d nextWrite=%d lastCleaned=%d)",
				claimUpTo, lastRead, b.nextWrite.Load(), b.lastCleaned.Load())
		}
		drained = append(drained, *valPtr)
	}

	b.lastRead.Store(claimUpTo - 1)
	return drained
}
