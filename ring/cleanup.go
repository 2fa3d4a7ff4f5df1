package ring

// cleanUp runs on the producer goroutine, called from add before any
// append. It erases the key holders and values in (lastCleaned, lastRead]
// so stale keys stop participating in the coalescing scan and any value
// left behind by a bug is released. The producer is the sole writer of
// lastCleaned, so this never races with itself; it only ever reads the
// consumer-owned lastRead.
func (b *CoalescingRingBuffer[K, V]) cleanUp() {
	lastRead := b.lastRead.Load()
	lastCleaned := b.lastCleaned.Load()
	if lastRead == lastCleaned {
		return
	}

	for p := lastCleaned; p < lastRead; p++ {
		s := &b.slots[b.idx(p+1)]
		s.key = keyHolder[K]{}
		s.value.Store(nil)
	}
	b.lastCleaned.Store(lastRead)
}
