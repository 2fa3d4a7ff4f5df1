package ring

// Producer is the single producer-side handle of a CoalescingRingBuffer. It
// is created only by New; there is no exported constructor, so only one
// goroutine can ever hold a particular Producer, and exactly one of the two
// capabilities (offer vs. poll) is reachable through it.
type Producer[K comparable, V any] struct {
	buf *CoalescingRingBuffer[K, V]
}

// Offer enqueues value under key. If an in-flight slot already carries an
// equal key, value replaces it in place (coalescing) and no slot is
// consumed; otherwise value is appended to a fresh slot. Offer returns false
// only when the buffer is full and no in-flight slot could be coalesced
// into, incrementing RejectionCount in that case.
func (p *Producer[K, V]) Offer(key K, value V) bool {
	return p.buf.offer(key, value)
}

// OfferValueOnly enqueues value without a key. It never coalesces with any
// other entry, keyed or not, and is rejected under the same full-buffer
// condition as Offer.
func (p *Producer[K, V]) OfferValueOnly(value V) bool {
	v := value
	return p.buf.add(nonCollapsibleHolder[K](), &v)
}

// Size returns the current number of values held in the buffer.
func (p *Producer[K, V]) Size() uint64 { return p.buf.size() }

// IsFull reports whether the buffer currently holds capacity() values.
func (p *Producer[K, V]) IsFull() bool { return p.buf.isFull() }

// RejectionCount returns the number of Offer/OfferValueOnly calls that have
// failed because the buffer was full and coalescing was not possible.
func (p *Producer[K, V]) RejectionCount() uint64 { return p.buf.rejectionCount.Load() }

// offer runs the coalescing scan-and-replace algorithm: scan the in-flight
// range [firstWrite, nextWrite) for a slot already keyed with key; if found,
// try to replace its value in place rather than consuming a new slot.
func (b *CoalescingRingBuffer[K, V]) offer(key K, value V) bool {
	nextWrite := b.nextWrite.Load()
	want := keyedHolder(key)

	for p := b.firstWrite.Load(); p < nextWrite; p++ {
		s := &b.slots[b.idx(p)]
		if s.key != want {
			continue
		}

		v := value
		oldPtr := s.value.Swap(&v)
		if p >= b.firstWrite.Load() {
			// The consumer has not claimed this position yet: the
			// coalescing replace is safe, and the prior value is simply
			// dropped (left for the garbage collector).
			return true
		}

		// The consumer claimed the slot between our key match and our
		// store. Try to put the prior value back; if that CAS fails, the
		// consumer has already drained the slot and our new value has
		// already reached it through that drain — an orphaned but
		// harmless coalesced update. Either way coalescing did not
		// succeed here, so fall through to a fresh append.
		s.value.CompareAndSwap(&v, oldPtr)
		break
	}

	return b.add(want, &value)
}

// add appends holder/value as a fresh slot, rejecting when the buffer is
// full. It is also reached from OfferValueOnly, which never scans for a
// coalescing match because NonCollapsible holders never match anything.
func (b *CoalescingRingBuffer[K, V]) add(holder keyHolder[K], value *V) bool {
	if b.isFull() {
		b.rejectionCount.Add(1)
		return false
	}

	b.cleanUp()
	b.store(holder, value)
	return true
}

func (b *CoalescingRingBuffer[K, V]) store(holder keyHolder[K], value *V) {
	nextWrite := b.nextWrite.Load()
	s := &b.slots[b.idx(nextWrite)]
	s.key = holder
	s.value.Store(value)
	b.nextWrite.Store(nextWrite + 1)
}
