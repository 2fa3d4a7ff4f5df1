// Package mpsc is the repo's "unrelated" collaborator: a single-slot,
// multi-producer / single-consumer coalescing buffer. Any number of
// producer goroutines may call Sender.Send, each unconditionally
// overwriting whatever value is currently pending; exactly one consumer
// goroutine calls Receiver.Poll to take it.
//
// Unlike ring.CoalescingRingBuffer this holds at most one pending value in
// total — there is no key, no ring of slots, and no ordering guarantee
// across sends: a Send that arrives before the previous one is polled
// simply replaces it, and the replaced value is dropped. It exists because
// the source repo this package's sibling was distilled from ships exactly
// this structure alongside the ring (`src/simple/mpsc_coalescing_buffer.rs`
// and `src/buffer/mpsc_coalescing_buffer.rs`), explicitly out of scope for
// the ring's own invariants but present as a real, separate collaborator.
package mpsc

import "sync/atomic"

type cell[T any] struct {
	value atomic.Pointer[T]
}

// Sender is the producer-side handle. Unlike ring.Producer, any number of
// goroutines may hold and use a Sender concurrently — that is the whole
// point of this buffer's multi-producer overwrite semantics.
type Sender[T any] struct {
	cell *cell[T]
}

// Receiver is the single consumer-side handle; only one goroutine should
// call Poll.
type Receiver[T any] struct {
	cell *cell[T]
}

// New creates an empty cell and returns its paired Sender/Receiver.
func New[T any]() (*Sender[T], *Receiver[T]) {
	c := &cell[T]{}
	return &Sender[T]{cell: c}, &Receiver[T]{cell: c}
}

// Send unconditionally replaces whatever value is currently pending. It
// never blocks and never fails: there is no capacity to exhaust.
func (s *Sender[T]) Send(value T) {
	v := value
	old := s.cell.value.Swap(&v)
	_ = old // replaced value is simply dropped, same as the source's drop_if_not_null
}

// Poll takes the pending value, if any, leaving the cell empty. It returns
// (zero, false) if no value has been sent since the last Poll.
func (r *Receiver[T]) Poll() (T, bool) {
	ptr := r.cell.value.Swap(nil)
	if ptr == nil {
		var zero T
		return zero, false
	}
	return *ptr, true
}
