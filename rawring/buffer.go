// Package rawring is a bounded lock-free ring buffer with no coalescing:
// every Offer consumes a slot, every Poll returns the oldest one, and a
// full buffer simply rejects new offers. cmd/bench uses it as the
// no-coalescing baseline to chart against ring.CoalescingRingBuffer, so the
// throughput numbers in its report mean something relative to each other.
//
// The node/step CAS algorithm here is carried over from the 1024cores
// bounded MPMC queue design (http://www.1024cores.net/home/lock-free-algorithms/queues/bounded-mpmc-queue):
// each slot stores a step stamp alongside its value so a producer can tell
// "this slot has been polled and is free to refill" from "this slot still
// holds an unread value" without a separate empty/full counter, and an ABA
// check falls out of the stamp naturally. It supports any number of
// concurrent producers and consumers, a strict superset of the
// single-producer/single-consumer use cmd/bench puts it to.
package rawring

import "sync/atomic"

type node[T any] struct {
	step  uint64
	value T
	_     [40]byte
}

// RingBuffer is a bounded, lock-free, multi-producer/multi-consumer queue
// with fixed capacity (rounded up to the next power of two by New).
type RingBuffer[T any] struct {
	head      uint64
	_padding0 [56]byte
	tail      uint64
	_padding1 [56]byte
	mask      uint64
	_padding2 [56]byte
	nodes     []*node[T]
}

// New creates a RingBuffer whose capacity is the next power of two ≥ size.
func New[T any](size uint64) *RingBuffer[T] {
	capacity := nextPowerOfTwo(size)
	nodes := make([]*node[T], capacity)
	for i := uint64(0); i < capacity; i++ {
		nodes[i] = &node[T]{step: i}
	}

	return &RingBuffer[T]{
		mask:  capacity - 1,
		nodes: nodes,
	}
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

// Offer enqueues value, returning false if the ring is full.
func (r *RingBuffer[T]) Offer(value T) bool {
	oldTail := atomic.LoadUint64(&r.tail)
	tailNode := r.nodes[oldTail&r.mask]
	if atomic.LoadUint64(&tailNode.step) != oldTail {
		// not yet polled out of the last time around the ring: full
		return false
	}

	if !atomic.CompareAndSwapUint64(&r.tail, oldTail, oldTail+1) {
		return false
	}

	tailNode.value = value
	atomic.StoreUint64(&tailNode.step, oldTail+1)
	return true
}

// Poll dequeues the oldest value, returning false if the ring is empty.
func (r *RingBuffer[T]) Poll() (value T, ok bool) {
	oldHead := atomic.LoadUint64(&r.head)
	headNode := r.nodes[oldHead&r.mask]
	if atomic.LoadUint64(&headNode.step) != oldHead+1 {
		return value, false
	}

	if !atomic.CompareAndSwapUint64(&r.head, oldHead, oldHead+1) {
		return value, false
	}

	value = headNode.value
	atomic.StoreUint64(&headNode.step, oldHead+r.mask+1)
	return value, true
}

// SingleProducerOffer retries supplier until it signals finish, spinning
// past transient Offer failures. It assumes exactly one producer goroutine
// calls it.
func (r *RingBuffer[T]) SingleProducerOffer(supplier func() (v T, finish bool)) {
	for {
		v, finish := supplier()
		if finish {
			return
		}
		for !r.Offer(v) {
		}
	}
}

// SingleConsumerPoll calls consume for every value until the ring reports
// empty. It assumes exactly one consumer goroutine calls it.
func (r *RingBuffer[T]) SingleConsumerPoll(consume func(T)) {
	for {
		v, ok := r.Poll()
		if !ok {
			return
		}
		consume(v)
	}
}
