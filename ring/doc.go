// Package ring implements a bounded, lock-free single-producer /
// single-consumer queue that coalesces in-flight updates sharing the same
// key. A slow consumer always observes the latest value offered per key and
// may skip superseded intermediates; values offered without a key are never
// coalesced and are delivered in order.
//
// The zero value of CoalescingRingBuffer is not usable; construct a buffer
// with New, which hands back a Producer and a Consumer wrapping the same
// underlying storage. Exactly one goroutine may hold the Producer and call
// its methods; exactly one goroutine may hold the Consumer. Sharing either
// handle across more than one goroutine is undefined behavior, same as
// sharing a single channel end would be.
package ring
