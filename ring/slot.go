package ring

import "sync/atomic"

// keyKind tags what a slot's key holder currently represents.
type keyKind uint8

const (
	keyEmpty keyKind = iota
	keyKeyed
	keyNonCollapsible
)

// keyHolder distinguishes "no matchable key" (keyNonCollapsible) from "slot
// not in use" (keyEmpty) without needing a sentinel key value. Only the
// producer goroutine ever reads or writes a slot's keyHolder — the scan,
// the store, and cleanUp all run on the producer side — so it needs no
// atomic or mutex protection of its own.
type keyHolder[K comparable] struct {
	kind keyKind
	key  K
}

func keyedHolder[K comparable](key K) keyHolder[K] {
	return keyHolder[K]{kind: keyKeyed, key: key}
}

func nonCollapsibleHolder[K comparable]() keyHolder[K] {
	return keyHolder[K]{kind: keyNonCollapsible}
}

// slot holds one ring position: a key holder plus a value cell. The value
// cell is an atomic pointer rather than a plain V so the producer's
// coalescing replace and the consumer's drain can race on the same cell
// using swap / compare-and-swap instead of a lock — a nil pointer means
// "absent", mirroring the source's AtomicPtr<V> with a null sentinel.
type slot[K comparable, V any] struct {
	key   keyHolder[K]
	value atomic.Pointer[V]
}
