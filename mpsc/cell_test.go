package mpsc_test

import (
	"sync"
	"testing"

	"github.com/gsingh-ds/coalescing-ringbuffer/mpsc"
)

func TestPollEmptyReturnsFalse(t *testing.T) {
	_, receiver := mpsc.New[string]()
	if _, ok := receiver.Poll(); ok {
		t.Fatal("expected Poll on an empty cell to return ok=false")
	}
}

func TestSendThenPollRoundTrips(t *testing.T) {
	sender, receiver := mpsc.New[int]()
	sender.Send(42)

	v, ok := receiver.Poll()
	if !ok || v != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", v, ok)
	}

	if _, ok := receiver.Poll(); ok {
		t.Fatal("expected second Poll to find the cell drained")
	}
}

func TestLaterSendOverwritesEarlierUnpolledSend(t *testing.T) {
	sender, receiver := mpsc.New[int]()
	sender.Send(1)
	sender.Send(2)

	v, ok := receiver.Poll()
	if !ok || v != 2 {
		t.Fatalf("got (%d, %v), want (2, true)", v, ok)
	}
}

// TestConcurrentSendersNeverCorruptTheCell runs many producer goroutines
// hammering Send concurrently with one consumer goroutine polling; every
// value the consumer observes must be one that some sender actually sent
// (the atomic swap must never hand back a torn or fabricated value).
func TestConcurrentSendersNeverCorruptTheCell(t *testing.T) {
	const senders = 8
	const sendsPerSender = 5000

	sender, receiver := mpsc.New[int]()
	valid := make(map[int]bool, senders*sendsPerSender+1)
	for s := 0; s < senders; s++ {
		for i := 0; i < sendsPerSender; i++ {
			valid[s*sendsPerSender+i] = true
		}
	}

	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < sendsPerSender; i++ {
				sender.Send(s*sendsPerSender + i)
			}
		}()
	}

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				if v, ok := receiver.Poll(); ok && !valid[v] {
					t.Errorf("observed value %d that no sender sent", v)
				}
			}
		}
	}()

	wg.Wait()
	close(stop)
}
