package ring_test

import (
	"testing"

	"github.com/gsingh-ds/coalescing-ringbuffer/marketdata"
	"github.com/gsingh-ds/coalescing-ringbuffer/ring"
)

func BenchmarkOfferCoalescing(b *testing.B) {
	producer, consumer := ring.New[int64, marketdata.Snapshot](1024)
	const instruments = 16

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := int64(i % instruments)
		producer.Offer(id, marketdata.New(id, int64(i), int64(i)))
		if producer.IsFull() {
			consumer.Poll(instruments)
		}
	}
}

func BenchmarkOfferValueOnly(b *testing.B) {
	producer, consumer := ring.New[int64, marketdata.Snapshot](1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		producer.OfferValueOnly(marketdata.New(int64(i), int64(i), int64(i)))
		if producer.IsFull() {
			consumer.Poll(64)
		}
	}
}

func BenchmarkPollAll(b *testing.B) {
	producer, consumer := ring.New[int64, marketdata.Snapshot](1024)
	for i := 0; i < 1023; i++ {
		producer.OfferValueOnly(marketdata.New(int64(i), int64(i), int64(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		consumer.PollAll()
		producer.OfferValueOnly(marketdata.New(int64(i), int64(i), int64(i)))
	}
}
