// Command soak runs a long-lived producer/consumer pair over a
// ring.CoalescingRingBuffer, printing a periodic status line, the same role
// the source's examples/soak_test.rs plays: it is not a correctness test,
// it is a harness you leave running to shake out anything the short-lived
// unit tests would not catch (memory growth, stalls, lock contention that
// should not exist at all).
//
// A second, unrelated goroutine watches for an OS interrupt and signals
// shutdown through an mpsc Sender/Receiver pair rather than the coalescing ring — the ring
// is SPSC and this is exactly the kind of multi-producer signal (a second
// watchdog goroutine could just as easily also request shutdown) the ring
// cannot carry.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	flag "github.com/spf13/pflag"

	"github.com/gsingh-ds/coalescing-ringbuffer/marketdata"
	"github.com/gsingh-ds/coalescing-ringbuffer/mpsc"
	"github.com/gsingh-ds/coalescing-ringbuffer/ring"
)

func main() {
	flagSet := flag.NewFlagSet("soak", flag.ContinueOnError)
	capacity := flagSet.Uint64("capacity", 8, "ring buffer capacity (rounded up to a power of two)")
	instruments := flagSet.Int("instruments", 2, "number of distinct instrument keys to cycle through")
	pollBatch := flagSet.Uint64("poll-batch", 10, "max items drained per Poll call")
	statusEvery := flagSet.Duration("status-every", 10*time.Second, "how often to log a status line")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "cmd", "soak")

	defer func() {
		if f := recover(); f != nil {
			level.Error(logger).Log("msg", "fatal invariant violation", "fault", fmt.Sprintf("%v", f))
			panic(f)
		}
	}()

	producer, consumer := ring.New[int64, marketdata.Snapshot](*capacity)
	stopSender, stopReceiver := mpsc.New[struct{}]()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		stopSender.Send(struct{}{})
	}()

	done := make(chan struct{})
	go runProducer(producer, stopReceiver, int64(*instruments), done)
	go runConsumer(logger, consumer, *pollBatch, *statusEvery)

	<-done
	level.Info(logger).Log("msg", "producer stopped, exiting")
}

func runProducer(producer *ring.Producer[int64, marketdata.Snapshot], stop *mpsc.Receiver[struct{}], instruments int64, done chan<- struct{}) {
	defer close(done)

	var seq int64
	for {
		if _, stopped := stop.Poll(); stopped {
			return
		}

		id := seq % instruments
		snap := marketdata.New(id, seq, seq+1)
		for !producer.Offer(id, snap) {
			// full: the consumer will catch up; spin rather than drop
		}
		seq++
	}
}

func runConsumer(logger log.Logger, consumer *ring.Consumer[int64, marketdata.Snapshot], pollBatch uint64, statusEvery time.Duration) {
	var drained uint64
	lastReport := time.Now()

	for {
		batch := consumer.Poll(pollBatch)
		drained += uint64(len(batch))

		if time.Since(lastReport) >= statusEvery {
			level.Info(logger).Log(
				"msg", "status",
				"drained_total", drained,
				"buffer_size", consumer.Size(),
			)
			lastReport = time.Now()
		}

		if len(batch) == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}
