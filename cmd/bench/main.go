// Command bench reimagines the source's examples/performance_test.rs: it
// drives a fixed number of updates through three queues — the coalescing
// ring, the no-coalescing rawring baseline, and the external LENSHOOD
// lock-free ring the teacher repo itself depends on — and logs throughput
// (millions of ops/sec) for each plus the coalescing ring's compression
// ratio (offers per delivered value), then renders the three throughput
// series as an HTML line chart instead of the source's stdout-only println!
// output.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	flag "github.com/spf13/pflag"

	lenshood "github.com/LENSHOOD/go-lock-free-ring-buffer"

	"github.com/gsingh-ds/coalescing-ringbuffer/marketdata"
	"github.com/gsingh-ds/coalescing-ringbuffer/rawring"
	"github.com/gsingh-ds/coalescing-ringbuffer/ring"
)

type runResult struct {
	label            string
	opsPerSecond     float64
	compressionRatio float64
}

func main() {
	flagSet := flag.NewFlagSet("bench", flag.ContinueOnError)
	updates := flagSet.Int64("updates", 5_000_000, "number of updates to offer per run")
	instruments := flagSet.Int64("instruments", 10, "number of distinct instrument keys")
	capacity := flagSet.Uint64("capacity", 1<<16, "ring capacity (rounded up to a power of two)")
	runs := flagSet.Int("runs", 5, "number of repeated runs to chart")
	out := flagSet.String("out", "bench.html", "path to write the HTML chart to")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "cmd", "bench")

	runLabels := make([]string, *runs)
	coalescing := make([]opts.LineData, *runs)
	raw := make([]opts.LineData, *runs)
	baseline := make([]opts.LineData, *runs)

	for i := 0; i < *runs; i++ {
		runLabels[i] = fmt.Sprintf("run %d", i+1)

		cr := runCoalescingRing(*updates, *instruments, *capacity)
		rr := runRawRing(*updates, *capacity)
		lr := runLenshoodRing(*updates, *capacity)

		level.Info(logger).Log(
			"msg", "run complete", "run", i+1,
			"coalescing_mops", cr.opsPerSecond, "coalescing_ratio", cr.compressionRatio,
			"raw_mops", rr.opsPerSecond,
			"lenshood_mops", lr.opsPerSecond,
		)

		coalescing[i] = opts.LineData{Value: cr.opsPerSecond}
		raw[i] = opts.LineData{Value: rr.opsPerSecond}
		baseline[i] = opts.LineData{Value: lr.opsPerSecond}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "coalescing ring vs. raw ring vs. LENSHOOD ring",
			Subtitle: "millions of ops/sec per run",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "run"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Mops/s"}),
	)
	line.SetXAxis(runLabels).
		AddSeries("coalescing ring", coalescing).
		AddSeries("rawring (no coalescing)", raw).
		AddSeries("LENSHOOD ring (baseline)", baseline)

	f, err := os.Create(*out)
	if err != nil {
		level.Error(logger).Log("msg", "could not create chart output", "err", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		level.Error(logger).Log("msg", "could not render chart", "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "wrote chart", "path", *out)
}

func runCoalescingRing(updates, instruments int64, capacity uint64) runResult {
	producer, consumer := ring.New[int64, marketdata.Snapshot](capacity)

	producerDone := make(chan struct{})
	done := make(chan struct{})
	var delivered int64
	go func() {
		defer close(done)
		for {
			out := consumer.Poll(uint64(instruments))
			delivered += int64(len(out))
			if len(out) == 0 {
				select {
				case <-producerDone:
					if consumer.IsEmpty() {
						return
					}
				default:
				}
			}
		}
	}()

	start := time.Now()
	for seq := int64(0); seq < updates; seq++ {
		id := seq % instruments
		for !producer.Offer(id, marketdata.New(id, seq, seq+1)) {
		}
	}
	close(producerDone)
	<-done
	elapsed := time.Since(start)

	return runResult{
		label:            "coalescing",
		opsPerSecond:     megaOpsPerSecond(updates, elapsed),
		compressionRatio: float64(updates) / float64(delivered),
	}
}

func runRawRing(updates int64, capacity uint64) runResult {
	rb := rawring.New[marketdata.Snapshot](capacity)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var delivered int64
		for delivered < updates {
			if _, ok := rb.Poll(); ok {
				delivered++
			}
		}
	}()

	start := time.Now()
	for seq := int64(0); seq < updates; seq++ {
		for !rb.Offer(marketdata.New(seq, seq, seq+1)) {
		}
	}
	<-done

	return runResult{label: "raw", opsPerSecond: megaOpsPerSecond(updates, time.Since(start)), compressionRatio: 1}
}

func runLenshoodRing(updates int64, capacity uint64) runResult {
	rb := lenshood.New[marketdata.Snapshot](capacity)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var delivered int64
		for delivered < updates {
			if _, ok := rb.Poll(); ok {
				delivered++
			}
		}
	}()

	start := time.Now()
	for seq := int64(0); seq < updates; seq++ {
		for !rb.Offer(marketdata.New(seq, seq, seq+1)) {
		}
	}
	<-done

	return runResult{label: "lenshood", opsPerSecond: megaOpsPerSecond(updates, time.Since(start)), compressionRatio: 1}
}

func megaOpsPerSecond(updates int64, elapsed time.Duration) float64 {
	return (1000.0 * float64(updates)) / float64(elapsed.Nanoseconds())
}
