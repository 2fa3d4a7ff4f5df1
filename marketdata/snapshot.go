// Package marketdata provides a small sample domain value, a market data
// snapshot keyed by instrument, used by the ring scenario tests and
// benchmarks and by the cmd/soak and cmd/bench harnesses. It has no bearing on the
// correctness of the queues it flows through — it exists only to give the
// generic K/V type parameters something concrete to carry, the same role
// the source's MarketSnapshot test fixture plays.
package marketdata

// Snapshot is a best bid/ask quote for one instrument.
type Snapshot struct {
	InstrumentID int64
	Bid          int64
	Ask          int64
}

// New builds a Snapshot for instrumentID with the given bid/ask.
func New(instrumentID, bid, ask int64) Snapshot {
	return Snapshot{InstrumentID: instrumentID, Bid: bid, Ask: ask}
}
