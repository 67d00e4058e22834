package model

// ValidPeriods lists the supported aggregation periods in minutes.
// Period 0 means a raw trade tick.
var ValidPeriods = []int{0, 1, 10, 60, 360, 1440}

// Price is an OHLC bar for one pair at one aggregation period.
// Invariant: Low <= min(Open, Close) <= max(Open, Close) <= High.
type Price struct {
	Source    string
	Base      string
	Quote     string
	Timestamp int64 // epoch milliseconds, UTC
	Period    int   // minutes; 0 = raw trade tick
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
