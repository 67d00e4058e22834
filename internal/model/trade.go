// Package model defines the domain records persisted by the data layer.
// All records are immutable value types; relationships between them are
// expressed only through string-encoded store keys.
package model

// Known price sources.
const (
	SourceBitfinex = "bitfinex"
	SourceBitstamp = "bitstamp"
	SourceGemini   = "gemini"
	SourceKraken   = "kraken"
	SourceGdax     = "gdax"
)

// Trade is a single executed trade reported by an exchange feed.
// Written once, never updated. Price and Amount are non-negative.
type Trade struct {
	Quote     string
	Base      string
	Source    string
	ID        string
	Price     float64
	Amount    float64
	Timestamp int64 // epoch milliseconds, UTC
}
