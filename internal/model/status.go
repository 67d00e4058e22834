package model

import "strings"

// StatusEventPublicOthers is the process label of the event watcher whose
// heartbeat carries the last processed block number.
const StatusEventPublicOthers = "EVENT_AWS_PUBLIC_OTHERS"

// StatusKind tags the shape a status row decodes into. The kind is derived
// from the process naming convention and nothing else.
type StatusKind uint8

const (
	// StatusPlain is a bare process/timestamp heartbeat.
	StatusPlain StatusKind = iota
	// StatusTrade carries the last trade price and volume.
	StatusTrade
	// StatusBlock carries the last processed block number.
	StatusBlock
)

// KindOfProcess maps a process label to its status shape: TRADE-prefixed
// processes report price/volume, EVENT-prefixed OTHERS-suffixed processes
// report a block number, everything else is a plain heartbeat.
func KindOfProcess(process string) StatusKind {
	switch {
	case strings.HasPrefix(process, "TRADE"):
		return StatusTrade
	case strings.HasPrefix(process, "EVENT") && strings.HasSuffix(process, "OTHERS"):
		return StatusBlock
	default:
		return StatusPlain
	}
}

// Status is one process heartbeat row. Price, Volume and Block are only
// meaningful for the kind that declares them.
type Status struct {
	Kind      StatusKind
	Process   string
	Timestamp int64
	Price     float64
	Volume    float64
	Block     int64
}
