// Package keys encodes domain identifiers and timestamps into the
// composite partition and sort keys used by the store, and plans the
// partition buckets a time-range query has to visit.
//
// Keys are `|`-joined strings. Components must not contain the delimiter;
// write-path encoders reject such values instead of emitting an ambiguous
// key.
package keys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/duo-network/datastore/internal/model"
)

// Delimiter joins key components.
const Delimiter = "|"

// Partition-key attribute names, one per time resolution.
const (
	AttrSourceDateHourMinute = "sourceDateHourMinute"
	AttrSourceDateHour       = "sourceDateHour"
	AttrSourceDate           = "sourceDate"
	AttrSourceYearMonth      = "sourceYearMonth"
)

// ErrInvalidPeriod is returned for a period outside {0,1,10,60,360,1440}.
var ErrInvalidPeriod = errors.New("invalid period")

type unit int

const (
	unitMinute unit = iota
	unitHour
	unitDay
	unitMonth
)

func unitOf(period int) (unit, error) {
	switch period {
	case 0:
		return unitMinute, nil
	case 1, 10:
		return unitHour, nil
	case 60:
		return unitDay, nil
	case 360, 1440:
		return unitMonth, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidPeriod, period)
	}
}

// PartitionAttr returns the partition-key attribute name for a period.
func PartitionAttr(period int) (string, error) {
	u, err := unitOf(period)
	if err != nil {
		return "", err
	}
	switch u {
	case unitMinute:
		return AttrSourceDateHourMinute, nil
	case unitHour:
		return AttrSourceDateHour, nil
	case unitDay:
		return AttrSourceDate, nil
	default:
		return AttrSourceYearMonth, nil
	}
}

// FormatBucket renders the truncated UTC timestamp component of a
// partition key at the resolution of the given period.
func FormatBucket(period int, tsMillis int64) (string, error) {
	u, err := unitOf(period)
	if err != nil {
		return "", err
	}
	t := time.UnixMilli(tsMillis).UTC()
	switch u {
	case unitMinute:
		return t.Format("2006-01-02-15-04"), nil
	case unitHour:
		return t.Format("2006-01-02-15"), nil
	case unitDay:
		return t.Format("2006-01-02"), nil
	default:
		return t.Format("2006-01"), nil
	}
}

// PartitionKey encodes `source|<bucket>` for the given period.
func PartitionKey(source string, period int, tsMillis int64) (string, error) {
	bucket, err := FormatBucket(period, tsMillis)
	if err != nil {
		return "", err
	}
	return source + Delimiter + bucket, nil
}

// ValidateComponents rejects key components containing the delimiter.
func ValidateComponents(parts ...string) error {
	for _, p := range parts {
		if strings.Contains(p, Delimiter) {
			return fmt.Errorf("key component %q contains reserved delimiter %q", p, Delimiter)
		}
	}
	return nil
}

// Pair encodes `quote|base`.
func Pair(quote, base string) string {
	return quote + Delimiter + base
}

// TradeSortKey encodes `quote|base|id`.
func TradeSortKey(quote, base, id string) string {
	return quote + Delimiter + base + Delimiter + id
}

// PriceSortKey encodes `quote|base|timestampMillis`.
func PriceSortKey(quote, base string, tsMillis int64) string {
	return quote + Delimiter + base + Delimiter + strconv.FormatInt(tsMillis, 10)
}

// EventDate renders the date component of an event key. TotalSupply events
// use year-month-hour granularity; every other type uses year-month-day.
func EventDate(eventType string, tsMillis int64) string {
	t := time.UnixMilli(tsMillis).UTC()
	if eventType == model.EventTotalSupply {
		return t.Format("2006-01-15")
	}
	return t.Format("2006-01-02")
}

// EventKey encodes `contractAddress|type|date[|address]`. The address
// component is omitted when empty.
func EventKey(contractAddress, eventType, date, address string) string {
	key := contractAddress + Delimiter + eventType + Delimiter + date
	if address != "" {
		key += Delimiter + address
	}
	return key
}

// UIEventKey encodes `contractAddress|type|account`. Pending UI rows key
// by account instead of a time bucket.
func UIEventKey(contractAddress, eventType, account string) string {
	return contractAddress + Delimiter + eventType + Delimiter + account
}
