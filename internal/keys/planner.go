package keys

import "time"

// PlanBuckets expands a `[start, end)` millisecond range into the ordered
// partition buckets a range read has to visit at the period's resolution.
// The first bucket is start itself, followed by every calendar-unit
// boundary after start that is strictly before end. Querying each bucket's
// partition and unioning the results covers the full range with no gaps.
// start == end yields the single bucket [start].
func PlanBuckets(period int, startMillis, endMillis int64) ([]int64, error) {
	u, err := unitOf(period)
	if err != nil {
		return nil, err
	}
	buckets := []int64{startMillis}
	for t := nextBoundary(u, startMillis); t < endMillis; t = advance(u, t) {
		buckets = append(buckets, t)
	}
	return buckets, nil
}

// nextBoundary returns the start of the calendar unit after tsMillis, UTC.
func nextBoundary(u unit, tsMillis int64) int64 {
	return advance(u, truncate(u, tsMillis))
}

func truncate(u unit, tsMillis int64) int64 {
	t := time.UnixMilli(tsMillis).UTC()
	switch u {
	case unitMinute:
		return t.Truncate(time.Minute).UnixMilli()
	case unitHour:
		return t.Truncate(time.Hour).UnixMilli()
	case unitDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	}
}

func advance(u unit, tsMillis int64) int64 {
	t := time.UnixMilli(tsMillis).UTC()
	switch u {
	case unitMinute:
		return t.Add(time.Minute).UnixMilli()
	case unitHour:
		return t.Add(time.Hour).UnixMilli()
	case unitDay:
		return t.AddDate(0, 0, 1).UnixMilli()
	default:
		return t.AddDate(0, 1, 0).UnixMilli()
	}
}
