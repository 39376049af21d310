package domain

import "time"

// BucketWidth is the atomic time slice of the speed layer. Every speed-layer
// counter covers exactly one bucket, identified by its truncated start.
const BucketWidth = time.Minute

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// IsZeroLength reports whether the range covers no time at all.
// Zero-length ranges yield empty results, never an error.
func (r TimeRange) IsZeroLength() bool {
	return !r.Start.Before(r.End)
}

// Clamp restricts the range to [lo, hi). A fully excluded range comes back
// zero-length rather than inverted.
func (r TimeRange) Clamp(lo, hi time.Time) TimeRange {
	out := r
	if out.Start.Before(lo) {
		out.Start = lo
	}
	if out.End.After(hi) {
		out.End = hi
	}
	if out.End.Before(out.Start) {
		out.End = out.Start
	}
	return out
}

// SeriesPoint is one bucket of the merged order-count series.
type SeriesPoint struct {
	Minute time.Time `json:"minute"`
	Count  int64     `json:"count"`
}

// Buckets enumerates the bucket start instants covered by the range,
// ascending. The first bucket is the range start truncated to the bucket
// width, matching how the speed layer keys its counters.
func (r TimeRange) Buckets() []time.Time {
	if r.IsZeroLength() {
		return nil
	}
	var out []time.Time
	for cur := r.Start.Truncate(BucketWidth); cur.Before(r.End); cur = cur.Add(BucketWidth) {
		out = append(out, cur)
	}
	return out
}
