package usecase

import "time"

// ResolveCutover computes the boundary between batch-authoritative and
// speed-authoritative time: the latest cadence-aligned instant at or before
// queryEnd, stepping back one full period when queryEnd itself sits on a
// boundary. Data before the cutover has been settled by the last batch
// refresh; data at or after it is still arriving in the speed layer.
//
// cadence must be positive; that is validated at config load, not here.
func ResolveCutover(queryEnd time.Time, cadence time.Duration) time.Time {
	cutover := queryEnd.Truncate(cadence)
	if cutover.Equal(queryEnd) {
		cutover = cutover.Add(-cadence)
	}
	return cutover
}
