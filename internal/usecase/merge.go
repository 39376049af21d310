package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/V4T54L/seamline/internal/domain"
)

// errSeamViolation indicates a point landed on the wrong side of the cutover.
// That is always a clamping or boundary bug, never bad data, so the query
// fails instead of silently reordering.
var errSeamViolation = errors.New("series seam invariant violated")

// mergeSeries concatenates the batch partition and the speed partition into
// one series. The partitions are disjoint by construction (batch strictly
// before the cutover, speed at or after it) and each internally sorted, so
// concatenation is the whole merge; the invariant is enforced, not assumed.
func mergeSeries(batch, speed []domain.SeriesPoint, cutover time.Time) ([]domain.SeriesPoint, error) {
	for _, p := range batch {
		if !p.Minute.Before(cutover) {
			return nil, fmt.Errorf("%w: batch point %s at or beyond cutover %s",
				errSeamViolation, p.Minute.Format(time.RFC3339), cutover.Format(time.RFC3339))
		}
	}
	for _, p := range speed {
		if p.Minute.Before(cutover) {
			return nil, fmt.Errorf("%w: speed point %s before cutover %s",
				errSeamViolation, p.Minute.Format(time.RFC3339), cutover.Format(time.RFC3339))
		}
	}

	merged := make([]domain.SeriesPoint, 0, len(batch)+len(speed))
	merged = append(merged, batch...)
	merged = append(merged, speed...)
	return merged, nil
}
