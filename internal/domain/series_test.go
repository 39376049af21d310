package domain

import (
	"testing"
	"time"
)

func TestTimeRange(t *testing.T) {
	base := time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

	t.Run("Zero Length", func(t *testing.T) {
		if !(TimeRange{Start: base, End: base}).IsZeroLength() {
			t.Error("expected start == end to be zero-length")
		}
		if (TimeRange{Start: base, End: base.Add(time.Second)}).IsZeroLength() {
			t.Error("expected non-empty range to not be zero-length")
		}
	})

	t.Run("Clamp Restricts Both Ends", func(t *testing.T) {
		rng := TimeRange{Start: base.Add(-time.Hour), End: base.Add(time.Hour)}
		got := rng.Clamp(base.Add(-30*time.Minute), base.Add(30*time.Minute))
		if !got.Start.Equal(base.Add(-30*time.Minute)) || !got.End.Equal(base.Add(30*time.Minute)) {
			t.Errorf("unexpected clamp result: %+v", got)
		}
	})

	t.Run("Clamp Never Inverts", func(t *testing.T) {
		rng := TimeRange{Start: base, End: base.Add(time.Hour)}
		got := rng.Clamp(base.Add(2*time.Hour), base.Add(3*time.Hour))
		if !got.IsZeroLength() {
			t.Errorf("expected fully excluded range to come back zero-length, got %+v", got)
		}
	})

	t.Run("Buckets Cover Half-Open Range", func(t *testing.T) {
		rng := TimeRange{Start: base, End: base.Add(3 * time.Minute)}
		buckets := rng.Buckets()
		if len(buckets) != 3 {
			t.Fatalf("expected 3 buckets, got %d", len(buckets))
		}
		if !buckets[0].Equal(base) || !buckets[2].Equal(base.Add(2*time.Minute)) {
			t.Errorf("unexpected bucket bounds: %v .. %v", buckets[0], buckets[2])
		}
	})

	t.Run("Buckets Align To Minute", func(t *testing.T) {
		rng := TimeRange{Start: base.Add(30 * time.Second), End: base.Add(90 * time.Second)}
		buckets := rng.Buckets()
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		if !buckets[0].Equal(base) {
			t.Errorf("expected first bucket truncated to %v, got %v", base, buckets[0])
		}
	})

	t.Run("Empty Range Has No Buckets", func(t *testing.T) {
		if got := (TimeRange{Start: base, End: base}).Buckets(); got != nil {
			t.Errorf("expected nil buckets, got %v", got)
		}
	})
}
