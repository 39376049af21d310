package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/V4T54L/seamline/internal/domain"
)

func TestMergeSeries(t *testing.T) {
	cutover := time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)
	minute := func(m int) time.Time { return cutover.Add(time.Duration(m) * time.Minute) }

	t.Run("Concatenates Batch Then Speed", func(t *testing.T) {
		batch := []domain.SeriesPoint{
			{Minute: minute(-3), Count: 5},
			{Minute: minute(-1), Count: 7},
		}
		speed := []domain.SeriesPoint{
			{Minute: minute(0), Count: 2},
			{Minute: minute(2), Count: 4},
		}

		merged, err := mergeSeries(batch, speed, cutover)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(merged) != 4 {
			t.Fatalf("expected 4 points, got %d", len(merged))
		}
		for i := 1; i < len(merged); i++ {
			if !merged[i-1].Minute.Before(merged[i].Minute) {
				t.Errorf("series not strictly increasing at index %d", i)
			}
		}
	})

	t.Run("Empty Partitions", func(t *testing.T) {
		merged, err := mergeSeries(nil, nil, cutover)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(merged) != 0 {
			t.Errorf("expected empty series, got %d points", len(merged))
		}
	})

	t.Run("Batch Point At Cutover Fails", func(t *testing.T) {
		batch := []domain.SeriesPoint{{Minute: cutover, Count: 1}}
		_, err := mergeSeries(batch, nil, cutover)
		if !errors.Is(err, errSeamViolation) {
			t.Fatalf("expected seam violation, got %v", err)
		}
	})

	t.Run("Speed Point Before Cutover Fails", func(t *testing.T) {
		speed := []domain.SeriesPoint{{Minute: minute(-1), Count: 1}}
		_, err := mergeSeries(nil, speed, cutover)
		if !errors.Is(err, errSeamViolation) {
			t.Fatalf("expected seam violation, got %v", err)
		}
	})
}
