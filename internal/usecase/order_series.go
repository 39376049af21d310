package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/V4T54L/seamline/internal/adapter/metrics"
	"github.com/V4T54L/seamline/internal/domain"
)

const defaultSpeedConcurrency = 8

// OrderSeriesUseCase answers per-minute order-count queries by stitching the
// batch layer and the speed layer at the cutover instant. Callers see one
// ordered, seam-free series.
type OrderSeriesUseCase struct {
	batch       domain.BatchStore
	speed       domain.SpeedStore
	cadence     time.Duration
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.QueryMetrics
}

// NewOrderSeriesUseCase creates a new OrderSeriesUseCase. cadence is the
// batch layer's refresh interval; concurrency bounds the speed-layer lookup
// pool (values < 1 fall back to the default).
func NewOrderSeriesUseCase(batch domain.BatchStore, speed domain.SpeedStore, cadence time.Duration, concurrency int, logger *slog.Logger, m *metrics.QueryMetrics) *OrderSeriesUseCase {
	if concurrency < 1 {
		concurrency = defaultSpeedConcurrency
	}
	return &OrderSeriesUseCase{
		batch:       batch,
		speed:       speed,
		cadence:     cadence,
		concurrency: concurrency,
		logger:      logger.With("component", "order_series"),
		metrics:     m,
	}
}

// Query returns the per-minute order counts for the half-open range. Buckets
// absent from both layers are simply missing from the series; counts that are
// reported are authoritative for their layer.
func (uc *OrderSeriesUseCase) Query(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error) {
	if rng.Start.After(rng.End) {
		return nil, fmt.Errorf("%w: range start %s after end %s",
			domain.ErrConfiguration, rng.Start.Format(time.RFC3339), rng.End.Format(time.RFC3339))
	}
	if rng.IsZeroLength() {
		return []domain.SeriesPoint{}, nil
	}

	if uc.metrics != nil {
		timer := uc.metrics.SeriesQueryTimer()
		defer timer.ObserveDuration()
	}

	cutover := ResolveCutover(rng.End, uc.cadence)
	uc.logger.Debug("resolved cutover",
		"start", rng.Start, "end", rng.End, "cutover", cutover)

	// The partitions never overlap, so the two layers can be read in
	// parallel and merged afterwards.
	var batchPoints, speedPoints []domain.SeriesPoint
	g, gctx := errgroup.WithContext(ctx)

	if rng.Start.Before(cutover) {
		g.Go(func() error {
			var err error
			batchPoints, err = uc.readBatch(gctx, rng, cutover)
			return err
		})
	}
	if rng.End.After(cutover) {
		g.Go(func() error {
			var err error
			speedPoints, err = uc.readSpeed(gctx, rng, cutover)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeSeries(batchPoints, speedPoints, cutover)
}

// readBatch fetches the settled partition [rng.Start, min(rng.End, cutover))
// from the batch store. The store orders by minute already; the sort is a
// guard against a template change, not a correctness dependency.
func (uc *OrderSeriesUseCase) readBatch(ctx context.Context, rng domain.TimeRange, cutover time.Time) ([]domain.SeriesPoint, error) {
	clamped := rng.Clamp(rng.Start, cutover)
	points, err := uc.batch.OrderCountsByMinute(ctx, clamped)
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Minute.Before(points[j].Minute)
	})
	return points, nil
}

// readSpeed fetches the live partition [max(rng.Start, cutover), rng.End)
// bucket by bucket. Lookups run on a bounded pool into a position-indexed
// slice, so parallelism cannot reorder the output; absent buckets are
// filtered afterwards.
func (uc *OrderSeriesUseCase) readSpeed(ctx context.Context, rng domain.TimeRange, cutover time.Time) ([]domain.SeriesPoint, error) {
	buckets := rng.Clamp(cutover, rng.End).Buckets()
	if len(buckets) == 0 {
		return nil, nil
	}

	results := make([]*domain.SeriesPoint, len(buckets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, bucket := range buckets {
		i, bucket := i, bucket
		g.Go(func() error {
			point, err := uc.lookupBucket(gctx, bucket)
			if err != nil {
				return err
			}
			results[i] = point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]domain.SeriesPoint, 0, len(buckets))
	for _, p := range results {
		if p != nil {
			points = append(points, *p)
		}
	}
	return points, nil
}

// lookupBucket resolves one bucket. A speed-layer miss — or a failed lookup,
// which must not abort the rest of the range — falls back to a single-bucket
// count against the batch store. A zero-count fallback means the bucket is
// absent from both layers and is omitted rather than reported as zero. Only a
// fallback failure is fatal.
func (uc *OrderSeriesUseCase) lookupBucket(ctx context.Context, bucket time.Time) (*domain.SeriesPoint, error) {
	count, ok, err := uc.speed.OrderCount(ctx, bucket)
	if err != nil {
		uc.logger.Warn("speed-layer lookup failed, falling back to batch store",
			"bucket", bucket, "error", err)
		if uc.metrics != nil {
			uc.metrics.SpeedLookupFailures.Inc()
		}
	} else if ok {
		if uc.metrics != nil {
			uc.metrics.SpeedHits.Inc()
		}
		return &domain.SeriesPoint{Minute: bucket, Count: count}, nil
	}

	if uc.metrics != nil {
		uc.metrics.SpeedMisses.Inc()
	}
	fallback, err := uc.batch.OrderCountForBucket(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.FallbackQueries.Inc()
	}
	if fallback == 0 {
		return nil, nil
	}
	return &domain.SeriesPoint{Minute: bucket, Count: fallback}, nil
}
