package domain

import (
	"context"
	"time"
)

// BatchStore is the read interface over the batch layer: finalized aggregates
// refreshed on a fixed cadence by upstream batch jobs. Implementations do not
// retry; connection pooling and timeouts belong to the underlying client.
type BatchStore interface {
	// OrderCountsByMinute returns per-minute order counts for the half-open
	// range, ordered by minute ascending. Minutes with no orders are absent.
	OrderCountsByMinute(ctx context.Context, rng TimeRange) ([]SeriesPoint, error)

	// OrderCountForBucket counts orders inside a single bucket
	// [bucket, bucket+BucketWidth). Used as the speed-layer miss fallback.
	OrderCountForBucket(ctx context.Context, bucket time.Time) (int64, error)

	DailySalesByCategory(ctx context.Context, startDate, endDate time.Time) ([]CategoryDailySales, error)
	ProvinceSalesRanking(ctx context.Context, date time.Time) ([]ProvinceSales, error)
	UserPurchaseBehavior(ctx context.Context, startDate, endDate time.Time, limit int) ([]PurchaseBehavior, error)
	ProductSalesRank(ctx context.Context, date time.Time, limit int) ([]ProductSales, error)
	OrderStatsByMinute(ctx context.Context, since time.Time) ([]MinuteOrderStat, error)
	FunnelCounts(ctx context.Context, startDate, endDate time.Time) (pageViews, addToCarts, purchases int64, err error)
}

// SpeedStore is the point-lookup interface over the speed layer: recent,
// possibly incomplete per-bucket counters written by the stream processor.
// This layer never writes to it.
type SpeedStore interface {
	// OrderCount looks up the counter for the bucket starting at the given
	// instant. ok is false when the speed layer has no value for the bucket
	// (miss, eviction, not yet written) — an expected outcome, not an error.
	OrderCount(ctx context.Context, bucket time.Time) (count int64, ok bool, err error)
}
