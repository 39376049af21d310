package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/V4T54L/seamline/internal/domain"
)

// MockBatchStore is a mock implementation of domain.BatchStore for testing.
type MockBatchStore struct {
	mu sync.Mutex

	RangePoints    []domain.SeriesPoint
	RangeErr       error
	RangeCalls     []domain.TimeRange
	BucketCounts   map[int64]int64 // keyed by bucket unix seconds
	BucketErr      error
	BucketCalls    []time.Time
	DailySales     []domain.CategoryDailySales
	Provinces      []domain.ProvinceSales
	Behavior       []domain.PurchaseBehavior
	Products       []domain.ProductSales
	MinuteStats    []domain.MinuteOrderStat
	FunnelViews    int64
	FunnelCarts    int64
	FunnelBuys     int64
	AggregateErr   error
	BehaviorLimit  int
	ProductLimit   int
	RealtimeSince  time.Time
	AggregateCalls int
}

func (m *MockBatchStore) OrderCountsByMinute(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RangeCalls = append(m.RangeCalls, rng)
	if m.RangeErr != nil {
		return nil, m.RangeErr
	}
	var out []domain.SeriesPoint
	for _, p := range m.RangePoints {
		if !p.Minute.Before(rng.Start) && p.Minute.Before(rng.End) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockBatchStore) OrderCountForBucket(ctx context.Context, bucket time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BucketCalls = append(m.BucketCalls, bucket)
	if m.BucketErr != nil {
		return 0, m.BucketErr
	}
	return m.BucketCounts[bucket.Unix()], nil
}

func (m *MockBatchStore) DailySalesByCategory(ctx context.Context, startDate, endDate time.Time) ([]domain.CategoryDailySales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregateCalls++
	if m.AggregateErr != nil {
		return nil, m.AggregateErr
	}
	return m.DailySales, nil
}

func (m *MockBatchStore) ProvinceSalesRanking(ctx context.Context, date time.Time) ([]domain.ProvinceSales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregateCalls++
	if m.AggregateErr != nil {
		return nil, m.AggregateErr
	}
	return m.Provinces, nil
}

func (m *MockBatchStore) UserPurchaseBehavior(ctx context.Context, startDate, endDate time.Time, limit int) ([]domain.PurchaseBehavior, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregateCalls++
	m.BehaviorLimit = limit
	if m.AggregateErr != nil {
		return nil, m.AggregateErr
	}
	return m.Behavior, nil
}

func (m *MockBatchStore) ProductSalesRank(ctx context.Context, date time.Time, limit int) ([]domain.ProductSales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregateCalls++
	m.ProductLimit = limit
	if m.AggregateErr != nil {
		return nil, m.AggregateErr
	}
	return m.Products, nil
}

func (m *MockBatchStore) OrderStatsByMinute(ctx context.Context, since time.Time) ([]domain.MinuteOrderStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregateCalls++
	m.RealtimeSince = since
	if m.AggregateErr != nil {
		return nil, m.AggregateErr
	}
	return m.MinuteStats, nil
}

func (m *MockBatchStore) FunnelCounts(ctx context.Context, startDate, endDate time.Time) (int64, int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregateCalls++
	if m.AggregateErr != nil {
		return 0, 0, 0, m.AggregateErr
	}
	return m.FunnelViews, m.FunnelCarts, m.FunnelBuys, nil
}

// MockSpeedStore is a mock implementation of domain.SpeedStore for testing.
// Buckets present in Counts are hits; everything else is a miss unless the
// bucket is listed in FailBuckets, which simulates a lookup failure.
type MockSpeedStore struct {
	mu sync.Mutex

	Counts      map[int64]int64 // keyed by bucket unix seconds
	FailBuckets map[int64]error
	LookupErr   error
	Lookups     []time.Time
}

func (m *MockSpeedStore) OrderCount(ctx context.Context, bucket time.Time) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups = append(m.Lookups, bucket)
	if m.LookupErr != nil {
		return 0, false, m.LookupErr
	}
	if err, failed := m.FailBuckets[bucket.Unix()]; failed {
		return 0, false, err
	}
	count, ok := m.Counts[bucket.Unix()]
	return count, ok, nil
}
