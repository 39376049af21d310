package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/V4T54L/seamline/internal/adapter/metrics"
	"github.com/V4T54L/seamline/internal/domain"
)

const (
	defaultBehaviorLimit = 100
	defaultProductLimit  = 10
	realtimeWindow       = 5 * time.Minute
)

// AnalyticsUseCase exposes the stateless aggregate reads against the batch
// store. No cross-layer reconciliation happens here; every operation is one
// parameterized query plus output mapping.
type AnalyticsUseCase struct {
	batch   domain.BatchStore
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.QueryMetrics
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase.
func NewAnalyticsUseCase(batch domain.BatchStore, logger *slog.Logger, m *metrics.QueryMetrics) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		batch:   batch,
		now:     time.Now,
		logger:  logger.With("component", "analytics"),
		metrics: m,
	}
}

func (uc *AnalyticsUseCase) count(query string) {
	if uc.metrics != nil {
		uc.metrics.AnalyticsQueries.WithLabelValues(query).Inc()
	}
}

// DailySalesByCategory returns per-category daily sales between the two
// dates inclusive, ordered by date descending then sales descending.
func (uc *AnalyticsUseCase) DailySalesByCategory(ctx context.Context, startDate, endDate time.Time) ([]domain.CategoryDailySales, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrConfiguration)
	}
	uc.count("daily_sales")
	return uc.batch.DailySalesByCategory(ctx, startDate, endDate)
}

// ProvinceSalesRanking returns the provinces ranked by total sales for a day.
func (uc *AnalyticsUseCase) ProvinceSalesRanking(ctx context.Context, date time.Time) ([]domain.ProvinceSales, error) {
	uc.count("province_ranking")
	return uc.batch.ProvinceSalesRanking(ctx, date)
}

// UserPurchaseBehavior breaks purchases down by age group, province and
// category, highest spend first. limit <= 0 uses the default of 100.
func (uc *AnalyticsUseCase) UserPurchaseBehavior(ctx context.Context, startDate, endDate time.Time, limit int) ([]domain.PurchaseBehavior, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrConfiguration)
	}
	if limit <= 0 {
		limit = defaultBehaviorLimit
	}
	uc.count("user_behavior")
	return uc.batch.UserPurchaseBehavior(ctx, startDate, endDate, limit)
}

// ProductSalesRank returns the top products by revenue for a day.
// limit <= 0 uses the default of 10.
func (uc *AnalyticsUseCase) ProductSalesRank(ctx context.Context, date time.Time, limit int) ([]domain.ProductSales, error) {
	if limit <= 0 {
		limit = defaultProductLimit
	}
	uc.count("product_rank")
	return uc.batch.ProductSalesRank(ctx, date, limit)
}

// RealtimeMetrics summarizes the trailing five-minute window: totals, the
// average order value, and the per-minute breakdown.
func (uc *AnalyticsUseCase) RealtimeMetrics(ctx context.Context) (*domain.RealtimeMetrics, error) {
	uc.count("realtime")
	stats, err := uc.batch.OrderStatsByMinute(ctx, uc.now().Add(-realtimeWindow))
	if err != nil {
		return nil, err
	}

	out := &domain.RealtimeMetrics{OrdersPerMinute: stats}
	for _, s := range stats {
		out.Orders += s.Count
		out.Revenue += s.Revenue
	}
	out.AvgOrderValue = safeDiv(out.Revenue, float64(out.Orders))
	return out, nil
}

// ConversionFunnel computes the page-view -> cart -> purchase funnel over a
// date range. All rates are percentages with zero denominators guarded to 0.
func (uc *AnalyticsUseCase) ConversionFunnel(ctx context.Context, startDate, endDate time.Time) (*domain.ConversionFunnel, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrConfiguration)
	}
	uc.count("funnel")
	views, carts, purchases, err := uc.batch.FunnelCounts(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &domain.ConversionFunnel{
		PageViews:             views,
		AddToCarts:            carts,
		Purchases:             purchases,
		ViewToCartRate:        safeDiv(float64(carts), float64(views)) * 100,
		CartToPurchaseRate:    safeDiv(float64(purchases), float64(carts)) * 100,
		OverallConversionRate: safeDiv(float64(purchases), float64(views)) * 100,
	}, nil
}

// safeDiv returns num/den, or exactly 0 when the denominator is 0.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
