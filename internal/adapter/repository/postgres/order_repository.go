package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/V4T54L/seamline/internal/domain"
)

// Query templates with their declared select lists. Scans are verified
// against the declared columns before any row is read, so a template edit
// that shifts the select list fails loudly instead of misaligning values.
const (
	orderCountsByMinuteQuery = `
		SELECT date_trunc('minute', created_at) AS minute,
		       COUNT(*) AS order_count
		FROM fact_orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY minute
		ORDER BY minute`

	orderCountForBucketQuery = `
		SELECT COUNT(*) AS order_count
		FROM fact_orders
		WHERE created_at >= $1 AND created_at < $2`

	dailySalesByCategoryQuery = `
		SELECT category,
		       order_date,
		       SUM(daily_sales) AS daily_sales,
		       SUM(order_count) AS order_count,
		       COALESCE(SUM(daily_sales) / NULLIF(SUM(order_count), 0), 0) AS avg_order_value
		FROM mv_daily_sales
		WHERE order_date >= $1::date AND order_date <= $2::date
		GROUP BY category, order_date
		ORDER BY order_date DESC, daily_sales DESC`

	provinceSalesRankingQuery = `
		SELECT province,
		       SUM(amount) AS total_sales,
		       COUNT(*) AS order_count,
		       COALESCE(AVG(amount), 0) AS avg_order_value
		FROM fact_orders
		WHERE order_date = $1::date
		GROUP BY province
		ORDER BY total_sales DESC`

	userPurchaseBehaviorQuery = `
		SELECT CASE
		           WHEN u.age < 25 THEN '18-24'
		           WHEN u.age < 35 THEN '25-34'
		           WHEN u.age < 45 THEN '35-44'
		           WHEN u.age < 55 THEN '45-54'
		           ELSE '55+'
		       END AS age_group,
		       u.province,
		       o.category,
		       COUNT(*) AS purchase_count,
		       SUM(o.amount) AS total_spent,
		       COALESCE(AVG(o.amount), 0) AS avg_spent
		FROM fact_orders o
		JOIN dim_users u ON o.user_id = u.user_id
		WHERE o.order_date >= $1::date AND o.order_date <= $2::date
		GROUP BY age_group, u.province, o.category
		ORDER BY total_spent DESC
		LIMIT $3`

	productSalesRankQuery = `
		SELECT p.product_id,
		       p.product_name,
		       p.category,
		       mv.sales_count,
		       mv.total_revenue
		FROM mv_product_sales_rank mv
		JOIN dim_products p ON mv.product_id = p.product_id
		WHERE mv.order_date = $1::date
		ORDER BY mv.total_revenue DESC
		LIMIT $2`

	orderStatsByMinuteQuery = `
		SELECT date_trunc('minute', created_at) AS minute,
		       COUNT(*) AS order_count,
		       COALESCE(SUM(amount), 0) AS revenue
		FROM fact_orders
		WHERE created_at >= $1
		GROUP BY minute
		ORDER BY minute`

	funnelCountsQuery = `
		SELECT COUNT(*) FILTER (WHERE event_type = 'page_view') AS page_views,
		       COUNT(*) FILTER (WHERE event_type = 'add_to_cart') AS add_to_carts,
		       COUNT(*) FILTER (WHERE event_type = 'purchase') AS purchases
		FROM fact_clickstream
		WHERE event_time::date >= $1::date AND event_time::date <= $2::date`
)

// OrderRepository implements domain.BatchStore against PostgreSQL. It issues
// parameterized reads only; retries and pooling are the driver's concern.
type OrderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewOrderRepository creates a new PostgreSQL batch store repository.
func NewOrderRepository(db *sql.DB, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger.With("component", "postgres_repository")}
}

// OrderCountsByMinute returns per-minute order counts for the half-open range,
// ordered by minute ascending. Minutes without orders produce no row.
func (r *OrderRepository) OrderCountsByMinute(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error) {
	const op = "order counts by minute"
	rows, err := r.db.QueryContext(ctx, orderCountsByMinuteQuery, rng.Start, rng.End)
	if err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	defer rows.Close()

	if err := checkColumns(rows, "minute", "order_count"); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}

	var points []domain.SeriesPoint
	for rows.Next() {
		var p domain.SeriesPoint
		if err := rows.Scan(&p.Minute, &p.Count); err != nil {
			return nil, &domain.BatchStoreError{Op: op, Err: err}
		}
		p.Minute = p.Minute.UTC()
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	return points, nil
}

// OrderCountForBucket counts orders within a single one-minute bucket.
func (r *OrderRepository) OrderCountForBucket(ctx context.Context, bucket time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, orderCountForBucketQuery, bucket, bucket.Add(domain.BucketWidth)).Scan(&count)
	if err != nil {
		return 0, &domain.BatchStoreError{Op: "order count for bucket", Err: err}
	}
	return count, nil
}

// DailySalesByCategory reads the daily sales materialized view.
func (r *OrderRepository) DailySalesByCategory(ctx context.Context, startDate, endDate time.Time) ([]domain.CategoryDailySales, error) {
	const op = "daily sales by category"
	rows, err := r.db.QueryContext(ctx, dailySalesByCategoryQuery, startDate, endDate)
	if err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	defer rows.Close()

	if err := checkColumns(rows, "category", "order_date", "daily_sales", "order_count", "avg_order_value"); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}

	var out []domain.CategoryDailySales
	for rows.Next() {
		var row domain.CategoryDailySales
		if err := rows.Scan(&row.Category, &row.OrderDate, &row.DailySales, &row.OrderCount, &row.AvgOrderValue); err != nil {
			return nil, &domain.BatchStoreError{Op: op, Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	return out, nil
}

// ProvinceSalesRanking ranks provinces by total sales for one day.
func (r *OrderRepository) ProvinceSalesRanking(ctx context.Context, date time.Time) ([]domain.ProvinceSales, error) {
	const op = "province sales ranking"
	rows, err := r.db.QueryContext(ctx, provinceSalesRankingQuery, date)
	if err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	defer rows.Close()

	if err := checkColumns(rows, "province", "total_sales", "order_count", "avg_order_value"); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}

	var out []domain.ProvinceSales
	for rows.Next() {
		var row domain.ProvinceSales
		if err := rows.Scan(&row.Province, &row.TotalSales, &row.OrderCount, &row.AvgOrderValue); err != nil {
			return nil, &domain.BatchStoreError{Op: op, Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	return out, nil
}

// UserPurchaseBehavior joins orders to the user dimension and aggregates by
// age group, province and category.
func (r *OrderRepository) UserPurchaseBehavior(ctx context.Context, startDate, endDate time.Time, limit int) ([]domain.PurchaseBehavior, error) {
	const op = "user purchase behavior"
	rows, err := r.db.QueryContext(ctx, userPurchaseBehaviorQuery, startDate, endDate, limit)
	if err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	defer rows.Close()

	if err := checkColumns(rows, "age_group", "province", "category", "purchase_count", "total_spent", "avg_spent"); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}

	var out []domain.PurchaseBehavior
	for rows.Next() {
		var row domain.PurchaseBehavior
		if err := rows.Scan(&row.AgeGroup, &row.Province, &row.Category, &row.PurchaseCount, &row.TotalSpent, &row.AvgSpent); err != nil {
			return nil, &domain.BatchStoreError{Op: op, Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	return out, nil
}

// ProductSalesRank joins the product ranking view to the product dimension.
func (r *OrderRepository) ProductSalesRank(ctx context.Context, date time.Time, limit int) ([]domain.ProductSales, error) {
	const op = "product sales rank"
	rows, err := r.db.QueryContext(ctx, productSalesRankQuery, date, limit)
	if err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	defer rows.Close()

	if err := checkColumns(rows, "product_id", "product_name", "category", "sales_count", "total_revenue"); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}

	var out []domain.ProductSales
	for rows.Next() {
		var row domain.ProductSales
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Category, &row.SalesCount, &row.TotalRevenue); err != nil {
			return nil, &domain.BatchStoreError{Op: op, Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	return out, nil
}

// OrderStatsByMinute returns per-minute counts and revenue since the given
// instant, ordered by minute ascending.
func (r *OrderRepository) OrderStatsByMinute(ctx context.Context, since time.Time) ([]domain.MinuteOrderStat, error) {
	const op = "order stats by minute"
	rows, err := r.db.QueryContext(ctx, orderStatsByMinuteQuery, since)
	if err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	defer rows.Close()

	if err := checkColumns(rows, "minute", "order_count", "revenue"); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}

	var out []domain.MinuteOrderStat
	for rows.Next() {
		var row domain.MinuteOrderStat
		if err := rows.Scan(&row.Minute, &row.Count, &row.Revenue); err != nil {
			return nil, &domain.BatchStoreError{Op: op, Err: err}
		}
		row.Minute = row.Minute.UTC()
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.BatchStoreError{Op: op, Err: err}
	}
	return out, nil
}

// FunnelCounts returns the three funnel stage totals over a date range.
func (r *OrderRepository) FunnelCounts(ctx context.Context, startDate, endDate time.Time) (int64, int64, int64, error) {
	var pageViews, addToCarts, purchases int64
	err := r.db.QueryRowContext(ctx, funnelCountsQuery, startDate, endDate).
		Scan(&pageViews, &addToCarts, &purchases)
	if err != nil {
		return 0, 0, 0, &domain.BatchStoreError{Op: "funnel counts", Err: err}
	}
	return pageViews, addToCarts, purchases, nil
}

// checkColumns verifies the result set's column names match the template's
// declared select list, in order.
func checkColumns(rows *sql.Rows, want ...string) error {
	got, err := rows.Columns()
	if err != nil {
		return err
	}
	if len(got) != len(want) {
		return fmt.Errorf("result has %d columns, template declares %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("column %d is %q, template declares %q", i, got[i], want[i])
		}
	}
	return nil
}
