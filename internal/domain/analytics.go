package domain

import "time"

// CategoryDailySales is one category-day row from the daily sales
// materialized view. Days without orders for a category produce no row.
type CategoryDailySales struct {
	Category      string
	OrderDate     time.Time
	DailySales    float64
	OrderCount    int64
	AvgOrderValue float64
}

// ProvinceSales is one row of the per-province sales ranking for a day.
type ProvinceSales struct {
	Province      string
	TotalSales    float64
	OrderCount    int64
	AvgOrderValue float64
}

// PurchaseBehavior breaks purchases down by age group, province and category.
type PurchaseBehavior struct {
	AgeGroup      string
	Province      string
	Category      string
	PurchaseCount int64
	TotalSpent    float64
	AvgSpent      float64
}

// ProductSales is one row of the per-product revenue ranking for a day.
type ProductSales struct {
	ProductID    int64
	ProductName  string
	Category     string
	SalesCount   int64
	TotalRevenue float64
}

// MinuteOrderStat is one minute of the realtime window.
type MinuteOrderStat struct {
	Minute  time.Time
	Count   int64
	Revenue float64
}

// RealtimeMetrics summarizes the trailing five-minute order window.
type RealtimeMetrics struct {
	Orders          int64
	Revenue         float64
	AvgOrderValue   float64
	OrdersPerMinute []MinuteOrderStat
}

// ConversionFunnel is the page-view -> add-to-cart -> purchase funnel over a
// date range. Rates are percentages in [0, 100]; a zero denominator yields a
// rate of exactly 0.
type ConversionFunnel struct {
	PageViews             int64
	AddToCarts            int64
	Purchases             int64
	ViewToCartRate        float64
	CartToPurchaseRate    float64
	OverallConversionRate float64
}
