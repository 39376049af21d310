package handler

type SeriesPointResponse struct {
	Minute string `json:"minute"`
	Count  int64  `json:"count"`
}

type OrderSeriesResponse struct {
	Start  string                `json:"start"`
	End    string                `json:"end"`
	Points []SeriesPointResponse `json:"points"`
}

type CategoryDailySalesResponse struct {
	Category      string  `json:"category"`
	OrderDate     string  `json:"order_date"`
	DailySales    float64 `json:"daily_sales"`
	OrderCount    int64   `json:"order_count"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type ProvinceSalesResponse struct {
	Province      string  `json:"province"`
	TotalSales    float64 `json:"total_sales"`
	OrderCount    int64   `json:"order_count"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type PurchaseBehaviorResponse struct {
	AgeGroup      string  `json:"age_group"`
	Province      string  `json:"province"`
	Category      string  `json:"category"`
	PurchaseCount int64   `json:"purchase_count"`
	TotalSpent    float64 `json:"total_spent"`
	AvgSpent      float64 `json:"avg_spent"`
}

type ProductSalesResponse struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	SalesCount   int64   `json:"sales_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

type MinuteOrderStatResponse struct {
	Minute  string  `json:"minute"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type RealtimeMetricsResponse struct {
	Last5MinOrders  int64                     `json:"last_5min_orders"`
	Last5MinRevenue float64                   `json:"last_5min_revenue"`
	AvgOrderValue   float64                   `json:"avg_order_value"`
	OrdersPerMinute []MinuteOrderStatResponse `json:"orders_per_minute"`
}

type ConversionFunnelResponse struct {
	PageViews             int64   `json:"page_views"`
	AddToCarts            int64   `json:"add_to_carts"`
	Purchases             int64   `json:"purchases"`
	ViewToCartRate        float64 `json:"view_to_cart_rate"`
	CartToPurchaseRate    float64 `json:"cart_to_purchase_rate"`
	OverallConversionRate float64 `json:"overall_conversion_rate"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
