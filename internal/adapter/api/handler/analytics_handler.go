package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/V4T54L/seamline/internal/domain"
)

const dateLayout = "2006-01-02"

// AnalyticsQuerier is the set of aggregate operations the handler depends on.
type AnalyticsQuerier interface {
	DailySalesByCategory(ctx context.Context, startDate, endDate time.Time) ([]domain.CategoryDailySales, error)
	ProvinceSalesRanking(ctx context.Context, date time.Time) ([]domain.ProvinceSales, error)
	UserPurchaseBehavior(ctx context.Context, startDate, endDate time.Time, limit int) ([]domain.PurchaseBehavior, error)
	ProductSalesRank(ctx context.Context, date time.Time, limit int) ([]domain.ProductSales, error)
	RealtimeMetrics(ctx context.Context) (*domain.RealtimeMetrics, error)
	ConversionFunnel(ctx context.Context, startDate, endDate time.Time) (*domain.ConversionFunnel, error)
}

// AnalyticsHandler serves the aggregate analytics queries.
type AnalyticsHandler struct {
	uc AnalyticsQuerier
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(uc AnalyticsQuerier) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetDailySales handles GET /analytics/daily-sales?start_date&end_date.
func (h *AnalyticsHandler) GetDailySales(c *fiber.Ctx) error {
	startDate, ok := dateParam(c, "start_date")
	if !ok {
		return badParam(c, "start_date must be a YYYY-MM-DD date")
	}
	endDate, ok := dateParam(c, "end_date")
	if !ok {
		return badParam(c, "end_date must be a YYYY-MM-DD date")
	}

	rows, err := h.uc.DailySalesByCategory(c.Context(), startDate, endDate)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	resp := make([]CategoryDailySalesResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, CategoryDailySalesResponse{
			Category:      row.Category,
			OrderDate:     row.OrderDate.Format(dateLayout),
			DailySales:    row.DailySales,
			OrderCount:    row.OrderCount,
			AvgOrderValue: row.AvgOrderValue,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetProvinceRanking handles GET /analytics/provinces?date.
func (h *AnalyticsHandler) GetProvinceRanking(c *fiber.Ctx) error {
	date, ok := dateParam(c, "date")
	if !ok {
		return badParam(c, "date must be a YYYY-MM-DD date")
	}

	rows, err := h.uc.ProvinceSalesRanking(c.Context(), date)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	resp := make([]ProvinceSalesResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, ProvinceSalesResponse{
			Province:      row.Province,
			TotalSales:    row.TotalSales,
			OrderCount:    row.OrderCount,
			AvgOrderValue: row.AvgOrderValue,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetUserBehavior handles GET /analytics/user-behavior?start_date&end_date&limit.
func (h *AnalyticsHandler) GetUserBehavior(c *fiber.Ctx) error {
	startDate, ok := dateParam(c, "start_date")
	if !ok {
		return badParam(c, "start_date must be a YYYY-MM-DD date")
	}
	endDate, ok := dateParam(c, "end_date")
	if !ok {
		return badParam(c, "end_date must be a YYYY-MM-DD date")
	}
	limit, ok := limitParam(c)
	if !ok {
		return badParam(c, "limit must be a positive integer")
	}

	rows, err := h.uc.UserPurchaseBehavior(c.Context(), startDate, endDate, limit)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	resp := make([]PurchaseBehaviorResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, PurchaseBehaviorResponse{
			AgeGroup:      row.AgeGroup,
			Province:      row.Province,
			Category:      row.Category,
			PurchaseCount: row.PurchaseCount,
			TotalSpent:    row.TotalSpent,
			AvgSpent:      row.AvgSpent,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetProductRanking handles GET /analytics/products?date&limit.
func (h *AnalyticsHandler) GetProductRanking(c *fiber.Ctx) error {
	date, ok := dateParam(c, "date")
	if !ok {
		return badParam(c, "date must be a YYYY-MM-DD date")
	}
	limit, ok := limitParam(c)
	if !ok {
		return badParam(c, "limit must be a positive integer")
	}

	rows, err := h.uc.ProductSalesRank(c.Context(), date, limit)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	resp := make([]ProductSalesResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, ProductSalesResponse{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			Category:     row.Category,
			SalesCount:   row.SalesCount,
			TotalRevenue: row.TotalRevenue,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetRealtimeMetrics handles GET /analytics/realtime.
func (h *AnalyticsHandler) GetRealtimeMetrics(c *fiber.Ctx) error {
	m, err := h.uc.RealtimeMetrics(c.Context())
	if err != nil {
		return storeErrorResponse(c, err)
	}

	resp := RealtimeMetricsResponse{
		Last5MinOrders:  m.Orders,
		Last5MinRevenue: m.Revenue,
		AvgOrderValue:   m.AvgOrderValue,
		OrdersPerMinute: make([]MinuteOrderStatResponse, 0, len(m.OrdersPerMinute)),
	}
	for _, s := range m.OrdersPerMinute {
		resp.OrdersPerMinute = append(resp.OrdersPerMinute, MinuteOrderStatResponse{
			Minute:  s.Minute.UTC().Format(time.RFC3339),
			Count:   s.Count,
			Revenue: s.Revenue,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetConversionFunnel handles GET /analytics/funnel?start_date&end_date.
func (h *AnalyticsHandler) GetConversionFunnel(c *fiber.Ctx) error {
	startDate, ok := dateParam(c, "start_date")
	if !ok {
		return badParam(c, "start_date must be a YYYY-MM-DD date")
	}
	endDate, ok := dateParam(c, "end_date")
	if !ok {
		return badParam(c, "end_date must be a YYYY-MM-DD date")
	}

	f, err := h.uc.ConversionFunnel(c.Context(), startDate, endDate)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return c.Status(http.StatusOK).JSON(ConversionFunnelResponse{
		PageViews:             f.PageViews,
		AddToCarts:            f.AddToCarts,
		Purchases:             f.Purchases,
		ViewToCartRate:        f.ViewToCartRate,
		CartToPurchaseRate:    f.CartToPurchaseRate,
		OverallConversionRate: f.OverallConversionRate,
	})
}

// dateParam parses a required YYYY-MM-DD query parameter.
func dateParam(c *fiber.Ctx, name string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, c.Query(name))
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func badParam(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error: "invalid_parameter", Message: message,
	})
}

// limitParam parses the optional limit parameter. Zero means "use the
// operation's default"; negative or malformed values are rejected.
func limitParam(c *fiber.Ctx) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, false
	}
	return limit, true
}
