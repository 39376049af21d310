package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/V4T54L/seamline/internal/adapter/api/handler"
	"github.com/V4T54L/seamline/internal/domain"
)

type fakeAnalyticsQuerier struct {
	dailySales []domain.CategoryDailySales
	provinces  []domain.ProvinceSales
	behavior   []domain.PurchaseBehavior
	products   []domain.ProductSales
	realtime   *domain.RealtimeMetrics
	funnel     *domain.ConversionFunnel
	err        error

	behaviorLimit int
	productLimit  int
}

func (f *fakeAnalyticsQuerier) DailySalesByCategory(ctx context.Context, startDate, endDate time.Time) ([]domain.CategoryDailySales, error) {
	return f.dailySales, f.err
}

func (f *fakeAnalyticsQuerier) ProvinceSalesRanking(ctx context.Context, date time.Time) ([]domain.ProvinceSales, error) {
	return f.provinces, f.err
}

func (f *fakeAnalyticsQuerier) UserPurchaseBehavior(ctx context.Context, startDate, endDate time.Time, limit int) ([]domain.PurchaseBehavior, error) {
	f.behaviorLimit = limit
	return f.behavior, f.err
}

func (f *fakeAnalyticsQuerier) ProductSalesRank(ctx context.Context, date time.Time, limit int) ([]domain.ProductSales, error) {
	f.productLimit = limit
	return f.products, f.err
}

func (f *fakeAnalyticsQuerier) RealtimeMetrics(ctx context.Context) (*domain.RealtimeMetrics, error) {
	return f.realtime, f.err
}

func (f *fakeAnalyticsQuerier) ConversionFunnel(ctx context.Context, startDate, endDate time.Time) (*domain.ConversionFunnel, error) {
	return f.funnel, f.err
}

func setupAnalyticsApp(t *testing.T, uc handler.AnalyticsQuerier) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := handler.NewAnalyticsHandler(uc)
	app.Get("/analytics/daily-sales", h.GetDailySales)
	app.Get("/analytics/provinces", h.GetProvinceRanking)
	app.Get("/analytics/user-behavior", h.GetUserBehavior)
	app.Get("/analytics/products", h.GetProductRanking)
	app.Get("/analytics/realtime", h.GetRealtimeMetrics)
	app.Get("/analytics/funnel", h.GetConversionFunnel)
	return app
}

func TestGetDailySales(t *testing.T) {
	t.Run("Maps Rows With Date Strings", func(t *testing.T) {
		uc := &fakeAnalyticsQuerier{
			dailySales: []domain.CategoryDailySales{{
				Category:      "3C",
				OrderDate:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				DailySales:    125000.50,
				OrderCount:    423,
				AvgOrderValue: 295.50,
			}},
		}
		app := setupAnalyticsApp(t, uc)

		req := httptest.NewRequest(http.MethodGet,
			"/analytics/daily-sales?start_date=2025-01-09&end_date=2025-01-15", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}

		var body []handler.CategoryDailySalesResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(body) != 1 || body[0].OrderDate != "2025-01-15" {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("Malformed Date Is 400", func(t *testing.T) {
		app := setupAnalyticsApp(t, &fakeAnalyticsQuerier{})

		req := httptest.NewRequest(http.MethodGet,
			"/analytics/daily-sales?start_date=Jan-9&end_date=2025-01-15", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
	})
}

func TestGetProductRanking_Limit(t *testing.T) {
	t.Run("Missing Limit Defers To Usecase Default", func(t *testing.T) {
		uc := &fakeAnalyticsQuerier{}
		app := setupAnalyticsApp(t, uc)

		req := httptest.NewRequest(http.MethodGet, "/analytics/products?date=2025-01-15", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if uc.productLimit != 0 {
			t.Errorf("expected limit 0 (usecase default), got %d", uc.productLimit)
		}
	})

	t.Run("Negative Limit Is 400", func(t *testing.T) {
		app := setupAnalyticsApp(t, &fakeAnalyticsQuerier{})

		req := httptest.NewRequest(http.MethodGet, "/analytics/products?date=2025-01-15&limit=-2", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
	})
}

func TestGetConversionFunnel(t *testing.T) {
	uc := &fakeAnalyticsQuerier{
		funnel: &domain.ConversionFunnel{
			PageViews:             1000,
			AddToCarts:            150,
			Purchases:             50,
			ViewToCartRate:        15,
			CartToPurchaseRate:    33.33,
			OverallConversionRate: 5,
		},
	}
	app := setupAnalyticsApp(t, uc)

	req := httptest.NewRequest(http.MethodGet,
		"/analytics/funnel?start_date=2025-01-09&end_date=2025-01-15", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body handler.ConversionFunnelResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.PageViews != 1000 || body.ViewToCartRate != 15 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestGetRealtimeMetrics(t *testing.T) {
	uc := &fakeAnalyticsQuerier{
		realtime: &domain.RealtimeMetrics{
			Orders:        256,
			Revenue:       76800,
			AvgOrderValue: 300,
			OrdersPerMinute: []domain.MinuteOrderStat{
				{Minute: time.Date(2025, 1, 15, 14, 25, 0, 0, time.UTC), Count: 52, Revenue: 15600},
			},
		},
	}
	app := setupAnalyticsApp(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/realtime", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body handler.RealtimeMetricsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Last5MinOrders != 256 || body.AvgOrderValue != 300 {
		t.Errorf("unexpected body: %+v", body)
	}
	if len(body.OrdersPerMinute) != 1 || body.OrdersPerMinute[0].Minute != "2025-01-15T14:25:00Z" {
		t.Errorf("unexpected per-minute breakdown: %+v", body.OrdersPerMinute)
	}
}
