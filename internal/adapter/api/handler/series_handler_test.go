package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/V4T54L/seamline/internal/adapter/api/handler"
	"github.com/V4T54L/seamline/internal/domain"
)

type fakeSeriesQuerier struct {
	QueryFn   func(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error)
	lastRange domain.TimeRange
	called    bool
}

func (f *fakeSeriesQuerier) Query(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error) {
	f.called = true
	f.lastRange = rng
	if f.QueryFn != nil {
		return f.QueryFn(ctx, rng)
	}
	return nil, nil
}

func setupSeriesApp(t *testing.T, uc handler.OrderSeriesQuerier) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := handler.NewSeriesHandler(uc)
	app.Get("/series/orders", h.GetOrderSeries)
	return app
}

func TestGetOrderSeries_Success(t *testing.T) {
	start := time.Date(2025, 1, 15, 13, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

	uc := &fakeSeriesQuerier{
		QueryFn: func(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error) {
			return []domain.SeriesPoint{
				{Minute: start, Count: 12},
				{Minute: start.Add(time.Minute), Count: 9},
			}, nil
		},
	}
	app := setupSeriesApp(t, uc)

	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))
	req := httptest.NewRequest(http.MethodGet, "/series/orders?"+params.Encode(), nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if !uc.called {
		t.Fatal("expected usecase to be called")
	}
	if !uc.lastRange.Start.Equal(start) || !uc.lastRange.End.Equal(end) {
		t.Errorf("unexpected range passed to usecase: %+v", uc.lastRange)
	}

	var body handler.OrderSeriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(body.Points))
	}
	if body.Points[0].Minute != "2025-01-15T13:00:00Z" {
		t.Errorf("expected ISO-8601 minute, got %q", body.Points[0].Minute)
	}
}

func TestGetOrderSeries_InvalidParams(t *testing.T) {
	for name, query := range map[string]string{
		"Missing Start": "end=2025-01-15T14:00:00Z",
		"Missing End":   "start=2025-01-15T13:00:00Z",
		"Bad Timestamp": "start=yesterday&end=2025-01-15T14:00:00Z",
	} {
		t.Run(name, func(t *testing.T) {
			uc := &fakeSeriesQuerier{}
			app := setupSeriesApp(t, uc)

			req := httptest.NewRequest(http.MethodGet, "/series/orders?"+query, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
			if uc.called {
				t.Error("usecase must not be called on invalid parameters")
			}
		})
	}
}

func TestGetOrderSeries_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Batch Store Failure Is 502", &domain.BatchStoreError{Op: "q", Err: errors.New("down")}, http.StatusBadGateway},
		{"Speed Store Failure Is 502", &domain.SpeedStoreError{Op: "get", Err: errors.New("down")}, http.StatusBadGateway},
		{"Configuration Error Is 400", domain.ErrConfiguration, http.StatusBadRequest},
		{"Unknown Error Is 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeSeriesQuerier{
				QueryFn: func(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error) {
					return nil, tc.err
				},
			}
			app := setupSeriesApp(t, uc)

			req := httptest.NewRequest(http.MethodGet,
				"/series/orders?start=2025-01-15T13:00:00Z&end=2025-01-15T14:00:00Z", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}
