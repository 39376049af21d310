package api

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/V4T54L/seamline/internal/adapter/api/handler"
	"github.com/V4T54L/seamline/internal/adapter/api/middleware"
)

// NewRouter creates and configures the Fiber app for the query service.
func NewRouter(
	logger *slog.Logger,
	seriesUC handler.OrderSeriesQuerier,
	analyticsUC handler.AnalyticsQuerier,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "seamline",
		DisableStartupMessage: true,
	})

	app.Use(middleware.Logging(logger))

	seriesHandler := handler.NewSeriesHandler(seriesUC)
	app.Get("/series/orders", seriesHandler.GetOrderSeries)

	analyticsHandler := handler.NewAnalyticsHandler(analyticsUC)
	analytics := app.Group("/analytics")
	analytics.Get("/daily-sales", analyticsHandler.GetDailySales)
	analytics.Get("/provinces", analyticsHandler.GetProvinceRanking)
	analytics.Get("/user-behavior", analyticsHandler.GetUserBehavior)
	analytics.Get("/products", analyticsHandler.GetProductRanking)
	analytics.Get("/realtime", analyticsHandler.GetRealtimeMetrics)
	analytics.Get("/funnel", analyticsHandler.GetConversionFunnel)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	return app
}
