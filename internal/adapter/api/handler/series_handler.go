package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/V4T54L/seamline/internal/domain"
)

// OrderSeriesQuerier is the reconciled series operation the handler depends on.
type OrderSeriesQuerier interface {
	Query(ctx context.Context, rng domain.TimeRange) ([]domain.SeriesPoint, error)
}

// SeriesHandler serves the reconciled per-minute order series.
type SeriesHandler struct {
	uc OrderSeriesQuerier
}

// NewSeriesHandler creates a new SeriesHandler.
func NewSeriesHandler(uc OrderSeriesQuerier) *SeriesHandler {
	return &SeriesHandler{uc: uc}
}

// GetOrderSeries handles GET /series/orders?start=RFC3339&end=RFC3339.
func (h *SeriesHandler) GetOrderSeries(c *fiber.Ctx) error {
	start, err := parseTimestamp(c.Query("start"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_parameter", Message: "start must be an RFC3339 timestamp",
		})
	}
	end, err := parseTimestamp(c.Query("end"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_parameter", Message: "end must be an RFC3339 timestamp",
		})
	}

	points, err := h.uc.Query(c.Context(), domain.TimeRange{Start: start, End: end})
	if err != nil {
		return storeErrorResponse(c, err)
	}

	resp := OrderSeriesResponse{
		Start:  start.UTC().Format(time.RFC3339),
		End:    end.UTC().Format(time.RFC3339),
		Points: make([]SeriesPointResponse, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, SeriesPointResponse{
			Minute: p.Minute.UTC().Format(time.RFC3339),
			Count:  p.Count,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	return time.Parse(time.RFC3339, raw)
}

// storeErrorResponse maps propagated core errors onto HTTP statuses: bad
// parameters to 400, store failures to 502, everything else to 500.
func storeErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_parameter", Message: err.Error(),
		})
	case domain.IsBatchStoreError(err), domain.IsSpeedStoreError(err):
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Error: "store_unavailable",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
