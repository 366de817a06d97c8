package httpapi

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weatherman/internal/chart"
	"github.com/i474232898/weatherman/internal/cli"
	"github.com/i474232898/weatherman/internal/weather"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		snap, ok := service.Snapshot()
		if !ok {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "loading",
				"service": "weatherman",
			})
		}
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weatherman",
			"snapshot": snap,
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/reports/yearly", func(c *fiber.Ctx) error {
		year, err := cli.ParseYear(c.Query("year"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		calc, err := service.Yearly(year)
		if err != nil {
			return reportError(err, "no readings for requested year")
		}

		return c.JSON(fiber.Map{
			"report": calc,
			"text":   calc.String(),
		})
	})

	v1.Get("/reports/monthly", func(c *fiber.Ctx) error {
		calc, err := monthly(c, service)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"report": calc,
			"text":   calc.String(),
		})
	})

	v1.Get("/reports/chart", func(c *fiber.Ctx) error {
		calc, err := monthly(c, service)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := chart.New(&buf, chart.WithoutColor()).Render(calc); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	v1.Post("/admin/reload", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := service.Reload(ctx); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to reload readings")
		}

		snap, _ := service.Snapshot()
		return c.JSON(snap)
	})
}

func monthly(c *fiber.Ctx, service *weather.Service) (weather.MonthlyCalculation, error) {
	year, month, err := cli.ParseYearAndMonth(c.Query("year"), c.Query("month"))
	if err != nil {
		return weather.MonthlyCalculation{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	calc, err := service.Monthly(year, month)
	if err != nil {
		return weather.MonthlyCalculation{}, reportError(err, "no readings for requested month")
	}
	return calc, nil
}

// reportError maps engine errors onto HTTP status codes.
func reportError(err error, notFound string) error {
	switch {
	case errors.Is(err, weather.ErrNotLoaded):
		return fiber.NewError(fiber.StatusServiceUnavailable, "readings are still loading")
	case errors.Is(err, weather.ErrMissingMetric):
		return fiber.NewError(fiber.StatusNotFound, "requested period has no usable readings")
	case errors.Is(err, weather.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute report")
	}
}
