package httpapi

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/i474232898/bikeshare-dashboard/internal/dashboard"
	"github.com/i474232898/bikeshare-dashboard/internal/trips"
)

var validate = validator.New()

// Options configures the JSON API.
type Options struct {
	DefaultTopN   int
	HistogramBins int
	RateLimitMax  int // requests per minute per IP; 0 disables the limiter
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *trips.Service, opts Options) {
	v1 := app.Group("/api/v1")
	if opts.RateLimitMax > 0 {
		v1.Use(rateLimiter(opts.RateLimitMax))
	}

	v1.Get("/table", func(c *fiber.Ctx) error {
		table, err := service.Table()
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"path":    table.Path,
			"rows":    table.Len(),
			"columns": table.Columns,
		})
	})

	v1.Get("/stations/top", func(c *fiber.Ctx) error {
		var req topQuery
		if err := req.bind(c, opts.DefaultTopN); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		top, err := service.TopStations(req.N)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"n":        req.N,
			"stations": top,
		})
	})

	v1.Get("/daily", func(c *fiber.Ctx) error {
		format := c.Query("format", "json")
		if err := validate.Var(format, "oneof=json csv"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "format must be json or csv")
		}

		daily, err := service.DailyRides()
		if err != nil {
			return toHTTPError(err)
		}

		if format == "csv" {
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="daily_rides.csv"`)
			c.Type("csv")
			return c.SendString(RenderDailyCSV(daily))
		}
		return c.JSON(fiber.Map{"days": daily})
	})

	v1.Get("/bike-types/:type/temperatures", func(c *fiber.Ctx) error {
		req := bikeTypeQuery{Type: c.Params("type")}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rt := trips.RideableType(req.Type)
		samples, err := service.TemperatureSamples(rt)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(fiber.Map{
			"rideableType": rt,
			"samples":      samples,
			"histogram":    dashboard.NewHistogram(opts.HistogramBins, samples),
		})
	})
}

// topQuery holds query parameters for the top stations endpoint.
type topQuery struct {
	N int `validate:"min=1,max=500"`
}

func (q *topQuery) bind(c *fiber.Ctx, def int) error {
	raw := c.Query("n")
	if raw == "" {
		q.N = def
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("n must be an integer")
	}
	q.N = n
	return nil
}

type bikeTypeQuery struct {
	Type string `validate:"required,oneof=classic_bike electric_bike"`
}

// toHTTPError maps service errors to HTTP status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, trips.ErrFileNotFound):
		return fiber.NewError(fiber.StatusServiceUnavailable, "data file not found")
	case errors.Is(err, trips.ErrMissingColumn):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("api: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load trip data")
	}
}

func rateLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       true,
				"message":     "rate limit exceeded",
				"retry_after": 60,
			})
		},
	})
}

// RenderDailyCSV renders the joined daily series as CSV. Absent temperatures are empty cells.
func RenderDailyCSV(days []trips.DailyRides) string {
	var sb strings.Builder

	sb.WriteString("date,trip_count,avgTemp\n")
	for _, d := range days {
		temp := ""
		if d.AvgTemp != nil {
			temp = strconv.FormatFloat(*d.AvgTemp, 'f', -1, 64)
		}
		sb.WriteString(fmt.Sprintf("%s,%d,%s\n", d.Date.Format(trips.DateLayout), d.Trips, temp))
	}

	return sb.String()
}
