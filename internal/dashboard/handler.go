package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bikeshare-dashboard/internal/common"
	"github.com/i474232898/bikeshare-dashboard/internal/observability"
	"github.com/i474232898/bikeshare-dashboard/internal/trips"
)

//go:embed templates/*.html
var templateFS embed.FS

const appTitle = "Citi Bikes Strategy Dashboard"

// Options configures the presentation layer.
type Options struct {
	TopN                 int
	HistogramBins        int
	MapPath              string
	AssetsDir            string
	IntroImage           string
	RecommendationsImage string
}

// Handler renders the dashboard views.
type Handler struct {
	service *trips.Service
	opts    Options
	metrics *observability.Metrics
	pages   map[string]*template.Template
}

type image struct {
	URL     string
	Caption string
}

type viewData struct {
	AppTitle string
	Pages    []Page
	Current  Page

	Errors   []string
	Warnings []string

	Image *image

	Daily []trips.DailyRides

	TopN       int
	Top        []trips.StationCount
	TotalRides string

	Histogram *Histogram

	MapURL string
}

// New parses the page templates.
func New(service *trips.Service, opts Options, metrics *observability.Metrics) (*Handler, error) {
	h := &Handler{
		service: service,
		opts:    opts,
		metrics: metrics,
		pages:   make(map[string]*template.Template, len(Pages)),
	}

	for _, p := range Pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+p.Slug+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template for page %s: %w", p.Slug, err)
		}
		h.pages[p.Slug] = tmpl
	}
	return h, nil
}

// Register wires the dashboard routes into the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Static("/assets", h.opts.AssetsDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/pages/"+PageIntro, fiber.StatusFound)
	})

	app.Get("/pages/:slug", func(c *fiber.Ctx) error {
		page, ok := lookupPage(c.Params("slug"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown page")
		}
		return h.render(c, page)
	})

	app.Get("/map/embed", func(c *fiber.Ctx) error {
		data, err := os.ReadFile(h.opts.MapPath)
		if err != nil {
			log.Printf("dashboard: read map artifact %s: %v", h.opts.MapPath, err)
			return fiber.NewError(fiber.StatusNotFound, "map not available")
		}
		c.Type("html", "utf-8")
		return c.Send(data)
	})
}

func (h *Handler) render(c *fiber.Ctx, page Page) error {
	data := &viewData{
		AppTitle: appTitle,
		Pages:    Pages,
		Current:  page,
	}

	switch page.Slug {
	case PageIntro:
		data.Image = h.image(h.opts.IntroImage, "Source: https://ny1.com/nyc/all-boroughs/news/2024/09/14/bill-proposed-to-cap-citi-bike-at-cost-of-subway-ride", data)
	case PageWeather:
		h.weather(data)
	case PageStations:
		h.stations(data)
	case PageBikeTypes:
		h.bikeTypes(data)
	case PageMap:
		h.mapView(data)
	case PageRecommendations:
		data.Image = h.image(h.opts.RecommendationsImage, "Photo from Freepik", data)
	}

	var buf bytes.Buffer
	if err := h.pages[page.Slug].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("dashboard: render %s: %v", page.Slug, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	h.metrics.ObservePageView(page.Slug)
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) image(name, caption string, data *viewData) *image {
	if name == "" || !common.FileExists(filepath.Join(h.opts.AssetsDir, name)) {
		data.Errors = append(data.Errors, "Image not found")
		return nil
	}
	return &image{URL: "/assets/" + name, Caption: caption}
}

func (h *Handler) weather(data *viewData) {
	daily, err := h.service.DailyRides()
	switch {
	case errors.Is(err, trips.ErrMissingColumn):
		data.Warnings = append(data.Warnings, "Average temperature data ('avgTemp' column) not found in the dataset. Cannot display line chart.")
	case err != nil:
		h.loadFailed(data, err, "Data not loaded. Cannot display line chart.")
	case len(daily) == 0:
		data.Warnings = append(data.Warnings, "No data available for the daily rides vs temperature line chart.")
	default:
		data.Daily = daily
	}
}

func (h *Handler) stations(data *viewData) {
	data.TopN = h.opts.TopN

	top, err := h.service.TopStations(h.opts.TopN)
	switch {
	case errors.Is(err, trips.ErrMissingColumn):
		data.Warnings = append(data.Warnings, "No data available for the top stations bar chart.")
	case err != nil:
		h.loadFailed(data, err, "Data not loaded. Cannot display bar chart.")
	case len(top) == 0:
		data.Warnings = append(data.Warnings, "No data available for the top stations bar chart.")
	default:
		total := 0
		for _, s := range top {
			total += s.Trips
		}
		data.Top = top
		data.TotalRides = Numerize(float64(total))
	}
}

func (h *Handler) bikeTypes(data *viewData) {
	classic, err := h.service.TemperatureSamples(trips.ClassicBike)
	if err == nil {
		var electric []float64
		electric, err = h.service.TemperatureSamples(trips.ElectricBike)
		if err == nil {
			hist := NewHistogram(h.opts.HistogramBins, classic, electric)
			data.Histogram = &hist
			return
		}
	}

	if errors.Is(err, trips.ErrMissingColumn) {
		data.Warnings = append(data.Warnings, "Required columns ('rideable_type' or 'avgTemp') not found in the dataset to display Classic vs Electric bikes histogram.")
		return
	}
	h.loadFailed(data, err, "Data not loaded. Cannot display Classic vs Electric bikes histogram.")
}

func (h *Handler) mapView(data *viewData) {
	if _, err := os.Stat(h.opts.MapPath); err != nil {
		data.Errors = append(data.Errors, fmt.Sprintf("An error occurred displaying the Kepler map: %v", err))
		return
	}
	data.MapURL = "/map/embed"
}

func (h *Handler) loadFailed(data *viewData, err error, warning string) {
	log.Printf("dashboard: data load for %s failed: %v", h.service.Path(), err)
	data.Errors = append(data.Errors, LoadErrorMessage(h.service.Path(), err))
	data.Warnings = append(data.Warnings, warning)
}

// LoadErrorMessage turns a load error into the message shown to users.
func LoadErrorMessage(path string, err error) string {
	if errors.Is(err, trips.ErrFileNotFound) {
		return fmt.Sprintf("Error: Data file not found at %s.", path)
	}
	var loadErr *trips.LoadError
	if errors.As(err, &loadErr) && loadErr.Err != nil {
		err = loadErr.Err
	}
	return fmt.Sprintf("An error occurred while loading the data: %v", err)
}
