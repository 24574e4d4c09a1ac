package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// DataPath is the pre-processed trip CSV.
	DataPath string `validate:"required"`

	// MapPath is the pre-rendered map HTML embedded on the map page.
	MapPath string `validate:"required"`

	// Static images.
	AssetsDir            string `validate:"required"`
	IntroImage           string
	RecommendationsImage string

	TopN          int `validate:"min=1,max=500"`
	HistogramBins int `validate:"min=1,max=500"`

	// CacheSize is the number of distinct data files kept in memory.
	CacheSize int `validate:"min=1"`

	// ReloadInterval controls how often the data file is checked for changes (0 = never).
	ReloadInterval time.Duration `validate:"min=0"`

	// RateLimitMax is the per-IP request budget per minute on the JSON API.
	RateLimitMax int `validate:"min=1"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DataPath = getenvDefault("DATA_PATH", "processed_data.csv")
	cfg.MapPath = getenvDefault("MAP_PATH", "nyc_bike_trips_map.html")
	cfg.AssetsDir = getenvDefault("ASSETS_DIR", "assets")
	cfg.IntroImage = getenvDefault("INTRO_IMAGE", "citi_bike_nyc_AP18117005853119.jpeg")
	cfg.RecommendationsImage = getenvDefault("RECOMMENDATIONS_IMAGE", "14820.jpg")

	cfg.TopN = getenvInt("TOP_N", 20)
	cfg.HistogramBins = getenvInt("HISTOGRAM_BINS", 40)
	cfg.CacheSize = getenvInt("CACHE_SIZE", 4)
	cfg.RateLimitMax = getenvInt("RATE_LIMIT_MAX", 120)

	// Reload check: disabled by default, the table lives for the whole process.
	interval, err := time.ParseDuration(getenvDefault("RELOAD_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: %w", err)
	}
	cfg.ReloadInterval = interval

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("WARN: config: ignoring non-integer %s=%q", key, v)
	}
	return def
}
