package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bikeshare-dashboard/internal/store"
	"github.com/i474232898/bikeshare-dashboard/internal/trips"
)

const fixtureCSV = `,date,start_station_name,rideable_type,avgTemp
0,2022-01-01,A,classic_bike,5.0
1,2022-01-01,A,electric_bike,5.0
2,2022-01-02,B,classic_bike,
3,2022-01-03,C,classic_bike,9.0
4,2022-01-03,C,classic_bike,9.0
5,2022-01-03,C,electric_bike,9.0
`

func newApp(t *testing.T, csv string, opts Options) *fiber.App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "processed_data.csv")
	if csv != "" {
		require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	}

	app := fiber.New()
	svc := trips.NewService(store.NewTableStore(1, nil, nil), path)
	RegisterRoutes(app, svc, opts)
	return app
}

func do(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestTopStations(t *testing.T) {
	app := newApp(t, fixtureCSV, Options{DefaultTopN: 20, HistogramBins: 5})

	resp, body := do(t, app, "/api/v1/stations/top?n=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		N        int                  `json:"n"`
		Stations []trips.StationCount `json:"stations"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 2, payload.N)
	assert.Equal(t, []trips.StationCount{{Station: "C", Trips: 3}, {Station: "A", Trips: 2}}, payload.Stations)

	resp, body = do(t, app, "/api/v1/stations/top")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 20, payload.N)
	assert.Len(t, payload.Stations, 3)
}

// TestTopStationsValidation verifies that n must be an integer in 1-500.
func TestTopStationsValidation(t *testing.T) {
	app := newApp(t, fixtureCSV, Options{DefaultTopN: 20})

	for _, q := range []string{"n=abc", "n=0", "n=501", "n=-3"} {
		resp, _ := do(t, app, "/api/v1/stations/top?"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestDaily(t *testing.T) {
	app := newApp(t, fixtureCSV, Options{DefaultTopN: 20})

	resp, body := do(t, app, "/api/v1/daily")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Days []struct {
			Date    time.Time `json:"date"`
			Trips   int       `json:"trips"`
			AvgTemp *float64  `json:"avgTemp"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Days, 3)
	assert.Equal(t, 2, payload.Days[0].Trips)
	require.NotNil(t, payload.Days[0].AvgTemp)
	assert.Nil(t, payload.Days[1].AvgTemp)
	assert.Equal(t, 3, payload.Days[2].Trips)
}

func TestDailyCSV(t *testing.T) {
	app := newApp(t, fixtureCSV, Options{DefaultTopN: 20})

	resp, body := do(t, app, "/api/v1/daily?format=csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "date,trip_count,avgTemp\n2022-01-01,2,5\n2022-01-02,1,\n2022-01-03,3,9\n", string(body))

	resp, _ = do(t, app, "/api/v1/daily?format=xml")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBikeTypeTemperatures(t *testing.T) {
	app := newApp(t, fixtureCSV, Options{DefaultTopN: 20, HistogramBins: 4})

	resp, body := do(t, app, "/api/v1/bike-types/classic_bike/temperatures")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		RideableType string    `json:"rideableType"`
		Samples      []float64 `json:"samples"`
		Histogram    struct {
			Counts [][]int `json:"counts"`
		} `json:"histogram"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "classic_bike", payload.RideableType)
	assert.Equal(t, []float64{5, 9, 9}, payload.Samples)
	require.Len(t, payload.Histogram.Counts, 1)
	assert.Equal(t, []int{1, 0, 0, 2}, payload.Histogram.Counts[0])

	resp, _ = do(t, app, "/api/v1/bike-types/docked_bike/temperatures")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	missing := newApp(t, "", Options{DefaultTopN: 20})
	for _, target := range []string{"/api/v1/table", "/api/v1/daily", "/api/v1/stations/top"} {
		resp, _ := do(t, missing, target)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, target)
	}

	noTemp := newApp(t, ",date,start_station_name\n0,2022-01-01,A\n", Options{DefaultTopN: 20})
	resp, _ := do(t, noTemp, "/api/v1/daily")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	broken := newApp(t, ",date,start_station_name\n0,yesterday,A\n", Options{DefaultTopN: 20})
	resp, _ = do(t, broken, "/api/v1/table")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestTable(t *testing.T) {
	app := newApp(t, fixtureCSV, Options{DefaultTopN: 20})

	resp, body := do(t, app, "/api/v1/table")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Rows    int      `json:"rows"`
		Columns []string `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 6, payload.Rows)
	assert.Equal(t, []string{"date", "start_station_name", "rideable_type", "avgTemp"}, payload.Columns)
}

func TestRateLimit(t *testing.T) {
	app := newApp(t, fixtureCSV, Options{DefaultTopN: 20, RateLimitMax: 2})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, app, "/api/v1/table")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := do(t, app, "/api/v1/table")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
