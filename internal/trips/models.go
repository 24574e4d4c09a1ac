package trips

import (
	"time"
)

// DateLayout is the layout of the date column in the source CSV.
const DateLayout = "2006-01-02"

// Column names used by the dashboard.
const (
	ColDate         = "date"
	ColStartStation = "start_station_name"
	ColRideableType = "rideable_type"
	ColAvgTemp      = "avgTemp"
	ColStartLat     = "start_lat"
	ColStartLng     = "start_lng"
	ColEndLat       = "end_lat"
	ColEndLng       = "end_lng"
)

// RideableType is the bike type of a trip.
type RideableType string

const (
	ClassicBike  RideableType = "classic_bike"
	ElectricBike RideableType = "electric_bike"
)

// Trip is a single row of the trip table.
// Nil pointer fields mean the value was absent or not numeric in the source.
type Trip struct {
	Date             time.Time    `json:"date"` // UTC midnight
	StartStationName string       `json:"startStationName"`
	RideableType     RideableType `json:"rideableType"`
	AvgTemp          *float64     `json:"avgTemp"`

	StartLat *float64 `json:"startLat"`
	StartLng *float64 `json:"startLng"`
	EndLat   *float64 `json:"endLat"`
	EndLng   *float64 `json:"endLng"`
}

// Table is the loaded trip dataset. It must not be modified after ReadTable returns it;
// it is shared between concurrent readers.
type Table struct {
	Path    string
	Columns []string
	Rows    []Trip
}

// Len returns the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the source file carried the named column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// StationCount is the number of trips started at a station.
type StationCount struct {
	Station string `json:"station"`
	Trips   int    `json:"trips"`
}

// DailyCount is the number of trips on a date.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Trips int       `json:"trips"`
}

// DailyTemp is the average temperature reported for a date.
type DailyTemp struct {
	Date    time.Time `json:"date"`
	AvgTemp float64   `json:"avgTemp"`
}

// DailyRides joins trip count and temperature for a date.
// AvgTemp is nil when no temperature was observed that day.
type DailyRides struct {
	Date    time.Time `json:"date"`
	Trips   int       `json:"trips"`
	AvgTemp *float64  `json:"avgTemp"`
}

// TemperatureConflict describes a date whose rows report different temperatures.
type TemperatureConflict struct {
	Date   time.Time `json:"date"`
	Kept   float64   `json:"kept"`
	Values []float64 `json:"values"`
}
