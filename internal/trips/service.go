package trips

import (
	"log"
)

// Store is the contract for the memoized table source (see store.TableStore).
type Store interface {
	Get(path string) (*Table, error)
}

// Service binds a dataset path to a table store and answers the dashboard's questions.
// It checks column presence before calling into the aggregation functions.
type Service struct {
	store Store
	path  string
}

// NewService creates a new Service.
func NewService(store Store, path string) *Service {
	return &Service{
		store: store,
		path:  path,
	}
}

// Path returns the configured dataset path.
func (s *Service) Path() string {
	return s.path
}

// Table returns the loaded table, loading it on first use.
func (s *Service) Table() (*Table, error) {
	return s.store.Get(s.path)
}

// TopStations returns the n most popular start stations.
func (s *Service) TopStations(n int) ([]StationCount, error) {
	t, err := s.tableWith(ColStartStation)
	if err != nil {
		return nil, err
	}
	// Trips without a start station are counted but never ranked.
	counts := StationCounts(t)
	named := counts[:0:0]
	for _, c := range counts {
		if c.Station != "" {
			named = append(named, c)
		}
	}
	return TopN(named, n), nil
}

// DailyRides returns daily trip counts joined with daily temperature.
func (s *Service) DailyRides() ([]DailyRides, error) {
	t, err := s.tableWith(ColAvgTemp)
	if err != nil {
		return nil, err
	}

	if conflicts := TemperatureConflicts(t); len(conflicts) > 0 {
		first := conflicts[0]
		log.Printf("WARN: trips: %d dates report more than one avgTemp in %s (first: %s %v); keeping first observed",
			len(conflicts), s.path, first.Date.Format(DateLayout), first.Values)
	}

	return JoinDaily(DailyTripCounts(t), DailyTemperature(t)), nil
}

// TemperatureSamples returns the temperatures of trips made on the given bike type.
func (s *Service) TemperatureSamples(rt RideableType) ([]float64, error) {
	t, err := s.tableWith(ColRideableType, ColAvgTemp)
	if err != nil {
		return nil, err
	}
	return TemperatureSamples(t, rt), nil
}

func (s *Service) tableWith(columns ...string) (*Table, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	for _, c := range columns {
		if !t.HasColumn(c) {
			return nil, missingColumn(c)
		}
	}
	return t, nil
}
