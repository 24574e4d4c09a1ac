package trips

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	table *Table
	err   error
	calls int
}

func (f *fakeStore) Get(path string) (*Table, error) {
	f.calls++
	return f.table, f.err
}

func TestService_TopStations(t *testing.T) {
	svc := NewService(&fakeStore{table: scenarioTable()}, "data.csv")

	got, err := svc.TopStations(1)
	require.NoError(t, err)
	assert.Equal(t, []StationCount{{Station: "A", Trips: 2}}, got)
	assert.Equal(t, "data.csv", svc.Path())
}

func TestService_TopStationsSkipsUnnamedStation(t *testing.T) {
	table := &Table{
		Columns: []string{ColDate, ColStartStation},
		Rows: []Trip{
			trip("2022-01-01", "", "", nil),
			trip("2022-01-01", "", "", nil),
			trip("2022-01-01", "", "", nil),
			trip("2022-01-02", "B", "", nil),
		},
	}
	svc := NewService(&fakeStore{table: table}, "data.csv")

	got, err := svc.TopStations(20)
	require.NoError(t, err)
	assert.Equal(t, []StationCount{{Station: "B", Trips: 1}}, got)

	// StationCounts itself still accounts for every row.
	assert.Equal(t, []StationCount{{Station: "", Trips: 3}, {Station: "B", Trips: 1}}, StationCounts(table))
}

func TestService_DailyRides(t *testing.T) {
	svc := NewService(&fakeStore{table: scenarioTable()}, "data.csv")

	got, err := svc.DailyRides()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].AvgTemp)
	assert.Equal(t, 5.0, *got[0].AvgTemp)
	assert.Nil(t, got[1].AvgTemp)
}

func TestService_MissingColumns(t *testing.T) {
	table := &Table{
		Columns: []string{ColDate, ColStartStation},
		Rows:    []Trip{trip("2022-01-01", "A", "", nil)},
	}
	svc := NewService(&fakeStore{table: table}, "data.csv")

	_, err := svc.DailyRides()
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColAvgTemp)

	_, err = svc.TemperatureSamples(ClassicBike)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColRideableType)

	_, err = svc.TopStations(20)
	assert.NoError(t, err)
}

func TestService_LoadErrorStopsAggregation(t *testing.T) {
	loadErr := &LoadError{Path: "gone.csv", Kind: ErrFileNotFound}
	store := &fakeStore{err: loadErr}
	svc := NewService(store, "gone.csv")

	_, err := svc.TopStations(20)
	assert.True(t, errors.Is(err, ErrFileNotFound))

	_, err = svc.DailyRides()
	assert.True(t, errors.Is(err, ErrFileNotFound))

	samples, err := svc.TemperatureSamples(ElectricBike)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Nil(t, samples)
}
