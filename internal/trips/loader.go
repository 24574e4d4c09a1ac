package trips

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// missingValue is how gota renders a cell it recognised as NA.
const missingValue = "NaN"

// ReadTable reads the trip CSV at path. The first column is a row index and is dropped.
// The date column is required; numeric columns that fail to parse become nil.
func ReadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path, err)
		}
		return nil, loadFailure(path, err)
	}

	// gota rejects a frame without records, so a header-only file is handled here.
	r := csv.NewReader(bytes.NewReader(raw))
	header, err := r.Read()
	if err != nil {
		return nil, loadFailure(path, err)
	}
	if _, err := r.Read(); errors.Is(err, io.EOF) {
		return newTable(path, header)
	}

	// Keep every column as text; the typed conversion below decides what is absent.
	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil {
		return nil, loadFailure(path, df.Err)
	}

	table, err := newTable(path, df.Names())
	if err != nil {
		return nil, err
	}

	col := func(name string) []string {
		if !table.HasColumn(name) {
			return nil
		}
		return df.Col(name).Records()
	}

	dates := col(ColDate)
	stations := col(ColStartStation)
	types := col(ColRideableType)
	temps := col(ColAvgTemp)
	startLat := col(ColStartLat)
	startLng := col(ColStartLng)
	endLat := col(ColEndLat)
	endLng := col(ColEndLng)

	rows := make([]Trip, df.Nrow())
	for i := range rows {
		// Empty and NA dates are rejected along with malformed ones.
		d, err := time.Parse(DateLayout, strings.TrimSpace(dates[i]))
		if err != nil {
			// +2: header line and 1-based numbering.
			return nil, loadFailure(path, fmt.Errorf("line %d: invalid date %q: %w", i+2, dates[i], err))
		}

		rows[i] = Trip{
			Date:             d,
			StartStationName: textAt(stations, i),
			RideableType:     RideableType(textAt(types, i)),
			AvgTemp:          floatAt(temps, i),
			StartLat:         floatAt(startLat, i),
			StartLng:         floatAt(startLng, i),
			EndLat:           floatAt(endLat, i),
			EndLng:           floatAt(endLng, i),
		}
	}
	table.Rows = rows

	return table, nil
}

// newTable validates the header: an index column, then data columns including date.
func newTable(path string, names []string) (*Table, error) {
	if len(names) < 2 {
		return nil, loadFailure(path, fmt.Errorf("expected an index column followed by data columns, got %d columns", len(names)))
	}
	table := &Table{
		Path:    path,
		Columns: append([]string(nil), names[1:]...),
		Rows:    []Trip{},
	}
	if !table.HasColumn(ColDate) {
		return nil, loadFailure(path, fmt.Errorf("missing %q column", ColDate))
	}
	return table, nil
}

func textAt(values []string, i int) string {
	if values == nil || values[i] == missingValue {
		return ""
	}
	return values[i]
}

// floatAt coerces a cell to a float, returning nil for anything that is not a finite number.
func floatAt(values []string, i int) *float64 {
	if values == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(values[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
