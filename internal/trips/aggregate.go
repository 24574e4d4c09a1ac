package trips

import (
	"sort"
	"time"
)

// StationCounts groups trips by start station and counts them.
// The result is in grouping order (ascending station name); stations without trips never appear.
func StationCounts(t *Table) []StationCount {
	if t.Len() == 0 {
		return []StationCount{}
	}

	counts := make(map[string]int)
	for _, r := range t.Rows {
		counts[r.StartStationName]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]StationCount, 0, len(names))
	for _, name := range names {
		out = append(out, StationCount{Station: name, Trips: counts[name]})
	}
	return out
}

// TopN returns the n entries with the largest counts, highest first.
// Ties keep the order they have in counts.
func TopN(counts []StationCount, n int) []StationCount {
	if n <= 0 || len(counts) == 0 {
		return []StationCount{}
	}

	ranked := make([]StationCount, len(counts))
	copy(ranked, counts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Trips > ranked[j].Trips
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// DailyTripCounts counts trips per date, ascending by date.
func DailyTripCounts(t *Table) []DailyCount {
	if t.Len() == 0 {
		return []DailyCount{}
	}

	counts := make(map[time.Time]int)
	for _, r := range t.Rows {
		counts[r.Date]++
	}

	out := make([]DailyCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, DailyCount{Date: d, Trips: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// DailyTemperature returns one temperature per date, ascending by date.
// When several rows share a date the first observed temperature wins; rows without a
// temperature are ignored. Use TemperatureConflicts to detect disagreeing rows.
func DailyTemperature(t *Table) []DailyTemp {
	if t.Len() == 0 {
		return []DailyTemp{}
	}

	seen := make(map[time.Time]float64)
	for _, r := range t.Rows {
		if r.AvgTemp == nil {
			continue
		}
		if _, ok := seen[r.Date]; !ok {
			seen[r.Date] = *r.AvgTemp
		}
	}

	out := make([]DailyTemp, 0, len(seen))
	for d, v := range seen {
		out = append(out, DailyTemp{Date: d, AvgTemp: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TemperatureConflicts lists the dates whose rows report more than one distinct
// temperature, ascending by date. Kept is the value DailyTemperature uses.
func TemperatureConflicts(t *Table) []TemperatureConflict {
	if t.Len() == 0 {
		return []TemperatureConflict{}
	}

	distinct := make(map[time.Time][]float64)
	for _, r := range t.Rows {
		if r.AvgTemp == nil {
			continue
		}
		vals := distinct[r.Date]
		if !containsFloat(vals, *r.AvgTemp) {
			distinct[r.Date] = append(vals, *r.AvgTemp)
		}
	}

	out := []TemperatureConflict{}
	for d, vals := range distinct {
		if len(vals) < 2 {
			continue
		}
		out = append(out, TemperatureConflict{Date: d, Kept: vals[0], Values: vals})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TemperatureSamples returns the temperatures of trips made on the given bike type,
// in row order. Trips without a temperature are skipped.
func TemperatureSamples(t *Table, rt RideableType) []float64 {
	out := []float64{}
	if t == nil {
		return out
	}
	for _, r := range t.Rows {
		if r.RideableType == rt && r.AvgTemp != nil {
			out = append(out, *r.AvgTemp)
		}
	}
	return out
}

func containsFloat(vals []float64, v float64) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
