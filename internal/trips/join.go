package trips

import "time"

// JoinDaily left-joins daily trip counts with daily temperatures on the date.
// Every entry of tripCounts yields exactly one row, in the same order; dates without a
// temperature get a nil AvgTemp.
func JoinDaily(tripCounts []DailyCount, temps []DailyTemp) []DailyRides {
	byDate := make(map[time.Time]float64, len(temps))
	for _, t := range temps {
		byDate[t.Date] = t.AvgTemp
	}

	out := make([]DailyRides, 0, len(tripCounts))
	for _, c := range tripCounts {
		row := DailyRides{Date: c.Date, Trips: c.Trips}
		if v, ok := byDate[c.Date]; ok {
			v := v
			row.AvgTemp = &v
		}
		out = append(out, row)
	}
	return out
}
