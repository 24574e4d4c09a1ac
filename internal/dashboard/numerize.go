package dashboard

import (
	"math"
	"strconv"
)

var magnitudes = []struct {
	size   float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// Numerize formats a number for a metric tile: 1234567 -> "1.23M", 15300 -> "15.3K".
func Numerize(v float64) string {
	i := 0
	for i+1 < len(magnitudes) && math.Abs(v) >= magnitudes[i+1].size {
		i++
	}
	r := round2(v / magnitudes[i].size)
	// 999999 rounds to 1000K; carry it into the next suffix.
	if math.Abs(r) >= 1000 && i+1 < len(magnitudes) {
		i++
		r = round2(r / 1000)
	}
	return strconv.FormatFloat(r, 'f', -1, 64) + magnitudes[i].suffix
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
