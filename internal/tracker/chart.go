package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

// MinChartPoints is the smallest series worth drawing.
const MinChartPoints = 2

var ChartRanges = map[string]int{
	"1m": 30,
	"2m": 60,
	"3m": 90,
	"4m": 120,
}

type ChartPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// ChartSeries projects the last days entries to (MM/DD, weight) points.
func ChartSeries(history []model.LogEntry, days int) []ChartPoint {
	window := Last(history, days)
	out := make([]ChartPoint, 0, len(window))
	for _, e := range window {
		out = append(out, ChartPoint{Date: ShortDate(e.Date), Weight: RoundWeight(e.Weight)})
	}
	return out
}

func ChartEligible(points []ChartPoint) bool {
	return len(points) >= MinChartPoints
}

// RoundWeight rounds to two decimals using the exact binary value, so
// 70.005 (stored as 70.00499...) becomes 70.00.
func RoundWeight(w float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(w, 'f', 2, 64), 64)
	if err != nil {
		return w
	}
	return v
}

func ShortDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[1] + "/" + parts[2]
}

// ParseChartRange accepts a named range (1m..4m) or a positive day count.
func ParseChartRange(s string, ranges map[string]int) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if ranges == nil {
		ranges = ChartRanges
	}
	if days, ok := ranges[s]; ok {
		return days, nil
	}
	days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("invalid chart range %q (use 1m, 2m, 3m, 4m or a day count)", s)
	}
	return days, nil
}
