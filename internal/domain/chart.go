package domain

import (
	"strconv"
	"strings"
)

// ChartSeries is the input handed to a chart renderer.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// BuildChartSeries turns a date-ascending snapshot into chart labels and values.
func BuildChartSeries(entries []WeightEntry) ChartSeries {
	s := ChartSeries{
		Labels: make([]string, 0, len(entries)),
		Data:   make([]float64, 0, len(entries)),
	}
	for _, e := range entries {
		s.Labels = append(s.Labels, ChartLabel(e.Date))
		s.Data = append(s.Data, e.Weight)
	}
	return s
}

// ChartLabel formats YYYY-MM-DD as M/D. Malformed input yields "".
func ChartLabel(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return ""
	}
	return strconv.Itoa(month) + "/" + strconv.Itoa(day)
}
