// Package chartpng renders the weight chart series as a PNG image.
package chartpng

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"weightlog/internal/domain"
)

// ErrNotEnoughPoints is returned when the series cannot be drawn as a line.
var ErrNotEnoughPoints = errors.New("chart needs at least two entries")

// Suggested y-axis bounds in kg. The axis grows past them when data does.
const (
	suggestedMinKg = 40
	suggestedMaxKg = 70
	maxXTicks      = 12
)

var lineColor = drawing.Color{R: 75, G: 192, B: 192, A: 255}

// Render draws series as a line chart of the given size and writes PNG bytes to w.
func Render(w io.Writer, series domain.ChartSeries, width, height int) error {
	if len(series.Data) < 2 || len(series.Labels) != len(series.Data) {
		return ErrNotEnoughPoints
	}

	xs := make([]float64, len(series.Data))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, v := range series.Data {
		xs[i] = float64(i)
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	yMin := math.Min(suggestedMinKg, math.Floor(minY-1))
	yMax := math.Max(suggestedMaxKg, math.Ceil(maxY+1))

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Ticks: xTicks(series.Labels)},
		YAxis: chart.YAxis{
			Name:  "kg",
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Weight (kg)",
				XValues: xs,
				YValues: series.Data,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    3,
				},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// xTicks labels at most maxXTicks points, always including the last one.
func xTicks(labels []string) []chart.Tick {
	step := (len(labels) + maxXTicks - 1) / maxXTicks
	if step < 1 {
		step = 1
	}
	ticks := make([]chart.Tick, 0, maxXTicks+1)
	last := len(labels) - 1
	for i := 0; i <= last; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	if last%step != 0 {
		ticks = append(ticks, chart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}
