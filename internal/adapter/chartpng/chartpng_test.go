package chartpng

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"weightlog/internal/domain"
)

func TestRenderWritesPNG(t *testing.T) {
	series := domain.BuildChartSeries([]domain.WeightEntry{
		{ID: "a", Date: "2024-01-01", Weight: 82.1},
		{ID: "b", Date: "2024-01-08", Weight: 81.4},
		{ID: "c", Date: "2024-01-15", Weight: 80.9},
	})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, series, 640, 320))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 640, img.Bounds().Dx())
	require.Equal(t, 320, img.Bounds().Dy())
}

func TestRenderNeedsTwoPoints(t *testing.T) {
	tests := []struct {
		name   string
		series domain.ChartSeries
	}{
		{"empty", domain.ChartSeries{}},
		{"single", domain.ChartSeries{Labels: []string{"1/1"}, Data: []float64{80}}},
		{"mismatched", domain.ChartSeries{Labels: []string{"1/1"}, Data: []float64{80, 81}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, tc.series, 100, 100)
			require.True(t, errors.Is(err, ErrNotEnoughPoints), "got %v", err)
			require.Zero(t, buf.Len())
		})
	}
}

func TestXTicks(t *testing.T) {
	labels := make([]string, 30)
	for i := range labels {
		labels[i] = string(rune('a' + i%26))
	}
	ticks := xTicks(labels)
	require.LessOrEqual(t, len(ticks), maxXTicks+1)
	require.Equal(t, 0.0, ticks[0].Value)
	require.Equal(t, 29.0, ticks[len(ticks)-1].Value)

	short := xTicks([]string{"1/1", "1/2"})
	require.Len(t, short, 2)
	require.Equal(t, "1/2", short[1].Label)
}
