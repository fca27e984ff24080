package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weightlog/internal/domain"
)

func f(v float64) *float64 { return &v }

func entries(pairs ...any) []domain.WeightEntry {
	out := make([]domain.WeightEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.WeightEntry{
			ID:     pairs[i].(string),
			Date:   pairs[i].(string),
			Weight: pairs[i+1].(float64),
		})
	}
	return out
}

var today = time.Date(2024, time.March, 20, 18, 30, 0, 0, time.UTC)

func TestComputeMetrics_Empty(t *testing.T) {
	for _, mode := range []domain.ChangeMode{domain.ModeTotal, domain.ModeLast7Days, domain.ModeWeekAgo} {
		m := domain.ComputeMetrics(domain.MetricsInput{HeightCm: f(170), GoalKg: f(70), Mode: mode, Today: today})
		require.Equal(t, domain.Metrics{Mode: mode}, m)
	}
}

func TestComputeMetrics_EmptyModeDefaultsToTotal(t *testing.T) {
	m := domain.ComputeMetrics(domain.MetricsInput{})
	require.Equal(t, domain.ModeTotal, m.Mode)
}

func TestComputeMetrics_Total(t *testing.T) {
	m := domain.ComputeMetrics(domain.MetricsInput{
		Entries: entries("2024-01-01", 80.0, "2024-01-05", 79.0, "2024-01-10", 78.5),
		Mode:    domain.ModeTotal,
	})
	require.Equal(t, 78.5, *m.Current)
	require.Equal(t, 80.0, *m.Start)
	require.Equal(t, 80.0, *m.CompareWeight)
	require.InDelta(t, -1.5, *m.Change, 1e-9)
	require.False(t, m.InsufficientData)
	require.Nil(t, m.BMI)
	require.Empty(t, m.BMICategory)
	require.Nil(t, m.GoalDelta)
	require.Nil(t, m.TargetBMI)
}

func TestComputeMetrics_ThresholdScan(t *testing.T) {
	m := domain.ComputeMetrics(domain.MetricsInput{
		Entries: entries("2024-01-01", 80.0, "2024-01-10", 78.0),
		Mode:    domain.ModeLast7Days,
	})
	require.Equal(t, 80.0, *m.CompareWeight)
	require.Equal(t, -2.0, *m.Change)
}

func TestComputeMetrics_ThresholdScanPicksMostRecentQualifying(t *testing.T) {
	m := domain.ComputeMetrics(domain.MetricsInput{
		Entries: entries("2024-01-01", 82.0, "2024-01-03", 81.0, "2024-01-08", 80.0, "2024-01-10", 79.0),
		Mode:    domain.ModeLast7Days,
	})
	// 01-08 is 2 days old, 01-03 is exactly 7.
	require.Equal(t, 81.0, *m.CompareWeight)
}

func TestComputeMetrics_ThresholdScanInsufficientData(t *testing.T) {
	m := domain.ComputeMetrics(domain.MetricsInput{
		Entries: entries("2024-01-01", 80.0, "2024-01-10", 78.0),
		Mode:    domain.ModeLast30Days,
	})
	require.True(t, m.InsufficientData)
	require.Nil(t, m.CompareWeight)
	require.Nil(t, m.Change)
	require.Equal(t, 78.0, *m.Current)
	require.Equal(t, 80.0, *m.Start)
}

func TestComputeMetrics_NearestDate(t *testing.T) {
	snap := entries(
		"2024-03-02", 84.0,
		"2024-03-05", 83.0,
		"2024-03-08", 82.0,
		"2024-03-11", 81.0,
		"2024-03-14", 80.0,
		"2024-03-17", 79.0,
	)
	m := domain.ComputeMetrics(domain.MetricsInput{Entries: snap, Mode: domain.ModeWeekAgo, Today: today})
	// Anchor is 2024-03-13; 03-14 is one day away.
	require.Equal(t, 80.0, *m.CompareWeight)
	require.Equal(t, -1.0, *m.Change)
	require.False(t, m.InsufficientData)
}

func TestComputeMetrics_NearestDateTieKeepsFirst(t *testing.T) {
	snap := entries("2024-03-11", 81.0, "2024-03-15", 80.0)
	m := domain.ComputeMetrics(domain.MetricsInput{Entries: snap, Mode: domain.ModeWeekAgo, Today: today})
	require.Equal(t, 81.0, *m.CompareWeight)
}

func TestComputeMetrics_NearestDateAlwaysAnswers(t *testing.T) {
	snap := entries("2020-01-01", 90.0)
	m := domain.ComputeMetrics(domain.MetricsInput{Entries: snap, Mode: domain.ModeMonthAgo, Today: today})
	require.Equal(t, 90.0, *m.CompareWeight)
	require.Equal(t, 0.0, *m.Change)
}

func TestComputeMetrics_ModesDiverge(t *testing.T) {
	snap := entries("2024-03-10", 82.0, "2024-03-12", 81.0, "2024-03-19", 80.0)
	threshold := domain.ComputeMetrics(domain.MetricsInput{Entries: snap, Mode: domain.ModeLast7Days, Today: today})
	nearest := domain.ComputeMetrics(domain.MetricsInput{Entries: snap, Mode: domain.ModeWeekAgo, Today: today})
	require.Equal(t, 81.0, *threshold.CompareWeight)
	require.Equal(t, 81.0, *nearest.CompareWeight)

	today2 := today.AddDate(0, 0, 30)
	threshold = domain.ComputeMetrics(domain.MetricsInput{Entries: snap, Mode: domain.ModeLast7Days, Today: today2})
	nearest = domain.ComputeMetrics(domain.MetricsInput{Entries: snap, Mode: domain.ModeWeekAgo, Today: today2})
	require.Equal(t, 81.0, *threshold.CompareWeight, "threshold scan ignores today")
	require.Equal(t, 80.0, *nearest.CompareWeight)
}

func TestComputeMetrics_BMI(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   domain.BMICategory
	}{
		{"underweight", 50, domain.BMIUnderweight},
		{"lower boundary", 53.465, domain.BMINormal},
		{"normal", 70, domain.BMINormal},
		{"overweight", 80, domain.BMIOverweight},
		{"obese boundary", 86.7, domain.BMIObese},
		{"obese", 100, domain.BMIObese},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := domain.ComputeMetrics(domain.MetricsInput{
				Entries:  entries("2024-01-01", tc.weight),
				HeightCm: f(170),
			})
			require.NotNil(t, m.BMI)
			require.Equal(t, tc.want, m.BMICategory)
		})
	}
}

func TestComputeMetrics_BMIBoundaryValue(t *testing.T) {
	m := domain.ComputeMetrics(domain.MetricsInput{
		Entries:  entries("2024-01-01", 53.465),
		HeightCm: f(170),
	})
	require.InDelta(t, 18.5, *m.BMI, 1e-9)
	require.Equal(t, domain.BMINormal, m.BMICategory)
}

func TestComputeMetrics_InvalidProfileTreatedAsUnset(t *testing.T) {
	for _, v := range []*float64{nil, f(0), f(-170), f(math.Inf(1)), f(math.NaN())} {
		m := domain.ComputeMetrics(domain.MetricsInput{
			Entries:  entries("2024-01-01", 70.0),
			HeightCm: v,
			GoalKg:   v,
		})
		require.Nil(t, m.BMI)
		require.Empty(t, m.BMICategory)
		require.Nil(t, m.GoalDelta)
		require.Empty(t, m.GoalStatus)
		require.Nil(t, m.TargetBMI)
	}
}

func TestComputeMetrics_Goal(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		goal      float64
		status    domain.GoalStatus
		remaining float64
	}{
		{"reached", 70, 70, domain.GoalReached, 0},
		{"lose", 75.5, 70, domain.GoalLose, 5.5},
		{"gain", 60, 65, domain.GoalGain, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := domain.ComputeMetrics(domain.MetricsInput{
				Entries: entries("2024-01-01", tc.current),
				GoalKg:  f(tc.goal),
			})
			require.Equal(t, tc.status, m.GoalStatus)
			require.Equal(t, tc.current-tc.goal, *m.GoalDelta)
			require.InDelta(t, tc.remaining, *m.GoalRemaining, 1e-9)
			require.Nil(t, m.TargetBMI, "no height, no target BMI")
		})
	}
}

func TestComputeMetrics_TargetBMI(t *testing.T) {
	m := domain.ComputeMetrics(domain.MetricsInput{
		Entries:  entries("2024-01-01", 80.0),
		HeightCm: f(180),
		GoalKg:   f(72.9),
	})
	require.InDelta(t, 22.5, *m.TargetBMI, 1e-9)
}

func TestComputeMetrics_Deterministic(t *testing.T) {
	in := domain.MetricsInput{
		Entries:  entries("2024-03-01", 80.0, "2024-03-09", 79.2, "2024-03-18", 78.4),
		HeightCm: f(175),
		GoalKg:   f(75),
		Mode:     domain.ModeMonthAgo,
		Today:    today,
	}
	require.Equal(t, domain.ComputeMetrics(in), domain.ComputeMetrics(in))
}

func TestParseChangeMode(t *testing.T) {
	m, err := domain.ParseChangeMode("")
	require.NoError(t, err)
	require.Equal(t, domain.ModeTotal, m)

	m, err = domain.ParseChangeMode("month")
	require.NoError(t, err)
	require.Equal(t, domain.ModeMonthAgo, m)

	_, err = domain.ParseChangeMode("fortnight")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestChangeModeNext(t *testing.T) {
	require.Equal(t, domain.ModeLast7Days, domain.ModeTotal.Next())
	require.Equal(t, domain.ModeLast30Days, domain.ModeLast7Days.Next())
	require.Equal(t, domain.ModeTotal, domain.ModeLast30Days.Next())
	require.Equal(t, domain.ModeMonthAgo, domain.ModeWeekAgo.Next())
	require.Equal(t, domain.ModeTotal, domain.ModeMonthAgo.Next())
}
