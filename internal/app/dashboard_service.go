package app

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"weightlog/internal/domain"
)

// Entries is the read side of EntryStore used for derivation.
type Entries interface {
	Snapshot() []domain.WeightEntry
}

// Profiles is the read side of ProfileService used for derivation.
type Profiles interface {
	Profile() domain.Profile
}

// DashboardService derives metrics, display text and chart data from the
// current entries and profile.
type DashboardService struct {
	entries  Entries
	profiles Profiles
	now      func() time.Time
}

// NewDashboardService creates a DashboardService reading from the given stores.
func NewDashboardService(entries Entries, profiles Profiles) *DashboardService {
	return &DashboardService{entries: entries, profiles: profiles, now: time.Now}
}

// WithClock overrides the clock used to anchor nearest-date modes.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Trend is the direction of the weight change.
type Trend string

const (
	TrendNone Trend = "none"
	TrendLoss Trend = "loss"
	TrendGain Trend = "gain"
	TrendFlat Trend = "flat"
)

// Summary is the display text for each dashboard card.
type Summary struct {
	CurrentText      string `json:"currentText"`
	StartText        string `json:"startText"`
	ChangeLabel      string `json:"changeLabel"`
	ChangeSubtitle   string `json:"changeSubtitle"`
	ChangeText       string `json:"changeText"`
	ChangeTrend      Trend  `json:"changeTrend"`
	BMIText          string `json:"bmiText"`
	BMICategoryText  string `json:"bmiCategoryText"`
	GoalText         string `json:"goalText"`
	GoalProgressText string `json:"goalProgressText"`
	TargetBMIText    string `json:"targetBmiText"`
}

// Dashboard is everything the presentation layer needs for one render.
type Dashboard struct {
	Profile  domain.Profile    `json:"profile"`
	Metrics  domain.Metrics    `json:"metrics"`
	Summary  Summary           `json:"summary"`
	NextMode domain.ChangeMode `json:"nextMode"`
}

// Metrics runs the metrics engine over the current snapshot.
func (s *DashboardService) Metrics(mode domain.ChangeMode) domain.Metrics {
	return s.compute(mode, s.profiles.Profile())
}

func (s *DashboardService) compute(mode domain.ChangeMode, p domain.Profile) domain.Metrics {
	return domain.ComputeMetrics(domain.MetricsInput{
		Entries:  s.entries.Snapshot(),
		HeightCm: p.HeightCm,
		GoalKg:   p.GoalKg,
		Mode:     mode,
		Today:    s.now(),
	})
}

// Dashboard computes metrics for mode and formats them for display.
func (s *DashboardService) Dashboard(mode domain.ChangeMode) Dashboard {
	p := s.profiles.Profile()
	m := s.compute(mode, p)
	return Dashboard{
		Profile:  p,
		Metrics:  m,
		Summary:  Summarize(m, p),
		NextMode: m.Mode.Next(),
	}
}

// Chart returns the chronological chart series.
func (s *DashboardService) Chart() domain.ChartSeries {
	return domain.BuildChartSeries(s.entries.Snapshot())
}

// Summarize formats a metrics record into card text.
func Summarize(m domain.Metrics, p domain.Profile) Summary {
	label, subtitle := changeLabels(m.Mode)
	sum := Summary{
		CurrentText:    "--",
		StartText:      "Start: --",
		ChangeLabel:    label,
		ChangeSubtitle: subtitle,
		ChangeText:     "--",
		ChangeTrend:    TrendNone,
		BMIText:        "--",
		GoalText:       "--",
	}
	if goal := domain.Valid(p.GoalKg); goal != nil {
		sum.GoalText = formatKg(*goal, -1)
	}

	if m.Current == nil {
		sum.BMICategoryText = "No Data"
		sum.GoalProgressText = "No Data"
		return sum
	}

	sum.CurrentText = formatKg(*m.Current, 1)
	sum.StartText = "Start: " + formatKg(*m.Start, 1)

	switch {
	case m.InsufficientData:
		sum.ChangeText = "Not enough data"
	case m.Change != nil:
		change := *m.Change
		sign := ""
		if change > 0 {
			sign = "+"
		}
		sum.ChangeText = sign + formatKg(change, 1)
		switch {
		case change < 0:
			sum.ChangeTrend = TrendLoss
		case change > 0:
			sum.ChangeTrend = TrendGain
		default:
			sum.ChangeTrend = TrendFlat
		}
	}

	if m.BMI != nil {
		sum.BMIText = strconv.FormatFloat(*m.BMI, 'f', 1, 64)
		sum.BMICategoryText = string(m.BMICategory)
	} else {
		sum.BMICategoryText = "Set Height"
	}

	switch m.GoalStatus {
	case domain.GoalReached:
		sum.GoalProgressText = "Goal Reached! 🎉"
	case domain.GoalLose:
		sum.GoalProgressText = formatKg(*m.GoalRemaining, 1) + " to lose"
	case domain.GoalGain:
		sum.GoalProgressText = formatKg(*m.GoalRemaining, 1) + " to gain"
	default:
		sum.GoalProgressText = "Set Goal"
	}
	if m.TargetBMI != nil {
		sum.TargetBMIText = fmt.Sprintf("Target BMI: %.1f", *m.TargetBMI)
	}
	return sum
}

func changeLabels(mode domain.ChangeMode) (string, string) {
	switch mode {
	case domain.ModeLast7Days:
		return "7 Day Change", "Last 7 Days"
	case domain.ModeLast30Days:
		return "30 Day Change", "Last 30 Days"
	case domain.ModeWeekAgo:
		return "Weekly Change", "vs. 1 Week Ago"
	case domain.ModeMonthAgo:
		return "Monthly Change", "vs. 1 Month Ago"
	}
	return "Total Change", "Since Start"
}

// formatKg renders v with prec decimals, or the shortest form when prec < 0.
func formatKg(v float64, prec int) string {
	if prec >= 0 {
		// Avoid "-0.0" for tiny negative values.
		if math.Abs(v) < 0.5*math.Pow10(-prec) {
			v = 0
		}
	}
	return strconv.FormatFloat(v, 'f', prec, 64) + " kg"
}
