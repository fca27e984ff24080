package domain

import (
	"fmt"
	"math"
	"time"
)

// ChangeMode selects the comparison point for the weight change metric.
type ChangeMode string

const (
	// ModeTotal compares against the first entry.
	ModeTotal ChangeMode = "total"
	// ModeLast7Days scans back from the latest entry for one at least 7 days older.
	ModeLast7Days ChangeMode = "7days"
	// ModeLast30Days scans back from the latest entry for one at least 30 days older.
	ModeLast30Days ChangeMode = "30days"
	// ModeWeekAgo picks the entry nearest to 7 days before today.
	ModeWeekAgo ChangeMode = "week"
	// ModeMonthAgo picks the entry nearest to 30 days before today.
	ModeMonthAgo ChangeMode = "month"
)

// ParseChangeMode converts s to a ChangeMode. The empty string means ModeTotal.
func ParseChangeMode(s string) (ChangeMode, error) {
	if s == "" {
		return ModeTotal, nil
	}
	m := ChangeMode(s)
	switch m {
	case ModeTotal, ModeLast7Days, ModeLast30Days, ModeWeekAgo, ModeMonthAgo:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown change mode %q", ErrValidation, s)
}

// WindowDays is the comparison window length, 0 for ModeTotal.
func (m ChangeMode) WindowDays() int {
	switch m {
	case ModeLast7Days, ModeWeekAgo:
		return 7
	case ModeLast30Days, ModeMonthAgo:
		return 30
	}
	return 0
}

// Nearest reports whether m uses the nearest-date algorithm.
func (m ChangeMode) Nearest() bool {
	return m == ModeWeekAgo || m == ModeMonthAgo
}

// Next returns the mode that follows m when the user cycles through modes.
func (m ChangeMode) Next() ChangeMode {
	switch m {
	case ModeTotal:
		return ModeLast7Days
	case ModeLast7Days:
		return ModeLast30Days
	case ModeWeekAgo:
		return ModeMonthAgo
	}
	return ModeTotal
}

// BMICategory is the WHO adult BMI band.
type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal weight"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// CategorizeBMI maps a BMI value onto its band.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	}
	return BMIObese
}

// GoalStatus describes the direction of the remaining goal delta.
type GoalStatus string

const (
	GoalReached GoalStatus = "reached"
	GoalLose    GoalStatus = "lose"
	GoalGain    GoalStatus = "gain"
)

// MetricsInput is everything ComputeMetrics depends on.
type MetricsInput struct {
	// Entries must be sorted by date ascending.
	Entries  []WeightEntry
	HeightCm *float64
	GoalKg   *float64
	Mode     ChangeMode
	// Today anchors the nearest-date modes. Only its calendar date is used.
	Today time.Time
}

// Metrics is the derived display record. Nil fields are unset.
type Metrics struct {
	Mode             ChangeMode  `json:"mode"`
	Current          *float64    `json:"current"`
	Start            *float64    `json:"start"`
	CompareWeight    *float64    `json:"compareWeight"`
	Change           *float64    `json:"change"`
	InsufficientData bool        `json:"insufficientData"`
	BMI              *float64    `json:"bmi"`
	BMICategory      BMICategory `json:"bmiCategory,omitempty"`
	GoalDelta        *float64    `json:"goalDelta"`
	GoalRemaining    *float64    `json:"goalRemaining"`
	GoalStatus       GoalStatus  `json:"goalStatus,omitempty"`
	TargetBMI        *float64    `json:"targetBmi"`
}

// ComputeMetrics derives the display metrics from a snapshot and profile.
// It has no side effects and, for a fixed input, always returns the same record.
func ComputeMetrics(in MetricsInput) Metrics {
	out := Metrics{Mode: in.Mode}
	if out.Mode == "" {
		out.Mode = ModeTotal
	}
	if len(in.Entries) == 0 {
		return out
	}

	current := in.Entries[len(in.Entries)-1].Weight
	start := in.Entries[0].Weight
	out.Current = ptr(current)
	out.Start = ptr(start)

	var compare *float64
	switch {
	case out.Mode == ModeTotal:
		compare = ptr(start)
	case out.Mode.Nearest():
		compare = nearestWeight(in.Entries, anchorDay(in.Today).AddDate(0, 0, -out.Mode.WindowDays()))
	default:
		compare = thresholdWeight(in.Entries, out.Mode.WindowDays())
	}
	if compare == nil {
		out.InsufficientData = true
	} else {
		out.CompareWeight = compare
		out.Change = ptr(current - *compare)
	}

	height := Valid(in.HeightCm)
	goal := Valid(in.GoalKg)

	var heightM2 float64
	if height != nil {
		heightM := *height / 100
		heightM2 = heightM * heightM
		bmi := current / heightM2
		out.BMI = ptr(bmi)
		out.BMICategory = CategorizeBMI(bmi)
	}

	if goal != nil {
		delta := current - *goal
		out.GoalDelta = ptr(delta)
		out.GoalRemaining = ptr(math.Abs(delta))
		switch {
		case delta == 0:
			out.GoalStatus = GoalReached
		case delta > 0:
			out.GoalStatus = GoalLose
		default:
			out.GoalStatus = GoalGain
		}
		if height != nil {
			out.TargetBMI = ptr(*goal / heightM2)
		}
	}
	return out
}

// thresholdWeight walks back from the latest entry and returns the weight of
// the first entry at least days older than it, or nil.
func thresholdWeight(entries []WeightEntry, days int) *float64 {
	latest, err := ParseDate(entries[len(entries)-1].Date)
	if err != nil {
		return nil
	}
	for i := len(entries) - 1; i >= 0; i-- {
		d, err := ParseDate(entries[i].Date)
		if err != nil {
			continue
		}
		if daysBetween(d, latest) >= float64(days) {
			return ptr(entries[i].Weight)
		}
	}
	return nil
}

// nearestWeight returns the weight of the entry closest to target.
// Ties keep the earliest entry.
func nearestWeight(entries []WeightEntry, target time.Time) *float64 {
	var best *float64
	minDiff := math.Inf(1)
	for _, e := range entries {
		d, err := ParseDate(e.Date)
		if err != nil {
			continue
		}
		if diff := math.Abs(daysBetween(target, d)); diff < minDiff {
			minDiff = diff
			best = ptr(e.Weight)
		}
	}
	return best
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

// anchorDay returns the calendar date of t as midnight UTC.
func anchorDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(v float64) *float64 { return &v }
