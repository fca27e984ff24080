// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar date format used for entry dates.
const DateLayout = "2006-01-02"

// Storage keys used in the key-value store.
const (
	KeyEntries = "weight_tracker_data"
	KeyHeight  = "weight_tracker_height"
	KeyGoal    = "weight_tracker_goal"
	KeyName    = "weight_tracker_name"
	KeySetup   = "weight_tracker_setup"
)

var (
	// ErrValidation is wrapped by every input validation error.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidDate indicates a date that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	// ErrInvalidWeight indicates a weight that is not a positive number.
	ErrInvalidWeight = fmt.Errorf("%w: weight must be > 0", ErrValidation)
	// ErrInvalidHeight indicates a height that is not a positive number.
	ErrInvalidHeight = fmt.Errorf("%w: height must be > 0", ErrValidation)
	// ErrInvalidGoal indicates a goal that is not a positive number.
	ErrInvalidGoal = fmt.Errorf("%w: goal must be > 0", ErrValidation)
)

// WeightEntry is a single dated weight observation in kilograms.
type WeightEntry struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Profile holds the user's singleton settings. Nil means unset.
type Profile struct {
	HeightCm *float64 `json:"heightCm"`
	GoalKg   *float64 `json:"goalKg"`
	Name     string   `json:"name"`
}

// KVStore is the port for the opaque key-value string store.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ValidateEntry checks the date and weight of a would-be entry.
func ValidateEntry(date string, weight float64) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	if !PositiveFinite(weight) {
		return ErrInvalidWeight
	}
	return nil
}

// PositiveFinite reports whether v is a usable measurement.
func PositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Valid returns v if it points at a positive finite value, nil otherwise.
func Valid(v *float64) *float64 {
	if v == nil || !PositiveFinite(*v) {
		return nil
	}
	return v
}
