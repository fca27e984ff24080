package domain_test

import (
	"testing"

	"weightlog/internal/domain"
)

func TestChartLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-01-05", "1/5"},
		{"2024-12-31", "12/31"},
		{"2024-10-01", "10/1"},
		{"", ""},
		{"2024/01/05", ""},
		{"2024-xx-05", ""},
	}
	for _, tc := range tests {
		if got := domain.ChartLabel(tc.in); got != tc.want {
			t.Errorf("ChartLabel(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildChartSeries(t *testing.T) {
	s := domain.BuildChartSeries([]domain.WeightEntry{
		{ID: "a", Date: "2024-01-01", Weight: 80},
		{ID: "b", Date: "2024-01-08", Weight: 79.4},
	})
	if len(s.Labels) != 2 || s.Labels[0] != "1/1" || s.Labels[1] != "1/8" {
		t.Fatalf("unexpected labels: %v", s.Labels)
	}
	if len(s.Data) != 2 || s.Data[0] != 80 || s.Data[1] != 79.4 {
		t.Fatalf("unexpected data: %v", s.Data)
	}

	empty := domain.BuildChartSeries(nil)
	if empty.Labels == nil || empty.Data == nil {
		t.Fatal("expected non-nil slices so the series encodes as []")
	}
}

func TestValidateEntry(t *testing.T) {
	if err := domain.ValidateEntry("2024-02-29", 70); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := domain.ValidateEntry("2023-02-29", 70); err != domain.ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err := domain.ValidateEntry("2024-01-01", 0); err != domain.ErrInvalidWeight {
		t.Fatalf("expected ErrInvalidWeight, got %v", err)
	}
}
