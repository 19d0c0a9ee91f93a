// ABOUTME: Tests for status classification and duration formatting.
// ABOUTME: Covers tolerance symmetry, zero-span ranges, and H:MM rendering.
package engine

import (
	"testing"

	"github.com/harperreed/longevity/internal/models"
)

func TestStatusForToleranceSymmetry(t *testing.T) {
	// Range [100, 200]: span 100, tolerance 20.
	tests := []struct {
		value float64
		want  models.StatusLevel
	}{
		{79, models.StatusPoor},
		{80, models.StatusFair},
		{100, models.StatusGood},
		{150, models.StatusGood},
		{200, models.StatusGood},
		{220, models.StatusFair},
		{221, models.StatusPoor},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.value, 100, 200); got != tt.want {
			t.Errorf("StatusFor(%v, 100, 200) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestStatusForZeroSpan(t *testing.T) {
	// Range [50, 50]: span treated as 1, tolerance 0.2.
	tests := []struct {
		value float64
		want  models.StatusLevel
	}{
		{50, models.StatusGood},
		{50.1, models.StatusFair},
		{49.9, models.StatusFair},
		{51, models.StatusPoor},
		{49, models.StatusPoor},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.value, 50, 50); got != tt.want {
			t.Errorf("StatusFor(%v, 50, 50) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		val  float64
		want string
	}{
		{7.5, "7:30"},
		{0.25, "0:15"},
		{8, "8:00"},
		{1.999, "2:00"}, // minute rounding carries into the hour
		{6.51, "6:31"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.val); got != tt.want {
			t.Errorf("FormatDuration(%v) = %s, want %s", tt.val, got, tt.want)
		}
	}
}
