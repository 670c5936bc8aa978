package utils

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"small", 42.5, "$42.50"},
		{"thousands", 1234.56, "$1,234.56"},
		{"millions", 9876543.21, "$9,876,543.21"},
		{"negative", -1234.56, "-$1,234.56"},
		{"rounding carry", 999.999, "$1,000.00"},
		{"sub cent", 0.004, "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.amount); got != tt.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(25); got != "25.00%" {
		t.Errorf("FormatPercent(25) = %q", got)
	}
	if got := FormatPercent(-3.125); got != "-3.13%" {
		t.Errorf("FormatPercent(-3.125) = %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(math.Inf(1)); got != "unlimited" {
		t.Errorf("FormatPnL(+Inf) = %q", got)
	}
	if got := FormatPnL(math.Inf(-1)); got != "unlimited" {
		t.Errorf("FormatPnL(-Inf) = %q", got)
	}
	if got := FormatPnL(1500); got != "+$1,500.00" {
		t.Errorf("FormatPnL(1500) = %q", got)
	}
	if got := FormatPnL(-300); got != "-$300.00" {
		t.Errorf("FormatPnL(-300) = %q", got)
	}
	if got := FormatPnL(0); got != "+$0.00" {
		t.Errorf("FormatPnL(0) = %q", got)
	}
}

func TestFormatGreek(t *testing.T) {
	if got := FormatGreek(0.5512); got != "+0.5512" {
		t.Errorf("FormatGreek(0.5512) = %q", got)
	}
	if got := FormatGreek(-0.0321); got != "-0.0321" {
		t.Errorf("FormatGreek(-0.0321) = %q", got)
	}
}
