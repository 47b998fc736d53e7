package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round to cents",
			input: 123.456789,
			want:  123.46,
		},
		{
			name:  "half rounds away from zero",
			input: 2.675,
			want:  2.68,
		},
		{
			name:  "negative amount",
			input: -10.005,
			want:  -10.01,
		},
		{
			name:  "large contract value",
			input: 68000000.004,
			want:  68000000.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if got != tt.want {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound2NonFinite(t *testing.T) {
	if got := Round2(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("Round2(+Inf) = %v, want +Inf", got)
	}
	if got := Round2(math.NaN()); !math.IsNaN(got) {
		t.Errorf("Round2(NaN) = %v, want NaN", got)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{name: "finite number", input: 123.45, want: true},
		{name: "infinity", input: math.Inf(1), want: false},
		{name: "negative infinity", input: math.Inf(-1), want: false},
		{name: "NaN", input: math.NaN(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSumExact(t *testing.T) {
	values := make([]float64, 0, 10)
	for i := 0; i < 10; i++ {
		values = append(values, 0.1)
	}
	if got := SumExact(values...); got != 1.0 {
		t.Errorf("SumExact() = %v, want 1", got)
	}
	if got := SumExact(); got != 0 {
		t.Errorf("SumExact() of nothing = %v, want 0", got)
	}
}

func TestSplitCents(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		count       int
		wantRegular float64
		wantLast    float64
	}{
		{name: "even split", total: 680000000, count: 10, wantRegular: 68000000, wantLast: 68000000},
		{name: "last share absorbs shortfall", total: 1000, count: 3, wantRegular: 333.33, wantLast: 333.34},
		{name: "last share absorbs excess", total: 1000, count: 7, wantRegular: 142.86, wantLast: 142.84},
		{name: "single share", total: 123.456, count: 1, wantRegular: 123.46, wantLast: 123.46},
		{name: "zero total", total: 0, count: 4, wantRegular: 0, wantLast: 0},
		{name: "no shares", total: 100, count: 0, wantRegular: 0, wantLast: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regular, last := SplitCents(tt.total, tt.count)
			if regular != tt.wantRegular || last != tt.wantLast {
				t.Errorf("SplitCents() = (%v, %v), want (%v, %v)", regular, last, tt.wantRegular, tt.wantLast)
			}
		})
	}
}

func TestSplitCentsConservesTotal(t *testing.T) {
	for count := 1; count <= 12; count++ {
		regular, last := SplitCents(1000, count)
		parts := make([]float64, 0, count)
		for i := 1; i < count; i++ {
			parts = append(parts, regular)
		}
		parts = append(parts, last)
		if got := SumExact(parts...); got != 1000 {
			t.Errorf("count=%d: shares sum to %v, want 1000", count, got)
		}
	}
}
