package numeric

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestParseAmount_Locales(t *testing.T) {
	tests := []struct {
		input    string
		expected *float64
	}{
		{"1,234.56", floatPtr(1234.56)},
		{"1.234,56", floatPtr(1234.56)},
		{"$1,234.56", floatPtr(1234.56)},
		{"1.234.567,89", floatPtr(1234567.89)},
		{"1,234,567.89", floatPtr(1234567.89)},
		{"€2.500", floatPtr(2500)},
		{"1.234.567", floatPtr(1234567)},
		{"105.50", floatPtr(105.5)},
		{"2.5", floatPtr(2.5)},
		{"0.500", floatPtr(0.5)},
		{"12,50", floatPtr(12.5)},
		{"12,500", floatPtr(12500)},
		{"(2,500)", floatPtr(-2500)},
		{"-3,500", floatPtr(-3500)},
		{"¥100", floatPtr(100)},
		{"£99.99", floatPtr(99.99)},
		{"100", floatPtr(100)},
		{"", nil},
		{"-", nil},
		{"—", nil},
		{"N/A", nil},
		{"abc", nil},
		{"12.34.56,78.90", nil},
	}

	for _, tc := range tests {
		got := ParseAmount(tc.input)
		if tc.expected == nil {
			if got != nil {
				t.Errorf("ParseAmount(%q): expected nil, got %f", tc.input, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ParseAmount(%q): expected %f, got nil", tc.input, *tc.expected)
		} else if *got != *tc.expected {
			t.Errorf("ParseAmount(%q): expected %f, got %f", tc.input, *tc.expected, *got)
		}
	}
}

func TestParseAmount_RejectsImplausibleMagnitude(t *testing.T) {
	if got := ParseAmount("999999999999999999999"); got != nil {
		t.Errorf("expected nil for implausible magnitude, got %f", *got)
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		input    string
		expected *float64
	}{
		{"12.5%", floatPtr(12.5)},
		{"12,5%", floatPtr(12.5)},
		{"60%", floatPtr(60)},
		{"7.25 %", floatPtr(7.25)},
		{"-1.2%", floatPtr(-1.2)},
		{"%", nil},
		{"", nil},
	}

	for _, tc := range tests {
		got := ParsePercent(tc.input)
		if tc.expected == nil {
			if got != nil {
				t.Errorf("ParsePercent(%q): expected nil, got %f", tc.input, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ParsePercent(%q): expected %f, got nil", tc.input, *tc.expected)
		} else if *got != *tc.expected {
			t.Errorf("ParsePercent(%q): expected %f, got %f", tc.input, *tc.expected, *got)
		}
	}
}

func TestIsReasonableQuantity(t *testing.T) {
	tests := []struct {
		q        float64
		expected bool
	}{
		{100, true},
		{1500.5, true},
		{9_999_999, true},
		{-5, false},
		{0, false},
		{15_000_000_000, false}, // above the identifier magnitude cap
		{50_000_000, false},     // implausible holding size
		{123_456_789, false},    // 9-digit integer, shaped like an identifier
	}

	for _, tc := range tests {
		if got := IsReasonableQuantity(tc.q); got != tc.expected {
			t.Errorf("IsReasonableQuantity(%v) = %v, want %v", tc.q, got, tc.expected)
		}
	}
}
