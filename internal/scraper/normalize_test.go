package scraper

import "testing"

func TestExtractSpread(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"positive with units", "+3.5 pts", 3.5},
		{"negative integer", "-7", -7.0},
		{"negative decimal with price", "-3.5 (-110)", -3.5},
		{"no numeral", "no number", 0.0},
		{"empty", "", 0.0},
		{"total quote", "O 47.5 (-105)", 47.5},
		{"unsigned", "10", 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSpread(tt.in); got != tt.want {
				t.Errorf("ExtractSpread(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"negative price", "(-110)", "-110"},
		{"positive price keeps sign", "(+130)", "+130"},
		{"price after spread", "-3.5 (-110)", "-110"},
		{"no parenthesized numeral", "even", "even"},
		{"trims raw text", "  N/A  ", "N/A"},
		{"decimal in parens is not a price", "(1.5)", "(1.5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPrice(tt.in); got != tt.want {
				t.Errorf("ExtractPrice(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
