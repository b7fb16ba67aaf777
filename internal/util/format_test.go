package util

import "testing"

func TestFormatDateHuman(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2025-03-14", "Mar 14, 2025"},
		{"single digit day", "2024-01-02", "Jan 2, 2024"},
		{"invalid", "not-a-date", "not-a-date"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateHuman(tt.in); got != tt.want {
				t.Errorf("FormatDateHuman(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
