package domain

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		typ   MetricType
		want  string
	}{
		{"currency groups thousands", 6500000, MetricCurrency, "$6,500,000"},
		{"currency rounds decimals", 1234.56, MetricCurrency, "$1,235"},
		{"percentage keeps decimals", 4.2, MetricPercentage, "4.2%"},
		{"count groups thousands", 25000, MetricCount, "25,000"},
		{"ratio plain", 3.5, MetricRatio, "3.5"},
		{"small count ungrouped", 950, MetricCount, "950"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value, tt.typ); got != tt.want {
				t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.typ, got, tt.want)
			}
		})
	}
}

func TestFormatValueWithUnit(t *testing.T) {
	got := FormatValueWithUnit(25000, MetricCount, "Weekly Active Users")
	if got != "25,000 Users" {
		t.Errorf("FormatValueWithUnit() = %q, want %q", got, "25,000 Users")
	}
	// Currency metrics never take the name suffix.
	if got := FormatValueWithUnit(100, MetricCurrency, "Monthly Recurring Revenue"); got != "$100" {
		t.Errorf("FormatValueWithUnit(currency) = %q", got)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
		want            int
	}{
		{"partial", 6500000, 10000000, 65},
		{"complete", 10, 10, 100},
		{"over target clamps", 150, 100, 100},
		{"negative clamps", -5, 100, 0},
		{"zero target", 50, 0, 0},
		{"rounds", 1, 3, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.current, tt.target); got != tt.want {
				t.Errorf("Progress(%v, %v) = %d, want %d", tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestTypeForUnit(t *testing.T) {
	tests := []struct {
		unit string
		want MetricType
	}{
		{"$", MetricCurrency},
		{"€", MetricCurrency},
		{"%", MetricPercentage},
		{"Users", MetricCount},
		{"", MetricCount},
	}

	for _, tt := range tests {
		if got := TypeForUnit(tt.unit); got != tt.want {
			t.Errorf("TypeForUnit(%q) = %q, want %q", tt.unit, got, tt.want)
		}
	}
}

func TestUnitLabel(t *testing.T) {
	if got := UnitLabel(MetricCurrency); got != "$" {
		t.Errorf("UnitLabel(currency) = %q, want $", got)
	}
	if got := UnitLabel(MetricPercentage); got != "%" {
		t.Errorf("UnitLabel(percentage) = %q, want %%", got)
	}
	if got := UnitLabel(MetricCount); got != "Units" {
		t.Errorf("UnitLabel(count) = %q, want Units", got)
	}
}
