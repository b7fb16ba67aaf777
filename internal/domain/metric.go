package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MetricType selects both the unit symbol and the formatting rule for a
// North Star metric.
type MetricType string

const (
	MetricCurrency   MetricType = "currency"
	MetricPercentage MetricType = "percentage"
	MetricCount      MetricType = "count"
	MetricRatio      MetricType = "ratio"
)

// NorthStarMetric is the single top-level metric a project's experiments are
// meant to influence. It is only ever changed through an explicit edit,
// never derived from experiment outcomes.
type NorthStarMetric struct {
	Name         string     `json:"name"`
	CurrentValue float64    `json:"currentValue"`
	TargetValue  float64    `json:"targetValue"`
	Unit         string     `json:"unit"`
	Type         MetricType `json:"type"`
}

// DefaultNorthStar is the metric assigned to a project created without one.
func DefaultNorthStar() NorthStarMetric {
	return NorthStarMetric{Name: "Revenue", Unit: "$", Type: MetricCurrency}
}

// UnitLabel returns the canonical unit symbol for a metric type.
func UnitLabel(t MetricType) string {
	switch t {
	case MetricCurrency:
		return "$"
	case MetricPercentage:
		return "%"
	default:
		return "Units"
	}
}

// TypeForUnit derives the metric type from a unit symbol, the way the
// project wizard does: currency symbols and percent map directly, anything
// else is a plain count.
func TypeForUnit(unit string) MetricType {
	switch unit {
	case "$", "€":
		return MetricCurrency
	case "%":
		return MetricPercentage
	default:
		return MetricCount
	}
}

// FormatValue renders a metric value for display.
// Currency values get a dollar sign and no decimals; percentages get a "%"
// suffix; counts and ratios are plain grouped numbers, optionally suffixed
// with the last word of the metric name (e.g. "Active Users" -> "Users").
func FormatValue(value float64, t MetricType) string {
	switch t {
	case MetricCurrency:
		return "$" + groupThousands(math.Round(value))
	case MetricPercentage:
		return groupThousands(value) + "%"
	default:
		return groupThousands(value)
	}
}

// FormatValueWithUnit is FormatValue plus the heuristic unit word for
// count/ratio metrics.
func FormatValueWithUnit(value float64, t MetricType, metricName string) string {
	s := FormatValue(value, t)
	if t == MetricCount || t == MetricRatio {
		if words := strings.Fields(metricName); len(words) > 0 {
			return s + " " + words[len(words)-1]
		}
	}
	return s
}

// Progress returns the progress toward target as an integer percentage
// clamped to [0, 100]. A zero target yields 0.
func Progress(current, target float64) int {
	if target == 0 {
		return 0
	}
	p := int(math.Round(current / target * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// groupThousands formats a number with en-US thousands separators, keeping
// any fractional digits as-is.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String()
	if hasFrac {
		out = fmt.Sprintf("%s.%s", out, fracPart)
	}
	if neg {
		out = "-" + out
	}
	return out
}
