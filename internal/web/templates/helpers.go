package templates

import (
	"fmt"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/util"
)

func formatMetric(value float64, t domain.MetricType) string {
	return domain.FormatValue(value, t)
}

// formatMetricWithName adds the metric's unit word for count and ratio
// metrics, so "25,000" reads as "25,000 Users".
func formatMetricWithName(value float64, ns domain.NorthStarMetric) string {
	return domain.FormatValueWithUnit(value, ns.Type, ns.Name)
}

func progressPercent(ns domain.NorthStarMetric) int {
	return domain.Progress(ns.CurrentValue, ns.TargetValue)
}

func iceBandClass(score int) string {
	return "ice-" + domain.ICEBand(score)
}

func formatDate(s *string) string {
	if s == nil {
		return "-"
	}
	return util.FormatDateHuman(*s)
}

func formatInt(n int) string {
	return fmt.Sprintf("%d", n)
}

func ownerLabel(o domain.Owner) string {
	if o.Avatar == "" {
		return o.Name
	}
	return o.Avatar + " " + o.Name
}
