package visuals

import (
	"fmt"
	"math"
	"strings"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
)

// GenerateUsageBarChart creates a Mermaid xychart-beta with one bar series
// per blood type across the simulated periods.
func GenerateUsageBarChart(results simulation.ResultTable) string {
	if len(results) == 0 {
		return ""
	}

	var labels []string
	maxVal := 0
	for _, p := range results {
		labels = append(labels, fmt.Sprintf("%d", p.Index))
		for _, t := range distribution.BloodTypes() {
			if p.Values[t] > maxVal {
				maxVal = p.Values[t]
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Simulated Blood Usage per Period\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Usage (units)\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))

	for _, t := range distribution.BloodTypes() {
		var values []string
		for _, v := range results.Series(t) {
			values = append(values, fmt.Sprintf("%d", v))
		}
		sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateAverageUsagePie creates a Mermaid pie chart of the mean sampled
// usage per blood type.
func GenerateAverageUsagePie(results simulation.ResultTable) string {
	if len(results) == 0 {
		return ""
	}

	means := results.Means()

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Average Usage Share per Blood Type\n")
	for _, t := range distribution.BloodTypes() {
		sb.WriteString(fmt.Sprintf("    \"Type %s\" : %.2f\n", t, means[t]))
	}
	sb.WriteString("```")
	return sb.String()
}
