package visuals

import (
	"strings"
	"testing"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
)

func fixtureResults() simulation.ResultTable {
	mk := func(a, b, ab, o int) map[distribution.BloodType]int {
		return map[distribution.BloodType]int{"A": a, "B": b, "AB": ab, "O": o}
	}
	return simulation.ResultTable{
		{Index: 1, Values: mk(10, 20, 5, 40), Total: 75},
		{Index: 2, Values: mk(30, 10, 5, 60), Total: 105},
	}
}

func TestGenerateUsageBarChart(t *testing.T) {
	chart := GenerateUsageBarChart(fixtureResults())

	if !strings.Contains(chart, "xychart-beta") {
		t.Error("Expected an xychart-beta chart")
	}
	if got := strings.Count(chart, "    bar ["); got != 4 {
		t.Errorf("Expected 4 bar series (one per blood type), got %d", got)
	}
	if !strings.Contains(chart, "x-axis [1, 2]") {
		t.Errorf("Expected period labels on the x-axis, got:\n%s", chart)
	}
	if !strings.Contains(chart, "bar [10, 30]") {
		t.Errorf("Expected type A series [10, 30], got:\n%s", chart)
	}
}

func TestGenerateAverageUsagePie(t *testing.T) {
	chart := GenerateAverageUsagePie(fixtureResults())

	if !strings.Contains(chart, "pie title") {
		t.Error("Expected a pie chart")
	}
	for _, want := range []string{`"Type A" : 20.00`, `"Type B" : 15.00`, `"Type AB" : 5.00`, `"Type O" : 50.00`} {
		if !strings.Contains(chart, want) {
			t.Errorf("Pie chart missing slice %q:\n%s", want, chart)
		}
	}
}

func TestChartsEmptyInput(t *testing.T) {
	if got := GenerateUsageBarChart(nil); got != "" {
		t.Errorf("Expected empty string for empty results, got %q", got)
	}
	if got := GenerateAverageUsagePie(nil); got != "" {
		t.Errorf("Expected empty string for empty results, got %q", got)
	}
}
