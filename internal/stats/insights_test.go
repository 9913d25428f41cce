package stats

import (
	"strings"
	"testing"

	"hemosim/internal/distribution"
)

func TestBuildInsights(t *testing.T) {
	ins, ok := BuildInsights(fixtureResults())
	if !ok {
		t.Fatal("Expected ok for non-empty results")
	}

	if ins.Periods != 3 {
		t.Errorf("Periods = %d, want 3", ins.Periods)
	}
	if ins.AvgTotalUsage != 85 {
		t.Errorf("AvgTotalUsage = %g, want 85", ins.AvgTotalUsage)
	}
	if ins.HighestDemand != distribution.TypeO {
		t.Errorf("HighestDemand = %s, want O", ins.HighestDemand)
	}
	if ins.LowestDemand != distribution.TypeAB {
		t.Errorf("LowestDemand = %s, want AB", ins.LowestDemand)
	}
	if ins.PeakPeriod.Index != 2 {
		t.Errorf("PeakPeriod = %d, want 2", ins.PeakPeriod.Index)
	}
	if ins.TroughPeriod.Index != 1 {
		t.Errorf("TroughPeriod = %d, want 1", ins.TroughPeriod.Index)
	}
	if len(ins.Recommendations) == 0 {
		t.Fatal("Expected stocking recommendations")
	}
}

func TestBuildInsightsEmpty(t *testing.T) {
	if _, ok := BuildInsights(nil); ok {
		t.Error("Expected ok=false for empty results")
	}
}

func TestInsightsLines(t *testing.T) {
	ins, _ := BuildInsights(fixtureResults())
	lines := strings.Join(ins.Lines(), "\n")

	for _, want := range []string{
		"Simulated 3 periods",
		"Type O",
		"Highest demand: type O",
		"Lowest demand: type AB",
		"period 2",
	} {
		if !strings.Contains(lines, want) {
			t.Errorf("Insight lines missing %q:\n%s", want, lines)
		}
	}
}
