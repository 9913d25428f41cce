package stats

import (
	"fmt"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
)

// Insights condenses a simulation into the decision-making view: how much
// blood a period needs on average, which types drive demand, and which
// periods to prepare for.
type Insights struct {
	Periods         int                    `json:"periods"`
	AvgTotalUsage   float64                `json:"avg_total_usage"`
	Ranking         []Ranked               `json:"ranking"`
	HighestDemand   distribution.BloodType `json:"highest_demand"`
	LowestDemand    distribution.BloodType `json:"lowest_demand"`
	PeakPeriod      simulation.Period      `json:"peak_period"`
	TroughPeriod    simulation.Period      `json:"trough_period"`
	Recommendations []string               `json:"recommendations"`
}

// BuildInsights derives stocking guidance from a completed run. ok is false
// when the result table is empty and no insight can be given.
func BuildInsights(results simulation.ResultTable) (Insights, bool) {
	if len(results) == 0 {
		return Insights{}, false
	}

	ranking := RankByMean(results)
	peak, trough, _ := Extremes(results)

	ins := Insights{
		Periods:       len(results),
		AvgTotalUsage: Mean(results.Totals()),
		Ranking:       ranking,
		HighestDemand: ranking[0].Type,
		LowestDemand:  ranking[len(ranking)-1].Type,
		PeakPeriod:    peak,
		TroughPeriod:  trough,
	}

	ins.Recommendations = []string{
		fmt.Sprintf("Average total usage is about %.0f units per period; size the standing inventory around that baseline.", ins.AvgTotalUsage),
		fmt.Sprintf("Types %s and %s carry the highest demand: keep their stock continuously replenished.", ranking[0].Type, ranking[1].Type),
		fmt.Sprintf("Type %s has the lowest demand: hold stock, but cap it to limit expiry waste.", ins.LowestDemand),
		fmt.Sprintf("Peak demand appeared in period %d (%d units); plan surge capacity against that level.", peak.Index, peak.Total),
		fmt.Sprintf("The quietest period was %d (%d units).", trough.Index, trough.Total),
	}
	return ins, true
}

// Lines renders the insights as human-readable report lines in a stable
// order: baseline, per-type ranking, then recommendations.
func (ins Insights) Lines() []string {
	lines := []string{
		fmt.Sprintf("Simulated %d periods.", ins.Periods),
		fmt.Sprintf("Average total usage per period: %.0f units.", ins.AvgTotalUsage),
	}
	for _, r := range ins.Ranking {
		lines = append(lines, fmt.Sprintf("Type %s: average usage %.0f units per period.", r.Type, r.Mean))
	}
	lines = append(lines, fmt.Sprintf("Highest demand: type %s. Lowest demand: type %s.", ins.HighestDemand, ins.LowestDemand))
	lines = append(lines, ins.Recommendations...)
	return lines
}
