package stats

import (
	"sort"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
)

// TotalSeries labels the aggregate row in summary tables.
const TotalSeries = "Total"

// SummaryRow holds the descriptive statistics of one sampled-value series.
// Std is nil when fewer than two periods exist: the sample deviation is
// undefined there, not zero.
type SummaryRow struct {
	Series string   `json:"series"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	Std    *float64 `json:"std"`
	Min    int      `json:"min"`
	Max    int      `json:"max"`
}

// Summarize computes mean, median, sample standard deviation, min and max for each
// blood type's series and for the period totals, in canonical order with
// the Total row last. An empty result table yields no rows.
func Summarize(results simulation.ResultTable) []SummaryRow {
	if len(results) == 0 {
		return nil
	}

	rows := make([]SummaryRow, 0, len(distribution.BloodTypes())+1)
	for _, t := range distribution.BloodTypes() {
		rows = append(rows, summarizeSeries(string(t), results.Series(t)))
	}
	rows = append(rows, summarizeSeries(TotalSeries, results.Totals()))
	return rows
}

func summarizeSeries(name string, values []int) SummaryRow {
	row := SummaryRow{Series: name, Mean: Mean(values), Median: CalculateMedianDiscrete(values)}
	row.Min, row.Max = MinMax(values)
	if len(values) >= 2 {
		std := SampleStd(values)
		row.Std = &std
	}
	return row
}

// Extremes identifies the periods with the highest and lowest total usage.
// Ties go to the earliest period. ok is false on an empty result table.
func Extremes(results simulation.ResultTable) (max, min simulation.Period, ok bool) {
	if len(results) == 0 {
		return simulation.Period{}, simulation.Period{}, false
	}

	max, min = results[0], results[0]
	for _, p := range results[1:] {
		if p.Total > max.Total {
			max = p
		}
		if p.Total < min.Total {
			min = p
		}
	}
	return max, min, true
}

// Ranked pairs a blood type with its mean usage for demand ranking.
type Ranked struct {
	Type distribution.BloodType `json:"blood_type"`
	Mean float64                `json:"mean"`
}

// RankByMean orders the blood types by mean sampled value, descending.
// Ties keep the canonical A, B, AB, O order.
func RankByMean(results simulation.ResultTable) []Ranked {
	means := results.Means()

	ranked := make([]Ranked, 0, len(distribution.BloodTypes()))
	for _, t := range distribution.BloodTypes() {
		ranked = append(ranked, Ranked{Type: t, Mean: means[t]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Mean > ranked[j].Mean
	})
	return ranked
}
