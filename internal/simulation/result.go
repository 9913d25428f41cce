package simulation

import (
	"hemosim/internal/distribution"
)

// Period is one simulated period: one raw draw and one sampled usage value
// per blood type, plus the period total and each type's share of it.
type Period struct {
	Index  int                                `json:"period"`
	Draws  map[distribution.BloodType]int     `json:"draws"`
	Values map[distribution.BloodType]int     `json:"values"`
	Total  int                                `json:"total"`
	Shares map[distribution.BloodType]float64 `json:"shares"`
}

// ResultTable is the ordered outcome of a run, Index ascending from 1.
// It is append-only during the run and read-only afterwards.
type ResultTable []Period

// Series extracts one blood type's sampled values across all periods, in
// period order. This is the shape the bar chart consumes.
func (r ResultTable) Series(t distribution.BloodType) []int {
	series := make([]int, len(r))
	for i, p := range r {
		series[i] = p.Values[t]
	}
	return series
}

// Totals extracts the per-period totals in period order.
func (r ResultTable) Totals() []int {
	totals := make([]int, len(r))
	for i, p := range r {
		totals[i] = p.Total
	}
	return totals
}

// Means returns the mean sampled value per blood type across all periods.
// An empty table yields zero means.
func (r ResultTable) Means() map[distribution.BloodType]float64 {
	means := make(map[distribution.BloodType]float64, len(distribution.BloodTypes()))
	if len(r) == 0 {
		for _, t := range distribution.BloodTypes() {
			means[t] = 0
		}
		return means
	}
	for _, t := range distribution.BloodTypes() {
		sum := 0
		for _, p := range r {
			sum += p.Values[t]
		}
		means[t] = float64(sum) / float64(len(r))
	}
	return means
}
