package stats

import (
	"testing"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
)

func values(a, b, ab, o int) map[distribution.BloodType]int {
	return map[distribution.BloodType]int{
		distribution.TypeA:  a,
		distribution.TypeB:  b,
		distribution.TypeAB: ab,
		distribution.TypeO:  o,
	}
}

func fixtureResults() simulation.ResultTable {
	return simulation.ResultTable{
		{Index: 1, Values: values(10, 20, 5, 40), Total: 75},
		{Index: 2, Values: values(30, 10, 5, 60), Total: 105},
		{Index: 3, Values: values(20, 30, 5, 20), Total: 75},
	}
}

func TestSummarize(t *testing.T) {
	rows := Summarize(fixtureResults())
	if len(rows) != 5 {
		t.Fatalf("Expected 5 summary rows (4 types + total), got %d", len(rows))
	}

	wantSeries := []string{"A", "B", "AB", "O", TotalSeries}
	for i, want := range wantSeries {
		if rows[i].Series != want {
			t.Errorf("Row %d series = %q, want %q", i, rows[i].Series, want)
		}
	}

	a := rows[0]
	if a.Mean != 20 {
		t.Errorf("Type A mean = %g, want 20", a.Mean)
	}
	if a.Median != 20 {
		t.Errorf("Type A median = %g, want 20", a.Median)
	}
	if a.Min != 10 || a.Max != 30 {
		t.Errorf("Type A min/max = (%d, %d), want (10, 30)", a.Min, a.Max)
	}
	if a.Std == nil || *a.Std != 10 {
		t.Errorf("Type A std = %v, want 10", a.Std)
	}

	total := rows[4]
	if total.Mean != 85 {
		t.Errorf("Total mean = %g, want 85", total.Mean)
	}
	if total.Median != 75 {
		t.Errorf("Total median = %g, want 75", total.Median)
	}
	if total.Min != 75 || total.Max != 105 {
		t.Errorf("Total min/max = (%d, %d), want (75, 105)", total.Min, total.Max)
	}
}

func TestSummarizeSinglePeriodStdUndefined(t *testing.T) {
	rows := Summarize(fixtureResults()[:1])
	for _, row := range rows {
		if row.Std != nil {
			t.Errorf("Series %s std = %v, want nil for a single period", row.Series, *row.Std)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if rows := Summarize(nil); rows != nil {
		t.Errorf("Summarize(nil) = %v, want nil", rows)
	}
}

func TestExtremes(t *testing.T) {
	max, min, ok := Extremes(fixtureResults())
	if !ok {
		t.Fatal("Expected ok for non-empty results")
	}
	if max.Index != 2 {
		t.Errorf("Peak period = %d, want 2", max.Index)
	}
	// Periods 1 and 3 tie at 75; the earliest wins.
	if min.Index != 1 {
		t.Errorf("Trough period = %d, want 1 (earliest of the tie)", min.Index)
	}
}

func TestExtremesEmpty(t *testing.T) {
	if _, _, ok := Extremes(nil); ok {
		t.Error("Expected ok=false for empty results")
	}
}

func TestRankByMean(t *testing.T) {
	ranked := RankByMean(fixtureResults())
	// Means: A=20, B=20, AB=5, O=40.
	want := []distribution.BloodType{
		distribution.TypeO,
		distribution.TypeA, // ties with B, canonical order keeps A first
		distribution.TypeB,
		distribution.TypeAB,
	}
	for i, bt := range want {
		if ranked[i].Type != bt {
			t.Errorf("Rank %d = %s, want %s", i, ranked[i].Type, bt)
		}
	}
}
