package simulation

import (
	"reflect"
	"testing"

	"hemosim/internal/distribution"
)

func fixtureResults() ResultTable {
	return ResultTable{
		{
			Index:  1,
			Values: map[distribution.BloodType]int{"A": 10, "B": 20, "AB": 0, "O": 30},
			Total:  60,
		},
		{
			Index:  2,
			Values: map[distribution.BloodType]int{"A": 30, "B": 10, "AB": 10, "O": 50},
			Total:  100,
		},
	}
}

func TestSeries(t *testing.T) {
	r := fixtureResults()
	if got, want := r.Series(distribution.TypeA), []int{10, 30}; !reflect.DeepEqual(got, want) {
		t.Errorf("Series(A) = %v, want %v", got, want)
	}
	if got, want := r.Series(distribution.TypeAB), []int{0, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("Series(AB) = %v, want %v", got, want)
	}
}

func TestTotals(t *testing.T) {
	if got, want := fixtureResults().Totals(), []int{60, 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("Totals() = %v, want %v", got, want)
	}
}

func TestMeans(t *testing.T) {
	means := fixtureResults().Means()
	want := map[distribution.BloodType]float64{"A": 20, "B": 15, "AB": 5, "O": 40}
	if !reflect.DeepEqual(means, want) {
		t.Errorf("Means() = %v, want %v", means, want)
	}
}

func TestMeansEmpty(t *testing.T) {
	means := ResultTable{}.Means()
	for _, bt := range distribution.BloodTypes() {
		if means[bt] != 0 {
			t.Errorf("Empty table mean for %s = %g, want 0", bt, means[bt])
		}
	}
}
