package engine

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"hemosim/internal/distribution"
)

func TestSaveRoundTripsThroughLoader(t *testing.T) {
	dir := t.TempDir()
	cfg := GeneratorConfig{Rows: 6, Seed: 42}

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	for _, bt := range distribution.BloodTypes() {
		path := filepath.Join(dir, fmt.Sprintf("Prob %s.xlsx", bt))
		table, err := distribution.LoadXLSX(bt, path)
		if err != nil {
			t.Fatalf("Generated workbook for %s failed to load: %v", bt, err)
		}
		if table.Len() != 6 {
			t.Errorf("Type %s: expected 6 rows, got %d", bt, table.Len())
		}

		last := table.Rows[table.Len()-1]
		if math.Abs(last.CumulativeProbability-1.0) > 1e-9 {
			t.Errorf("Type %s: final cumulative probability = %g, want 1.0", bt, last.CumulativeProbability)
		}
		for i, row := range table.Rows {
			if !row.ParseOK {
				t.Errorf("Type %s row %d: generated interval %q did not parse", bt, i, row.Label)
			}
		}

		// Full coverage: every draw lands in a band and samples a midpoint.
		for draw := 0; draw <= 99; draw++ {
			if table.Sample(draw) == 0 {
				t.Fatalf("Type %s: Sample(%d) = 0, generated table leaves a gap", bt, draw)
			}
		}
	}
}

func TestSaveCommaDecimals(t *testing.T) {
	dir := t.TempDir()
	cfg := GeneratorConfig{Rows: 4, Seed: 7, CommaDecimals: true}

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	table, err := distribution.LoadXLSX(distribution.TypeA, filepath.Join(dir, "Prob A.xlsx"))
	if err != nil {
		t.Fatalf("Comma-decimal workbook failed to load: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("Expected 4 rows, got %d", table.Len())
	}
	sum := 0.0
	for _, row := range table.Rows {
		sum += row.Probability
	}
	if math.Abs(sum-1.0) > 0.01 {
		t.Errorf("Probabilities sum to %g, want ~1.0", sum)
	}
}

func TestSaveRejectsBadRowCount(t *testing.T) {
	if err := Save(t.TempDir(), GeneratorConfig{Rows: 0, Seed: 1}); err == nil {
		t.Error("Expected error for zero rows")
	}
}
