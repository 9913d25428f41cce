// Package engine generates sample distribution workbooks so the simulator
// can be exercised without the real hospital data. The output matches the
// source format exactly, including the trailing spaces in two header names
// and, optionally, comma decimal separators.
package engine

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"strings"

	"hemosim/internal/distribution"

	"github.com/xuri/excelize/v2"
)

// GeneratorConfig controls the shape of the generated workbooks.
type GeneratorConfig struct {
	Rows          int
	Seed          int64
	CommaDecimals bool
}

// Typical usage ranges per blood type, in units per period. The generated
// class intervals subdivide these.
var usageRanges = map[distribution.BloodType][2]int{
	distribution.TypeA:  {80, 320},
	distribution.TypeB:  {60, 280},
	distribution.TypeAB: {10, 90},
	distribution.TypeO:  {120, 420},
}

// row is one generated class interval before formatting.
type row struct {
	no          int
	label       string
	frequency   int
	probability float64
	cumulative  float64
}

// generate builds the class intervals for one blood type: contiguous
// integer buckets over the type's usage range with random frequencies,
// normalized so the cumulative probability ends at 1.0.
func generate(t distribution.BloodType, cfg GeneratorConfig, rng *rand.Rand) []row {
	bounds := usageRanges[t]
	span := bounds[1] - bounds[0] + 1
	width := span / cfg.Rows

	freqs := make([]int, cfg.Rows)
	total := 0
	for i := range freqs {
		freqs[i] = 1 + rng.Intn(30)
		total += freqs[i]
	}

	rows := make([]row, cfg.Rows)
	cumulative := 0.0
	lower := bounds[0]
	for i := range rows {
		upper := lower + width - 1
		if i == cfg.Rows-1 {
			upper = bounds[1]
		}
		prob := float64(freqs[i]) / float64(total)
		cumulative += prob
		if i == cfg.Rows-1 {
			cumulative = 1.0
		}
		rows[i] = row{
			no:          i + 1,
			label:       fmt.Sprintf("%d-%d", lower, upper),
			frequency:   freqs[i],
			probability: prob,
			cumulative:  cumulative,
		}
		lower = upper + 1
	}
	return rows
}

// Save writes one "Prob <type>.xlsx" workbook per blood type into outDir.
func Save(outDir string, cfg GeneratorConfig) error {
	if cfg.Rows < 1 {
		return fmt.Errorf("rows must be at least 1, got %d", cfg.Rows)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	for _, t := range distribution.BloodTypes() {
		path := filepath.Join(outDir, fmt.Sprintf("Prob %s.xlsx", t))
		if err := writeWorkbook(path, generate(t, cfg, rng), cfg.CommaDecimals); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func writeWorkbook(path string, rows []row, commaDecimals bool) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	// The original files carry trailing spaces in these two headers.
	headers := []string{"No", "Interval Kelas ", "Frekuensi", "Probabilitas", "Prob Kumulatif ", "Prob Kumulatif * 100"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		values := []interface{}{
			r.no,
			r.label,
			r.frequency,
			formatDecimal(r.probability, commaDecimals),
			formatDecimal(r.cumulative, commaDecimals),
			formatDecimal(math.Round(r.cumulative*10000)/100, commaDecimals),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

// formatDecimal writes decimals as strings so the comma-separator variant
// of the source data can be reproduced.
func formatDecimal(v float64, comma bool) string {
	s := fmt.Sprintf("%.4f", v)
	if comma {
		s = strings.ReplaceAll(s, ".", ",")
	}
	return s
}
