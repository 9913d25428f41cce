package distribution

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// Band is the contiguous range of draws (0-99) mapped to one class interval,
// derived from the rounded cumulative percentage.
type Band struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// Contains reports whether a draw falls inside the band.
func (b Band) Contains(draw int) bool {
	return draw >= b.Lower && draw <= b.Upper
}

// String renders the band the way the distribution tables print it, e.g. "00 - 47".
func (b Band) String() string {
	return fmt.Sprintf("%02d - %02d", b.Lower, b.Upper)
}

// Table is the validated, ordered distribution for a single blood type.
// Tables are immutable once built and safe for concurrent samplers.
//
// ClampTail widens the final band up to 99 when the last row's rounded
// cumulative percentage falls short; by default such draws sample to 0.
type Table struct {
	Type      BloodType       `json:"blood_type"`
	Rows      []ClassInterval `json:"rows"`
	Source    string          `json:"source,omitempty"`
	ModTime   time.Time       `json:"-"`
	ClampTail bool            `json:"-"`
}

// NewTable builds a table over the given rows, preserving row order.
func NewTable(t BloodType, rows []ClassInterval) *Table {
	return &Table{Type: t, Rows: rows}
}

// Len returns the number of class intervals in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table holds no rows. A nil table is empty.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Bands derives the random-number bands in row order: the first band starts
// at 0, each subsequent band starts one past the previous upper bound, and a
// band's upper bound is the row's rounded cumulative percentage.
func (t *Table) Bands() []Band {
	if t.Empty() {
		return nil
	}
	bands := make([]Band, len(t.Rows))
	lower := 0
	for i, row := range t.Rows {
		upper := int(math.Round(row.CumulativePercent))
		if t.ClampTail && i == len(t.Rows)-1 && upper < 99 {
			upper = 99
		}
		bands[i] = Band{Lower: lower, Upper: upper}
		lower = upper + 1
	}
	return bands
}

// Sample maps a uniform draw in [0,99] to the midpoint of the first row
// whose band contains it. Draws outside every band, rows whose interval
// never parsed, and empty (or nil) tables all yield 0.
func (t *Table) Sample(draw int) int {
	if t.Empty() {
		return 0
	}
	lower := 0
	last := len(t.Rows) - 1
	for i, row := range t.Rows {
		upper := int(math.Round(row.CumulativePercent))
		if t.ClampTail && i == last && upper < 99 {
			upper = 99
		}
		if draw >= lower && draw <= upper {
			return row.Midpoint()
		}
		lower = upper + 1
	}
	return 0
}

// Fingerprint returns a stable identity for the table's contents and source,
// suitable as a simulation-result cache key component.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	if t != nil {
		fmt.Fprintf(h, "%s|%s|%d|%t\n", t.Type, t.Source, t.ModTime.UnixNano(), t.ClampTail)
		for _, row := range t.Rows {
			fmt.Fprintf(h, "%d|%s|%d|%g|%g|%g|%t\n",
				row.No, row.Label, row.Frequency,
				row.Probability, row.CumulativeProbability, row.CumulativePercent,
				row.ParseOK)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// DisplayRow is one row of the rendered distribution table: the normalized
// source columns plus the computed midpoint and random-number band.
type DisplayRow struct {
	No                    int     `json:"no"`
	Label                 string  `json:"interval"`
	Frequency             int     `json:"frequency"`
	Probability           float64 `json:"probability"`
	CumulativeProbability float64 `json:"cumulative_probability"`
	CumulativePercent     float64 `json:"cumulative_percent"`
	Midpoint              *int    `json:"midpoint"`
	Band                  string  `json:"random_number_band"`
}

// DisplayRows pairs every class interval with its band for presentation.
// Midpoint is nil for rows whose interval label never parsed.
func (t *Table) DisplayRows() []DisplayRow {
	bands := t.Bands()
	rows := make([]DisplayRow, len(bands))
	for i, row := range t.Rows {
		d := DisplayRow{
			No:                    row.No,
			Label:                 row.Label,
			Frequency:             row.Frequency,
			Probability:           row.Probability,
			CumulativeProbability: row.CumulativeProbability,
			CumulativePercent:     row.CumulativePercent,
			Band:                  bands[i].String(),
		}
		if row.ParseOK {
			mid := row.Midpoint()
			d.Midpoint = &mid
		}
		rows[i] = d
	}
	return rows
}
