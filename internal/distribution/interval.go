package distribution

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ClassInterval is one bucket of an empirical frequency distribution.
// Lower and Upper are parsed from the normalized Label; when the label
// cannot be parsed, ParseOK is false and draws landing in this row's band
// sample to 0 rather than failing the run.
type ClassInterval struct {
	No                    int     `json:"no"`
	Label                 string  `json:"label"`
	Lower                 int     `json:"lower"`
	Upper                 int     `json:"upper"`
	Frequency             int     `json:"frequency"`
	Probability           float64 `json:"probability"`
	CumulativeProbability float64 `json:"cumulative_probability"`
	CumulativePercent     float64 `json:"cumulative_percent"`
	ParseOK               bool    `json:"parse_ok"`
}

// labelReplacer collapses every dash variant seen in the source workbooks
// (including the mis-encoded "â" artifact) to an ASCII hyphen and strips
// embedded whitespace and thousands separators.
var labelReplacer = strings.NewReplacer(
	"â-", "-",
	"â", "-",
	"–", "-",
	"—", "-",
	" ", "",
	",", "",
)

// NormalizeLabel cleans a raw class-interval label, e.g. "103â-130" -> "103-130".
func NormalizeLabel(raw string) string {
	return labelReplacer.Replace(raw)
}

// ParseBounds splits a normalized "a-b" label into its integer bounds.
func ParseBounds(label string) (lower, upper int, err error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("interval %q: want two bounds, got %d tokens", label, len(parts))
	}
	lower, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("interval %q: lower bound: %w", label, err)
	}
	upper, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("interval %q: upper bound: %w", label, err)
	}
	return lower, upper, nil
}

// ParseDecimal converts a decimal field that may use a comma separator
// ("0,476") into a float64.
func ParseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// NewClassInterval normalizes and parses a raw interval row. Parse failures
// are recorded on the row, not returned: the distribution stays usable and
// the failed row contributes zeros.
func NewClassInterval(no int, rawLabel string, frequency int, probability, cumulative, cumulativePct float64) ClassInterval {
	ci := ClassInterval{
		No:                    no,
		Label:                 NormalizeLabel(rawLabel),
		Frequency:             frequency,
		Probability:           probability,
		CumulativeProbability: cumulative,
		CumulativePercent:     cumulativePct,
	}
	lower, upper, err := ParseBounds(ci.Label)
	if err == nil {
		ci.Lower = lower
		ci.Upper = upper
		ci.ParseOK = true
	}
	return ci
}

// Midpoint returns the representative value for the interval,
// ceil((lower+upper)/2), or 0 when the label never parsed.
func (ci ClassInterval) Midpoint() int {
	if !ci.ParseOK {
		return 0
	}
	return int(math.Ceil(float64(ci.Lower+ci.Upper) / 2.0))
}
