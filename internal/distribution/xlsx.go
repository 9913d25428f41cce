package distribution

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ErrSourceUnreadable wraps every failure to read a distribution workbook:
// missing file, corrupt archive, absent sheet, or missing columns. Callers
// degrade to an empty table instead of aborting the run.
var ErrSourceUnreadable = errors.New("distribution source unreadable")

// Column headers as they appear in the hospital workbooks. Some carry a
// trailing space in the original files, so matching happens after TrimSpace.
const (
	colNo             = "No"
	colInterval       = "Interval Kelas"
	colFrequency      = "Frekuensi"
	colProbability    = "Probabilitas"
	colCumulative     = "Prob Kumulatif"
	colCumulativeP100 = "Prob Kumulatif * 100"
)

// LoadXLSX reads the first sheet of the workbook at path and builds the
// distribution table for the given blood type. Rows with an empty interval
// label or empty probability are discarded; a row whose label cannot be
// parsed stays in the table with ParseOK=false.
func LoadXLSX(t BloodType, path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrSourceUnreadable, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: sheet %q is empty", ErrSourceUnreadable, path, sheets[0])
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}

	var intervals []ClassInterval
	for _, row := range rows[1:] {
		label := cell(row, cols[colInterval])
		probRaw := cell(row, cols[colProbability])
		if strings.TrimSpace(label) == "" || strings.TrimSpace(probRaw) == "" {
			continue
		}

		prob, err := ParseDecimal(probRaw)
		if err != nil {
			log.Warn().Str("bloodType", string(t)).Str("value", probRaw).Msg("Skipping row with unparseable probability")
			continue
		}
		cumulative, _ := ParseDecimal(cell(row, cols[colCumulative]))
		cumulativePct, _ := ParseDecimal(cell(row, cols[colCumulativeP100]))
		no, _ := strconv.Atoi(strings.TrimSpace(cell(row, cols[colNo])))
		freq, _ := strconv.Atoi(strings.TrimSpace(cell(row, cols[colFrequency])))

		intervals = append(intervals, NewClassInterval(no, label, freq, prob, cumulative, cumulativePct))
	}

	table := NewTable(t, intervals)
	table.Source = path
	table.ModTime = info.ModTime()
	return table, nil
}

// mapColumns resolves required header names to column indexes, tolerating
// surrounding whitespace in the header cells.
func mapColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	required := []string{colNo, colInterval, colFrequency, colProbability, colCumulative, colCumulativeP100}
	cols := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[name] = i
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Sources maps each blood type to the workbook holding its distribution.
type Sources map[BloodType]string

// LoadTables loads the distribution for every configured blood type. A type
// whose source is missing or malformed gets an empty table and a warning, so
// one bad workbook degrades that type to zeros instead of failing the set.
func LoadTables(sources Sources, clampTail bool) map[BloodType]*Table {
	tables := make(map[BloodType]*Table, len(sources))
	for _, t := range BloodTypes() {
		path, ok := sources[t]
		if !ok {
			log.Warn().Str("bloodType", string(t)).Msg("No distribution source configured")
			tables[t] = NewTable(t, nil)
			continue
		}
		table, err := LoadXLSX(t, path)
		if err != nil {
			log.Warn().Err(err).Str("bloodType", string(t)).Str("path", path).Msg("Distribution source unreadable, using empty table")
			tables[t] = NewTable(t, nil)
			continue
		}
		table.ClampTail = clampTail
		tables[t] = table
		log.Info().Str("bloodType", string(t)).Str("path", path).Int("rows", table.Len()).Msg("Loaded distribution table")
	}
	return tables
}

// modTime is separated for cache key construction.
func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
