package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"time"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
	"hemosim/internal/stats"

	"github.com/evanw/esbuild/pkg/api"
)

//go:embed template.html
var templateHTML string

//go:embed charts.js
var chartScript string

// TableSection is one blood type's distribution table as rendered in the
// report.
type TableSection struct {
	BloodType distribution.BloodType
	Source    string
	Rows      []distribution.DisplayRow
}

// Data is everything the standalone report renders.
type Data struct {
	GeneratedAt time.Time
	Periods     int
	Tables      []TableSection
	Results     simulation.ResultTable
	Summary     []stats.SummaryRow
	Insights    stats.Insights
	Colors      map[distribution.BloodType]string
}

// resultRowView flattens a period into named columns for the template.
type resultRowView struct {
	Index                           int
	DrawA, DrawB, DrawAB, DrawO     int
	UsageA, UsageB, UsageAB, UsageO int
	Total                           int
	ShareA, ShareB, ShareAB, ShareO float64
}

// summaryRowView is a summary row with the deviation pre-formatted, so the
// template never has to deal with its undefined (nil) case.
type summaryRowView struct {
	Series string
	Mean   string
	Median string
	Std    string
	Min    int
	Max    int
}

func resultRows(results simulation.ResultTable) []resultRowView {
	rows := make([]resultRowView, len(results))
	for i, p := range results {
		rows[i] = resultRowView{
			Index:   p.Index,
			DrawA:   p.Draws[distribution.TypeA],
			DrawB:   p.Draws[distribution.TypeB],
			DrawAB:  p.Draws[distribution.TypeAB],
			DrawO:   p.Draws[distribution.TypeO],
			UsageA:  p.Values[distribution.TypeA],
			UsageB:  p.Values[distribution.TypeB],
			UsageAB: p.Values[distribution.TypeAB],
			UsageO:  p.Values[distribution.TypeO],
			Total:   p.Total,
			ShareA:  p.Shares[distribution.TypeA],
			ShareB:  p.Shares[distribution.TypeB],
			ShareAB: p.Shares[distribution.TypeAB],
			ShareO:  p.Shares[distribution.TypeO],
		}
	}
	return rows
}

func summaryRows(summary []stats.SummaryRow) []summaryRowView {
	rows := make([]summaryRowView, len(summary))
	for i, s := range summary {
		row := summaryRowView{
			Series: s.Series,
			Mean:   fmt.Sprintf("%.2f", s.Mean),
			Median: fmt.Sprintf("%.1f", s.Median),
			Std:    "n/a",
			Min:    s.Min,
			Max:    s.Max,
		}
		if s.Std != nil {
			row.Std = fmt.Sprintf("%.2f", *s.Std)
		}
		rows[i] = row
	}
	return rows
}

// chartPayload is the JSON consumed by the embedded canvas script.
type chartPayload struct {
	Periods []int              `json:"periods"`
	Series  []chartSeriesEntry `json:"series"`
}

type chartSeriesEntry struct {
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Values []int   `json:"values"`
	Mean   float64 `json:"mean"`
}

// Build assembles report data from a run and its distribution tables.
func Build(tables map[distribution.BloodType]*distribution.Table, results simulation.ResultTable, colors map[distribution.BloodType]string) Data {
	data := Data{
		GeneratedAt: time.Now(),
		Periods:     len(results),
		Results:     results,
		Summary:     stats.Summarize(results),
		Colors:      colors,
	}
	if ins, ok := stats.BuildInsights(results); ok {
		data.Insights = ins
	}
	for _, t := range distribution.BloodTypes() {
		table := tables[t]
		if table.Empty() {
			continue
		}
		data.Tables = append(data.Tables, TableSection{
			BloodType: t,
			Source:    table.Source,
			Rows:      table.DisplayRows(),
		})
	}
	return data
}

// Write renders the report to path. The chart script is minified at
// generation time so the output file stays self-contained and small.
func Write(path string, data Data) error {
	payload := chartPayload{}
	means := data.Results.Means()
	for _, p := range data.Results {
		payload.Periods = append(payload.Periods, p.Index)
	}
	for _, t := range distribution.BloodTypes() {
		payload.Series = append(payload.Series, chartSeriesEntry{
			Label:  string(t),
			Color:  data.Colors[t],
			Values: data.Results.Series(t),
			Mean:   means[t],
		})
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling chart payload: %w", err)
	}

	minified := api.Transform(chartScript, api.TransformOptions{
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(minified.Errors) > 0 {
		return fmt.Errorf("minifying chart script: %s", minified.Errors[0].Text)
	}

	tmpl, err := template.New("report").Parse(templateHTML)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	view := struct {
		Data
		ResultRows  []resultRowView
		SummaryRows []summaryRowView
		ChartData   template.JS
		ChartScript template.JS
	}{
		Data:        data,
		ResultRows:  resultRows(data.Results),
		SummaryRows: summaryRows(data.Summary),
		ChartData:   template.JS(payloadJSON),
		ChartScript: template.JS(minified.Code),
	}

	if err := tmpl.Execute(f, view); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}
