package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools declares the tool surface. run_simulation carries an
// explicit input schema so the period bound is enforced by the protocol
// layer as well as the engine; the others infer their schemas from the
// typed argument structs.
func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_blood_types",
		Description: "List the configured blood types with their distribution source, row count and display color.",
	}, s.handleListBloodTypes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_distribution_table",
		Description: "Get the normalized distribution table for one blood type, including the computed interval midpoints and random-number bands.",
	}, s.handleGetDistributionTable)

	mcp.AddTool(server, &mcp.Tool{
		Name: "run_simulation",
		Description: "Run a Monte-Carlo simulation of blood usage over the requested number of periods. " +
			"Each period draws one random number per blood type and samples usage from that type's empirical distribution. " +
			"Pass a seed for a reproducible run; seeded runs with unchanged source data are served from cache.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"periods": {
					Type:        "integer",
					Minimum:     f64(1),
					Description: "Number of periods to simulate (must be greater than 0).",
				},
				"seed": {
					Type:        "integer",
					Description: "Optional seed for a reproducible run.",
				},
				"workers": {
					Type:        "integer",
					Description: "Optional number of parallel workers for period aggregation.",
				},
			},
			Required: []string{"periods"},
		},
	}, s.handleRunSimulation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_usage_summary",
		Description: "Get summary statistics (mean, median, sample standard deviation, min, max) per blood type and for the period totals, plus the peak and trough periods. Defaults to the most recent run.",
	}, s.handleGetUsageSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_insights",
		Description: "Get decision insights for a run: demand ranking across blood types and stocking recommendations. Defaults to the most recent run.",
	}, s.handleGetInsights)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_chart_data",
		Description: "Get chart-ready data for a run: per-period usage series per blood type, mean usage, display colors, and optional Mermaid renderings. Defaults to the most recent run.",
	}, s.handleGetChartData)
}

func f64(v float64) *float64 {
	return &v
}
