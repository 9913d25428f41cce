package mcp

import (
	"context"
	"fmt"
	"time"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
	"hemosim/internal/stats"
	"hemosim/internal/visuals"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type emptyArgs struct{}

type bloodTypeInfo struct {
	BloodType distribution.BloodType `json:"blood_type"`
	Source    string                 `json:"source"`
	Rows      int                    `json:"rows"`
	Color     string                 `json:"color"`
}

type listBloodTypesResult struct {
	BloodTypes []bloodTypeInfo `json:"blood_types"`
}

func (s *Server) handleListBloodTypes(ctx context.Context, req *mcp.CallToolRequest, args emptyArgs) (*mcp.CallToolResult, listBloodTypesResult, error) {
	tables := s.tables()

	var out listBloodTypesResult
	for _, t := range distribution.BloodTypes() {
		out.BloodTypes = append(out.BloodTypes, bloodTypeInfo{
			BloodType: t,
			Source:    s.cfg.Sources[t],
			Rows:      tables[t].Len(),
			Color:     s.cfg.Colors[t],
		})
	}
	return nil, out, nil
}

type getDistributionTableArgs struct {
	BloodType string `json:"blood_type" jsonschema:"Blood type to fetch: A, B, AB or O."`
}

type distributionTableResult struct {
	BloodType distribution.BloodType    `json:"blood_type"`
	Source    string                    `json:"source"`
	Rows      []distribution.DisplayRow `json:"rows"`
}

func (s *Server) handleGetDistributionTable(ctx context.Context, req *mcp.CallToolRequest, args getDistributionTableArgs) (*mcp.CallToolResult, distributionTableResult, error) {
	t, ok := distribution.ParseBloodType(args.BloodType)
	if !ok {
		return nil, distributionTableResult{}, fmt.Errorf("unknown blood type %q (expected A, B, AB or O)", args.BloodType)
	}

	table := s.tables()[t]
	if table.Empty() {
		return nil, distributionTableResult{}, fmt.Errorf("no distribution data available for blood type %s", t)
	}

	return nil, distributionTableResult{
		BloodType: t,
		Source:    table.Source,
		Rows:      table.DisplayRows(),
	}, nil
}

type runSimulationArgs struct {
	Periods int    `json:"periods"`
	Seed    *int64 `json:"seed,omitempty"`
	Workers int    `json:"workers,omitempty"`
}

type runSimulationResult struct {
	RunID    string                 `json:"run_id"`
	Periods  int                    `json:"periods"`
	Seed     *int64                 `json:"seed,omitempty"`
	CacheHit bool                   `json:"cache_hit"`
	Results  simulation.ResultTable `json:"results"`
}

func (s *Server) handleRunSimulation(ctx context.Context, req *mcp.CallToolRequest, args runSimulationArgs) (*mcp.CallToolResult, runSimulationResult, error) {
	tables := s.tables()

	workers := args.Workers
	if workers == 0 {
		workers = s.cfg.Workers
	}

	started := time.Now()
	key, cacheable := simulation.CacheKey(tables, args.Periods, args.Seed)

	var results simulation.ResultTable
	cacheHit := false
	if cacheable {
		results, cacheHit = s.store.Cached(key)
	}

	if !cacheHit {
		engine := simulation.NewEngine(tables, simulation.Options{
			Seed:    args.Seed,
			Workers: workers,
			Progress: func(fraction float64) {
				log.Debug().Float64("fraction", fraction).Msg("Simulation progress")
			},
		})
		var err error
		results, err = engine.Run(ctx, args.Periods)
		if err != nil {
			return nil, runSimulationResult{}, err
		}
		if cacheable {
			s.store.Memoize(key, results)
		}
	}

	run := &simulation.Run{
		Periods:     args.Periods,
		Seed:        args.Seed,
		StartedAt:   started,
		Duration:    time.Since(started),
		Results:     results,
		CacheHit:    cacheHit,
		Fingerprint: key,
	}
	id := s.store.Add(run)

	log.Info().Str("runId", id).Int("periods", args.Periods).Bool("cacheHit", cacheHit).Msg("Simulation completed")
	return nil, runSimulationResult{
		RunID:    id,
		Periods:  args.Periods,
		Seed:     args.Seed,
		CacheHit: cacheHit,
		Results:  results,
	}, nil
}

type runRefArgs struct {
	RunID string `json:"run_id,omitempty" jsonschema:"Run to inspect; defaults to the most recent run."`
}

type usageSummaryResult struct {
	RunID        string             `json:"run_id"`
	Summary      []stats.SummaryRow `json:"summary"`
	PeakPeriod   *simulation.Period `json:"peak_period,omitempty"`
	TroughPeriod *simulation.Period `json:"trough_period,omitempty"`
}

func (s *Server) handleGetUsageSummary(ctx context.Context, req *mcp.CallToolRequest, args runRefArgs) (*mcp.CallToolResult, usageSummaryResult, error) {
	run, err := s.store.Get(args.RunID)
	if err != nil {
		return nil, usageSummaryResult{}, err
	}

	out := usageSummaryResult{
		RunID:   run.ID,
		Summary: stats.Summarize(run.Results),
	}
	if max, min, ok := stats.Extremes(run.Results); ok {
		out.PeakPeriod = &max
		out.TroughPeriod = &min
	}
	return nil, out, nil
}

type insightsResult struct {
	RunID    string         `json:"run_id"`
	Insights stats.Insights `json:"insights"`
	Lines    []string       `json:"lines"`
}

func (s *Server) handleGetInsights(ctx context.Context, req *mcp.CallToolRequest, args runRefArgs) (*mcp.CallToolResult, insightsResult, error) {
	run, err := s.store.Get(args.RunID)
	if err != nil {
		return nil, insightsResult{}, err
	}

	ins, ok := stats.BuildInsights(run.Results)
	if !ok {
		return nil, insightsResult{}, fmt.Errorf("run %s holds no simulation data", run.ID)
	}

	return nil, insightsResult{RunID: run.ID, Insights: ins, Lines: ins.Lines()}, nil
}

type chartSeries struct {
	BloodType distribution.BloodType `json:"blood_type"`
	Color     string                 `json:"color"`
	Values    []int                  `json:"values"`
	Mean      float64                `json:"mean"`
}

type chartDataResult struct {
	RunID      string        `json:"run_id"`
	Periods    []int         `json:"periods"`
	Series     []chartSeries `json:"series"`
	Totals     []int         `json:"totals"`
	MermaidBar string        `json:"mermaid_bar,omitempty"`
	MermaidPie string        `json:"mermaid_pie,omitempty"`
}

func (s *Server) handleGetChartData(ctx context.Context, req *mcp.CallToolRequest, args runRefArgs) (*mcp.CallToolResult, chartDataResult, error) {
	run, err := s.store.Get(args.RunID)
	if err != nil {
		return nil, chartDataResult{}, err
	}

	means := run.Results.Means()
	out := chartDataResult{
		RunID:  run.ID,
		Totals: run.Results.Totals(),
	}
	for _, p := range run.Results {
		out.Periods = append(out.Periods, p.Index)
	}
	for _, t := range distribution.BloodTypes() {
		out.Series = append(out.Series, chartSeries{
			BloodType: t,
			Color:     s.cfg.Colors[t],
			Values:    run.Results.Series(t),
			Mean:      means[t],
		})
	}

	if s.cfg.EnableMermaidCharts {
		out.MermaidBar = visuals.GenerateUsageBarChart(run.Results)
		out.MermaidPie = visuals.GenerateAverageUsagePie(run.Results)
	}
	return nil, out, nil
}
