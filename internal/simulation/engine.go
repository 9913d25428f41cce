package simulation

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"hemosim/internal/distribution"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidPeriodCount is returned by Run before any draw when the
// requested period count is not positive.
var ErrInvalidPeriodCount = errors.New("period count must be greater than 0")

// Options tune a simulation run.
type Options struct {
	// Seed fixes the random source for reproducible runs. Nil seeds from
	// the wall clock.
	Seed *int64

	// Workers caps the number of goroutines aggregating periods. Values
	// below 2 run the loop sequentially.
	Workers int

	// Progress receives the completed fraction after each period. It is
	// purely observational: a nil callback is skipped and a panicking one
	// is contained without failing the run.
	Progress func(fraction float64)
}

// Engine drives the Monte-Carlo simulation over a fixed set of
// distribution tables. Tables are read-only, so one engine may be shared.
type Engine struct {
	tables map[distribution.BloodType]*distribution.Table
	opts   Options
}

// NewEngine creates an engine over the given tables. A blood type without a
// table behaves as an empty distribution and samples to 0.
func NewEngine(tables map[distribution.BloodType]*distribution.Table, opts Options) *Engine {
	return &Engine{tables: tables, opts: opts}
}

// Run simulates the requested number of periods and returns one record per
// period, Index ascending from 1.
//
// All 4×periods draws are taken sequentially from a single source in
// canonical blood-type order before any parallel fan-out, so a fixed seed
// produces identical results for every Workers setting. Cancellation is
// honored at period boundaries.
func (e *Engine) Run(ctx context.Context, periods int) (ResultTable, error) {
	if periods <= 0 {
		return nil, ErrInvalidPeriodCount
	}

	seed := time.Now().UnixNano()
	if e.opts.Seed != nil {
		seed = *e.opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	types := distribution.BloodTypes()
	draws := make([][]int, periods)
	for i := range draws {
		row := make([]int, len(types))
		for j := range types {
			row[j] = rng.Intn(100)
		}
		draws[i] = row
	}

	results := make(ResultTable, periods)

	if e.opts.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.Workers)
		for i := 0; i < periods; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = e.simulatePeriod(i+1, draws[i])
				e.reportProgress(i+1, periods)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	}

	for i := 0; i < periods; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = e.simulatePeriod(i+1, draws[i])
		e.reportProgress(i+1, periods)
	}
	return results, nil
}

// simulatePeriod samples every blood type against its table and aggregates
// the period record.
func (e *Engine) simulatePeriod(index int, draws []int) Period {
	types := distribution.BloodTypes()

	p := Period{
		Index:  index,
		Draws:  make(map[distribution.BloodType]int, len(types)),
		Values: make(map[distribution.BloodType]int, len(types)),
		Shares: make(map[distribution.BloodType]float64, len(types)),
	}

	for j, t := range types {
		p.Draws[t] = draws[j]
		p.Values[t] = e.tables[t].Sample(draws[j])
		p.Total += p.Values[t]
	}

	for _, t := range types {
		if p.Total > 0 {
			p.Shares[t] = float64(p.Values[t]) / float64(p.Total) * 100
		} else {
			p.Shares[t] = 0
		}
	}
	return p
}

func (e *Engine) reportProgress(done, periods int) {
	if e.opts.Progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("Progress observer panicked, continuing run")
		}
	}()
	e.opts.Progress(float64(done) / float64(periods))
}
