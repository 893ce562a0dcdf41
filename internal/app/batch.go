package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"deckgen/internal/domain/deck"
)

// BatchResult aggregates a batch generation run.
type BatchResult struct {
	Generated int
	Skipped   int
	Results   []*Result
}

// RodHeightGrid expands the cartesian product of per-rod position lists
// into one spec per combination, in row-major declaration order.
func RodHeightGrid(safes, shims, regs []int) []deck.RodHeights {
	specs := make([]deck.RodHeights, 0, len(safes)*len(shims)*len(regs))
	for _, a := range safes {
		for _, h := range shims {
			for _, r := range regs {
				specs = append(specs, deck.RodHeights{Safe: a, Shim: h, Reg: r})
			}
		}
	}
	return specs
}

// Range expands [from, to] in steps of step (inclusive of to when the
// last step lands on it).
func Range(from, to, step int) []int {
	if step <= 0 {
		step = 1
	}
	var out []int
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}

// GenerateRodHeights derives one variant per spec, distributed over a
// worker pool. Each variant generation is fully independent — no shared
// mutable state crosses file boundaries — so the only coordination is the
// result tally. The first error cancels the remaining jobs; partially
// written outputs are already removed by Generate.
func (g *Generator) GenerateRodHeights(ctx context.Context, basePath string, specs []deck.RodHeights, cal deck.Calibration, workers int) (*BatchResult, error) {
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	batch := &BatchResult{}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, spec := range specs {
		spec := spec
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := spec.Validate(); err != nil {
				return err
			}
			res, err := g.Generate(basePath, deck.NewRodHeightEditor(spec, cal))
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			batch.Results = append(batch.Results, res)
			if res.Skipped {
				batch.Skipped++
			} else {
				batch.Generated++
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}
