package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/telemetry"
	"github.com/pthm-cable/carve/terrain"
)

// Target is the terrain character the search aims for.
type Target struct {
	EmptyFrac float64 // share of fully empty cells
	FullFrac  float64 // share of fully solid cells
	Mean      float64 // mean density
}

// FitnessEvaluator generates fields for a parameter vector and scores how
// far their statistics land from the target.
type FitnessEvaluator struct {
	params *ParamVector
	base   config.GenerateConfig
	target Target
	size   int
	seeds  []int64

	mu        sync.Mutex
	bestLoss  float64
	bestStats telemetry.FieldStats
	lastStats telemetry.FieldStats
}

// NewFitnessEvaluator creates a new evaluator generating size×size fields.
func NewFitnessEvaluator(params *ParamVector, base config.GenerateConfig, target Target, size int, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		base:     base,
		target:   target,
		size:     size,
		seeds:    seeds,
		bestLoss: math.Inf(1),
	}
}

// LastStats returns the seed-averaged field statistics of the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() telemetry.FieldStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

// BestStats returns the seed-averaged field statistics of the best evaluation.
func (fe *FitnessEvaluator) BestStats() telemetry.FieldStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestStats
}

// Evaluate computes the loss for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	g := fe.base
	fe.params.ApplyToConfig(&g, x)
	noise := NoiseParams(g)

	// One field per seed, in parallel
	results := make([]telemetry.FieldStats, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			f, err := terrain.New(fe.size, fe.size)
			if err != nil {
				return
			}
			f.Generate(s, noise)
			results[idx] = telemetry.ComputeFieldStats(f.Values())
		}(i, seed)
	}
	wg.Wait()

	avg := averageStats(results)
	loss := fe.loss(avg)

	fe.mu.Lock()
	if loss < fe.bestLoss {
		fe.bestLoss = loss
		fe.bestStats = avg
	}
	fe.lastStats = avg
	fe.mu.Unlock()

	return loss
}

// loss is the squared distance between stats and the target.
func (fe *FitnessEvaluator) loss(s telemetry.FieldStats) float64 {
	de := s.EmptyFrac - fe.target.EmptyFrac
	df := s.FullFrac - fe.target.FullFrac
	dm := s.Mean - fe.target.Mean
	return de*de + df*df + dm*dm
}

func averageStats(all []telemetry.FieldStats) telemetry.FieldStats {
	var avg telemetry.FieldStats
	if len(all) == 0 {
		return avg
	}
	for _, s := range all {
		avg.Mass += s.Mass
		avg.Mean += s.Mean
		avg.StdDev += s.StdDev
		avg.Min += s.Min
		avg.Max += s.Max
		avg.EmptyFrac += s.EmptyFrac
		avg.FullFrac += s.FullFrac
	}
	n := float64(len(all))
	avg.Mass /= n
	avg.Mean /= n
	avg.StdDev /= n
	avg.Min /= n
	avg.Max /= n
	avg.EmptyFrac /= n
	avg.FullFrac /= n
	return avg
}
