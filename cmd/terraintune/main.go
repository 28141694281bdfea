// Package main provides CMA-ES optimization for finding terrain noise
// parameters that produce a target mix of open and solid ground.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/carve/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	size := flag.Int("size", 256, "Side length of generated test fields")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	emptyFrac := flag.Float64("empty", 0.4, "Target fraction of empty cells")
	fullFrac := flag.Float64("full", 0.35, "Target fraction of solid cells")
	mean := flag.Float64("mean", 0.45, "Target mean density")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector(baseCfg.Generate)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	target := Target{EmptyFrac: *emptyFrac, FullFrac: *fullFrac, Mean: *mean}
	evaluator := NewFitnessEvaluator(params, baseCfg.Generate, target, *size, evalSeeds)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "terraintune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "loss", "empty_frac", "full_frac", "mean"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestLoss := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			loss := evaluator.Evaluate(raw)
			evalCount++

			// Log clamped values, the ones actually used
			clamped := params.Clamp(raw)
			if loss < bestLoss {
				bestLoss = loss
				bestParams = clamped
			}

			st := evaluator.LastStats()
			row := []string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", loss),
				fmt.Sprintf("%.4f", st.EmptyFrac),
				fmt.Sprintf("%.4f", st.FullFrac),
				fmt.Sprintf("%.4f", st.Mean),
			}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: loss=%.5f empty=%.3f full=%.3f mean=%.3f (best=%.5f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, loss, st.EmptyFrac, st.FullFrac, st.Mean, bestLoss,
				formatDuration(elapsed), formatDuration(remaining))

			return loss
		},
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, field size: %dx%d\n", *seeds, *size, *size)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	best := evaluator.BestStats()
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best loss: %.6f (empty=%.3f full=%.3f mean=%.3f)\n", bestLoss, best.EmptyFrac, best.FullFrac, best.Mean)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	params.ApplyToConfig(&baseCfg.Generate, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
