// Blend strategy benchmark: times every blend strategy on a noise field and
// checks each result against the reference blend.
//
// Usage: go run ./cmd/blendbench -sizes 8,16,32,64 -runs 50 -output bench
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/carve/brush"
	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/editor"
	"github.com/pthm-cable/carve/telemetry"
	"github.com/pthm-cable/carve/terrain"
)

// Row is one line of blendbench.csv.
type Row struct {
	Strategy string  `csv:"strategy"`
	Size     int     `csv:"size"`
	Blend    int     `csv:"blend"`
	Runs     int     `csv:"runs"`
	MeanUS   float64 `csv:"mean_us"`
	P50US    float64 `csv:"p50_us"`
	P90US    float64 `csv:"p90_us"`
	Speedup  float64 `csv:"speedup"` // reference mean / strategy mean
	MaxDiff  float64 `csv:"max_diff"`
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	sizesFlag := flag.String("sizes", "4,8,16,32,64", "Comma-separated brush radii")
	blend := flag.Int("blend", 0, "Blend range (0 = config)")
	runs := flag.Int("runs", 50, "Blends per strategy and size")
	seed := flag.Int64("seed", 1, "Terrain and target seed")
	outputDir := flag.String("output", "", "Output directory for blendbench.csv (empty = stdout only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ecfg, err := editor.FromConfig(config.Cfg())
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if *blend <= 0 {
		*blend = ecfg.BlendRange
	}

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Fatalf("bad -sizes: %v", err)
	}

	base, err := terrain.New(ecfg.Width, ecfg.Height)
	if err != nil {
		log.Fatalf("creating field: %v", err)
	}
	base.Generate(*seed, ecfg.Noise)

	rng := rand.New(rand.NewSource(*seed))
	b := ecfg.Brush

	var rows []Row
	start := time.Now()
	for _, size := range sizes {
		// Same targets for every strategy
		targets := make([]terrain.Cell, *runs)
		for i := range targets {
			targets[i] = terrain.Cell{X: rng.Intn(base.Width()), Y: rng.Intn(base.Height())}
		}

		results := make([]Row, 0, len(brush.StrategyNames()))
		var refMean float64
		for si := range brush.StrategyNames() {
			strategy := brush.Strategy(si)
			row, err := measure(b, base, targets, size, *blend, strategy)
			if err != nil {
				log.Fatalf("%s size %d: %v", strategy, size, err)
			}
			if strategy == brush.StrategyReference {
				refMean = row.MeanUS
			}
			results = append(results, row)
		}
		for i := range results {
			if results[i].MeanUS > 0 {
				results[i].Speedup = refMean / results[i].MeanUS
			}
			r := results[i]
			fmt.Printf("size %3d blend %2d %-12s mean %9.1fus p90 %9.1fus x%5.2f max diff %.2e\n",
				r.Size, r.Blend, r.Strategy, r.MeanUS, r.P90US, r.Speedup, r.MaxDiff)
		}
		rows = append(rows, results...)
	}
	fmt.Printf("done in %s\n", time.Since(start).Round(time.Millisecond))

	if *outputDir == "" {
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	path := filepath.Join(*outputDir, "blendbench.csv")
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(rows, f); err != nil {
		log.Fatalf("writing %s: %v", path, err)
	}
	fmt.Printf("results saved to: %s\n", path)
}

// measure blends every target once on a fresh copy of base, timing the
// strategy and comparing its output with the reference blend.
func measure(b brush.Brush, base *terrain.Field, targets []terrain.Cell, size, blend int, strategy brush.Strategy) (Row, error) {
	durations := make([]float64, 0, len(targets))
	var maxDiff float64

	for _, target := range targets {
		s := brush.Stroke{Target: target, Size: size, Blend: blend}

		want := base.Clone()
		if err := b.BlendReference(want, s); err != nil {
			return Row{}, err
		}

		got := base.Clone()
		t0 := time.Now()
		if err := b.Blend(got, s, strategy); err != nil {
			return Row{}, err
		}
		durations = append(durations, float64(time.Since(t0).Nanoseconds())/1e3)

		wv, gv := want.Values(), got.Values()
		for i := range wv {
			maxDiff = math.Max(maxDiff, math.Abs(float64(wv[i]-gv[i])))
		}
	}

	mean, p50, p90 := telemetry.ComputeDurationStats(durations)
	return Row{
		Strategy: strategy.String(),
		Size:     size,
		Blend:    blend,
		Runs:     len(targets),
		MeanUS:   mean,
		P50US:    p50,
		P90US:    p90,
		MaxDiff:  maxDiff,
	}, nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("brush radius %d must be positive", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}
