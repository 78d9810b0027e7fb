package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	cli "github.com/urfave/cli/v2"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

// benchConfig describes one benchmark run. Sizes go from Start up to, but not
// including, Stop in increments of Step.
type benchConfig struct {
	Type       string   `toml:"type"`
	Start      int      `toml:"start"`
	Stop       int      `toml:"stop"`
	Step       int      `toml:"step"`
	Seed       uint64   `toml:"seed"`
	Algorithms []string `toml:"algorithms"`
}

func defaultBenchConfig() *benchConfig {
	return &benchConfig{
		Type:       "uint32",
		Start:      100_000,
		Stop:       1_000_001,
		Step:       300_000,
		Seed:       1,
		Algorithms: []string{algoStd, algoSequential, algoConcurrent, algoScatter, algoGroup},
	}
}

// loadBenchConfig reads a TOML benchmark file over the defaults.
func loadBenchConfig(path string) (*benchConfig, error) {
	cfg := defaultBenchConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func (cfg *benchConfig) validate() error {
	if cfg.Start < 0 || cfg.Stop < cfg.Start {
		return fmt.Errorf("invalid size range [%d, %d)", cfg.Start, cfg.Stop)
	}
	if cfg.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d", cfg.Step)
	}
	if len(cfg.Algorithms) == 0 {
		return fmt.Errorf("no algorithms selected")
	}
	for _, algo := range cfg.Algorithms {
		if !slices.Contains(allAlgorithms, algo) {
			return fmt.Errorf("unknown algorithm %q", algo)
		}
	}
	return nil
}

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML benchmark configuration; flags override its values",
	}
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Value type: uint8, uint16, uint32 or uint64",
		Value: "uint32",
	}
	startFlag = &cli.IntFlag{Name: "start", Usage: "First vector size"}
	stopFlag  = &cli.IntFlag{Name: "stop", Usage: "Sizes stay below this bound"}
	stepFlag  = &cli.IntFlag{Name: "step", Usage: "Size increment"}
	algosFlag = &cli.StringSliceFlag{
		Name:  "algos",
		Usage: "Algorithms to compare",
	}
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:   "bench",
		Usage:  "Time every algorithm on random vectors and check each against the standard library sort",
		Flags:  []cli.Flag{configFlag, typeFlag, startFlag, stopFlag, stepFlag, algosFlag, seedFlag},
		Action: runBench,
	}
}

func runBench(c *cli.Context) error {
	cfg := defaultBenchConfig()
	if path := c.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = loadBenchConfig(path); err != nil {
			return err
		}
	}
	if c.IsSet(typeFlag.Name) {
		cfg.Type = c.String(typeFlag.Name)
	}
	if c.IsSet(startFlag.Name) {
		cfg.Start = c.Int(startFlag.Name)
	}
	if c.IsSet(stopFlag.Name) {
		cfg.Stop = c.Int(stopFlag.Name)
	}
	if c.IsSet(stepFlag.Name) {
		cfg.Step = c.Int(stepFlag.Name)
	}
	if c.IsSet(algosFlag.Name) {
		cfg.Algorithms = c.StringSlice(algosFlag.Name)
	}
	if c.IsSet(seedFlag.Name) {
		cfg.Seed = c.Uint64(seedFlag.Name)
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	run := func(fn func(*cli.Context, *threadpool.Pool, *slog.Logger, *benchConfig) error) error {
		return withPool(c, func(c *cli.Context, pool *threadpool.Pool, logger *slog.Logger) error {
			return fn(c, pool, logger, cfg)
		})
	}
	switch normalizeType(cfg.Type) {
	case "uint8":
		return run(runBenchmark[uint8])
	case "uint16":
		return run(runBenchmark[uint16])
	case "uint32":
		return run(runBenchmark[uint32])
	case "uint64":
		return run(runBenchmark[uint64])
	default:
		return unsupportedType(cfg.Type)
	}
}

// runBenchmark prints one row per size: the size, each algorithm's time in
// milliseconds, and the xxhash64 of the sorted vector.
func runBenchmark[T radix.Unsigned](c *cli.Context, pool *threadpool.Pool, logger *slog.Logger, cfg *benchConfig) error {
	w := c.App.Writer
	writeBenchHeader(w, cfg.Algorithms)

	for size := cfg.Start; size < cfg.Stop; size += cfg.Step {
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(size)))
		unsorted := make([]T, size)
		for i := range unsorted {
			unsorted[i] = T(rng.Uint64())
		}
		gold := slices.Clone(unsorted)
		slices.Sort(gold)

		fmt.Fprintf(w, "%-15d", size)
		data := make([]T, size)
		for _, algo := range cfg.Algorithms {
			copy(data, unsorted)
			start := time.Now()
			if err := sortWith(c.Context, algo, pool, data); err != nil {
				return fmt.Errorf("size %d: sorting with %s: %w", size, algo, err)
			}
			elapsed := time.Since(start)
			if !slices.Equal(data, gold) {
				return fmt.Errorf("size %d: %s gave different results than std", size, algo)
			}
			logger.Debug("bench", "size", size, "algo", algo, "elapsed", elapsed)
			fmt.Fprintf(w, "%-15d", elapsed.Milliseconds())
		}
		fmt.Fprintf(w, "%016x\n", checksum(gold))
	}
	return nil
}

func writeBenchHeader(w io.Writer, algos []string) {
	fmt.Fprintf(w, "%-15s", "size")
	for _, algo := range algos {
		fmt.Fprintf(w, "%-15s", algo)
	}
	fmt.Fprintln(w, "xxhash64")
}
