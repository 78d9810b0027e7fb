package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	cli "github.com/urfave/cli/v2"
)

var seedFlag = &cli.Uint64Flag{
	Name:  "seed",
	Usage: "Random seed (default: a fresh random seed)",
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Write COUNT uniformly random integers in [MIN, MAX] as a text vector",
		ArgsUsage: "COUNT MIN MAX",
		Flags:     []cli.Flag{seedFlag},
		Action:    runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	if c.NArg() != 3 {
		return fmt.Errorf("usage: %s generate COUNT MIN MAX", c.App.Name)
	}
	count, err := strconv.Atoi(c.Args().Get(0))
	if err != nil || count < 0 {
		return fmt.Errorf("invalid count %q", c.Args().Get(0))
	}
	lo, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid min: %w", err)
	}
	hi, err := strconv.ParseUint(c.Args().Get(2), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid max: %w", err)
	}
	if lo > hi {
		return fmt.Errorf("min %d is greater than max %d", lo, hi)
	}

	rng := newRand(c)
	data := make([]uint64, count)
	for i := range data {
		data[i] = uniform(rng, lo, hi)
	}
	return writeValues(c.App.Writer, data)
}

// newRand returns a generator seeded from --seed, or randomly when unset.
func newRand(c *cli.Context) *rand.Rand {
	if c.IsSet(seedFlag.Name) {
		seed := c.Uint64(seedFlag.Name)
		return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// uniform returns a value in [lo, hi].
func uniform(rng *rand.Rand, lo, hi uint64) uint64 {
	if lo == 0 && hi == math.MaxUint64 {
		return rng.Uint64()
	}
	return lo + rng.Uint64N(hi-lo+1)
}
