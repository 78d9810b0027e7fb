package main

import (
	"fmt"
	"log/slog"
	"time"

	cli "github.com/urfave/cli/v2"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/contrib/sort"
	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

var (
	algoFlag = &cli.StringFlag{
		Name:  "algo",
		Usage: "Sort algorithm: concurrent, concurrent16, sequential, scatter, group or std",
		Value: algoConcurrent,
	}
	verifyFlag = &cli.BoolFlag{
		Name:  "verify",
		Usage: "Check the output order before writing it",
	}
)

func sortCommand() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort a text vector read from stdin and write it to stdout",
		ArgsUsage: "[TYPE]  (uint8, uint16, uint32 or uint64; default uint32)",
		Flags:     []cli.Flag{algoFlag, verifyFlag},
		Action:    runSort,
	}
}

func runSort(c *cli.Context) error {
	typ := "uint32"
	if c.Args().Present() {
		typ = c.Args().First()
	}

	switch normalizeType(typ) {
	case "uint8":
		return withPool(c, sortStream[uint8])
	case "uint16":
		return withPool(c, sortStream[uint16])
	case "uint32":
		return withPool(c, sortStream[uint32])
	case "uint64":
		return withPool(c, sortStream[uint64])
	default:
		return unsupportedType(typ)
	}
}

// withPool runs fn with a logger and a pool that is closed afterwards.
func withPool(c *cli.Context, fn func(*cli.Context, *threadpool.Pool, *slog.Logger) error) error {
	logger := newLogger(c)
	pool := newPool(c, logger)
	defer pool.Close()
	return fn(c, pool, logger)
}

// sortStream reads, sorts and writes one vector. The sort time in
// milliseconds goes to stderr.
func sortStream[T radix.Unsigned](c *cli.Context, pool *threadpool.Pool, logger *slog.Logger) error {
	data, err := readValues[T](c.App.Reader)
	if err != nil {
		return err
	}

	algo := c.String(algoFlag.Name)
	start := time.Now()
	if err := sortWith(c.Context, algo, pool, data); err != nil {
		return fmt.Errorf("sorting with %s: %w", algo, err)
	}
	elapsed := time.Since(start)
	logger.Debug("sorted", "algo", algo, "elements", len(data), "elapsed", elapsed)
	fmt.Fprintln(c.App.ErrWriter, elapsed.Milliseconds())

	if c.Bool(verifyFlag.Name) {
		if err := sort.Verify(pool, data); err != nil {
			return err
		}
	}
	return writeValues(c.App.Writer, data)
}
