// Copyright 2025 go-radix Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command radixsort sorts, generates and benchmarks fixed-width unsigned
// integer vectors with the go-radix sorts.
//
// Usage:
//
//	radixsort generate 1000000 0 4294967295 > in.txt
//	radixsort sort uint32 < in.txt > out.txt            # elapsed ms on stderr
//	radixsort sort --algo sequential uint16 < in.txt
//	radixsort bench --type uint64 --start 100000 --stop 1000000 --step 100000
//	radixsort bench --config bench.toml
//	radixsort sortfile --type uint32 values.bin         # in place, via mmap
//
// Text vectors are an element count followed by that many integers, separated
// by whitespace. Global flags select the worker count (default: all logical
// CPUs, or RADIX_NUM_WORKERS) and disable core pinning.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	cli "github.com/urfave/cli/v2"

	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

var (
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log debug messages to stderr",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of pool workers (0: RADIX_NUM_WORKERS or all logical CPUs)",
	}
	noPinFlag = &cli.BoolFlag{
		Name:  "no-pin",
		Usage: "Do not pin workers to cores",
	}
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree reading from in and writing to out and
// errOut.
func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "radixsort",
		Usage:     "parallel LSD radix sort for unsigned integers",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags:     []cli.Flag{verboseFlag, workersFlag, noPinFlag},
		Commands: []*cli.Command{
			sortCommand(),
			generateCommand(),
			benchCommand(),
			sortFileCommand(),
		},
	}
}

// newLogger returns a text logger on the app's error writer.
func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool(verboseFlag.Name) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

// newPool starts a thread pool configured from the global flags. The caller
// closes it.
func newPool(c *cli.Context, logger *slog.Logger) *threadpool.Pool {
	opts := []threadpool.Option{threadpool.WithLogger(logger)}
	if c.IsSet(workersFlag.Name) {
		opts = append(opts, threadpool.WithWorkers(c.Int(workersFlag.Name)))
	}
	if c.Bool(noPinFlag.Name) {
		opts = append(opts, threadpool.WithPinning(false))
	}
	pool := threadpool.New(opts...)
	logger.Debug("pool ready", "workers", pool.NumWorkers(), "pinned", pool.PinnedWorkers())
	return pool
}
