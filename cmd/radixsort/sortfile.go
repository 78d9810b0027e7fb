package main

import (
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	cli "github.com/urfave/cli/v2"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

var fileTypeFlag = &cli.StringFlag{
	Name:  "type",
	Usage: "Width of the stored values: uint8, uint16, uint32 or uint64",
	Value: "uint32",
}

func sortFileCommand() *cli.Command {
	return &cli.Command{
		Name:      "sortfile",
		Usage:     "Sort a file of little-endian fixed-width values in place",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{fileTypeFlag, algoFlag},
		Action:    runSortFile,
	}
}

func runSortFile(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: %s sortfile [--type TYPE] FILE", c.App.Name)
	}
	if !littleEndianHost() {
		return fmt.Errorf("sortfile requires a little-endian host")
	}
	path := c.Args().First()

	typ := c.String(fileTypeFlag.Name)
	run := func(fn func(*cli.Context, *threadpool.Pool, *slog.Logger, string) error) error {
		return withPool(c, func(c *cli.Context, pool *threadpool.Pool, logger *slog.Logger) error {
			return fn(c, pool, logger, path)
		})
	}
	switch normalizeType(typ) {
	case "uint8":
		return run(sortMapped[uint8])
	case "uint16":
		return run(sortMapped[uint16])
	case "uint32":
		return run(sortMapped[uint32])
	case "uint64":
		return run(sortMapped[uint64])
	default:
		return unsupportedType(typ)
	}
}

// sortMapped maps path read-write, sorts its values in place and prints the
// value count and the xxhash64 of the result.
func sortMapped[T radix.Unsigned](c *cli.Context, pool *threadpool.Pool, logger *slog.Logger, path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	width := int64(bitSize[T]() / 8)
	if fi.Size()%width != 0 {
		return fmt.Errorf("%s: size %d is not a multiple of %d bytes", path, fi.Size(), width)
	}
	if fi.Size() == 0 {
		fmt.Fprintf(c.App.Writer, "0 %016x\n", checksum([]T(nil)))
		return nil
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return fmt.Errorf("mapping %s: %w", path, err)
	}
	defer m.Unmap()

	data := unsafe.Slice((*T)(unsafe.Pointer(&m[0])), len(m)/int(width))
	algo := c.String(algoFlag.Name)
	if err := sortWith(c.Context, algo, pool, data); err != nil {
		return fmt.Errorf("sorting with %s: %w", algo, err)
	}
	if err := m.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	logger.Debug("sorted file", "path", path, "elements", len(data))

	fmt.Fprintf(c.App.Writer, "%d %016x\n", len(data), checksum(data))
	return nil
}

// littleEndianHost reports whether values in memory use the file's byte
// order.
func littleEndianHost() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}
