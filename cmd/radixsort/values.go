package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/contrib/sort"
	"github.com/ajroetker/go-radix/radix/contrib/threadpool"
)

// Algorithm names accepted by --algo.
const (
	algoConcurrent   = "concurrent"
	algoConcurrent16 = "concurrent16"
	algoSequential   = "sequential"
	algoScatter      = "scatter"
	algoGroup        = "group"
	algoStd          = "std"
)

// maxPrealloc caps the capacity readValues reserves before any value has
// been read.
const maxPrealloc = 1 << 20

var allAlgorithms = []string{algoStd, algoSequential, algoConcurrent, algoConcurrent16, algoScatter, algoGroup}

// normalizeType maps "uint32_t" and "uint32" to "uint32".
func normalizeType(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), "_t")
}

func unsupportedType(name string) error {
	return fmt.Errorf("type %s is not supported", name)
}

// sortWith sorts data in place with the named algorithm.
func sortWith[T radix.Unsigned](ctx context.Context, algo string, pool *threadpool.Pool, data []T) error {
	switch algo {
	case algoConcurrent:
		return sort.Sort(pool, data)
	case algoConcurrent16:
		return sort.SortDigits[T, uint16](pool, data)
	case algoSequential:
		return sort.Sequential[T, uint8](data)
	case algoScatter:
		return sort.Scatter[T, uint8](pool, data)
	case algoGroup:
		return sort.GroupSort[T, uint8](ctx, pool.NumWorkers(), data)
	case algoStd:
		slices.Sort(data)
		return nil
	default:
		return fmt.Errorf("unknown algorithm %q (want one of %s)", algo, strings.Join(allAlgorithms, ", "))
	}
}

// bitSize returns the width of T in bits.
func bitSize[T radix.Unsigned]() int {
	var v T
	return int(unsafe.Sizeof(v)) * 8
}

// readValues reads an element count followed by that many integers.
func readValues[T radix.Unsigned](r io.Reader) ([]T, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading count: %w", err)
		}
		return nil, fmt.Errorf("reading count: %w", io.ErrUnexpectedEOF)
	}
	count, err := strconv.Atoi(sc.Text())
	if err != nil || count < 0 {
		return nil, fmt.Errorf("invalid element count %q", sc.Text())
	}

	// The count is untrusted, so it only bounds the initial capacity.
	bits := bitSize[T]()
	data := make([]T, 0, min(count, maxPrealloc))
	for i := range count {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("reading element %d: %w", i, err)
			}
			return nil, fmt.Errorf("expected %d elements, got %d: %w", count, i, io.ErrUnexpectedEOF)
		}
		v, err := strconv.ParseUint(sc.Text(), 10, bits)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		data = append(data, T(v))
	}
	return data, nil
}

// writeValues writes the element count on one line and the elements,
// space separated, on the next.
func writeValues[T radix.Unsigned](w io.Writer, data []T) error {
	bw := bufio.NewWriter(w)
	buf := strconv.AppendInt(nil, int64(len(data)), 10)
	buf = append(buf, '\n')
	for i, v := range data {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendUint(buf, uint64(v), 10)
		if len(buf) >= 32*1024 {
			if _, err := bw.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}

// checksum returns the xxhash64 of data encoded as little-endian values.
func checksum[T radix.Unsigned](data []T) uint64 {
	h := xxhash.New()
	width := bitSize[T]() / 8
	buf := make([]byte, 0, 8*1024)
	var word [8]byte
	for _, v := range data {
		binary.LittleEndian.PutUint64(word[:], uint64(v))
		buf = append(buf, word[:width]...)
		if len(buf) > cap(buf)-8 {
			h.Write(buf)
			buf = buf[:0]
		}
	}
	h.Write(buf)
	return h.Sum64()
}
