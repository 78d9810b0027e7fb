package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and stdin, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(strings.NewReader(stdin), &out, &errOut)
	err := app.Run(append([]string{"radixsort", "--workers", "3", "--no-pin"}, args...))
	return out.String(), errOut.String(), err
}

// parseVector parses a count line and a value line.
func parseVector(t *testing.T, s string) []uint64 {
	t.Helper()
	fields := strings.Fields(s)
	require.NotEmpty(t, fields)
	count, err := strconv.Atoi(fields[0])
	require.NoError(t, err)
	require.Len(t, fields[1:], count)

	values := make([]uint64, count)
	for i, f := range fields[1:] {
		values[i], err = strconv.ParseUint(f, 10, 64)
		require.NoError(t, err)
	}
	return values
}

func TestSortCommand(t *testing.T) {
	input := "8\n170 45 75 90 802 24 2 66\n"
	for _, algo := range allAlgorithms {
		t.Run(algo, func(t *testing.T) {
			out, errOut, err := run(t, input, "sort", "--algo", algo, "--verify", "uint16")
			require.NoError(t, err)
			assert.Equal(t, "8\n2 24 45 66 75 90 170 802\n", out)

			// Elapsed milliseconds go to stderr.
			_, err = strconv.Atoi(strings.TrimSpace(errOut))
			assert.NoError(t, err, "stderr = %q", errOut)
		})
	}
}

func TestSortCommandDefaultType(t *testing.T) {
	out, _, err := run(t, "3 4000000000 7 9", "sort")
	require.NoError(t, err)
	assert.Equal(t, "3\n7 9 4000000000\n", out)
}

func TestSortCommandTypeAlias(t *testing.T) {
	out, _, err := run(t, "4 3 1 2 0", "sort", "uint8_t")
	require.NoError(t, err)
	assert.Equal(t, "4\n0 1 2 3\n", out)
}

func TestSortCommandEmpty(t *testing.T) {
	out, _, err := run(t, "0\n", "sort", "uint64")
	require.NoError(t, err)
	assert.Equal(t, "0\n\n", out)
}

func TestSortCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"unsupported type", "1 1", []string{"sort", "int32"}, "type int32 is not supported"},
		{"short input", "3 1 2", []string{"sort"}, "expected 3 elements, got 2"},
		{"huge count", "9223372036854775807 1 2", []string{"sort", "uint64"}, "expected 9223372036854775807 elements, got 2"},
		{"no count", "", []string{"sort"}, "reading count"},
		{"bad count", "x", []string{"sort"}, "invalid element count"},
		{"out of range", "1 300", []string{"sort", "uint8"}, "element 0"},
		{"unknown algorithm", "2 1 0", []string{"sort", "--algo", "bogo"}, "unknown algorithm"},
		{"narrow concurrent16", "2 1 0", []string{"sort", "--algo", "concurrent16", "uint8"}, "digit is wider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestShortInputWrapsEOF(t *testing.T) {
	_, _, err := run(t, "3 1 2", "sort")
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadValuesHugeCount(t *testing.T) {
	_, err := readValues[uint64](strings.NewReader("9223372036854775807 1 2"))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Counts above the preallocation cap still read in full.
	n := maxPrealloc + 3
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(n))
	for i := range n {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(i % 256))
	}
	data, err := readValues[uint8](strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, data, n)
	assert.Equal(t, uint8(2), data[n-1])
}

func TestGenerateThenSort(t *testing.T) {
	generated, _, err := run(t, "", "generate", "--seed", "7", "1000", "100", "65535")
	require.NoError(t, err)

	input := parseVector(t, generated)
	for _, v := range input {
		require.GreaterOrEqual(t, v, uint64(100))
		require.LessOrEqual(t, v, uint64(65535))
	}

	sorted, _, err := run(t, generated, "sort", "uint16")
	require.NoError(t, err)
	got := parseVector(t, sorted)

	want := slices.Clone(input)
	slices.Sort(want)
	assert.Equal(t, want, got)
}

func TestGenerateDeterministic(t *testing.T) {
	a, _, err := run(t, "", "generate", "--seed", "42", "50", "0", "18446744073709551615")
	require.NoError(t, err)
	b, _, err := run(t, "", "generate", "--seed", "42", "50", "0", "18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, parseVector(t, a), 50)
}

func TestGenerateErrors(t *testing.T) {
	_, _, err := run(t, "", "generate", "10", "5")
	assert.ErrorContains(t, err, "usage")

	_, _, err = run(t, "", "generate", "10", "9", "5")
	assert.ErrorContains(t, err, "greater than max")

	_, _, err = run(t, "", "generate", "many", "0", "5")
	assert.ErrorContains(t, err, "invalid count")
}

func TestBenchConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	config := `
type = "uint16"
start = 10
stop = 30
step = 10
seed = 3
algorithms = ["std", "concurrent", "group"]
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	out, _, err := run(t, "", "bench", "--config", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"size", "std", "concurrent", "group", "xxhash64"}, strings.Fields(lines[0]))
	assert.Equal(t, "10", strings.Fields(lines[1])[0])
	assert.Equal(t, "20", strings.Fields(lines[2])[0])
	assert.Len(t, strings.Fields(lines[1]), 5)
}

func TestBenchFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte("start = 10\nstop = 20\nstep = 5\n"), 0o644))

	out, _, err := run(t, "", "bench", "--config", path, "--type", "uint64", "--algos", "sequential", "--stop", "12")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"size", "sequential", "xxhash64"}, strings.Fields(lines[0]))
}

func TestBenchInvalidConfig(t *testing.T) {
	_, _, err := run(t, "", "bench", "--step", "0")
	assert.ErrorContains(t, err, "step must be positive")

	_, _, err = run(t, "", "bench", "--algos", "bogo")
	assert.ErrorContains(t, err, "unknown algorithm")

	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte("start = [\n"), 0o644))
	_, _, err = run(t, "", "bench", "--config", path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestSortFile(t *testing.T) {
	values := []uint32{170, 45, 75, 90, 802, 24, 2, 66, 4000000000, 0}
	buf := make([]byte, 0, len(values)*4)
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	path := filepath.Join(t.TempDir(), "values.bin")
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	out, _, err := run(t, "", "sortfile", "--type", "uint32", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	got := make([]uint32, len(values))
	for i := range got {
		got[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	want := slices.Clone(values)
	slices.Sort(want)
	assert.Equal(t, want, got)

	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	assert.Equal(t, "10", fields[0])
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64(raw)), fields[1])
}

func TestSortFileBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, _, err := run(t, "", "sortfile", "--type", "uint16", path)
	assert.ErrorContains(t, err, "not a multiple of 2 bytes")
}

func TestSortFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	out, _, err := run(t, "", "sortfile", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0 "), "out = %q", out)
}

func TestChecksumEncoding(t *testing.T) {
	assert.Equal(t, xxhash.Sum64([]byte{1, 0, 2, 0}), checksum([]uint16{1, 2}))
	assert.Equal(t, xxhash.Sum64([]byte{7}), checksum([]uint8{7}))
	assert.Equal(t, xxhash.Sum64(nil), checksum([]uint64(nil)))
}
