package radix

import (
	"os"
	"strconv"
)

// Environment variables read when a pool is created without options.
const (
	noPinVar      = "RADIX_NO_PIN"
	numWorkersVar = "RADIX_NUM_WORKERS"
)

// envBool reports whether name is set to a true value. Strings that
// strconv.ParseBool rejects, such as "yes", count as true; only an unset,
// empty or explicitly false value is false.
func envBool(name string) bool {
	val := os.Getenv(name)
	if val == "" {
		return false
	}
	b, err := strconv.ParseBool(val)
	return err != nil || b
}

// envPositiveInt returns the value of name as an integer, or 0 when it is
// unset, malformed or negative.
func envPositiveInt(name string) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NoPinEnv reports whether RADIX_NO_PIN asks pools to leave their workers
// unpinned, e.g. on shared machines.
func NoPinEnv() bool {
	return envBool(noPinVar)
}

// NumWorkersEnv returns the worker count requested through RADIX_NUM_WORKERS,
// or 0 to select the default.
func NumWorkersEnv() int {
	return envPositiveInt(numWorkersVar)
}
