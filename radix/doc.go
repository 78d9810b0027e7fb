// Package radix holds the pieces shared by the go-radix sorts: the value and
// digit type constraints, the digit extraction policy, environment
// configuration and the exported error sentinels.
//
// A value is cut into fixed-width digits, least-significant digit first, and
// every digit selects one of NumBuckets buckets.
//
// Basic usage:
//
//	import (
//	    "github.com/ajroetker/go-radix/radix/contrib/sort"
//	    "github.com/ajroetker/go-radix/radix/contrib/threadpool"
//	)
//
//	pool := threadpool.New()
//	defer pool.Close()
//
//	if err := sort.Sort(pool, data); err != nil {
//	    return err
//	}
package radix
