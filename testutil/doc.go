// Package testutil provides testing utilities for tcamoi.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG for generating random filters and active-bit
// masks, plus checkers for the properties the selectors guarantee.
//
// # Random Filters
//
//	rng := testutil.NewRNG(seed)
//	fs := rng.Filters(64, 0.3)          // each bit constrained with p=0.3
//	fs = rng.ClusteredFilters(64, 4, 8) // 4 prefixes, 8 free bits each
//	mask := rng.Mask(16)                // 16 distinct active bits
//
// # Property Checks
//
//	testutil.PairwiseIndependent(fs, stay, mask)
//	testutil.IsPartition(len(fs), stay, discard)
package testutil
