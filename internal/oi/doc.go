// Package oi implements order-independence (OI) analysis over ternary filter
// lists: greedy maximal independent subsets, bit selection for discriminating
// filters, and the minimum-entailment selector with its greedy and exact
// strategies.
//
// Filters are referenced by their position in the input slice. The conflict
// graph (filters as nodes, overlapping pairs as edges) is never built for the
// greedy paths; overlap is evaluated on demand with filter.Independent. Only
// the exact strategy materialises per-filter conflict sets, and it pays for
// them from its resource.Budget.
package oi
