package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage information to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `tcamoi - order-independence analysis for ternary filter tables

Usage:
  tcamoi <command> [options]

Commands:
  select      Split a table into filters that stay and filters to discard
  bits        Choose key bits that separate as many filter pairs as possible
  subset      Find a maximal order-independent subset under given bits
  groups      Split a table into order-independent groups
  project     Print the table as seen through a set of key bits
  version     Show version information

Use "tcamoi <command> -h" for more information about a command.
`)
}

const tableOptions = `  -table string
        Rule table path, or s3://bucket/key (.zst and .lz4 are decompressed)
  -region string
        AWS region for s3:// tables
  -workers int
        Worker goroutines, 0 means GOMAXPROCS
  -max-ops int
        Exact search op limit, 0 means the default, negative means unlimited
  -max-duration duration
        Exact search time limit, 0 means unlimited
  -log-format string
        Log format: text, json (default "text")
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`

const envHelp = `
Environment Variables:
  TCAMOI_WORKERS     Default for -workers
  TCAMOI_MAX_OPS     Default for -max-ops
  TCAMOI_LOG_LEVEL   Default for -log-level
`

const exitHelp = `
Exit Status:
  0  success
  1  invalid input or I/O failure
  2  exact search exceeded its budget
`

func printSelectUsage(w io.Writer) {
	fmt.Fprint(w, `Split a table into filters that stay and filters to discard

Usage:
  tcamoi select -table FILE [options]

Options:
  -l int
        Number of key bits (default 16)
  -mode string
        Selection mode: max-oi, blockers (default "max-oi")
  -exact
        Use exhaustive search instead of the greedy heuristics
`+tableOptions+envHelp+exitHelp+`
Output:
  {"bits": [...], "stay": [...], "discard": [...]}
`)
}

func printBitsUsage(w io.Writer) {
	fmt.Fprint(w, `Choose key bits that separate as many filter pairs as possible

Usage:
  tcamoi bits -table FILE [options]

Options:
  -l int
        Number of key bits (default 16)
  -exact
        Use exhaustive search instead of the greedy heuristic
`+tableOptions+envHelp+exitHelp+`
Output:
  {"bits": [...], "indistinguishable_pairs": N}
`)
}

func printSubsetUsage(w io.Writer) {
	fmt.Fprint(w, `Find a maximal order-independent subset under given bits

Filters are taken greedily in input order, or in the order given by -indices.

Usage:
  tcamoi subset -table FILE [options]

Options:
  -bits string
        Comma-separated active bits (default: all bits)
  -indices string
        Comma-separated filter indices to visit, in order (default: all)
`+tableOptions+envHelp+`
Output:
  {"stay": [...]}
`)
}

func printGroupsUsage(w io.Writer) {
	fmt.Fprint(w, `Split a table into order-independent groups

Each round runs select on what the previous round discarded.

Usage:
  tcamoi groups -table FILE [options]

Options:
  -l int
        Number of key bits per group (default 16)
  -mode string
        Selection mode: max-oi, blockers (default "max-oi")
  -exact
        Use exhaustive search instead of the greedy heuristics
  -max-groups int
        Maximum number of groups, 0 means unlimited
`+tableOptions+envHelp+exitHelp+`
Output:
  {"groups": [{"bits": [...], "indices": [...]}, ...], "residual": [...]}
`)
}

func printProjectUsage(w io.Writer) {
	fmt.Fprint(w, `Print the table as seen through a set of key bits

Bit k of every output filter is bit bits[k] of the input filter.

Usage:
  tcamoi project -table FILE -bits LIST [options]

Options:
  -bits string
        Comma-separated key bits, in key order
  -format string
        Output format: ternary, hex (default "ternary")
`+tableOptions)
}

func printVersionUsage(w io.Writer) {
	fmt.Fprint(w, `Show version information

Usage:
  tcamoi version [options]

Options:
  -short
        Show only version number
  -h, -help
        Show this help message
`)
}
