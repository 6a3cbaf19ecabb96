package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/tcamoi"
	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/blobstore"
	"github.com/hupe1980/tcamoi/blobstore/s3"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/hupe1980/tcamoi/ruletable"
)

// commonFlags are shared by every subcommand that reads a table.
type commonFlags struct {
	table       string
	region      string
	workers     int
	maxOps      int64
	maxDuration time.Duration
	logFormat   string
	logLevel    string
	help        bool
	helpLong    bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.table, "table", "", "Rule table path or s3://bucket/key")
	fs.StringVar(&f.region, "region", "", "AWS region for s3:// tables")
	fs.IntVar(&f.workers, "workers", envInt(envWorkers, 0), "Worker goroutines (0 = GOMAXPROCS)")
	fs.Int64Var(&f.maxOps, "max-ops", envInt64(envMaxOps, 0), "Exact search op limit (0 = default, <0 = unlimited)")
	fs.DurationVar(&f.maxDuration, "max-duration", 0, "Exact search time limit (0 = unlimited)")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log format: text, json")
	fs.StringVar(&f.logLevel, "log-level", envString(envLogLevel, "warn"), "Log level: debug, info, warn, error")
	fs.BoolVar(&f.help, "h", false, "Show help message")
	fs.BoolVar(&f.helpLong, "help", false, "Show help message")
}

func (f *commonFlags) wantsHelp() bool { return f.help || f.helpLong }

// options turns the flags into library options.
func (c *cli) options(f *commonFlags) ([]tcamoi.Option, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q", f.logLevel)
	}

	hopts := &slog.HandlerOptions{Level: level}
	var logger *tcamoi.Logger
	switch f.logFormat {
	case "text":
		logger = tcamoi.NewLogger(slog.NewTextHandler(c.stderr, hopts))
	case "json":
		logger = tcamoi.NewLogger(slog.NewJSONHandler(c.stderr, hopts))
	default:
		return nil, fmt.Errorf("invalid -log-format %q", f.logFormat)
	}

	return []tcamoi.Option{
		tcamoi.WithLogger(logger),
		tcamoi.WithWorkers(f.workers),
		tcamoi.WithBudget(tcamoi.BudgetConfig{
			MaxOps:      f.maxOps,
			MaxDuration: f.maxDuration,
		}),
	}, nil
}

// loadTable reads the table named by -table from the local disk or S3.
func loadTable(ctx context.Context, f *commonFlags) ([]filter.Filter, error) {
	if f.table == "" {
		return nil, errors.New("-table is required")
	}

	var (
		store blobstore.Store
		name  string
	)
	if s3.IsURI(f.table) {
		bucket, key, err := s3.ParseURI(f.table)
		if err != nil {
			return nil, err
		}
		st, err := s3.New(ctx, bucket, s3.WithRegion(f.region))
		if err != nil {
			return nil, err
		}
		store, name = st, key
	} else {
		store = blobstore.NewLocalStore(filepath.Dir(f.table))
		name = filepath.ToSlash(filepath.Base(f.table))
	}

	rc, err := blobstore.OpenTable(ctx, store, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	filters, err := ruletable.Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.table, err)
	}
	return filters, nil
}

// parseIntList parses a comma-separated list such as "0,4,7". An empty
// string yields nil.
func parseIntList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid list element %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *cli) writeJSON(v any) int {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func (c *cli) fail(err error) int {
	fmt.Fprintf(c.stderr, "Error: %v\n", err)
	if errors.Is(err, tcamoi.ErrResourceExceeded) {
		return exitBudget
	}
	return exitError
}

// prepare parses args, loads the table and builds the options shared by the
// analysis commands. ok is false when the caller should return code.
func (c *cli) prepare(fs *flag.FlagSet, f *commonFlags, args []string, usage func(io.Writer)) (filters []filter.Filter, opts []tcamoi.Option, code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, exitError, false
	}
	if f.wantsHelp() {
		usage(c.stdout)
		return nil, nil, exitOK, false
	}

	opts, err := c.options(f)
	if err != nil {
		return nil, nil, c.fail(err), false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	filters, err = loadTable(ctx, f)
	if err != nil {
		return nil, nil, c.fail(err), false
	}
	return filters, opts, exitOK, true
}

func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// selectCmd handles the select command.
func (c *cli) selectCmd(args []string) int {
	fs := c.newFlagSet("select")
	var f commonFlags
	f.register(fs)
	l := fs.Int("l", 16, "Number of key bits")
	modeName := fs.String("mode", "max-oi", "Selection mode: max-oi, blockers")
	exact := fs.Bool("exact", false, "Use exhaustive search")

	filters, opts, code, ok := c.prepare(fs, &f, args, printSelectUsage)
	if !ok {
		return code
	}

	mode, err := tcamoi.ParseMode(*modeName)
	if err != nil {
		return c.fail(err)
	}

	sel, err := tcamoi.Select(filters, *l, mode, *exact, opts...)
	if err != nil {
		return c.fail(err)
	}
	return c.writeJSON(sel)
}

type bitsResult struct {
	Bits                   []int `json:"bits"`
	IndistinguishablePairs int   `json:"indistinguishable_pairs"`
}

// bitsCmd handles the bits command.
func (c *cli) bitsCmd(args []string) int {
	fs := c.newFlagSet("bits")
	var f commonFlags
	f.register(fs)
	l := fs.Int("l", 16, "Number of key bits")
	exact := fs.Bool("exact", false, "Use exhaustive search")

	filters, opts, code, ok := c.prepare(fs, &f, args, printBitsUsage)
	if !ok {
		return code
	}

	if *exact {
		opts = append(opts, tcamoi.WithStrategy(tcamoi.StrategyExact))
	}
	bits, err := tcamoi.BestMinSimilarityBits(filters, *l, opts...)
	if err != nil {
		return c.fail(err)
	}
	pairs, err := tcamoi.IndistinguishablePairs(filters, bits, opts...)
	if err != nil {
		return c.fail(err)
	}
	return c.writeJSON(bitsResult{Bits: bits, IndistinguishablePairs: pairs})
}

type subsetResult struct {
	Stay []int `json:"stay"`
}

// subsetCmd handles the subset command.
func (c *cli) subsetCmd(args []string) int {
	fs := c.newFlagSet("subset")
	var f commonFlags
	f.register(fs)
	bitList := fs.String("bits", "", "Comma-separated active bits (default: all)")
	indexList := fs.String("indices", "", "Comma-separated filter indices to visit, in order (default: all)")

	filters, opts, code, ok := c.prepare(fs, &f, args, printSubsetUsage)
	if !ok {
		return code
	}

	mask := bitarray.Full()
	if *bitList != "" {
		bits, err := parseIntList(*bitList)
		if err != nil {
			return c.fail(fmt.Errorf("-bits: %w", err))
		}
		if mask, err = tcamoi.BitsToMask(bits); err != nil {
			return c.fail(err)
		}
	}

	if *indexList == "" {
		return c.writeJSON(subsetResult{Stay: tcamoi.FindMaximalOISubset(filters, mask, opts...)})
	}

	indices, err := parseIntList(*indexList)
	if err != nil {
		return c.fail(fmt.Errorf("-indices: %w", err))
	}
	stay, err := tcamoi.FindMaximalOISubsetIndices(filters, indices, mask, opts...)
	if err != nil {
		return c.fail(err)
	}
	return c.writeJSON(subsetResult{Stay: stay})
}

// groupsCmd handles the groups command.
func (c *cli) groupsCmd(args []string) int {
	fs := c.newFlagSet("groups")
	var f commonFlags
	f.register(fs)
	l := fs.Int("l", 16, "Number of key bits per group")
	modeName := fs.String("mode", "max-oi", "Selection mode: max-oi, blockers")
	exact := fs.Bool("exact", false, "Use exhaustive search")
	maxGroups := fs.Int("max-groups", 0, "Maximum number of groups (0 = unlimited)")

	filters, opts, code, ok := c.prepare(fs, &f, args, printGroupsUsage)
	if !ok {
		return code
	}

	mode, err := tcamoi.ParseMode(*modeName)
	if err != nil {
		return c.fail(err)
	}

	opts = append(opts, tcamoi.WithMaxGroups(*maxGroups))
	gs, err := tcamoi.MinimizeGroups(filters, *l, mode, *exact, opts...)
	if err != nil {
		return c.fail(err)
	}
	return c.writeJSON(gs)
}

// projectCmd handles the project command.
func (c *cli) projectCmd(args []string) int {
	fs := c.newFlagSet("project")
	var f commonFlags
	f.register(fs)
	bitList := fs.String("bits", "", "Comma-separated key bits, in key order")
	format := fs.String("format", "ternary", "Output format: ternary, hex")

	filters, _, code, ok := c.prepare(fs, &f, args, printProjectUsage)
	if !ok {
		return code
	}

	var out ruletable.Format
	switch *format {
	case "ternary":
		out = ruletable.Ternary
	case "hex":
		out = ruletable.Hex
	default:
		return c.fail(fmt.Errorf("invalid -format %q", *format))
	}

	bits, err := parseIntList(*bitList)
	if err != nil {
		return c.fail(fmt.Errorf("-bits: %w", err))
	}
	if bits == nil {
		return c.fail(errors.New("-bits is required"))
	}

	projected, err := ruletable.Project(filters, bits)
	if err != nil {
		return c.fail(err)
	}
	if err := ruletable.Write(c.stdout, projected, out); err != nil {
		return c.fail(err)
	}
	return exitOK
}
