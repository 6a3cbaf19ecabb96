// Command tcamoi analyses ternary filter tables for order independence.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitBudget = 2
)

// Environment variables that override flag defaults.
const (
	envWorkers  = "TCAMOI_WORKERS"
	envMaxOps   = "TCAMOI_MAX_OPS"
	envLogLevel = "TCAMOI_LOG_LEVEL"
)

func main() {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args))
}

// cli carries the output streams so tests can capture them.
type cli struct {
	stdout io.Writer
	stderr io.Writer
}

// run dispatches to a subcommand and returns the process exit code.
func (c *cli) run(args []string) int {
	if len(args) < 2 {
		printUsage(c.stderr)
		return exitError
	}

	switch args[1] {
	case "select":
		return c.selectCmd(args[2:])
	case "bits":
		return c.bitsCmd(args[2:])
	case "subset":
		return c.subsetCmd(args[2:])
	case "groups":
		return c.groupsCmd(args[2:])
	case "project":
		return c.projectCmd(args[2:])
	case "version":
		return c.versionCmd(args[2:])
	case "help", "-h", "--help":
		printUsage(c.stdout)
		return exitOK
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n", args[1])
		fmt.Fprintln(c.stderr, "Run 'tcamoi help' for usage.")
		return exitError
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(envString(key, ""))
	if err != nil {
		return def
	}
	return v
}

func envInt64(key string, def int64) int64 {
	v, err := strconv.ParseInt(envString(key, ""), 10, 64)
	if err != nil {
		return def
	}
	return v
}
