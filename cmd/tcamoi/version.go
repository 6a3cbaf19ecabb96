package main

import (
	"fmt"
	"runtime"
)

// Version information, set at build time with
// -ldflags "-X main.version=1.0.0 -X main.commit=abc123".
var (
	version   = "0.1.0"
	commit    = "unknown"
	buildDate = "unknown"
)

// versionCmd handles the version command.
func (c *cli) versionCmd(args []string) int {
	fs := c.newFlagSet("version")

	short := fs.Bool("short", false, "Show only version number")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || *helpLong {
		printVersionUsage(c.stdout)
		return exitOK
	}

	if *short {
		fmt.Fprintln(c.stdout, version)
		return exitOK
	}

	fmt.Fprintf(c.stdout, "tcamoi version %s\n", version)
	fmt.Fprintf(c.stdout, "  Commit:     %s\n", commit)
	fmt.Fprintf(c.stdout, "  Built:      %s\n", buildDate)
	fmt.Fprintf(c.stdout, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(c.stdout, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)

	return exitOK
}
