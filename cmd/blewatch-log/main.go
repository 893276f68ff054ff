// Command blewatch-log is a tool for viewing and analyzing scan log files.
//
// Scan log files are created with the -event-log flag of the blewatch
// command.
//
// Usage:
//
//	blewatch-log <command> [flags] <file.cborlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	blewatch-log view scan.cborlog
//
//	# View only timeout events
//	blewatch-log view --kind timeout scan.cborlog
//
//	# Export to JSONL
//	blewatch-log export --format jsonl scan.cborlog
//
//	# Filter by session and save to new file
//	blewatch-log filter --session abc12345 -o filtered.cborlog scan.cborlog
//
//	# Show statistics
//	blewatch-log stats scan.cborlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blewatch/blewatch-go/cmd/blewatch-log/commands"
	"github.com/blewatch/blewatch-go/pkg/scanlog"
)

const usage = `blewatch-log - Scan Log Analyzer

Usage:
  blewatch-log <command> [flags] <file.cborlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "blewatch-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `blewatch-log view - View log file in human-readable format

Usage:
  blewatch-log view [flags] <file.cborlog>

Flags:
`)
		fs.PrintDefaults()
	}

	session := fs.String("session", "", "Filter by session ID")
	kind := fs.String("kind", "", "Filter by event kind (started, stopped, discovered, new, renamed, timeout)")
	address := fs.String("address", "", "Filter by device address (AA:BB:CC:DD:EE:FF)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	filter := scanlog.Filter{SessionID: *session}

	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Kind = &k
	}

	if *address != "" {
		addr, err := commands.ParseAddressFlag(*address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Address = addr
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `blewatch-log export - Export log file to JSON or CSV format

Usage:
  blewatch-log export [flags] <file.cborlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `blewatch-log filter - Filter log file and write to new file

Usage:
  blewatch-log filter [flags] <file.cborlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	kind := fs.String("kind", "", "Filter by event kind (started, stopped, discovered, new, renamed, timeout)")
	address := fs.String("address", "", "Filter by device address (AA:BB:CC:DD:EE:FF)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		Kind:      *kind,
		Address:   *address,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	}

	if err := commands.RunFilter(path, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `blewatch-log stats - Show statistics about the log file

Usage:
  blewatch-log stats <file.cborlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
