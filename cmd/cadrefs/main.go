package main

import (
	"fmt"
	"os"

	"github.com/erraggy/cadrefs"
	"github.com/erraggy/cadrefs/cmd/cadrefs/commands"
)

// commandNames lists the top-level commands for typo suggestions.
var commandNames = []string{"refs", "configs", "info", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var handler func([]string) error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("cadrefs v%s\n", cadrefs.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "refs":
		handler = commands.HandleRefs
	case "configs":
		handler = commands.HandleConfigs
	case "info":
		handler = commands.HandleInfo
	case "mcp":
		handler = commands.HandleMCP
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err := handler(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`cadrefs - count the files referenced by CAD documents

Usage:
  cadrefs <command> [flags] [arguments]

Commands:
  refs       Count the external files referenced by a document configuration
  configs    List the configurations of a document
  info       Describe a document
  mcp        Run an MCP server over stdio
  version    Show version information
  help       Show this help message

Run 'cadrefs <command> --help' for command-specific flags.

Documents are read from a metadata snapshot (YAML or JSON); use '-' to read it from stdin.

%s
`, cadrefs.BuildInfo())
}

// suggestCommand returns the command closest to input within an edit
// distance of 2, or "" when none is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
