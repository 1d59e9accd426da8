package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/cadrefs/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. The server is
// configured through CADREFS_* environment variables and takes no flags.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: cadrefs mcp\n\n")
		Writef(output, "Run an MCP (Model Context Protocol) server over stdio.\n\n")
		Writef(output, "Environment:\n")
		Writef(output, "  CADREFS_LICENSE_KEY           license key passed to the document manager\n")
		Writef(output, "  CADREFS_LOG_LEVEL             stderr log level (default info)\n")
		Writef(output, "  CADREFS_METRICS_ADDR          serve Prometheus metrics at this address\n")
		Writef(output, "  CADREFS_RESULT_LIMIT          default number of references returned (default 100)\n")
		Writef(output, "  CADREFS_MAX_LIMIT             upper bound for limit (default 1000)\n")
		Writef(output, "  CADREFS_STRICT_CONFIGURATION  require an explicit configuration name\n")
	}

	return fs
}

// HandleMCP executes the mcp command. It blocks until the client disconnects
// or the process receives an interrupt.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
