// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes cadrefs capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/erraggy/cadrefs"
	"github.com/erraggy/cadrefs/internal/metrics"
	"github.com/erraggy/cadrefs/refcount"
)

const serverInstructions = `cadrefs MCP server: counts the external files referenced by a CAD document configuration, using a document metadata snapshot.

Input: every tool takes a snapshot (file or inline content, YAML or JSON) and an optional document path within it. The document may be omitted when the snapshot holds exactly one document.

Configuration: All defaults are configurable via CADREFS_* environment variables set in your MCP client config.

Key settings:
- CADREFS_LICENSE_KEY (default: snapshot): license key passed to the document manager
- CADREFS_LOG_LEVEL (default: info): stderr log level (debug, info, warn, error)
- CADREFS_METRICS_ADDR: serve Prometheus metrics at this address under /metrics
- CADREFS_RESULT_LIMIT (default: 100): default number of references returned
- CADREFS_MAX_LIMIT (default: 1000): upper bound for limit
- CADREFS_STRICT_CONFIGURATION (default: false): require an explicit configuration name

Configuration selection: without a configuration name the first configuration reported by the document manager is used and the result is marked defaulted. Use list_configurations first when the choice matters.`

var (
	// logger receives tool diagnostics. Run replaces it with a zap logger.
	logger refcount.Logger = refcount.NopLogger{}

	// recorder holds the Prometheus metrics for every count made by the server.
	recorder = metrics.NewRecorder(true)
)

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	zl, err := newZapLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("mcpserver: creating logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	logger = refcount.NewZapAdapter(zl)

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "cadrefs", Version: cadrefs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	logger.Info("mcp server starting", "agent", cadrefs.UserAgent(), "log_level", cfg.LogLevel.String())
	return server.Run(ctx, &mcp.StdioTransport{})
}

// newZapLogger builds a production logger writing to stderr. Stdout carries
// the MCP protocol and must not receive log output.
func newZapLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// serveMetrics serves the recorder on addr until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", "addr", addr, "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "mcpserver: metrics shutdown: %v\n", err)
		}
	}()
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "count_references",
		Description: "Count the external files referenced by one configuration of a CAD document. Returns lowercase base filenames with occurrence counts, most-referenced first. Suppressed components are skipped unless include_suppressed=true. Without a configuration name the first configuration is used and the output is marked defaulted; set strict=true (or CADREFS_STRICT_CONFIGURATION) to require a name. Use offset/limit to page through large assemblies.",
	}, handleCountReferences)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_configurations",
		Description: "List the configuration names of a CAD document in document-manager order. The first name is the one count_references uses when no configuration is given.",
	}, handleListConfigurations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "document_info",
		Description: "Describe a CAD document: path, document type (part, assembly, drawing), version, whether the version is supported for reference counting, and its configuration names.",
	}, handleDocumentInfo)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths of the host from error
// messages to prevent leaking internal directory structure to MCP clients.
// Document paths from the snapshot are client data and are left alone.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error. Errors with a known
// kind are prefixed with it so clients can branch without parsing messages.
func errResult(err error) *mcp.CallToolResult {
	text := sanitizeError(err)
	if outcome := refcount.Outcome(err); outcome != refcount.OutcomeError && outcome != refcount.OutcomeSuccess {
		text = outcome + ": " + text
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
