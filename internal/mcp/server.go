// Package mcp exposes federation discovery and querying as MCP tools over
// stdio, so agent hosts can drive the same engine the CLI uses.
package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"specline/internal/config"
	"specline/internal/fanout"
	"specline/internal/logging"
	"specline/internal/probe"
	"specline/internal/registry"
	"specline/internal/vss"
)

// Server wraps the MCP SDK server around the discovery and fan-out engine.
type Server struct {
	MCPServer  *sdkmcp.Server
	Settings   config.Settings
	HTTPClient *http.Client
}

// NewServer creates an MCP server with the node discovery and federation
// query tools registered.
func NewServer(settings config.Settings) *Server {
	s := &Server{Settings: settings}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "specline", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_nodes",
		Description: "Discover the queryable data nodes of the federation from the registry (or the configured static list).",
	}, s.handleListNodes)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "query_lines",
		Description: "Probe every federation node for spectral line statistics in a wavelength range. Returns one terminal result per node plus aggregate totals.",
	}, s.handleQueryLines)
}

// --- Tool input/output types ---

type listNodesInput struct {
	NodesFile string `json:"nodes_file,omitempty" jsonschema:"path or URL of a static node list; overrides live registry discovery"`
}

type listNodesOutput struct {
	Nodes []registry.Node `json:"nodes"`
}

type queryLinesInput struct {
	LambdaMin      float64 `json:"lambda_min" jsonschema:"lower wavelength bound in Angstrom"`
	LambdaMax      float64 `json:"lambda_max" jsonschema:"upper wavelength bound in Angstrom"`
	TimeoutSeconds int     `json:"timeout_seconds,omitempty" jsonschema:"per-node deadline in seconds (default from settings, 30)"`
	MaxParallel    int     `json:"max_parallel,omitempty" jsonschema:"cap on concurrent probes (0 = probe every node at once)"`
	NodesFile      string  `json:"nodes_file,omitempty" jsonschema:"path or URL of a static node list; overrides live registry discovery"`
}

type queryLinesOutput struct {
	Results []probe.Result `json:"results"`
	Totals  fanout.Totals  `json:"totals"`
}

// --- Handlers ---

func (s *Server) handleListNodes(ctx context.Context, _ *sdkmcp.CallToolRequest, input listNodesInput) (*sdkmcp.CallToolResult, listNodesOutput, error) {
	nodes, err := s.resolve(ctx, input.NodesFile)
	if err != nil {
		return nil, listNodesOutput{}, err
	}
	return nil, listNodesOutput{Nodes: nodes}, nil
}

func (s *Server) handleQueryLines(ctx context.Context, _ *sdkmcp.CallToolRequest, input queryLinesInput) (*sdkmcp.CallToolResult, queryLinesOutput, error) {
	logger := logging.New("mcp")

	nodes, err := s.resolve(ctx, input.NodesFile)
	if err != nil {
		return nil, queryLinesOutput{}, err
	}
	if len(nodes) == 0 {
		return nil, queryLinesOutput{Results: []probe.Result{}}, nil
	}

	timeout := s.Settings.Timeout()
	if input.TimeoutSeconds > 0 {
		timeout = time.Duration(input.TimeoutSeconds) * time.Second
	}
	maxInFlight := s.Settings.MaxInFlight
	if input.MaxParallel > 0 {
		maxInFlight = input.MaxParallel
	}

	logger.Info("query round requested",
		"nodes", len(nodes),
		"lambda_min", input.LambdaMin,
		"lambda_max", input.LambdaMax)

	coord := &fanout.Coordinator{
		Prober:      &probe.Prober{HTTPClient: s.HTTPClient},
		Timeout:     timeout,
		MaxInFlight: maxInFlight,
	}
	results := coord.QueryAll(ctx, nodes, vss.Range{Min: input.LambdaMin, Max: input.LambdaMax}, nil)

	return nil, queryLinesOutput{Results: results, Totals: fanout.Summarize(results)}, nil
}

// resolve picks the resolver for one tool call: an explicit nodes_file
// argument wins over the server settings.
func (s *Server) resolve(ctx context.Context, nodesFile string) ([]registry.Node, error) {
	settings := s.Settings
	if nodesFile != "" {
		settings.NodesFile = nodesFile
	}
	nodes, err := settings.Resolver(s.HTTPClient).Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("node discovery failed: %w", err)
	}
	return nodes, nil
}
