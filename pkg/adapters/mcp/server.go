// Package mcp exposes a fitted meander engine to AI agents over the Model
// Context Protocol: prediction tools plus introspection resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/meander"
	"github.com/aretw0/meander/internal/presentation/graph"
	"github.com/aretw0/meander/pkg/domain"
)

// Engine defines the model surface the MCP server exposes.
// *meander.Engine satisfies it.
type Engine interface {
	Segments() ([]string, error)
	Matrix() ([][]float64, error)
	PredictNext(ctx context.Context, segment string) (string, error)
	PredictPath(ctx context.Context, start string, steps int) ([]string, error)
	TransitionProbabilities(segment string) (map[string]float64, error)
	TopPaths(ctx context.Context, start string, steps, topK int) ([]domain.Path, error)
}

// NextResponse is the structured output of the predict_next tool.
type NextResponse struct {
	Segment string `json:"segment" jsonschema_description:"The queried segment"`
	Next    string `json:"next" jsonschema_description:"The most likely next segment"`
}

// PathResponse is the structured output of the predict_path tool.
type PathResponse struct {
	Path []string `json:"path" jsonschema_description:"Greedy walk, start segment included"`
}

// PathsResponse is the structured output of the top_paths tool.
type PathsResponse struct {
	Paths []domain.Path `json:"paths" jsonschema_description:"Paths ranked by joint probability"`
}

// ProbabilitiesResponse is the structured output of transition_probabilities.
type ProbabilitiesResponse struct {
	Segment       string             `json:"segment"`
	Probabilities map[string]float64 `json:"probabilities" jsonschema_description:"Full outbound distribution"`
}

// Server wraps the meander Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("meander-mcp", strings.TrimSpace(meander.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: predict_next
	nextTool := mcp.NewTool("predict_next",
		mcp.WithDescription("Predict the most likely next segment for a customer currently in the given segment."),
		mcp.WithString("segment", mcp.Required(), mcp.Description("Current segment label")),
		mcp.WithOutputSchema[NextResponse](),
	)
	s.mcpServer.AddTool(nextTool, mcp.NewStructuredToolHandler(s.handlePredictNext))

	// TOOL: predict_path
	pathTool := mcp.NewTool("predict_path",
		mcp.WithDescription("Predict the greedy most-likely journey from a segment for a number of steps."),
		mcp.WithString("segment", mcp.Required(), mcp.Description("Start segment label")),
		mcp.WithNumber("steps", mcp.Description("Number of transitions to walk (default 3)")),
		mcp.WithOutputSchema[PathResponse](),
	)
	s.mcpServer.AddTool(pathTool, mcp.NewStructuredToolHandler(s.handlePredictPath))

	// TOOL: top_paths
	topTool := mcp.NewTool("top_paths",
		mcp.WithDescription("Rank whole journeys from a segment by joint probability using beam search."),
		mcp.WithString("segment", mcp.Required(), mcp.Description("Start segment label")),
		mcp.WithNumber("steps", mcp.Description("Path length in transitions (default 3)")),
		mcp.WithNumber("top_k", mcp.Description("Number of paths to keep (default 5)")),
		mcp.WithOutputSchema[PathsResponse](),
	)
	s.mcpServer.AddTool(topTool, mcp.NewStructuredToolHandler(s.handleTopPaths))

	// TOOL: transition_probabilities
	probTool := mcp.NewTool("transition_probabilities",
		mcp.WithDescription("Get the full outbound transition distribution of a segment."),
		mcp.WithString("segment", mcp.Required(), mcp.Description("Segment label")),
		mcp.WithOutputSchema[ProbabilitiesResponse](),
	)
	s.mcpServer.AddTool(probTool, mcp.NewStructuredToolHandler(s.handleProbabilities))
}

// Handler methods for structured tools

func (s *Server) handlePredictNext(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NextResponse, error) {
	segment, _ := args["segment"].(string)

	next, err := s.engine.PredictNext(ctx, segment)
	if err != nil {
		return NextResponse{}, fmt.Errorf("predict failed: %w", err)
	}
	return NextResponse{Segment: segment, Next: next}, nil
}

func (s *Server) handlePredictPath(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PathResponse, error) {
	segment, _ := args["segment"].(string)
	steps := intArg(args, "steps", 3)

	path, err := s.engine.PredictPath(ctx, segment, steps)
	if err != nil {
		return PathResponse{}, fmt.Errorf("predict failed: %w", err)
	}
	return PathResponse{Path: path}, nil
}

func (s *Server) handleTopPaths(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PathsResponse, error) {
	segment, _ := args["segment"].(string)
	steps := intArg(args, "steps", 3)
	topK := intArg(args, "top_k", 5)

	paths, err := s.engine.TopPaths(ctx, segment, steps, topK)
	if err != nil {
		return PathsResponse{}, fmt.Errorf("search failed: %w", err)
	}
	return PathsResponse{Paths: paths}, nil
}

func (s *Server) handleProbabilities(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ProbabilitiesResponse, error) {
	segment, _ := args["segment"].(string)

	probs, err := s.engine.TransitionProbabilities(segment)
	if err != nil {
		return ProbabilitiesResponse{}, fmt.Errorf("lookup failed: %w", err)
	}
	return ProbabilitiesResponse{Segment: segment, Probabilities: probs}, nil
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func (s *Server) registerResources() {
	// EXPOSE: meander://segments
	s.mcpServer.AddResource(mcp.NewResource("meander://segments", "Fitted Segment Vocabulary",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		segments, err := s.engine.Segments()
		if err != nil {
			return nil, fmt.Errorf("failed to list segments: %w", err)
		}
		jsonBytes, _ := json.Marshal(segments)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "meander://segments",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: meander://graph
	s.mcpServer.AddResource(mcp.NewResource("meander://graph", "Transition Diagram (Mermaid)",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		segments, err := s.engine.Segments()
		if err != nil {
			return nil, fmt.Errorf("failed to list segments: %w", err)
		}
		matrix, err := s.engine.Matrix()
		if err != nil {
			return nil, fmt.Errorf("failed to load matrix: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "meander://graph",
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(segments, matrix, nil),
			},
		}, nil
	})
}
