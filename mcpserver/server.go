// Package mcpserver exposes content generation as MCP tools over
// stdio, so MCP-capable clients can drive the pipeline directly.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/spetersoncode/postpilot/pipeline"
	"github.com/spetersoncode/postpilot/store"
)

// Server wraps an mcp-go server around the generation pipeline.
type Server struct {
	mcpServer *server.MCPServer
	generator *pipeline.Generator
	store     *store.Store
	logger    *slog.Logger
}

// New creates the MCP server and registers its tools.
func New(gen *pipeline.Generator, st *store.Store, version string, logger *slog.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"postpilot",
			version,
			server.WithToolCapabilities(false),
			server.WithLogging(),
		),
		generator: gen,
		store:     st,
		logger:    logger,
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

var requestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"company_info": map[string]any{
			"type":        "string",
			"description": "Company context; all generated claims are grounded in this text",
		},
		"topic": map[string]any{
			"type":        "string",
			"description": "Content topic or theme",
		},
		"style": map[string]any{
			"type":        "string",
			"description": "Writing style: professional, casual, inspirational, technical, or storytelling (default professional)",
		},
		"target_audience": map[string]any{
			"type":        "string",
			"description": "Optional audience description",
		},
		"content_length": map[string]any{
			"type":        "string",
			"description": "Target length: short, medium, or long (default medium)",
		},
	},
	"required": []string{"company_info", "topic"},
}

func variationsSchema() map[string]any {
	schema := map[string]any{
		"type":     "object",
		"required": []string{"company_info", "topic"},
	}
	props := map[string]any{}
	for k, v := range requestSchema["properties"].(map[string]any) {
		props[k] = v
	}
	props["count"] = map[string]any{
		"type":        "integer",
		"description": "Number of variations to generate (default 3)",
	}
	schema["properties"] = props
	return schema
}

func (s *Server) registerTools() {
	s.registerTool("generate_post",
		"Generate a LinkedIn post from company context and a topic. The result is stored pending human approval.",
		requestSchema, s.handleGeneratePost)

	s.registerTool("generate_variations",
		"Generate several LinkedIn post variations concurrently and return the successful ones.",
		variationsSchema(), s.handleGenerateVariations)

	s.registerTool("list_pending",
		"List generated posts waiting for human approval.",
		map[string]any{"type": "object", "properties": map[string]any{}},
		s.handleListPending)
}

func (s *Server) registerTool(name, description string, schema map[string]any, handler server.ToolHandlerFunc) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("marshaling schema for tool %s: %v", name, err))
	}
	s.mcpServer.AddTool(mcp.NewToolWithRawSchema(name, description, schemaJSON), handler)
}

func decodeArguments(request mcp.CallToolRequest, out any) error {
	raw, err := json.Marshal(request.Params.Arguments)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Server) handleGeneratePost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req pipeline.Request
	if err := decodeArguments(request, &req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if result.Failed() {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %s", result.Error)), nil
	}

	rec := s.store.Save(result, nil, 0)
	s.logger.Info("generated post via mcp", "content_id", rec.ID, "topic", req.Topic)
	return jsonResult(rec)
}

func (s *Server) handleGenerateVariations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req struct {
		pipeline.Request
		Count int `json:"count"`
	}
	if err := decodeArguments(request, &req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if req.Count <= 0 {
		req.Count = 3
	}

	results, err := s.generator.Variations(ctx, req.Request, req.Count)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records := make([]*store.Record, 0, len(results))
	for _, result := range results {
		records = append(records, s.store.Save(result, nil, 0))
	}
	return jsonResult(records)
}

func (s *Server) handleListPending(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.List(store.StatusPendingApproval))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("formatting result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
