// Package mcpserver exposes the Tracker client as a Model Context
// Protocol server speaking JSON-RPC over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nhle/tracker-mcp/internal/tracker"
)

const serverName = "yandex-tracker"

// IssueGetter retrieves a single issue by key. *tracker.Client
// implements it; tests substitute fakes.
type IssueGetter interface {
	Issue(ctx context.Context, key string) (map[string]any, error)
}

// Server wires the get_issue tool onto an MCP server instance.
type Server struct {
	issues IssueGetter
	logger *slog.Logger
	mcp    *server.MCPServer
}

// New creates the MCP server and registers its tools. The logger must
// write to stderr (or elsewhere off stdout); stdout carries the
// protocol stream.
func New(issues IssueGetter, logger *slog.Logger, version string) *Server {
	s := &Server{
		issues: issues,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcp.AddTool(mcp.NewTool(
		"get_issue",
		mcp.WithDescription(
			"Get issue details from Yandex Tracker by issue key.",
		),
		mcp.WithString("issue_id",
			mcp.Required(),
			mcp.Description("Issue key to retrieve details for"),
		),
	), s.handleGetIssue)

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout until the
// stream closes or the process is signaled.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// handleGetIssue validates the request, performs the single upstream
// GET, and maps the outcome into a tool result. Failures are reported
// as tool errors so one bad invocation never takes the server down.
func (s *Server) handleGetIssue(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	start := time.Now()
	logger := s.logger.With(
		"tool", "get_issue",
		"request_id", uuid.NewString(),
	)

	issueID, err := req.RequireString("issue_id")
	if err != nil || strings.TrimSpace(issueID) == "" {
		logger.Warn("rejected invocation without issue_id")
		return mcp.NewToolResultError(
			"issue_id is required and must not be empty",
		), nil
	}

	issue, err := s.issues.Issue(ctx, issueID)
	switch {
	case tracker.IsNotFound(err):
		logger.Info("issue not found",
			"issue", issueID,
			"duration", time.Since(start),
		)
		return mcp.NewToolResultError(
			fmt.Sprintf("Issue %s not found", issueID),
		), nil
	case err != nil:
		logger.Error("issue lookup failed",
			"issue", issueID,
			"error", err,
			"duration", time.Since(start),
		)
		return mcp.NewToolResultError(
			fmt.Sprintf("Failed to get issue: %v", err),
		), nil
	}

	payload, err := json.Marshal(issue)
	if err != nil {
		return mcp.NewToolResultError(
			fmt.Sprintf("Failed to get issue: %v", err),
		), nil
	}

	logger.Info("issue retrieved",
		"issue", issueID,
		"duration", time.Since(start),
	)
	return mcp.NewToolResultText(string(payload)), nil
}
