// Package server wires the reference engine into an MCP server served
// over stdio.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/refscope/refscope/internal/capture"
	"github.com/refscope/refscope/internal/index"
	"github.com/refscope/refscope/internal/tools"
	"github.com/refscope/refscope/pkg/types"
)

const (
	serverName    = "refscope"
	serverVersion = "0.1.0"
)

var _ types.Server = &RefscopeServer{}

// RefscopeServer represents the refscope MCP server
type RefscopeServer struct {
	mcpServer *server.MCPServer
	index     *index.GoIndex
	config    types.Config
	captured  *capture.Capture
}

// NewRefscopeServer creates a new refscope MCP server
func NewRefscopeServer(config types.Config) (*RefscopeServer, error) {
	ix, err := index.New(config.TranslationUnitCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create source index: %w", err)
	}

	return &RefscopeServer{
		mcpServer: server.NewMCPServer(serverName, serverVersion),
		index:     ix,
		config:    config,
	}, nil
}

// Serve starts the refscope MCP server and blocks until the client
// disconnects.
func (s *RefscopeServer) Serve(ctx context.Context) error {
	slog.Info("Starting refscope MCP server",
		"workspace_root", s.config.WorkspaceRoot,
		"force_reparse", s.config.ForceReparse,
		"watch_workspace", s.config.WatchWorkspace)

	if s.config.WatchWorkspace {
		if err := s.index.WatchWorkspace(s.config.WorkspaceRoot); err != nil {
			return fmt.Errorf("failed to watch workspace: %w", err)
		}
	}

	s.registerTools()

	// stray writes to stdout would corrupt the protocol stream; capture
	// them and keep the real stdout for the transport
	captured, err := capture.CaptureStandardStreams(func(data string) {
		slog.Warn("Captured stray output on stdout", "output", data)
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to capture standard streams: %w", err)
	}
	s.captured = captured

	stdioServer := server.NewStdioServer(s.mcpServer)
	if err := stdioServer.Listen(ctx, os.Stdin, captured.OriginalStdout()); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}

	return nil
}

func (s *RefscopeServer) registerTools() {
	findUsagesTool := tools.NewFindUsagesTool(s.index, s.config)
	s.mcpServer.AddTool(findUsagesTool.GetTool(), findUsagesTool.Handle)

	updateUnsavedTool := tools.NewUpdateUnsavedBufferTool(s.index, s.config)
	s.mcpServer.AddTool(updateUnsavedTool.GetTool(), updateUnsavedTool.Handle)

	discardUnsavedTool := tools.NewDiscardUnsavedBufferTool(s.index, s.config)
	s.mcpServer.AddTool(discardUnsavedTool.GetTool(), discardUnsavedTool.Handle)

	listUnsavedTool := tools.NewListUnsavedFilesTool(s.index, s.config)
	s.mcpServer.AddTool(listUnsavedTool.GetTool(), listUnsavedTool.Handle)
}

// Shutdown gracefully shuts down the server
func (s *RefscopeServer) Shutdown(ctx context.Context) error {
	if s.captured != nil {
		if err := s.captured.Close(); err != nil {
			slog.Error("Failed to release captured streams", "error", err)
		}
	}
	if err := s.index.Close(); err != nil {
		return fmt.Errorf("failed to close source index: %w", err)
	}
	return nil
}
