// Package mcp serves chat turns as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/log"
)

const (
	toolChat    = "chat"
	toolHistory = "history"
)

type Server struct {
	chat core.ChatService
	mcp  *server.MCPServer
	in   io.Reader
	out  io.Writer
}

func NewServer(chat core.ChatService, in io.Reader, out io.Writer) *Server {
	s := &Server{
		chat: chat,
		mcp:  server.NewMCPServer(core.MotivateName, core.MotivateVersion, server.WithToolCapabilities(false)),
		in:   in,
		out:  out,
	}

	s.mcp.AddTool(mcp.NewTool(toolChat,
		mcp.WithDescription("Send a message to a motivational coach that remembers the conversation for this session key."),
		mcp.WithString("session_key", mcp.Required(), mcp.Description("Stable identifier of the conversation, e.g. a user id.")),
		mcp.WithString("message", mcp.Required(), mcp.Description("The user's message.")),
	), s.handleChat)

	s.mcp.AddTool(mcp.NewTool(toolHistory,
		mcp.WithDescription("Return the stored transcript for a session key as JSON."),
		mcp.WithString("session_key", mcp.Required(), mcp.Description("Conversation identifier.")),
	), s.handleHistory)

	return s
}

// Start serves JSON-RPC on the configured reader and writer until ctx ends.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("mcp stdio server started")

	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, s.in, s.out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(context.Context) error {
	return nil
}

func (s *Server) handleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("session_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if key, err = core.ValidateKey(key); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := core.ValidateMessage(message); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reply, err := s.chat.HandleTurn(ctx, key, message)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", key).Msg("mcp chat turn failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reply), nil
}

func (s *Server) handleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("session_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if key, err = core.ValidateKey(key); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	turns, err := s.chat.History(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(turns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
