// Package mcp exposes the conversation engine as an MCP server, so agent
// hosts can drive bookings with tool calls instead of the HTTP API.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/berryair/concierge/pkg/domain"
)

// SessionManager is the slice of the session manager the tools need.
type SessionManager interface {
	HandleMessage(ctx context.Context, sessionID, message string) (string, error)
	Inspect(ctx context.Context, sessionID string) (*domain.Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

// MessageResponse is the structured result of the send_message tool.
type MessageResponse struct {
	SessionID string `json:"session_id" jsonschema_description:"The conversation the message was sent to"`
	Response  string `json:"response" jsonschema_description:"The bot's reply"`
}

// SessionList is the structured result of the list_sessions tool.
type SessionList struct {
	Sessions []string `json:"sessions" jsonschema_description:"IDs of all persisted conversations"`
}

// Server wraps the session manager and exposes it as an MCP server.
type Server struct {
	manager   SessionManager
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server instance.
func NewServer(manager SessionManager, version string) *Server {
	s := &Server{
		manager:   manager,
		mcpServer: server.NewMCPServer("concierge-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	sendTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send one user message to a conversation and get the bot's reply. Unknown session IDs start a fresh conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation ID, chosen by the caller")),
		mcp.WithString("message", mcp.Required(), mcp.Description("The user message")),
		mcp.WithOutputSchema[MessageResponse](),
	)
	s.mcpServer.AddTool(sendTool, mcp.NewStructuredToolHandler(s.handleSendMessage))

	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Get the persisted snapshot of a conversation: active intent, state machine position and collected fields."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation ID")),
	)
	s.mcpServer.AddTool(getTool, s.handleGetSession)

	listTool := mcp.NewTool("list_sessions",
		mcp.WithDescription("List the IDs of all persisted conversations."),
		mcp.WithOutputSchema[SessionList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListSessions))

	deleteTool := mcp.NewTool("delete_session",
		mcp.WithDescription("Delete a persisted conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation ID")),
	)
	s.mcpServer.AddTool(deleteTool, s.handleDeleteSession)
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (MessageResponse, error) {
	sessionID, _ := args["session_id"].(string)
	message, _ := args["message"].(string)
	if sessionID == "" || message == "" {
		return MessageResponse{}, fmt.Errorf("session_id and message are required")
	}

	response, err := s.manager.HandleMessage(ctx, sessionID, message)
	if err != nil {
		return MessageResponse{}, fmt.Errorf("processing message: %w", err)
	}
	return MessageResponse{SessionID: sessionID, Response: response}, nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	snap, err := s.manager.Inspect(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("session %q not found", sessionID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("loading session: %v", err)), nil
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionList, error) {
	ids, err := s.manager.List(ctx)
	if err != nil {
		return SessionList{}, fmt.Errorf("listing sessions: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return SessionList{Sessions: ids}, nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	if err := s.manager.Delete(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("deleting session: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %q deleted", sessionID)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("concierge://sessions", "Persisted Conversations",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.manager.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing sessions: %w", err)
		}
		data, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "concierge://sessions",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
